package checkin

import (
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

var (
	// ErrMissingDate indicates a document without a usable date field.
	ErrMissingDate = errors.New("record missing date")

	// ErrMissingGrades indicates a document without behavior grades.
	ErrMissingGrades = errors.New("record missing behaviorGrades")

	// ErrInvalidGrade indicates a grade outside the allowed ordinal set.
	ErrInvalidGrade = errors.New("invalid behavior grade")
)

// ParseRecord converts an untyped store document into a DailyRecord.
//
// Documents come from the external store as loosely typed maps. Parsing is
// strict about the fields classification depends on (date, grades) and
// lenient about everything else: unknown behavior names are kept, numeric
// fields tolerate int64 and float64 encodings, and momentum is clamped to
// the 0-100 range.
func ParseRecord(doc map[string]any) (DailyRecord, error) {
	var rec DailyRecord

	date, err := parseDate(doc["date"])
	if err != nil {
		return rec, err
	}
	rec.Date = date

	rec.Type = TypeReal
	if s, ok := doc["checkinType"].(string); ok && s != "" {
		rec.Type = Type(s)
	}
	if rec.Type != TypeReal && rec.Type != TypeGapFill {
		return rec, fmt.Errorf("unknown checkinType %q", rec.Type)
	}

	rec.ExerciseCompleted, _ = doc["exerciseCompleted"].(bool)
	rec.GapResolved, _ = doc["gapResolved"].(bool)
	rec.Notes, _ = doc["notes"].(string)

	grades, err := parseGrades(doc["behaviorGrades"])
	if err != nil {
		return rec, err
	}
	rec.Grades = grades

	if v, ok := toFloat(doc["momentumScore"]); ok {
		rec.MomentumScore = clamp(v, 0, 100)
	}
	if v, ok := toFloat(doc["dailyScore"]); ok {
		rec.DailyScore = v
	}
	if v, ok := toFloat(doc["totalLifetimeCheckIns"]); ok {
		rec.LifetimeCheckIns = int(v)
		rec.HasLifetimeCheckIns = true
	}

	return rec, nil
}

func parseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d.UTC().Truncate(24 * time.Hour), nil
	case string:
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			return time.Time{}, fmt.Errorf("bad date %q: %w", d, err)
		}
		return t, nil
	}
	return time.Time{}, ErrMissingDate
}

func parseGrades(v any) (map[Behavior]Grade, error) {
	entries, ok := v.([]any)
	if !ok || len(entries) == 0 {
		return nil, ErrMissingGrades
	}

	grades := make(map[Behavior]Grade, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: entry is not an object", ErrMissingGrades)
		}
		name, _ := m["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("%w: entry missing name", ErrMissingGrades)
		}
		raw, ok := toFloat(m["grade"])
		if !ok {
			return nil, fmt.Errorf("%w: %s has no numeric grade", ErrInvalidGrade, name)
		}
		g := Grade(raw)
		if !g.Valid() {
			return nil, fmt.Errorf("%w: %s=%v", ErrInvalidGrade, name, raw)
		}
		grades[Behavior(name)] = g
	}
	return grades, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
