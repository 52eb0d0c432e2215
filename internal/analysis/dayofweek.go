package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/fyrsmithlabs/coachd/internal/checkin"
)

// Day-of-week significance thresholds. Boolean exercise completion uses a
// wider band because it only moves in 0/100 steps per day.
const (
	gradeSplitThreshold    = 25
	exerciseSplitThreshold = 30
	inconsistentSpread     = 30
	minDayOfWeekRecords    = 7
)

// AnalyzeDayOfWeek computes weekday-versus-weekend splits per behavior plus
// one entry for the binary exercise flag. Fewer than seven records yields
// no patterns: a split needs at least one full week to mean anything.
func AnalyzeDayOfWeek(records []checkin.DailyRecord) []DayOfWeekPattern {
	if len(records) < minDayOfWeekRecords {
		return nil
	}

	var patterns []DayOfWeekPattern
	for _, b := range checkin.Behaviors() {
		if p, ok := analyzeSeries(b, gradeSeries(records, b), gradeSplitThreshold); ok {
			patterns = append(patterns, p)
		}
	}
	if p, ok := analyzeSeries(ExerciseSignal, exerciseSeries(records), exerciseSplitThreshold); ok {
		patterns = append(patterns, p)
	}
	return patterns
}

type daySample struct {
	day   time.Weekday
	value float64
}

func gradeSeries(records []checkin.DailyRecord, b checkin.Behavior) []daySample {
	var samples []daySample
	for _, r := range records {
		if g, ok := r.Grade(b); ok {
			samples = append(samples, daySample{day: r.Date.Weekday(), value: float64(g)})
		}
	}
	return samples
}

// exerciseSeries maps the boolean gate to 0/100 so splits read as
// percentage points.
func exerciseSeries(records []checkin.DailyRecord) []daySample {
	var samples []daySample
	for _, r := range records {
		if !r.CountsForExercise() {
			continue
		}
		v := 0.0
		if r.ExerciseCompleted {
			v = 100
		}
		samples = append(samples, daySample{day: r.Date.Weekday(), value: v})
	}
	return samples
}

func analyzeSeries(b checkin.Behavior, samples []daySample, splitThreshold float64) (DayOfWeekPattern, bool) {
	if len(samples) == 0 {
		return DayOfWeekPattern{}, false
	}

	var weekday, weekend []float64
	byDay := make(map[time.Weekday][]float64)
	for _, s := range samples {
		byDay[s.day] = append(byDay[s.day], s.value)
		if s.day == time.Saturday || s.day == time.Sunday {
			weekend = append(weekend, s.value)
		} else {
			weekday = append(weekday, s.value)
		}
	}

	p := DayOfWeekPattern{
		Behavior:   b,
		WeekdayAvg: mean(weekday),
		WeekendAvg: mean(weekend),
	}
	p.BestDay, p.BestDayAvg, p.WorstDay, p.WorstDayAvg = bestAndWorst(byDay)

	split := p.WeekdayAvg - p.WeekendAvg
	switch {
	case split >= splitThreshold:
		p.Pattern = "drops on weekends"
		p.IsSignificant = true
	case -split >= splitThreshold:
		p.Pattern = "drops on weekdays"
		p.IsSignificant = true
	case p.BestDayAvg-p.WorstDayAvg >= inconsistentSpread:
		p.Pattern = fmt.Sprintf("inconsistent (%s struggles)", p.WorstDay)
	default:
		p.Pattern = "consistent"
	}
	return p, true
}

func bestAndWorst(byDay map[time.Weekday][]float64) (best time.Weekday, bestAvg float64, worst time.Weekday, worstAvg float64) {
	bestAvg = -1
	worstAvg = math.MaxFloat64
	// Walk days in calendar order for deterministic tie-breaking.
	for d := time.Sunday; d <= time.Saturday; d++ {
		vs, ok := byDay[d]
		if !ok {
			continue
		}
		avg := mean(vs)
		if avg > bestAvg {
			best, bestAvg = d, avg
		}
		if avg < worstAvg {
			worst, worstAvg = d, avg
		}
	}
	return best, bestAvg, worst, worstAvg
}
