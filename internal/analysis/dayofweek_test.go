package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/coachd/internal/checkin"
)

// fortnight builds 14 consecutive real days starting on a Monday, grading
// every behavior by the per-weekday function.
func fortnight(gradeFor func(time.Weekday) checkin.Grade, exerciseFor func(time.Weekday) bool) []checkin.DailyRecord {
	start := time.Date(2026, time.August, 17, 0, 0, 0, 0, time.UTC) // a Monday
	var records []checkin.DailyRecord
	for i := 0; i < 14; i++ {
		date := start.AddDate(0, 0, i)
		records = append(records, checkin.DailyRecord{
			Date:              date,
			Type:              checkin.TypeReal,
			ExerciseCompleted: exerciseFor(date.Weekday()),
			Grades:            uniformGrades(gradeFor(date.Weekday())),
		})
	}
	return records
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

func findPattern(t *testing.T, patterns []DayOfWeekPattern, b checkin.Behavior) DayOfWeekPattern {
	t.Helper()
	for _, p := range patterns {
		if p.Behavior == b {
			return p
		}
	}
	t.Fatalf("no pattern for %s", b)
	return DayOfWeekPattern{}
}

func TestAnalyzeDayOfWeek(t *testing.T) {
	t.Run("needs at least a week of records", func(t *testing.T) {
		records := steadyWeek(3, 70, checkin.GradeSolid)[:6]
		assert.Nil(t, AnalyzeDayOfWeek(records))
	})

	t.Run("weekend collapse is significant", func(t *testing.T) {
		records := fortnight(func(d time.Weekday) checkin.Grade {
			if isWeekend(d) {
				return checkin.GradeNotGreat
			}
			return checkin.GradeSolid
		}, func(time.Weekday) bool { return true })

		patterns := AnalyzeDayOfWeek(records)
		require.NotEmpty(t, patterns)

		p := findPattern(t, patterns, checkin.BehaviorSleep)
		assert.Equal(t, "drops on weekends", p.Pattern)
		assert.True(t, p.IsSignificant)
		assert.Equal(t, 80.0, p.WeekdayAvg)
		assert.Equal(t, 50.0, p.WeekendAvg)
	})

	t.Run("weekday collapse is significant", func(t *testing.T) {
		records := fortnight(func(d time.Weekday) checkin.Grade {
			if isWeekend(d) {
				return checkin.GradeElite
			}
			return checkin.GradeNotGreat
		}, func(time.Weekday) bool { return true })

		p := findPattern(t, AnalyzeDayOfWeek(records), checkin.BehaviorNutrition)
		assert.Equal(t, "drops on weekdays", p.Pattern)
		assert.True(t, p.IsSignificant)
	})

	t.Run("small split stays consistent", func(t *testing.T) {
		records := fortnight(func(d time.Weekday) checkin.Grade {
			if isWeekend(d) {
				return checkin.GradeSolid
			}
			return checkin.GradeElite
		}, func(time.Weekday) bool { return true })

		// 100 vs 80 is a 20-point split, under the 25-point bar.
		p := findPattern(t, AnalyzeDayOfWeek(records), checkin.BehaviorSleep)
		assert.Equal(t, "consistent", p.Pattern)
		assert.False(t, p.IsSignificant)
	})

	t.Run("single struggling day reads as inconsistent", func(t *testing.T) {
		records := fortnight(func(d time.Weekday) checkin.Grade {
			if d == time.Wednesday {
				return checkin.GradeOff
			}
			return checkin.GradeSolid
		}, func(time.Weekday) bool { return true })

		p := findPattern(t, AnalyzeDayOfWeek(records), checkin.BehaviorHydration)
		assert.Equal(t, "inconsistent (Wednesday struggles)", p.Pattern)
		assert.False(t, p.IsSignificant)
		assert.Equal(t, time.Wednesday, p.WorstDay)
	})

	t.Run("exercise gate uses the wider threshold", func(t *testing.T) {
		// Exercise only on weekdays: 100 vs 0 clears the 30-point bar.
		records := fortnight(func(time.Weekday) checkin.Grade {
			return checkin.GradeSolid
		}, func(d time.Weekday) bool { return !isWeekend(d) })

		p := findPattern(t, AnalyzeDayOfWeek(records), ExerciseSignal)
		assert.Equal(t, "drops on weekends", p.Pattern)
		assert.True(t, p.IsSignificant)
		assert.Equal(t, 100.0, p.WeekdayAvg)
		assert.Equal(t, 0.0, p.WeekendAvg)
	})
}
