package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/coachd/internal/checkin"
)

// prevWeek shifts a steady week seven days earlier so it reads as the
// previous window.
func prevWeek(exerciseDays int, momentum float64, g checkin.Grade) []checkin.DailyRecord {
	records := steadyWeek(exerciseDays, momentum, g)
	for i := range records {
		records[i].Date = records[i].Date.AddDate(0, 0, -7)
	}
	return records
}

func TestClassifyProgression(t *testing.T) {
	t.Run("simplify overrides advance on off ratings", func(t *testing.T) {
		// Both weeks would qualify for advance, but three Off ratings this
		// week trip the safety override.
		current := steadyWeek(6, 70, checkin.GradeSolid)
		for i := 0; i < 3; i++ {
			current[i].Grades[checkin.BehaviorMindset] = checkin.GradeOff
		}
		previous := prevWeek(6, 70, checkin.GradeSolid)

		got := ClassifyProgression(current, previous)

		assert.Equal(t, ProgressionSimplify, got.Type)
		assert.Contains(t, got.Triggers, "3 Off ratings this week")
		assert.Equal(t, 3.0, got.Metadata["off_ratings_this_week"])
	})

	t.Run("simplify on exercise collapse", func(t *testing.T) {
		current := steadyWeek(2, 70, checkin.GradeSolid)
		previous := prevWeek(6, 70, checkin.GradeSolid)

		got := ClassifyProgression(current, previous)

		assert.Equal(t, ProgressionSimplify, got.Type)
		assert.Contains(t, got.Triggers, "exercise dropped from 6 to 2 days")
		assert.Equal(t, 2.0, got.Metadata["exercise_days_current"])
		assert.Equal(t, 6.0, got.Metadata["exercise_days_previous"])
	})

	t.Run("simplify on momentum drop", func(t *testing.T) {
		current := steadyWeek(4, 50, checkin.GradeSolid)
		previous := prevWeek(4, 70, checkin.GradeSolid)

		got := ClassifyProgression(current, previous)

		assert.Equal(t, ProgressionSimplify, got.Type)
		assert.Contains(t, got.Triggers, "momentum declined 20 points week-over-week")
		assert.Equal(t, -20.0, got.Metadata["momentum_delta"])
	})

	t.Run("simplify on foundation behavior collapse", func(t *testing.T) {
		current := steadyWeek(4, 70, checkin.GradeSolid)
		for i := range current {
			current[i].Grades[checkin.BehaviorHydration] = checkin.GradeOff
		}
		previous := prevWeek(4, 70, checkin.GradeSolid)

		got := ClassifyProgression(current, previous)

		assert.Equal(t, ProgressionSimplify, got.Type)
		assert.Contains(t, got.Triggers, "hydration averaging 0% this week")
	})

	t.Run("stabilize after an exercise jump", func(t *testing.T) {
		current := steadyWeek(5, 70, checkin.GradeSolid)
		previous := prevWeek(3, 70, checkin.GradeSolid)

		got := ClassifyProgression(current, previous)

		assert.Equal(t, ProgressionStabilize, got.Type)
		assert.Contains(t, got.Triggers, "exercise jumped from 3 to 5 days")
	})

	t.Run("advance when load holds and behaviors are strong", func(t *testing.T) {
		current := steadyWeek(5, 70, checkin.GradeSolid)
		previous := prevWeek(5, 70, checkin.GradeSolid)

		got := ClassifyProgression(current, previous)

		assert.Equal(t, ProgressionAdvance, got.Type)
		assert.Contains(t, got.Triggers, "exercise held at 5+ days both weeks")
	})

	t.Run("default advance with no trigger", func(t *testing.T) {
		// Not Great across the board sits exactly on the foundation bar,
		// below every stabilize and advance threshold.
		current := steadyWeek(2, 70, checkin.GradeNotGreat)
		previous := prevWeek(2, 70, checkin.GradeNotGreat)

		got := ClassifyProgression(current, previous)

		require.Equal(t, ProgressionAdvance, got.Type)
		assert.Equal(t, "maintain current approach", got.Reason)
	})

	t.Run("reason is the first trigger", func(t *testing.T) {
		current := steadyWeek(2, 40, checkin.GradeSolid)
		for i := 0; i < 4; i++ {
			current[i].Grades[checkin.BehaviorMindset] = checkin.GradeOff
		}
		previous := prevWeek(6, 70, checkin.GradeSolid)

		got := ClassifyProgression(current, previous)

		require.NotEmpty(t, got.Triggers)
		assert.Equal(t, got.Triggers[0], got.Reason)
		assert.Equal(t, ProgressionSimplify, got.Type)
	})
}
