package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fyrsmithlabs/coachd/internal/checkin"
)

func TestDeriveSnapshotDefaults(t *testing.T) {
	snap := DeriveSnapshot(nil)

	assert.Equal(t, TimeCapacityModerate, snap.TimeCapacity)
	assert.Equal(t, RecoveryTight, snap.RecoveryMargin)
	assert.Equal(t, PhaseHolding, snap.PhaseSignal)
	assert.Equal(t, LimiterRecovery, snap.DominantLimiter)
	assert.Equal(t, 0, snap.DaysInRange)
}

func TestDeriveSnapshotAggregates(t *testing.T) {
	records := steadyWeek(4, 70, checkin.GradeSolid)
	records[0].MomentumScore = 60
	records[6].MomentumScore = 75

	snap := DeriveSnapshot(records)

	assert.Equal(t, 7, snap.DaysInRange)
	assert.Equal(t, 4, snap.TrainingFrequency)
	assert.Equal(t, 80.0, snap.SleepAvg)
	assert.Equal(t, 80.0, snap.NutritionAvg)
	assert.Equal(t, 80.0, snap.ProteinAvg)
	assert.Equal(t, 1.0, snap.SleepConsistency)
	// Newest minus oldest: rising momentum reads positive.
	assert.Equal(t, 15.0, snap.MomentumTrend)
}

func TestDeriveSnapshotQualitative(t *testing.T) {
	t.Run("strong week clears every bar", func(t *testing.T) {
		records := steadyWeek(6, 70, checkin.GradeSolid)

		snap := DeriveSnapshot(records)

		// 6/7 training with strong behaviors: time exists, nothing binds.
		assert.Equal(t, TimeCapacityHigh, snap.TimeCapacity)
		assert.Equal(t, LimiterProgression, snap.DominantLimiter)
		assert.Equal(t, PhaseHolding, snap.PhaseSignal)
	})

	t.Run("heavy training with weak behaviors still reads moderate", func(t *testing.T) {
		records := steadyWeek(6, 70, checkin.GradeOff)

		snap := DeriveSnapshot(records)

		assert.Equal(t, TimeCapacityModerate, snap.TimeCapacity)
	})

	t.Run("weak sleep binds recovery", func(t *testing.T) {
		records := steadyWeek(6, 70, checkin.GradeSolid)
		for i := range records {
			records[i].Grades[checkin.BehaviorSleep] = checkin.GradeNotGreat
		}

		snap := DeriveSnapshot(records)

		assert.Equal(t, LimiterRecovery, snap.DominantLimiter)
	})

	t.Run("weak nutrition binds nutrition", func(t *testing.T) {
		records := steadyWeek(6, 70, checkin.GradeSolid)
		for i := range records {
			records[i].Grades[checkin.BehaviorNutrition] = checkin.GradeOff
			records[i].Grades[checkin.BehaviorEnergyBalance] = checkin.GradeOff
			records[i].Grades[checkin.BehaviorProtein] = checkin.GradeNotGreat
		}

		snap := DeriveSnapshot(records)

		assert.Equal(t, LimiterNutrition, snap.DominantLimiter)
	})

	t.Run("sparse training binds consistency", func(t *testing.T) {
		records := steadyWeek(2, 70, checkin.GradeSolid)

		snap := DeriveSnapshot(records)

		// 2/7 days is a 29% rate, well under the exercise bar.
		assert.Equal(t, LimiterConsistency, snap.DominantLimiter)
		assert.Equal(t, TimeCapacityLow, snap.TimeCapacity)
	})

	t.Run("falling momentum under load reads as overreaching", func(t *testing.T) {
		records := steadyWeek(6, 70, checkin.GradeSolid)
		records[0].MomentumScore = 80
		records[6].MomentumScore = 60

		snap := DeriveSnapshot(records)

		assert.Equal(t, PhaseOverreaching, snap.PhaseSignal)
	})

	t.Run("rising momentum with strong behaviors reads as building", func(t *testing.T) {
		records := steadyWeek(5, 70, checkin.GradeSolid)
		records[0].MomentumScore = 55
		records[6].MomentumScore = 75

		snap := DeriveSnapshot(records)

		assert.Equal(t, PhaseBuilding, snap.PhaseSignal)
	})
}
