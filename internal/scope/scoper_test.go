package scope

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/coachd/internal/analysis"
	"github.com/fyrsmithlabs/coachd/internal/checkin"
)

func nutritionSnapshot() analysis.ConstraintSnapshot {
	return analysis.ConstraintSnapshot{
		DominantLimiter:   analysis.LimiterNutrition,
		SleepAvg:          82,
		NutritionAvg:      48,
		ProteinAvg:        55,
		HydrationAvg:      71,
		MindsetAvg:        64,
		TrainingFrequency: 4,
		DaysInRange:       14,
	}
}

func TestApplyScopesNumericDetail(t *testing.T) {
	scoped := Apply(nutritionSnapshot(), nil, nil, nil)

	assert.Equal(t, analysis.LimiterNutrition, scoped.DominantLimiter)
	assert.Equal(t,
		[]checkin.Behavior{checkin.BehaviorNutrition, checkin.BehaviorEnergyBalance, checkin.BehaviorProtein},
		scoped.ConstraintBehaviors)

	require.Len(t, scoped.ConstraintDetail, 3)
	byBehavior := make(map[checkin.Behavior]BehaviorDetail)
	for _, d := range scoped.ConstraintDetail {
		byBehavior[d.Behavior] = d
	}
	assert.Equal(t, 48.0, byBehavior[checkin.BehaviorNutrition].Average)
	assert.Equal(t, 55.0, byBehavior[checkin.BehaviorProtein].Average)

	// Everything outside the constraint is words only.
	assert.Equal(t, "strong", scoped.BackgroundSummary[checkin.BehaviorSleep])
	assert.Equal(t, "adequate", scoped.BackgroundSummary[checkin.BehaviorHydration])
	assert.NotContains(t, scoped.BackgroundSummary, checkin.BehaviorProtein)
}

func TestBackgroundSummaryIsDigitFree(t *testing.T) {
	digits := regexp.MustCompile(`\d`)
	for _, limiter := range []analysis.Limiter{
		analysis.LimiterRecovery, analysis.LimiterNutrition,
		analysis.LimiterConsistency, analysis.LimiterTime,
	} {
		snap := nutritionSnapshot()
		snap.DominantLimiter = limiter
		scoped := Apply(snap, nil, nil, nil)
		for b, summary := range scoped.BackgroundSummary {
			assert.False(t, digits.MatchString(summary),
				"limiter %s: summary for %s leaks digits: %q", limiter, b, summary)
		}
	}
}

func TestApplyProgressionScopesEverything(t *testing.T) {
	snap := nutritionSnapshot()
	snap.DominantLimiter = analysis.LimiterProgression

	scoped := Apply(snap, nil, nil, nil)

	assert.Equal(t, checkin.Behaviors(), scoped.ConstraintBehaviors)
	assert.Len(t, scoped.ConstraintDetail, len(checkin.Behaviors()))
	assert.Empty(t, scoped.BackgroundSummary)
}

func TestApplyMovementUsesTrainingRate(t *testing.T) {
	snap := nutritionSnapshot()
	snap.DominantLimiter = analysis.LimiterConsistency

	scoped := Apply(snap, nil, nil, nil)

	require.Len(t, scoped.ConstraintDetail, 1)
	d := scoped.ConstraintDetail[0]
	assert.Equal(t, checkin.BehaviorMovement, d.Behavior)
	// 4 training days over 14 in range.
	assert.InDelta(t, 28.57, d.Average, 0.01)
}

func TestApplyAttachesDeltasAndDayPatterns(t *testing.T) {
	deltas := map[checkin.Behavior]float64{checkin.BehaviorProtein: -12}
	dayPatterns := []analysis.DayOfWeekPattern{
		{Behavior: checkin.BehaviorProtein, Pattern: "drops on weekends", IsSignificant: true},
		{Behavior: checkin.BehaviorSleep, Pattern: "consistent"},
	}

	scoped := Apply(nutritionSnapshot(), deltas, dayPatterns, nil)

	var protein BehaviorDetail
	for _, d := range scoped.ConstraintDetail {
		if d.Behavior == checkin.BehaviorProtein {
			protein = d
		}
	}
	require.NotNil(t, protein.WeekDelta)
	assert.Equal(t, -12.0, *protein.WeekDelta)
	require.NotNil(t, protein.DayPattern)
	assert.Equal(t, "drops on weekends", protein.DayPattern.Pattern)
}

func TestFilterNotes(t *testing.T) {
	notes := []string{
		"rough day overall",                        // general: kept
		"slept terribly, barely ate any protein",   // mixed: kept
		"went to bed late again, so tired all day", // sleep only: dropped
		"barely ate anything today",                // nutrition: kept
	}

	scoped := Apply(nutritionSnapshot(), nil, nil, notes)

	assert.Contains(t, scoped.FilteredNotes, "rough day overall")
	assert.Contains(t, scoped.FilteredNotes, "slept terribly, barely ate any protein")
	assert.Contains(t, scoped.FilteredNotes, "barely ate anything today")

	require.Len(t, scoped.DroppedNotes, 1)
	assert.Equal(t, "went to bed late again, so tired all day", scoped.DroppedNotes[0].Note)
	assert.Contains(t, scoped.DroppedNotes[0].Reason, "sleep")
}

func TestDriftKeywords(t *testing.T) {
	banned := DriftKeywords(analysis.LimiterNutrition)

	assert.Contains(t, banned, "sleep")
	assert.Contains(t, banned, "workout")
	assert.NotContains(t, banned, "protein")
	assert.NotContains(t, banned, "meal")

	// Nothing is off limits when nothing binds.
	assert.Empty(t, DriftKeywords(analysis.LimiterProgression))
}
