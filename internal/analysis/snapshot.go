package analysis

import (
	"github.com/fyrsmithlabs/coachd/internal/checkin"
)

// Snapshot thresholds. Each threshold feeds exactly one qualitative mapping.
const (
	highCapacityRate     = 0.85
	moderateCapacityRate = 0.5
	capacityBehaviorBar  = 70

	sleepConsistentGrade = 80
	ampleSleepRate       = 0.85
	tightSleepRate       = 0.6
	ampleTrainingMax     = 5
	ampleBehaviorBar     = 75

	phaseTrendBand        = 5.0
	buildingBehaviorBar   = 70
	holdingBehaviorBar    = 65
	overreachTrainingMin  = 5
	overreachBehaviorBar  = 60
	limiterSleepBar       = 65
	limiterExerciseBar    = 60
	limiterProgressionBar = 70
)

// DeriveSnapshot aggregates a lookback window of records into the
// qualitative constraint snapshot. When no records exist it returns fixed
// conservative defaults rather than failing.
func DeriveSnapshot(records []checkin.DailyRecord) ConstraintSnapshot {
	if len(records) == 0 {
		return ConstraintSnapshot{
			TimeCapacity:    TimeCapacityModerate,
			RecoveryMargin:  RecoveryTight,
			PhaseSignal:     PhaseHolding,
			DominantLimiter: LimiterRecovery,
		}
	}

	sorted := checkin.SortedByDate(records)
	days := len(sorted)

	snap := ConstraintSnapshot{
		DaysInRange:       days,
		TrainingFrequency: exerciseDays(sorted),
		HydrationAvg:      avgOrZero(sorted, checkin.BehaviorHydration),
		ProteinAvg:        avgOrZero(sorted, checkin.BehaviorProtein),
		SleepAvg:          avgOrZero(sorted, checkin.BehaviorSleep),
		MindsetAvg:        avgOrZero(sorted, checkin.BehaviorMindset),
		NutritionAvg: behaviorsAvg(sorted, []checkin.Behavior{
			checkin.BehaviorNutrition, checkin.BehaviorEnergyBalance,
		}),
		SleepConsistency: sleepConsistency(sorted),
		MomentumTrend:    sorted[days-1].MomentumScore - sorted[0].MomentumScore,
	}

	trainingRate := float64(snap.TrainingFrequency) / float64(days)
	avgBehavior := mean(allGrades(sorted))

	snap.TimeCapacity = deriveTimeCapacity(trainingRate, avgBehavior)
	snap.RecoveryMargin = deriveRecoveryMargin(snap.SleepConsistency, snap.TrainingFrequency, avgBehavior)
	snap.PhaseSignal = derivePhaseSignal(snap.MomentumTrend, snap.TrainingFrequency, avgBehavior)
	snap.DominantLimiter = deriveLimiter(snap.SleepAvg, snap.NutritionAvg, snap.ProteinAvg, trainingRate)

	return snap
}

func avgOrZero(records []checkin.DailyRecord, b checkin.Behavior) float64 {
	v, _ := behaviorAvg(records, b)
	return v
}

// sleepConsistency is the fraction of days with a Solid or better sleep grade.
func sleepConsistency(records []checkin.DailyRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	n := 0
	for _, r := range records {
		if g, ok := r.Grade(checkin.BehaviorSleep); ok && g >= sleepConsistentGrade {
			n++
		}
	}
	return float64(n) / float64(len(records))
}

func deriveTimeCapacity(trainingRate, avgBehavior float64) TimeCapacity {
	switch {
	case trainingRate >= highCapacityRate && avgBehavior >= capacityBehaviorBar:
		return TimeCapacityHigh
	case trainingRate >= moderateCapacityRate:
		// High training with weak behaviors lands here too: the time
		// exists even when execution is poor.
		return TimeCapacityModerate
	}
	return TimeCapacityLow
}

func deriveRecoveryMargin(sleepRate float64, trainingFreq int, avgBehavior float64) RecoveryMargin {
	switch {
	case sleepRate >= ampleSleepRate && trainingFreq <= ampleTrainingMax && avgBehavior >= ampleBehaviorBar:
		return RecoveryAmple
	case sleepRate >= ampleSleepRate && trainingFreq >= ampleTrainingMax+1:
		return RecoveryTight
	case sleepRate >= tightSleepRate && trainingFreq <= ampleTrainingMax:
		return RecoveryTight
	case sleepRate < tightSleepRate && trainingFreq >= overreachTrainingMin:
		return RecoveryConstrained
	}
	return RecoveryDeficit
}

// derivePhaseSignal reads momentum trend as newest minus oldest, so a
// positive trend means momentum is rising across the range.
func derivePhaseSignal(trend float64, trainingFreq int, avgBehavior float64) PhaseSignal {
	switch {
	case trend > phaseTrendBand && avgBehavior >= buildingBehaviorBar:
		return PhaseBuilding
	case trend >= -phaseTrendBand && trend <= phaseTrendBand && avgBehavior >= holdingBehaviorBar:
		return PhaseHolding
	case trend < -phaseTrendBand && trainingFreq >= overreachTrainingMin && avgBehavior >= overreachBehaviorBar:
		return PhaseOverreaching
	}
	return PhaseDisrupted
}

// deriveLimiter identifies the weakest of sleep, combined nutrition, and
// exercise consistency. When every category clears the progression bar no
// single behavior is binding.
func deriveLimiter(sleepAvg, nutritionAvg, proteinAvg, trainingRate float64) Limiter {
	nutritionScore := (nutritionAvg + proteinAvg) / 2
	exerciseScore := trainingRate * 100

	if sleepAvg >= limiterProgressionBar &&
		nutritionScore >= limiterProgressionBar &&
		exerciseScore >= limiterProgressionBar {
		return LimiterProgression
	}

	weakest := LimiterRecovery
	weakestScore := sleepAvg
	if nutritionScore < weakestScore {
		weakest = LimiterNutrition
		weakestScore = nutritionScore
	}
	if exerciseScore < weakestScore {
		weakest = LimiterConsistency
		weakestScore = exerciseScore
	}

	switch weakest {
	case LimiterNutrition:
		return LimiterNutrition
	case LimiterConsistency:
		if weakestScore < limiterExerciseBar {
			return LimiterConsistency
		}
	case LimiterRecovery:
		if weakestScore < limiterSleepBar {
			return LimiterRecovery
		}
	}
	return LimiterRecovery
}
