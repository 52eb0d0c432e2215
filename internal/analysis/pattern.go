package analysis

import (
	"fmt"

	"github.com/fyrsmithlabs/coachd/internal/checkin"
)

// Classification thresholds. Each constant belongs to exactly one rule in
// the chain below.
const (
	minRealCheckIns      = 4
	minLifetimeCheckIns  = 10
	committedExerciseMin = 5
	misalignedMomentum   = 50
	recoveryGradeFloor   = 60
	minLowRecoveryDays   = 3
	inconsistentEffort   = 60
	highVariance         = 25
	declineDrop          = 15
	declineMomentumCeil  = 65
	declineVarianceFloor = 20
)

// weekStats holds the aggregates the rule guards read. Computed once per
// classification so every guard sees identical numbers.
type weekStats struct {
	days             int
	realCheckIns     int
	lifetimeCheckIns int
	lifetimeKnown    bool
	exerciseDays     int
	unresolvedGaps   int
	momentum         float64
	momentumPeak     float64
	lowRecoveryDays  int
	nonExerciseAvg   float64
	gradeStdDev      float64
}

// patternRule pairs a guard with the pattern it produces and the evidence
// justifying it. Rules are evaluated in order; the first match wins.
type patternRule struct {
	pattern  PatternType
	coach    bool
	guard    func(weekStats) bool
	evidence func(weekStats) []string
}

// patternRules is the fixed decision list. Order is the priority contract:
// data-sufficiency gates first, disruption, then behavioral signals, with
// the plateau default last so classification is total.
var patternRules = []patternRule{
	{
		pattern: PatternInsufficientData,
		guard:   func(s weekStats) bool { return s.realCheckIns < minRealCheckIns },
		evidence: func(s weekStats) []string {
			return []string{fmt.Sprintf("Real check-ins: %d/%d", s.realCheckIns, s.days)}
		},
	},
	{
		pattern: PatternBuildingFoundation,
		guard:   func(s weekStats) bool { return s.lifetimeCheckIns < minLifetimeCheckIns },
		evidence: func(s weekStats) []string {
			ev := []string{fmt.Sprintf("Lifetime check-ins: %d", s.lifetimeCheckIns)}
			if !s.lifetimeKnown {
				ev = append(ev, "Lifetime count unavailable, treated as 0")
			}
			return ev
		},
	},
	{
		pattern: PatternGapDisruption,
		coach:   true,
		guard:   func(s weekStats) bool { return s.unresolvedGaps > 0 },
		evidence: func(s weekStats) []string {
			return []string{fmt.Sprintf("Unresolved gap days: %d", s.unresolvedGaps)}
		},
	},
	{
		pattern: PatternCommitmentMisaligned,
		coach:   true,
		guard: func(s weekStats) bool {
			return s.exerciseDays >= committedExerciseMin && s.momentum < misalignedMomentum
		},
		evidence: func(s weekStats) []string {
			return []string{
				fmt.Sprintf("Exercise: %d/%d days", s.exerciseDays, s.days),
				fmt.Sprintf("Momentum: %.0f%%", s.momentum),
			}
		},
	},
	{
		pattern: PatternRecoveryDeficit,
		coach:   true,
		guard:   func(s weekStats) bool { return s.lowRecoveryDays >= minLowRecoveryDays },
		evidence: func(s weekStats) []string {
			return []string{fmt.Sprintf("Days with sleep/mindset below %d%%: %d", recoveryGradeFloor, s.lowRecoveryDays)}
		},
	},
	{
		pattern: PatternEffortInconsistent,
		coach:   true,
		guard: func(s weekStats) bool {
			return s.exerciseDays >= committedExerciseMin && s.nonExerciseAvg < inconsistentEffort
		},
		evidence: func(s weekStats) []string {
			return []string{
				fmt.Sprintf("Exercise: %d/%d days", s.exerciseDays, s.days),
				fmt.Sprintf("Non-exercise behavior average: %.0f%%", s.nonExerciseAvg),
			}
		},
	},
	{
		pattern: PatternVarianceHigh,
		coach:   true,
		guard:   func(s weekStats) bool { return s.gradeStdDev > highVariance },
		evidence: func(s weekStats) []string {
			return []string{fmt.Sprintf("Grade variance: %.1f", s.gradeStdDev)}
		},
	},
	{
		pattern: PatternMomentumDecline,
		coach:   true,
		guard: func(s weekStats) bool {
			return s.momentumPeak-s.momentum >= declineDrop &&
				s.momentum < declineMomentumCeil &&
				s.gradeStdDev > declineVarianceFloor
		},
		evidence: func(s weekStats) []string {
			return []string{
				fmt.Sprintf("Momentum: %.0f%% (down %.0f from peak %.0f%%)",
					s.momentum, s.momentumPeak-s.momentum, s.momentumPeak),
			}
		},
	},
	{
		pattern: PatternMomentumPlateau,
		coach:   true,
		guard:   func(weekStats) bool { return true },
		evidence: func(s weekStats) []string {
			return []string{fmt.Sprintf("Momentum holding at %.0f%%", s.momentum)}
		},
	},
}

// ClassifyWeek assigns exactly one pattern to the window. It is a pure
// function of its inputs; identical inputs always yield the same result.
func ClassifyWeek(window checkin.Window, records []checkin.DailyRecord, lifetimeCheckIns int, lifetimeKnown bool) WeeklyPattern {
	stats := computeWeekStats(records, lifetimeCheckIns, lifetimeKnown)

	for _, rule := range patternRules {
		if !rule.guard(stats) {
			continue
		}
		return WeeklyPattern{
			Primary:          rule.pattern,
			Evidence:         rule.evidence(stats),
			WeekID:           window.WeekID(),
			Window:           window,
			CanCoach:         rule.coach,
			DaysAnalyzed:     stats.days,
			RealCheckIns:     stats.realCheckIns,
			LifetimeCheckIns: stats.lifetimeCheckIns,
		}
	}

	// Unreachable: the last rule always matches.
	panic("pattern rule chain has no default")
}

func computeWeekStats(records []checkin.DailyRecord, lifetime int, lifetimeKnown bool) weekStats {
	s := weekStats{
		days:             len(records),
		realCheckIns:     realCheckIns(records),
		lifetimeCheckIns: lifetime,
		lifetimeKnown:    lifetimeKnown,
		exerciseDays:     exerciseDays(records),
		momentum:         currentMomentum(records),
		momentumPeak:     peakMomentum(records),
		nonExerciseAvg:   behaviorsAvg(records, checkin.NonExerciseBehaviors()),
		gradeStdDev:      popStdDev(allGrades(records)),
	}

	for _, r := range records {
		if r.Type == checkin.TypeGapFill && !r.GapResolved {
			s.unresolvedGaps++
		}
		sleep, okSleep := r.Grade(checkin.BehaviorSleep)
		mindset, okMind := r.Grade(checkin.BehaviorMindset)
		if okSleep && okMind && (float64(sleep)+float64(mindset))/2 < recoveryGradeFloor {
			s.lowRecoveryDays++
		}
	}
	return s
}
