// Package analysis implements the weekly decision logic: pattern
// classification, constraint snapshot derivation, progression decisions,
// and day-of-week splits.
//
// Both classifiers are explicit ordered rule lists evaluated top to bottom.
// The first matching guard wins, which keeps priority order and each branch
// independently testable.
package analysis

import (
	"time"

	"github.com/fyrsmithlabs/coachd/internal/checkin"
)

// PatternType is one of the mutually exclusive weekly behavior patterns.
type PatternType string

const (
	PatternInsufficientData     PatternType = "insufficient_data"
	PatternBuildingFoundation   PatternType = "building_foundation"
	PatternGapDisruption        PatternType = "gap_disruption"
	PatternCommitmentMisaligned PatternType = "commitment_misaligned"
	PatternRecoveryDeficit      PatternType = "recovery_deficit"
	PatternEffortInconsistent   PatternType = "effort_inconsistent"
	PatternVarianceHigh         PatternType = "variance_high"
	PatternMomentumDecline      PatternType = "momentum_decline"
	PatternMomentumPlateau      PatternType = "momentum_plateau"

	// PatternBuildingMomentum is part of the vocabulary and fixture set but
	// has no guard in the default rule chain; only fixture output produces it.
	PatternBuildingMomentum PatternType = "building_momentum"
)

// WeeklyPattern is the classification result for one analysis window.
type WeeklyPattern struct {
	Primary          PatternType
	Evidence         []string
	WeekID           string
	Window           checkin.Window
	CanCoach         bool
	DaysAnalyzed     int
	RealCheckIns     int
	LifetimeCheckIns int
}

// TimeCapacity labels how much schedule room the user currently has.
type TimeCapacity string

const (
	TimeCapacityLow      TimeCapacity = "low"
	TimeCapacityModerate TimeCapacity = "moderate"
	TimeCapacityHigh     TimeCapacity = "high"
)

// RecoveryMargin labels how much recovery headroom the user has.
type RecoveryMargin string

const (
	RecoveryAmple       RecoveryMargin = "ample"
	RecoveryTight       RecoveryMargin = "tight"
	RecoveryConstrained RecoveryMargin = "constrained"
	RecoveryDeficit     RecoveryMargin = "deficit"
)

// PhaseSignal labels the current training phase posture.
type PhaseSignal string

const (
	PhaseBuilding     PhaseSignal = "building"
	PhaseHolding      PhaseSignal = "holding"
	PhaseOverreaching PhaseSignal = "overreaching"
	PhaseDisrupted    PhaseSignal = "disrupted"
)

// Limiter names the single category judged to bind progress this week.
type Limiter string

const (
	LimiterTime        Limiter = "time"
	LimiterRecovery    Limiter = "recovery"
	LimiterNutrition   Limiter = "nutrition"
	LimiterConsistency Limiter = "consistency"
	LimiterProgression Limiter = "progression"
)

// ConstraintSnapshot is the ephemeral qualitative read of current capacity.
// It is derived fresh per request and overrides, never blends with, any
// longer-lived profile data.
type ConstraintSnapshot struct {
	TimeCapacity    TimeCapacity
	RecoveryMargin  RecoveryMargin
	PhaseSignal     PhaseSignal
	DominantLimiter Limiter

	SleepAvg          float64
	NutritionAvg      float64
	ProteinAvg        float64
	HydrationAvg      float64
	MindsetAvg        float64
	TrainingFrequency int
	SleepConsistency  float64

	// MomentumTrend is newest minus oldest over the range: positive means
	// momentum ended higher than it started.
	MomentumTrend float64
	DaysInRange   int
}

// ProgressionType is the forward directive for the coming week.
type ProgressionType string

const (
	ProgressionAdvance   ProgressionType = "advance"
	ProgressionStabilize ProgressionType = "stabilize"
	ProgressionSimplify  ProgressionType = "simplify"
)

// ProgressionResult is the progression decision with its supporting numbers.
type ProgressionResult struct {
	Type     ProgressionType
	Reason   string
	Triggers []string
	Metadata map[string]float64
}

// ExerciseSignal is the pseudo-behavior name used for the binary exercise
// flag in day-of-week analysis.
const ExerciseSignal checkin.Behavior = "exercise"

// DayOfWeekPattern describes the weekday/weekend split for one behavior.
type DayOfWeekPattern struct {
	Behavior      checkin.Behavior
	Pattern       string
	WeekdayAvg    float64
	WeekendAvg    float64
	WorstDay      time.Weekday
	WorstDayAvg   float64
	BestDay       time.Weekday
	BestDayAvg    float64
	IsSignificant bool
}
