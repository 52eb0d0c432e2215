// Package checkin defines the daily check-in domain model and the boundary
// parsing that converts untyped store documents into typed records.
package checkin

import (
	"time"
)

// Grade is the ordinal score a user assigns to a behavior for one day.
// Only four values are valid; anything else is rejected at the boundary.
type Grade int

const (
	GradeOff      Grade = 0
	GradeNotGreat Grade = 50
	GradeSolid    Grade = 80
	GradeElite    Grade = 100
)

// Valid reports whether g is one of the four allowed ordinal values.
func (g Grade) Valid() bool {
	switch g {
	case GradeOff, GradeNotGreat, GradeSolid, GradeElite:
		return true
	}
	return false
}

// Label returns the user-facing name for the grade.
func (g Grade) Label() string {
	switch g {
	case GradeOff:
		return "Off"
	case GradeNotGreat:
		return "Not Great"
	case GradeSolid:
		return "Solid"
	case GradeElite:
		return "Elite"
	}
	return "Unknown"
}

// Behavior identifies one of the tracked behavior categories.
type Behavior string

const (
	BehaviorSleep         Behavior = "sleep"
	BehaviorNutrition     Behavior = "nutrition_pattern"
	BehaviorEnergyBalance Behavior = "energy_balance"
	BehaviorProtein       Behavior = "protein"
	BehaviorHydration     Behavior = "hydration"
	BehaviorMovement      Behavior = "movement"
	BehaviorMindset       Behavior = "mindset"
)

// Behaviors returns all tracked behavior categories.
func Behaviors() []Behavior {
	return []Behavior{
		BehaviorSleep,
		BehaviorNutrition,
		BehaviorEnergyBalance,
		BehaviorProtein,
		BehaviorHydration,
		BehaviorMovement,
		BehaviorMindset,
	}
}

// NonExerciseBehaviors returns the six rating categories that are not the
// movement bonus-activity rating. Movement is a NEAT signal and does not
// substitute for the binary exercise gate.
func NonExerciseBehaviors() []Behavior {
	return []Behavior{
		BehaviorSleep,
		BehaviorNutrition,
		BehaviorEnergyBalance,
		BehaviorProtein,
		BehaviorHydration,
		BehaviorMindset,
	}
}

// ProgressionBehaviors returns the six behaviors eligible for progression
// math. Mindset is tracked as a signal only and never drives progression.
func ProgressionBehaviors() []Behavior {
	return []Behavior{
		BehaviorSleep,
		BehaviorNutrition,
		BehaviorEnergyBalance,
		BehaviorProtein,
		BehaviorHydration,
		BehaviorMovement,
	}
}

// FoundationBehaviors returns the behaviors whose collapse triggers the
// simplify safety override.
func FoundationBehaviors() []Behavior {
	return []Behavior{BehaviorSleep, BehaviorNutrition, BehaviorHydration}
}

// Type distinguishes real user check-ins from gap-fill placeholders.
type Type string

const (
	TypeReal    Type = "real"
	TypeGapFill Type = "gap_fill"
)

// DailyRecord is one day of user behavior data, parsed and validated.
type DailyRecord struct {
	Date              time.Time
	Type              Type
	ExerciseCompleted bool
	Grades            map[Behavior]Grade
	MomentumScore     float64
	DailyScore        float64

	// GapResolved is only meaningful when Type is TypeGapFill.
	GapResolved bool

	// LifetimeCheckIns carries the running check-in total when the source
	// document recorded one. HasLifetimeCheckIns distinguishes a stored
	// zero from an absent field.
	LifetimeCheckIns    int
	HasLifetimeCheckIns bool

	// Notes is the optional free-text note the user attached to the day.
	Notes string
}

// IsReal reports whether the record is a real user check-in.
func (r DailyRecord) IsReal() bool {
	return r.Type == TypeReal
}

// CountsForExercise reports whether the record participates in exercise-day
// counts: real days always do, gap-fill days only once reconciled.
func (r DailyRecord) CountsForExercise() bool {
	return r.Type == TypeReal || (r.Type == TypeGapFill && r.GapResolved)
}

// Grade returns the grade for a behavior and whether it was recorded.
func (r DailyRecord) Grade(b Behavior) (Grade, bool) {
	g, ok := r.Grades[b]
	return g, ok
}

// WeekID formats the canonical identifier for a week starting at start.
func WeekID(start time.Time) string {
	return start.Format("2006-01-02")
}
