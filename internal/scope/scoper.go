// Package scope narrows the data surface handed to the text generator.
//
// Only behaviors mapped to the dominant limiter receive numeric detail;
// everything else is reduced to a single qualitative word. The note filter
// removes free text that could reintroduce unscoped behaviors. The goal is
// to starve the generator of numeric material for cross-behavior causal
// chains, not to censor narrative.
package scope

import (
	"fmt"
	"strings"

	"github.com/fyrsmithlabs/coachd/internal/analysis"
	"github.com/fyrsmithlabs/coachd/internal/checkin"
)

// Qualitative summary bands for non-constraint behaviors. The summary must
// never contain digits, so band names are words only.
const (
	bandStrong         = "strong"
	bandAdequate       = "adequate"
	bandVariable       = "variable"
	bandNeedsAttention = "needs attention"
)

// BehaviorDetail is the full numeric detail for one constraint behavior.
type BehaviorDetail struct {
	Behavior   checkin.Behavior
	Average    float64
	WeekDelta  *float64
	DayPattern *analysis.DayOfWeekPattern
}

// DroppedNote records a filtered-out note and why it was dropped.
type DroppedNote struct {
	Note   string
	Reason string
}

// Scoped is the narrowed data surface for prompt construction.
type Scoped struct {
	DominantLimiter     analysis.Limiter
	ConstraintBehaviors []checkin.Behavior
	ConstraintDetail    []BehaviorDetail
	BackgroundSummary   map[checkin.Behavior]string
	FilteredNotes       []string
	DroppedNotes        []DroppedNote
}

// limiterBehaviors maps each limiter to the behaviors that receive full
// numeric detail. The progression limiter is handled separately: nothing
// is binding, so nothing is scoped out.
var limiterBehaviors = map[analysis.Limiter][]checkin.Behavior{
	analysis.LimiterRecovery:    {checkin.BehaviorSleep, checkin.BehaviorMindset},
	analysis.LimiterNutrition:   {checkin.BehaviorNutrition, checkin.BehaviorEnergyBalance, checkin.BehaviorProtein},
	analysis.LimiterConsistency: {checkin.BehaviorMovement},
	analysis.LimiterTime:        {checkin.BehaviorMovement},
}

// Apply builds the scoped data surface for the dominant limiter.
func Apply(
	snap analysis.ConstraintSnapshot,
	deltas map[checkin.Behavior]float64,
	dayPatterns []analysis.DayOfWeekPattern,
	notes []string,
) Scoped {
	constraint := limiterBehaviors[snap.DominantLimiter]
	if snap.DominantLimiter == analysis.LimiterProgression {
		constraint = checkin.Behaviors()
	}

	s := Scoped{
		DominantLimiter:     snap.DominantLimiter,
		ConstraintBehaviors: constraint,
		BackgroundSummary:   make(map[checkin.Behavior]string),
	}

	inConstraint := make(map[checkin.Behavior]bool, len(constraint))
	for _, b := range constraint {
		inConstraint[b] = true
	}

	patternsByBehavior := make(map[checkin.Behavior]analysis.DayOfWeekPattern, len(dayPatterns))
	for _, p := range dayPatterns {
		patternsByBehavior[p.Behavior] = p
	}

	for _, b := range checkin.Behaviors() {
		avg := behaviorAverage(snap, b)
		if !inConstraint[b] {
			s.BackgroundSummary[b] = qualitativeBand(avg)
			continue
		}
		detail := BehaviorDetail{Behavior: b, Average: avg}
		if d, ok := deltas[b]; ok {
			delta := d
			detail.WeekDelta = &delta
		}
		if p, ok := patternsByBehavior[b]; ok {
			detail.DayPattern = &p
		}
		s.ConstraintDetail = append(s.ConstraintDetail, detail)
	}

	s.FilteredNotes, s.DroppedNotes = filterNotes(notes, constraint)
	return s
}

// behaviorAverage reads the supporting average for b out of the snapshot.
// Movement has no grade average in the snapshot; its detail is the
// training rate expressed as a percentage.
func behaviorAverage(snap analysis.ConstraintSnapshot, b checkin.Behavior) float64 {
	switch b {
	case checkin.BehaviorSleep:
		return snap.SleepAvg
	case checkin.BehaviorNutrition, checkin.BehaviorEnergyBalance:
		return snap.NutritionAvg
	case checkin.BehaviorProtein:
		return snap.ProteinAvg
	case checkin.BehaviorHydration:
		return snap.HydrationAvg
	case checkin.BehaviorMindset:
		return snap.MindsetAvg
	case checkin.BehaviorMovement:
		if snap.DaysInRange == 0 {
			return 0
		}
		return float64(snap.TrainingFrequency) / float64(snap.DaysInRange) * 100
	}
	return 0
}

func qualitativeBand(avg float64) string {
	switch {
	case avg >= 80:
		return bandStrong
	case avg >= 65:
		return bandAdequate
	case avg >= 50:
		return bandVariable
	}
	return bandNeedsAttention
}

// filterNotes applies the permissive note filter. A note is dropped only
// when it mentions a non-constraint topic and says nothing about the
// constraint topic. General notes and mixed notes always pass.
func filterNotes(notes []string, constraint []checkin.Behavior) ([]string, []DroppedNote) {
	constraintTopics := make(map[string]bool)
	for _, b := range constraint {
		constraintTopics[BehaviorTopic(b)] = true
	}

	var kept []string
	var dropped []DroppedNote
	for _, note := range notes {
		if note == "" {
			continue
		}
		hits := topicHits(note)
		if len(hits) == 0 {
			kept = append(kept, note)
			continue
		}
		mentionsConstraint := false
		var offTopic []string
		for topic := range hits {
			if constraintTopics[topic] {
				mentionsConstraint = true
			} else {
				offTopic = append(offTopic, topic)
			}
		}
		if mentionsConstraint {
			kept = append(kept, note)
			continue
		}
		dropped = append(dropped, DroppedNote{
			Note:   note,
			Reason: fmt.Sprintf("mentions %s without touching the constraint topic", strings.Join(offTopic, ", ")),
		})
	}
	return kept, dropped
}
