package analysis

import (
	"fmt"

	"github.com/fyrsmithlabs/coachd/internal/checkin"
)

// Progression thresholds.
const (
	simplifyOffRatings     = 3
	simplifyMomentumDrop   = 15
	simplifyFoundationBar  = 50
	simplifyExerciseFloor  = 3
	stabilizeExerciseJump  = 2
	stabilizeBehaviorJump  = 15
	advanceExerciseDays    = 5
	advanceBehaviorBar     = 80
	advanceStrongBehaviors = 5
	advanceExerciseMin     = 4
)

// progStats holds the week-over-week aggregates the progression guards read.
type progStats struct {
	currentExercise  int
	previousExercise int
	offThisWeek      int
	momentumDelta    float64 // current minus previous weekly mean

	currentAvg  map[checkin.Behavior]float64
	previousAvg map[checkin.Behavior]float64
	combinedAvg map[checkin.Behavior]float64

	offByBehaviorWeek     map[checkin.Behavior]int
	offByBehaviorCombined map[checkin.Behavior]int
}

// ClassifyProgression decides the forward directive for the coming week.
// Tiers are evaluated in strict order: the simplify safety override, the
// stabilize cooldown, then the default advance push. Exactly one type is
// returned for every input pair.
func ClassifyProgression(current, previous []checkin.DailyRecord) ProgressionResult {
	s := computeProgStats(current, previous)

	if triggers := simplifyTriggers(s); len(triggers) > 0 {
		return result(ProgressionSimplify, triggers, s)
	}
	if triggers := stabilizeTriggers(s); len(triggers) > 0 {
		return result(ProgressionStabilize, triggers, s)
	}
	if triggers := advanceTriggers(s); len(triggers) > 0 {
		return result(ProgressionAdvance, triggers, s)
	}
	return result(ProgressionAdvance, []string{"maintain current approach"}, s)
}

func result(t ProgressionType, triggers []string, s progStats) ProgressionResult {
	return ProgressionResult{
		Type:     t,
		Reason:   triggers[0],
		Triggers: triggers,
		Metadata: map[string]float64{
			"exercise_days_current":  float64(s.currentExercise),
			"exercise_days_previous": float64(s.previousExercise),
			"off_ratings_this_week":  float64(s.offThisWeek),
			"momentum_delta":         s.momentumDelta,
		},
	}
}

// simplifyTriggers is the safety override: any hit wins regardless of what
// the advance conditions would say.
func simplifyTriggers(s progStats) []string {
	var triggers []string

	if s.offThisWeek >= simplifyOffRatings {
		triggers = append(triggers, fmt.Sprintf("%d Off ratings this week", s.offThisWeek))
	}
	if s.momentumDelta <= -simplifyMomentumDrop {
		triggers = append(triggers, fmt.Sprintf("momentum declined %.0f points week-over-week", -s.momentumDelta))
	}
	for _, b := range checkin.FoundationBehaviors() {
		if avg, ok := s.currentAvg[b]; ok && avg < simplifyFoundationBar {
			triggers = append(triggers, fmt.Sprintf("%s averaging %.0f%% this week", b, avg))
		}
	}
	if s.previousExercise >= advanceExerciseDays && s.currentExercise < simplifyExerciseFloor {
		triggers = append(triggers, fmt.Sprintf(
			"exercise dropped from %d to %d days", s.previousExercise, s.currentExercise))
	}
	return triggers
}

// stabilizeTriggers is the cooldown after a recent jump in load.
func stabilizeTriggers(s progStats) []string {
	var triggers []string

	if s.currentExercise-s.previousExercise >= stabilizeExerciseJump && s.currentExercise >= advanceExerciseDays {
		triggers = append(triggers, fmt.Sprintf(
			"exercise jumped from %d to %d days", s.previousExercise, s.currentExercise))
	}
	for _, b := range checkin.ProgressionBehaviors() {
		cur, okCur := s.currentAvg[b]
		prev, okPrev := s.previousAvg[b]
		if okCur && okPrev && cur-prev >= stabilizeBehaviorJump {
			triggers = append(triggers, fmt.Sprintf("%s jumped %.0f points week-over-week", b, cur-prev))
		}
	}
	return triggers
}

// advanceTriggers is the default forward push.
func advanceTriggers(s progStats) []string {
	var triggers []string

	if s.currentExercise >= advanceExerciseDays && s.previousExercise >= advanceExerciseDays {
		triggers = append(triggers, fmt.Sprintf(
			"exercise held at %d+ days both weeks", advanceExerciseDays))
	}

	strongThisWeek := 0
	cleanThisWeek := true
	for _, b := range checkin.ProgressionBehaviors() {
		if avg, ok := s.combinedAvg[b]; ok && avg >= advanceBehaviorBar && s.offByBehaviorCombined[b] == 0 {
			triggers = append(triggers, fmt.Sprintf("%s averaging %.0f%% with no Off ratings", b, avg))
		}
		if avg, ok := s.currentAvg[b]; ok && avg >= advanceBehaviorBar {
			strongThisWeek++
		}
		if s.offByBehaviorWeek[b] > 0 {
			cleanThisWeek = false
		}
	}

	if strongThisWeek >= advanceStrongBehaviors && s.currentExercise >= advanceExerciseMin && cleanThisWeek {
		triggers = append(triggers, fmt.Sprintf(
			"%d behaviors at %d%%+ with %d exercise days", strongThisWeek, advanceBehaviorBar, s.currentExercise))
	}
	return triggers
}

func computeProgStats(current, previous []checkin.DailyRecord) progStats {
	s := progStats{
		currentExercise:       exerciseDays(current),
		previousExercise:      exerciseDays(previous),
		offThisWeek:           offCount(current),
		momentumDelta:         meanMomentum(current) - meanMomentum(previous),
		currentAvg:            make(map[checkin.Behavior]float64),
		previousAvg:           make(map[checkin.Behavior]float64),
		combinedAvg:           make(map[checkin.Behavior]float64),
		offByBehaviorWeek:     make(map[checkin.Behavior]int),
		offByBehaviorCombined: make(map[checkin.Behavior]int),
	}

	combined := append(checkin.SortedByDate(previous), checkin.SortedByDate(current)...)
	for _, b := range checkin.Behaviors() {
		if avg, ok := behaviorAvg(current, b); ok {
			s.currentAvg[b] = avg
		}
		if avg, ok := behaviorAvg(previous, b); ok {
			s.previousAvg[b] = avg
		}
		if avg, ok := behaviorAvg(combined, b); ok {
			s.combinedAvg[b] = avg
		}
		s.offByBehaviorWeek[b] = behaviorOffCount(current, b)
		s.offByBehaviorCombined[b] = behaviorOffCount(combined, b)
	}
	return s
}

func behaviorOffCount(records []checkin.DailyRecord, b checkin.Behavior) int {
	n := 0
	for _, r := range records {
		if g, ok := r.Grade(b); ok && g == checkin.GradeOff {
			n++
		}
	}
	return n
}
