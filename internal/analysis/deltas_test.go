package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fyrsmithlabs/coachd/internal/checkin"
)

func TestWeekOverWeekDeltas(t *testing.T) {
	current := steadyWeek(3, 70, checkin.GradeElite)
	previous := prevWeek(3, 70, checkin.GradeSolid)

	deltas := WeekOverWeekDeltas(current, previous)

	assert.Equal(t, 20.0, deltas[checkin.BehaviorSleep])
	assert.Equal(t, 20.0, deltas[checkin.BehaviorMindset])
	assert.Len(t, deltas, len(checkin.Behaviors()))
}

func TestWeekOverWeekDeltasSkipsUngraded(t *testing.T) {
	current := steadyWeek(3, 70, checkin.GradeSolid)
	deltas := WeekOverWeekDeltas(current, nil)
	assert.Empty(t, deltas)
}
