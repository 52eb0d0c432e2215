package analysis

import (
	"github.com/fyrsmithlabs/coachd/internal/checkin"
)

// WeekOverWeekDeltas returns current-minus-previous average per behavior,
// for behaviors graded in both weeks.
func WeekOverWeekDeltas(current, previous []checkin.DailyRecord) map[checkin.Behavior]float64 {
	deltas := make(map[checkin.Behavior]float64)
	for _, b := range checkin.Behaviors() {
		cur, okCur := behaviorAvg(current, b)
		prev, okPrev := behaviorAvg(previous, b)
		if okCur && okPrev {
			deltas[b] = cur - prev
		}
	}
	return deltas
}
