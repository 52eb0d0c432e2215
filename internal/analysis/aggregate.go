package analysis

import (
	"math"

	"github.com/fyrsmithlabs/coachd/internal/checkin"
)

// mean returns the arithmetic mean of vs, or 0 for an empty slice.
func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// popStdDev returns the population standard deviation of vs.
func popStdDev(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	m := mean(vs)
	var sum float64
	for _, v := range vs {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vs)))
}

// realCheckIns counts real check-in days.
func realCheckIns(records []checkin.DailyRecord) int {
	n := 0
	for _, r := range records {
		if r.IsReal() {
			n++
		}
	}
	return n
}

// exerciseDays counts days with the exercise gate completed, across real
// days and reconciled gap days.
func exerciseDays(records []checkin.DailyRecord) int {
	n := 0
	for _, r := range records {
		if r.CountsForExercise() && r.ExerciseCompleted {
			n++
		}
	}
	return n
}

// behaviorGrades collects every recorded grade for b as float values.
func behaviorGrades(records []checkin.DailyRecord, b checkin.Behavior) []float64 {
	var vs []float64
	for _, r := range records {
		if g, ok := r.Grade(b); ok {
			vs = append(vs, float64(g))
		}
	}
	return vs
}

// behaviorAvg returns the mean grade for b across records, and whether any
// grade was recorded.
func behaviorAvg(records []checkin.DailyRecord, b checkin.Behavior) (float64, bool) {
	vs := behaviorGrades(records, b)
	if len(vs) == 0 {
		return 0, false
	}
	return mean(vs), true
}

// behaviorsAvg returns the mean over all grades of the given behaviors.
func behaviorsAvg(records []checkin.DailyRecord, behaviors []checkin.Behavior) float64 {
	var vs []float64
	for _, b := range behaviors {
		vs = append(vs, behaviorGrades(records, b)...)
	}
	return mean(vs)
}

// allGrades flattens every behavior grade in records.
func allGrades(records []checkin.DailyRecord) []float64 {
	var vs []float64
	for _, r := range records {
		for _, g := range r.Grades {
			vs = append(vs, float64(g))
		}
	}
	return vs
}

// offCount counts Off (grade 0) ratings across all behaviors in records.
func offCount(records []checkin.DailyRecord) int {
	n := 0
	for _, r := range records {
		for _, g := range r.Grades {
			if g == checkin.GradeOff {
				n++
			}
		}
	}
	return n
}

// currentMomentum returns the newest real check-in's momentum score,
// falling back to the newest record of any type.
func currentMomentum(records []checkin.DailyRecord) float64 {
	sorted := checkin.SortedByDate(records)
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i].IsReal() {
			return sorted[i].MomentumScore
		}
	}
	if len(sorted) > 0 {
		return sorted[len(sorted)-1].MomentumScore
	}
	return 0
}

// peakMomentum returns the maximum momentum score seen in records.
func peakMomentum(records []checkin.DailyRecord) float64 {
	peak := 0.0
	for _, r := range records {
		if r.MomentumScore > peak {
			peak = r.MomentumScore
		}
	}
	return peak
}

// meanMomentum averages momentum over the days that count for analysis.
func meanMomentum(records []checkin.DailyRecord) float64 {
	var vs []float64
	for _, r := range records {
		if r.CountsForExercise() {
			vs = append(vs, r.MomentumScore)
		}
	}
	return mean(vs)
}
