// Package coaching orchestrates weekly coaching generation: classification,
// snapshot derivation, scoping, prompt assembly, the external generation
// call, validation, and bounded retry.
package coaching

import (
	"context"
	"time"

	"github.com/fyrsmithlabs/coachd/internal/analysis"
	"github.com/fyrsmithlabs/coachd/internal/checkin"
)

// Coaching is the structured text the generator must produce.
type Coaching struct {
	Headline      string `json:"headline" firestore:"headline"`
	Observation   string `json:"observation" firestore:"observation"`
	Guidance      string `json:"guidance" firestore:"guidance"`
	FocusBehavior string `json:"focus_behavior" firestore:"focusBehavior"`
}

// SummaryStatus is the terminal state of one generation run.
type SummaryStatus string

const (
	StatusGenerated SummaryStatus = "generated"
	StatusSkipped   SummaryStatus = "skipped"
	StatusRejected  SummaryStatus = "rejected"
)

// WeeklySummary is the only document this system persists: one per
// (user, weekId), overwritten on regeneration.
type WeeklySummary struct {
	WeekID                string                   `json:"weekId" firestore:"weekId"`
	GenerationID          string                   `json:"generationId" firestore:"generationId"`
	PatternType           analysis.PatternType     `json:"patternType" firestore:"patternType"`
	CanCoach              bool                     `json:"canCoach" firestore:"canCoach"`
	SkipReason            string                   `json:"skipReason,omitempty" firestore:"skipReason,omitempty"`
	EvidencePoints        []string                 `json:"evidencePoints" firestore:"evidencePoints"`
	Progression           analysis.ProgressionType `json:"progression,omitempty" firestore:"progression,omitempty"`
	DominantLimiter       analysis.Limiter         `json:"dominantLimiter,omitempty" firestore:"dominantLimiter,omitempty"`
	ModelVersion          string                   `json:"modelVersion" firestore:"modelVersion"`
	Status                SummaryStatus            `json:"status" firestore:"status"`
	Coaching              *Coaching                `json:"coaching,omitempty" firestore:"coaching,omitempty"`
	RejectionReason       string                   `json:"rejectionReason,omitempty" firestore:"rejectionReason,omitempty"`
	RawOutput             string                   `json:"rawOutput,omitempty" firestore:"rawOutput,omitempty"`
	GeneratedAt           time.Time                `json:"generatedAt" firestore:"generatedAt"`
	DaysAnalyzed          int                      `json:"daysAnalyzed" firestore:"daysAnalyzed"`
	RealCheckInsThisWeek  int                      `json:"realCheckInsThisWeek" firestore:"realCheckInsThisWeek"`
	TotalLifetimeCheckIns int                      `json:"totalLifetimeCheckIns" firestore:"totalLifetimeCheckIns"`
}

// Store is the document-store surface the orchestrator depends on.
type Store interface {
	// DailyRecords returns the user's records between start and end
	// inclusive, ordered by date ascending.
	DailyRecords(ctx context.Context, email string, start, end time.Time) ([]checkin.DailyRecord, error)

	// SaveWeeklySummary writes the summary keyed by (email, weekId),
	// overwriting any prior document for that week.
	SaveWeeklySummary(ctx context.Context, email string, summary WeeklySummary) error

	// WeeklySummary fetches a stored summary, or nil when absent.
	WeeklySummary(ctx context.Context, email, weekID string) (*WeeklySummary, error)
}
