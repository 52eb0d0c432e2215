package coaching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/coachd/internal/analysis"
	"github.com/fyrsmithlabs/coachd/internal/checkin"
	"github.com/fyrsmithlabs/coachd/internal/generator"
	"github.com/fyrsmithlabs/coachd/internal/language"
	"github.com/fyrsmithlabs/coachd/internal/scope"
)

// ErrInvalidRequest indicates a request missing required fields. It is
// surfaced immediately, with no retry.
var ErrInvalidRequest = errors.New("email and weekId are required")

// RejectedError is returned when every generation attempt failed
// validation. The rejected summary has already been persisted for audit.
type RejectedError struct {
	Summary          *WeeklySummary
	ValidationErrors []string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("generation rejected after retries: %s", strings.Join(e.ValidationErrors, "; "))
}

// Config tunes the orchestrator.
type Config struct {
	MaxAttempts    int
	LookbackDays   int
	AttemptTimeout time.Duration
	Model          generator.ModelConfig
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 3
	}
	if c.LookbackDays == 0 {
		c.LookbackDays = 14
	}
	if c.AttemptTimeout == 0 {
		c.AttemptTimeout = 45 * time.Second
	}
	return c
}

// Request asks for one weekly coaching generation.
type Request struct {
	Email      string
	WeekID     string
	UseFixture bool
}

// Orchestrator sequences classification, scoping, generation, validation,
// bounded retry, and persistence. A single request is a single sequential
// control flow; no speculative parallel attempts.
type Orchestrator struct {
	store    Store
	gen      generator.Generator
	enforcer *language.Enforcer
	logger   *zap.Logger
	cfg      Config

	// now is swappable for tests.
	now func() time.Time
}

// NewOrchestrator wires the generation pipeline.
func NewOrchestrator(store Store, gen generator.Generator, enforcer *language.Enforcer, logger *zap.Logger, cfg Config) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		store:    store,
		gen:      gen,
		enforcer: enforcer,
		logger:   logger,
		cfg:      cfg.withDefaults(),
		now:      time.Now,
	}
}

// GenerateWeekly runs the full pipeline for one (user, week) pair and
// persists exactly one summary document: generated, skipped, or rejected.
func (o *Orchestrator) GenerateWeekly(ctx context.Context, req Request) (*WeeklySummary, error) {
	if req.Email == "" || req.WeekID == "" {
		return nil, ErrInvalidRequest
	}

	start := o.now()
	defer func() {
		generationDuration.Observe(time.Since(start).Seconds())
	}()

	today := start.UTC().Truncate(24 * time.Hour)

	// One range query covers the analysis window, the previous week, and
	// the 30-day lifetime-count lookback.
	fetchStart := today.AddDate(0, 0, -45)
	all, err := o.store.DailyRecords(ctx, req.Email, fetchStart, today)
	if err != nil {
		generationResults.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetch daily records: %w", err)
	}

	window := checkin.WindowFor(today, hasRealOn(all, today))
	windowRecords := inRange(all, window.Start, window.End)
	prevRecords := inRange(all, window.Start.AddDate(0, 0, -7), window.Start.AddDate(0, 0, -1))
	lookbackRecords := inRange(all, window.LifetimeLookbackStart(), window.Start.AddDate(0, 0, -1))

	lifetime, lifetimeKnown := checkin.ResolveLifetimeCount(windowRecords, lookbackRecords)
	pattern := analysis.ClassifyWeek(window, windowRecords, lifetime, lifetimeKnown)
	patternsDetected.WithLabelValues(string(pattern.Primary)).Inc()

	gen := o.gen
	if req.UseFixture {
		gen = generator.NewFixtureGenerator()
	}

	base := WeeklySummary{
		WeekID:                req.WeekID,
		GenerationID:          uuid.NewString(),
		PatternType:           pattern.Primary,
		CanCoach:              pattern.CanCoach,
		EvidencePoints:        pattern.Evidence,
		ModelVersion:          gen.ModelVersion(),
		GeneratedAt:           o.now().UTC(),
		DaysAnalyzed:          pattern.DaysAnalyzed,
		RealCheckInsThisWeek:  pattern.RealCheckIns,
		TotalLifetimeCheckIns: pattern.LifetimeCheckIns,
	}

	// Uncoachable weeks are a product outcome, not an error. Silence is
	// stored, not generated.
	if !pattern.CanCoach {
		base.Status = StatusSkipped
		base.SkipReason = string(pattern.Primary)
		if err := o.store.SaveWeeklySummary(ctx, req.Email, base); err != nil {
			generationResults.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("persist skipped summary: %w", err)
		}
		generationResults.WithLabelValues("skipped").Inc()
		o.logger.Info("coaching skipped",
			zap.String("email", req.Email),
			zap.String("week_id", req.WeekID),
			zap.String("pattern", string(pattern.Primary)))
		return &base, nil
	}

	snapRecords := inRange(all, window.End.AddDate(0, 0, -(o.cfg.LookbackDays-1)), window.End)
	snapshot := analysis.DeriveSnapshot(snapRecords)
	progression := analysis.ClassifyProgression(windowRecords, prevRecords)
	scoped := scope.Apply(
		snapshot,
		analysis.WeekOverWeekDeltas(windowRecords, prevRecords),
		analysis.AnalyzeDayOfWeek(snapRecords),
		collectNotes(windowRecords),
	)

	base.Progression = progression.Type
	base.DominantLimiter = snapshot.DominantLimiter

	input := PromptInput{
		Pattern:     pattern,
		Snapshot:    snapshot,
		Progression: progression,
		Scoped:      scoped,
	}

	var previousErrors []string
	var lastRaw string
	for attempt := 1; attempt <= o.cfg.MaxAttempts; attempt++ {
		attemptCtx := AttemptContext{AttemptNumber: attempt, PreviousErrors: previousErrors}

		coached, raw, problems, err := o.runAttempt(ctx, gen, input, attemptCtx)
		if err != nil {
			generationResults.WithLabelValues("error").Inc()
			return nil, err
		}
		lastRaw = raw

		if len(problems) == 0 {
			base.Status = StatusGenerated
			base.Coaching = &coached
			if err := o.store.SaveWeeklySummary(ctx, req.Email, base); err != nil {
				generationResults.WithLabelValues("error").Inc()
				return nil, fmt.Errorf("persist generated summary: %w", err)
			}
			generationResults.WithLabelValues("generated").Inc()
			o.logger.Info("coaching generated",
				zap.String("email", req.Email),
				zap.String("week_id", req.WeekID),
				zap.String("pattern", string(pattern.Primary)),
				zap.Int("attempts", attempt))
			return &base, nil
		}

		o.logger.Warn("generation attempt rejected",
			zap.String("email", req.Email),
			zap.Int("attempt", attempt),
			zap.Strings("problems", problems))
		previousErrors = problems
	}

	// All attempts exhausted: keep the last raw output for audit.
	base.Status = StatusRejected
	base.RejectionReason = strings.Join(previousErrors, "; ")
	base.RawOutput = lastRaw
	if err := o.store.SaveWeeklySummary(ctx, req.Email, base); err != nil {
		generationResults.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("persist rejected summary: %w", err)
	}
	generationResults.WithLabelValues("rejected").Inc()
	return &base, &RejectedError{Summary: &base, ValidationErrors: previousErrors}
}

// runAttempt performs one generation attempt. problems are recoverable
// validation failures that feed the next attempt's prompt; err is an
// infrastructure failure that aborts the run.
func (o *Orchestrator) runAttempt(
	ctx context.Context,
	gen generator.Generator,
	input PromptInput,
	attempt AttemptContext,
) (Coaching, string, []string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, o.cfg.AttemptTimeout)
	defer cancel()

	raw, err := gen.Generate(attemptCtx, BuildSystemPrompt(), BuildUserMessage(input, attempt), o.cfg.Model)
	if err != nil {
		generationAttempts.WithLabelValues("generator_error").Inc()
		return Coaching{}, "", nil, fmt.Errorf("generate attempt %d: %w", attempt.AttemptNumber, err)
	}

	coached, err := ParseCoaching(raw)
	if err != nil {
		generationAttempts.WithLabelValues("content_violation").Inc()
		return Coaching{}, raw, []string{fmt.Sprintf("output was not a valid coaching document: %v", err)}, nil
	}

	fullText := coached.Headline + "\n" + coached.Observation + "\n" + coached.Guidance

	if violations := o.enforcer.Check(input.Pattern.Primary, fullText); len(violations) > 0 {
		generationAttempts.WithLabelValues("language_violation").Inc()
		problems := make([]string, len(violations))
		for i, v := range violations {
			problems[i] = v.Error()
		}
		return Coaching{}, raw, problems, nil
	}

	if problems := ValidateContent(coached, input.Pattern, input.Scoped); len(problems) > 0 {
		generationAttempts.WithLabelValues("content_violation").Inc()
		return Coaching{}, raw, problems, nil
	}

	if drifted := language.CheckDrift(input.Scoped.DominantLimiter, fullText); len(drifted) > 0 {
		generationAttempts.WithLabelValues("topic_drift").Inc()
		return Coaching{}, raw, []string{
			fmt.Sprintf("text drifted onto unscoped topics: %s", strings.Join(drifted, ", ")),
		}, nil
	}

	generationAttempts.WithLabelValues("success").Inc()
	return coached, raw, nil, nil
}

func hasRealOn(records []checkin.DailyRecord, day time.Time) bool {
	for _, r := range records {
		if r.IsReal() && r.Date.Equal(day) {
			return true
		}
	}
	return false
}

func inRange(records []checkin.DailyRecord, start, end time.Time) []checkin.DailyRecord {
	var out []checkin.DailyRecord
	for _, r := range records {
		if !r.Date.Before(start) && !r.Date.After(end) {
			out = append(out, r)
		}
	}
	return checkin.SortedByDate(out)
}

func collectNotes(records []checkin.DailyRecord) []string {
	var notes []string
	for _, r := range records {
		if r.Notes != "" {
			notes = append(notes, r.Notes)
		}
	}
	return notes
}
