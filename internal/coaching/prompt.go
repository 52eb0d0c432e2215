package coaching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fyrsmithlabs/coachd/internal/analysis"
	"github.com/fyrsmithlabs/coachd/internal/checkin"
	"github.com/fyrsmithlabs/coachd/internal/scope"
)

// AttemptContext carries the retry state into prompt construction. It is
// immutable: each attempt gets a fresh value so prompts stay reproducible.
type AttemptContext struct {
	AttemptNumber  int
	PreviousErrors []string
}

// PromptInput is everything the prompt builder may draw on. All numeric
// material has already passed through the scoper.
type PromptInput struct {
	Pattern     analysis.WeeklyPattern
	Snapshot    analysis.ConstraintSnapshot
	Progression analysis.ProgressionResult
	Scoped      scope.Scoped
}

// BuildSystemPrompt returns the fixed generation contract. The contract is
// deliberately strict: JSON only, scoped behavior only, no invented numbers
// and no cross-behavior causal claims.
func BuildSystemPrompt() string {
	return `You are a weekly habit coach writing one short check-in summary.

You MUST:
- output ONLY a single valid JSON object with exactly these keys:
  "headline", "observation", "guidance", "focus_behavior"
- keep the headline under 120 characters
- keep observation and guidance under 600 characters each
- write only about the constraint behavior named in the input
- use only numbers that appear verbatim in the input

You MUST NOT:
- claim one behavior caused changes in another behavior
- mention behaviors outside the constraint except with the exact
  qualitative word supplied for them
- invent statistics, streaks, or trends not present in the input
- output any text before or after the JSON object`
}

// BuildUserMessage assembles the scoped data and any corrective
// instructions from earlier failed attempts.
func BuildUserMessage(in PromptInput, attempt AttemptContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Week %s, pattern: %s\n", in.Pattern.WeekID, in.Pattern.Primary)
	b.WriteString("Evidence:\n")
	for _, ev := range in.Pattern.Evidence {
		fmt.Fprintf(&b, "- %s\n", ev)
	}

	fmt.Fprintf(&b, "\nCurrent posture: time capacity %s, recovery margin %s, phase %s\n",
		in.Snapshot.TimeCapacity, in.Snapshot.RecoveryMargin, in.Snapshot.PhaseSignal)
	fmt.Fprintf(&b, "Forward directive: %s (%s)\n", in.Progression.Type, in.Progression.Reason)

	if len(in.Scoped.ConstraintBehaviors) > 0 {
		fmt.Fprintf(&b, "Constraint behavior: %s\n", in.Scoped.ConstraintBehaviors[0])
	}
	b.WriteString("\nConstraint detail:\n")
	for _, d := range in.Scoped.ConstraintDetail {
		fmt.Fprintf(&b, "- %s: average %.0f%%", d.Behavior, d.Average)
		if d.WeekDelta != nil {
			fmt.Fprintf(&b, ", %+.0f vs last week", *d.WeekDelta)
		}
		if d.DayPattern != nil && d.DayPattern.Pattern != "consistent" {
			fmt.Fprintf(&b, ", %s", d.DayPattern.Pattern)
		}
		b.WriteString("\n")
	}

	if len(in.Scoped.BackgroundSummary) > 0 {
		b.WriteString("\nOther behaviors (qualitative only, repeat these words verbatim if mentioned):\n")
		for _, behavior := range sortedBehaviors(in.Scoped.BackgroundSummary) {
			fmt.Fprintf(&b, "- %s: %s\n", behavior, in.Scoped.BackgroundSummary[behavior])
		}
	}

	if len(in.Scoped.FilteredNotes) > 0 {
		b.WriteString("\nUser notes:\n")
		for _, note := range in.Scoped.FilteredNotes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}

	if len(attempt.PreviousErrors) > 0 {
		fmt.Fprintf(&b, "\nAttempt %d. Your previous output was rejected. Fix these problems:\n", attempt.AttemptNumber)
		for _, e := range attempt.PreviousErrors {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}

	return b.String()
}

// sortedBehaviors returns map keys in stable order for deterministic
// prompt output.
func sortedBehaviors(m map[checkin.Behavior]string) []checkin.Behavior {
	keys := make([]checkin.Behavior, 0, len(m))
	for b := range m {
		keys = append(keys, b)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
