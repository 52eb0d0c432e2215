package coaching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fyrsmithlabs/coachd/internal/analysis"
	"github.com/fyrsmithlabs/coachd/internal/checkin"
)

func promptInput() PromptInput {
	return PromptInput{
		Pattern: plateauPattern(),
		Snapshot: analysis.ConstraintSnapshot{
			TimeCapacity:    analysis.TimeCapacityModerate,
			RecoveryMargin:  analysis.RecoveryTight,
			PhaseSignal:     analysis.PhaseHolding,
			DominantLimiter: analysis.LimiterRecovery,
		},
		Progression: analysis.ProgressionResult{
			Type:   analysis.ProgressionStabilize,
			Reason: "exercise jumped from 3 to 5 days",
		},
		Scoped: sleepScope(),
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := BuildSystemPrompt()

	for _, key := range []string{"headline", "observation", "guidance", "focus_behavior"} {
		assert.Contains(t, prompt, key)
	}
	assert.Contains(t, prompt, "MUST NOT")
}

func TestBuildUserMessage(t *testing.T) {
	msg := BuildUserMessage(promptInput(), AttemptContext{AttemptNumber: 1})

	assert.Contains(t, msg, "pattern: momentum_plateau")
	assert.Contains(t, msg, "Momentum holding at 70%")
	assert.Contains(t, msg, "Constraint behavior: sleep")
	assert.Contains(t, msg, "sleep: average 82%")
	assert.Contains(t, msg, "Forward directive: stabilize (exercise jumped from 3 to 5 days)")
	assert.NotContains(t, msg, "previous output was rejected")
}

func TestBuildUserMessageCarriesRetryFeedback(t *testing.T) {
	msg := BuildUserMessage(promptInput(), AttemptContext{
		AttemptNumber:  2,
		PreviousErrors: []string{`banned phrase "journey": use "week" instead`},
	})

	assert.Contains(t, msg, "Attempt 2. Your previous output was rejected.")
	assert.Contains(t, msg, `banned phrase "journey"`)
}

func TestBuildUserMessageIsDeterministic(t *testing.T) {
	in := promptInput()
	in.Scoped.BackgroundSummary = map[checkin.Behavior]string{
		checkin.BehaviorProtein:   "adequate",
		checkin.BehaviorMovement:  "variable",
		checkin.BehaviorHydration: "strong",
	}

	a := BuildUserMessage(in, AttemptContext{AttemptNumber: 1})
	for i := 0; i < 10; i++ {
		assert.Equal(t, a, BuildUserMessage(in, AttemptContext{AttemptNumber: 1}))
	}
}
