package generator

import (
	"context"
	"fmt"
	"regexp"
)

// FixtureGenerator returns canned output for offline development and
// fixture-mode requests. Output is deterministic for a given prompt and is
// wrapped in a code fence on purpose: downstream parsing must tolerate it.
type FixtureGenerator struct{}

// NewFixtureGenerator creates the canned-output generator.
func NewFixtureGenerator() *FixtureGenerator {
	return &FixtureGenerator{}
}

func (g *FixtureGenerator) ModelVersion() string {
	return "fixture"
}

var focusBehaviorLine = regexp.MustCompile(`(?m)^Constraint behavior: (\S+)`)

// Generate echoes a valid coaching document focused on the behavior named
// in the user message.
func (g *FixtureGenerator) Generate(_ context.Context, _ string, userMessage string, _ ModelConfig) (string, error) {
	focus := "sleep"
	if m := focusBehaviorLine.FindStringSubmatch(userMessage); m != nil {
		focus = m[1]
	}

	return fmt.Sprintf("```json\n"+
		`{"headline":"A steady week with one clear place to look",`+
		`"observation":"The area that stood out this week was %s. The numbers in your check-ins point there before anywhere else.",`+
		`"guidance":"Keep everything else as it is and give %s one small, concrete change for the next seven days.",`+
		`"focus_behavior":"%s"}`+
		"\n```", focus, focus, focus), nil
}

var _ Generator = (*FixtureGenerator)(nil)
