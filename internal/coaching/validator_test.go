package coaching

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyrsmithlabs/coachd/internal/analysis"
	"github.com/fyrsmithlabs/coachd/internal/checkin"
	"github.com/fyrsmithlabs/coachd/internal/scope"
)

func validCoaching() Coaching {
	return Coaching{
		Headline:      "Sleep held steady at 82%",
		Observation:   "Sleep averaged 82% across the week.",
		Guidance:      "Keep the same wind-down routine for the next 7 days.",
		FocusBehavior: "sleep",
	}
}

func sleepScope() scope.Scoped {
	return scope.Scoped{
		DominantLimiter:     analysis.LimiterRecovery,
		ConstraintBehaviors: []checkin.Behavior{checkin.BehaviorSleep, checkin.BehaviorMindset},
		ConstraintDetail: []scope.BehaviorDetail{
			{Behavior: checkin.BehaviorSleep, Average: 82},
			{Behavior: checkin.BehaviorMindset, Average: 64},
		},
	}
}

func plateauPattern() analysis.WeeklyPattern {
	return analysis.WeeklyPattern{
		Primary:  analysis.PatternMomentumPlateau,
		CanCoach: true,
		Evidence: []string{"Momentum holding at 70%"},
	}
}

func TestParseCoaching(t *testing.T) {
	want := validCoaching()

	t.Run("bare JSON", func(t *testing.T) {
		got, err := ParseCoaching(`{"headline":"Sleep held steady at 82%","observation":"Sleep averaged 82% across the week.","guidance":"Keep the same wind-down routine for the next 7 days.","focus_behavior":"sleep"}`)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("fenced JSON", func(t *testing.T) {
		got, err := ParseCoaching("```json\n{\"headline\":\"h\",\"observation\":\"o\",\"guidance\":\"g\",\"focus_behavior\":\"sleep\"}\n```")
		require.NoError(t, err)
		assert.Equal(t, "h", got.Headline)
	})

	t.Run("prose around the object", func(t *testing.T) {
		got, err := ParseCoaching("Here is your summary:\n{\"headline\":\"h\",\"observation\":\"o\",\"guidance\":\"g\",\"focus_behavior\":\"sleep\"}\nHope that helps!")
		require.NoError(t, err)
		assert.Equal(t, "h", got.Headline)
	})

	t.Run("no JSON object", func(t *testing.T) {
		_, err := ParseCoaching("I could not produce a summary this week.")
		assert.Error(t, err)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := ParseCoaching(`{"headline": unquoted}`)
		assert.Error(t, err)
	})
}

func TestValidateContent(t *testing.T) {
	t.Run("valid document passes", func(t *testing.T) {
		assert.Empty(t, ValidateContent(validCoaching(), plateauPattern(), sleepScope()))
	})

	t.Run("missing sections", func(t *testing.T) {
		c := validCoaching()
		c.Observation = "   "
		c.Guidance = ""
		problems := ValidateContent(c, plateauPattern(), sleepScope())
		assert.Contains(t, problems, "observation is empty")
		assert.Contains(t, problems, "guidance is empty")
	})

	t.Run("headline too long", func(t *testing.T) {
		c := validCoaching()
		c.Headline = strings.Repeat("x", maxHeadlineLen+1)
		problems := ValidateContent(c, plateauPattern(), sleepScope())
		assert.Contains(t, problems, "headline exceeds 120 characters")
	})

	t.Run("focus behavior outside the constraint", func(t *testing.T) {
		c := validCoaching()
		c.FocusBehavior = "protein"
		problems := ValidateContent(c, plateauPattern(), sleepScope())
		assert.Contains(t, problems, `focus_behavior "protein" is outside the constraint scope`)
	})

	t.Run("fabricated number is rejected", func(t *testing.T) {
		c := validCoaching()
		c.Observation = "Sleep improved 23% over last month."
		problems := ValidateContent(c, plateauPattern(), sleepScope())
		require.Len(t, problems, 1)
		assert.Contains(t, problems[0], `number "23"`)
	})

	t.Run("numbers from the supplied data pass", func(t *testing.T) {
		c := validCoaching()
		c.Observation = "Momentum held at 70% while sleep averaged 82%."
		assert.Empty(t, ValidateContent(c, plateauPattern(), sleepScope()))
	})

	t.Run("small day counts always pass", func(t *testing.T) {
		c := validCoaching()
		c.Guidance = "Pick 1 change and hold it for 7 days."
		assert.Empty(t, ValidateContent(c, plateauPattern(), sleepScope()))
	})

	t.Run("no perfection demands after a gap week", func(t *testing.T) {
		pattern := plateauPattern()
		pattern.Primary = analysis.PatternGapDisruption
		c := validCoaching()
		c.Guidance = "Log your sleep every single day without fail."
		problems := ValidateContent(c, pattern, sleepScope())
		assert.Contains(t, problems, "guidance must not demand daily perfection after a gap week")
	})

	t.Run("no added load during a recovery deficit", func(t *testing.T) {
		pattern := plateauPattern()
		pattern.Primary = analysis.PatternRecoveryDeficit
		c := validCoaching()
		c.Guidance = "Increase your training volume next week."
		problems := ValidateContent(c, pattern, sleepScope())
		assert.Contains(t, problems, "guidance must not add load during a recovery deficit")
	})
}
