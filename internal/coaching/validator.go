package coaching

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/fyrsmithlabs/coachd/internal/analysis"
	"github.com/fyrsmithlabs/coachd/internal/checkin"
	"github.com/fyrsmithlabs/coachd/internal/scope"
)

// Content limits for generated sections.
const (
	maxHeadlineLen = 120
	maxSectionLen  = 600
)

// ParseCoaching extracts the coaching document from raw generator output.
// Output is untrusted: surrounding code fences and stray prose around the
// JSON object are tolerated, everything else is rejected.
func ParseCoaching(raw string) (Coaching, error) {
	var c Coaching

	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	// Narrow to the outermost object in case the model added prose.
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return c, fmt.Errorf("output contains no JSON object")
	}

	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &c); err != nil {
		return c, fmt.Errorf("parse coaching JSON: %w", err)
	}
	return c, nil
}

// contentRule is one named check against the parsed document. Rules are
// data: adding a pattern-specific rule never touches the validation loop.
type contentRule struct {
	name  string
	check func(Coaching) string // empty string means pass
}

var baseContentRules = []contentRule{
	{
		name: "headline required",
		check: func(c Coaching) string {
			if strings.TrimSpace(c.Headline) == "" {
				return "headline is empty"
			}
			return ""
		},
	},
	{
		name: "observation required",
		check: func(c Coaching) string {
			if strings.TrimSpace(c.Observation) == "" {
				return "observation is empty"
			}
			return ""
		},
	},
	{
		name: "guidance required",
		check: func(c Coaching) string {
			if strings.TrimSpace(c.Guidance) == "" {
				return "guidance is empty"
			}
			return ""
		},
	},
	{
		name: "headline length",
		check: func(c Coaching) string {
			if len(c.Headline) > maxHeadlineLen {
				return fmt.Sprintf("headline exceeds %d characters", maxHeadlineLen)
			}
			return ""
		},
	},
	{
		name: "section length",
		check: func(c Coaching) string {
			if len(c.Observation) > maxSectionLen || len(c.Guidance) > maxSectionLen {
				return fmt.Sprintf("observation and guidance must each stay under %d characters", maxSectionLen)
			}
			return ""
		},
	},
}

// patternContentRules extends validation per pattern type.
var patternContentRules = map[analysis.PatternType][]contentRule{
	analysis.PatternGapDisruption: {
		{
			name: "no perfection demands after gaps",
			check: func(c Coaching) string {
				lower := strings.ToLower(c.Guidance)
				if strings.Contains(lower, "every day") || strings.Contains(lower, "every single day") {
					return "guidance must not demand daily perfection after a gap week"
				}
				return ""
			},
		},
	},
	analysis.PatternRecoveryDeficit: {
		{
			name: "no added load during deficit",
			check: func(c Coaching) string {
				lower := strings.ToLower(c.Guidance)
				if strings.Contains(lower, "add ") || strings.Contains(lower, "increase ") {
					return "guidance must not add load during a recovery deficit"
				}
				return ""
			},
		},
	},
}

var digitRun = regexp.MustCompile(`\d+`)

// ValidateContent runs the schema and content rules for the detected
// pattern. The numeric whitelist is the core anti-fabrication rule: every
// number in the generated text must appear somewhere in the scoped input.
func ValidateContent(c Coaching, pattern analysis.WeeklyPattern, scoped scope.Scoped) []string {
	var problems []string

	rules := append(append([]contentRule{}, baseContentRules...), patternContentRules[pattern.Primary]...)
	for _, rule := range rules {
		if msg := rule.check(c); msg != "" {
			problems = append(problems, msg)
		}
	}

	if msg := checkFocusBehavior(c, scoped); msg != "" {
		problems = append(problems, msg)
	}
	problems = append(problems, checkNumericWhitelist(c, pattern, scoped)...)

	return problems
}

func checkFocusBehavior(c Coaching, scoped scope.Scoped) string {
	if c.FocusBehavior == "" {
		return "focus_behavior is empty"
	}
	for _, b := range scoped.ConstraintBehaviors {
		if checkin.Behavior(c.FocusBehavior) == b {
			return ""
		}
	}
	return fmt.Sprintf("focus_behavior %q is outside the constraint scope", c.FocusBehavior)
}

// checkNumericWhitelist collects every number the prompt legitimately
// supplied and flags any other digits in the generated text.
func checkNumericWhitelist(c Coaching, pattern analysis.WeeklyPattern, scoped scope.Scoped) []string {
	allowed := make(map[string]bool)
	addNumbers := func(text string) {
		for _, n := range digitRun.FindAllString(text, -1) {
			allowed[n] = true
		}
	}
	for _, ev := range pattern.Evidence {
		addNumbers(ev)
	}
	for _, d := range scoped.ConstraintDetail {
		addNumbers(fmt.Sprintf("%.0f", d.Average))
		if d.WeekDelta != nil {
			addNumbers(fmt.Sprintf("%.0f", *d.WeekDelta))
		}
		if d.DayPattern != nil {
			addNumbers(fmt.Sprintf("%.0f %.0f %.0f %.0f",
				d.DayPattern.WeekdayAvg, d.DayPattern.WeekendAvg,
				d.DayPattern.BestDayAvg, d.DayPattern.WorstDayAvg))
		}
	}
	for _, note := range scoped.FilteredNotes {
		addNumbers(note)
	}
	// Small day counts are always legitimate ("the last 7 days").
	for d := 0; d <= 7; d++ {
		allowed[fmt.Sprintf("%d", d)] = true
	}

	var problems []string
	for _, section := range []string{c.Headline, c.Observation, c.Guidance} {
		for _, n := range digitRun.FindAllString(section, -1) {
			if !allowed[n] {
				problems = append(problems, fmt.Sprintf("number %q does not appear in the supplied data", n))
			}
		}
	}
	return problems
}
