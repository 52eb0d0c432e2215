package language

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/coachd/internal/analysis"
	"github.com/fyrsmithlabs/coachd/internal/scope"
)

// Violation is one banned phrase found in generated text.
type Violation struct {
	Phrase   string
	Approved string
}

// Error renders the violation as corrective instruction for a retry prompt.
func (v Violation) Error() string {
	return fmt.Sprintf("banned phrase %q: use %q instead", v.Phrase, v.Approved)
}

// Enforcer performs the lexical scan of generated text.
type Enforcer struct {
	holder *tableHolder
	logger *zap.Logger
}

// NewEnforcer builds an enforcer with the built-in rule table.
func NewEnforcer(logger *zap.Logger) *Enforcer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enforcer{
		holder: &tableHolder{table: defaultTable()},
		logger: logger,
	}
}

// LoadFile merges a YAML rule override file over the built-in table.
func (e *Enforcer) LoadFile(path string) error {
	table, err := loadTableFile(path)
	if err != nil {
		return err
	}
	e.holder.set(table)
	e.logger.Info("language rules loaded",
		zap.String("path", path),
		zap.Int("base_rules", len(table.Base)))
	return nil
}

// Check scans text against the base rules plus the pattern's extensions.
// Matching is case-insensitive substring search.
func (e *Enforcer) Check(pattern analysis.PatternType, text string) []Violation {
	table := e.holder.get()
	lower := strings.ToLower(text)

	var violations []Violation
	for _, rule := range table.Base {
		if strings.Contains(lower, strings.ToLower(rule.Phrase)) {
			violations = append(violations, Violation(rule))
		}
	}
	for _, rule := range table.Patterns[string(pattern)] {
		if strings.Contains(lower, strings.ToLower(rule.Phrase)) {
			violations = append(violations, Violation(rule))
		}
	}
	return violations
}

// CheckDrift reports banned topic words for the limiter that appear in the
// text: whole-word matches against the keyword lists of every topic outside
// the constraint.
func CheckDrift(limiter analysis.Limiter, text string) []string {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		words[w] = true
	}

	var found []string
	for _, kw := range scope.DriftKeywords(limiter) {
		if words[kw] {
			found = append(found, kw)
		}
	}
	return found
}
