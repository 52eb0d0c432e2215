// Package language enforces lexical rules on generated coaching text.
//
// The enforcement algorithm is a plain substring scan; everything specific
// to a pattern lives in the rule table, which is data. Tables ship with
// built-in defaults and can be extended from a YAML file at runtime without
// touching the scan logic.
package language

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/fyrsmithlabs/coachd/internal/analysis"
)

// Rule bans one phrase and names the approved alternative a retry prompt
// should steer the generator toward.
type Rule struct {
	Phrase   string `yaml:"phrase"`
	Approved string `yaml:"approved"`
}

// RuleTable holds the banned-phrase rules: a base list applied to every
// pattern plus per-pattern extensions.
type RuleTable struct {
	Base     []Rule            `yaml:"base"`
	Patterns map[string][]Rule `yaml:"patterns"`
}

// defaultTable is the built-in rule set. The base list targets abstract
// coach-speak and the causal connectors that let generated text invent
// cross-behavior narratives.
func defaultTable() RuleTable {
	return RuleTable{
		Base: []Rule{
			{Phrase: "holistic", Approved: "specific"},
			{Phrase: "journey", Approved: "week"},
			{Phrase: "synergy", Approved: "overlap"},
			{Phrase: "unlock your potential", Approved: "build on this week"},
			{Phrase: "game changer", Approved: "useful change"},
			{Phrase: "wellness ecosystem", Approved: "daily habits"},
			{Phrase: "because your", Approved: "alongside"},
			{Phrase: "which caused", Approved: "at the same time as"},
			{Phrase: "this led to", Approved: "this happened alongside"},
			{Phrase: "as a result of your", Approved: "during the same stretch"},
			{Phrase: "ripple effect", Approved: "pattern"},
		},
		Patterns: map[string][]Rule{
			string(analysis.PatternCommitmentMisaligned): {
				{Phrase: "try harder", Approved: "adjust the plan"},
				{Phrase: "no excuses", Approved: "worth a closer look"},
			},
			string(analysis.PatternRecoveryDeficit): {
				{Phrase: "push through", Approved: "back off"},
				{Phrase: "grind", Approved: "steady work"},
				{Phrase: "hustle", Approved: "effort"},
			},
			string(analysis.PatternGapDisruption): {
				{Phrase: "streak", Approved: "recent days"},
				{Phrase: "never miss", Approved: "pick back up"},
			},
			string(analysis.PatternMomentumDecline): {
				{Phrase: "falling behind", Approved: "dipping"},
				{Phrase: "losing ground", Approved: "easing off"},
			},
		},
	}
}

// loadTableFile parses a YAML rule table and merges it over the defaults.
// File rules extend, not replace, the built-ins.
func loadTableFile(path string) (RuleTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return RuleTable{}, fmt.Errorf("read rules file: %w", err)
	}
	var override RuleTable
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return RuleTable{}, fmt.Errorf("parse rules file: %w", err)
	}

	table := defaultTable()
	table.Base = append(table.Base, override.Base...)
	for pattern, rules := range override.Patterns {
		if table.Patterns == nil {
			table.Patterns = make(map[string][]Rule)
		}
		table.Patterns[pattern] = append(table.Patterns[pattern], rules...)
	}
	return table, nil
}

// tableHolder guards the live rule table against concurrent reloads.
type tableHolder struct {
	mu    sync.RWMutex
	table RuleTable
}

func (h *tableHolder) get() RuleTable {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.table
}

func (h *tableHolder) set(t RuleTable) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.table = t
}
