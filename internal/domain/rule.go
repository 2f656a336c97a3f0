package domain

import "time"

// AlertContent is what a fired rule tells the clinician: the alert text and
// the recommended action, both fixed guideline language rendered against the
// snapshot.
type AlertContent struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	RecommendedAction string `json:"recommended_action,omitempty"`
}

// Finding is one fired rule for a given snapshot. Findings are deduplicated
// by rule ID and ordered by descending priority, catalog insertion order
// breaking ties.
type Finding struct {
	RuleID            string `json:"rule_id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	RecommendedAction string `json:"recommended_action,omitempty"`
	Category          string `json:"category"`
	Module            Module `json:"module,omitempty"`
	Priority          int    `json:"priority"`
	GuidelineSource   string `json:"guideline_source,omitempty"`
}

// EvaluationResult is the outcome of one catalog evaluation. FailedRuleIDs
// lists rules whose predicate failed; a partial failure never hides the
// findings from the rules that did evaluate.
type EvaluationResult struct {
	EvaluationID   string        `json:"evaluation_id"`
	Module         Module        `json:"module,omitempty"`
	Findings       []Finding     `json:"findings"`
	FailedRuleIDs  []string      `json:"failed_rules,omitempty"`
	RulesEvaluated int           `json:"rules_evaluated"`
	Duration       time.Duration `json:"duration"`
}

// RuleSummary describes a catalog entry without its executable parts, for
// listing and inspection.
type RuleSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Module          Module `json:"module,omitempty"`
	Priority        int    `json:"priority"`
	GuidelineSource string `json:"guideline_source,omitempty"`
	Active          bool   `json:"active"`
}

// RuleCount aggregates active rule counts, overall and per category.
type RuleCount struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"by_category"`
}
