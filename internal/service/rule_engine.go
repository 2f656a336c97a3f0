// Package service implements the CDSS evaluation core: the guideline rule
// engine, the drug interaction checker, and the facade tying them to the
// catalogs.
package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cdss-core/internal/catalog"
	"github.com/cdss-core/internal/domain"
)

// RuleEngine evaluates a rule catalog against patient snapshots. The engine
// has no state beyond the injected read-only catalog and logger, so one
// engine may serve any number of concurrent evaluations.
type RuleEngine struct {
	logger *logrus.Logger
	rules  *catalog.RuleCatalog
}

// NewRuleEngine creates a rule engine over the given catalog.
func NewRuleEngine(logger *logrus.Logger, rules *catalog.RuleCatalog) *RuleEngine {
	return &RuleEngine{logger: logger, rules: rules}
}

// Evaluate runs every active rule against the snapshot.
func (e *RuleEngine) Evaluate(snapshot *domain.PatientSnapshot) (*domain.EvaluationResult, error) {
	return e.evaluate(snapshot, "")
}

// EvaluateModule runs the active rules of one clinical module (plus the
// global rules) against the snapshot. The module name is validated before
// any rule runs.
func (e *RuleEngine) EvaluateModule(snapshot *domain.PatientSnapshot, module domain.Module) (*domain.EvaluationResult, error) {
	if !module.IsValid() {
		return nil, domain.NewValidationError("module",
			fmt.Sprintf("unknown module %q, allowed values: %v", module, domain.AllModules), module.String())
	}
	return e.evaluate(snapshot, module)
}

func (e *RuleEngine) evaluate(snapshot *domain.PatientSnapshot, module domain.Module) (*domain.EvaluationResult, error) {
	if snapshot == nil {
		return nil, domain.NewValidationError("snapshot", "snapshot must not be nil", nil)
	}

	start := time.Now()

	rules := e.rules.RulesForModule(module)
	findings := make([]domain.Finding, 0, len(rules))
	seen := make(map[string]bool, len(rules))
	var failed []string
	evaluated := 0

	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		evaluated++

		applies, err := e.applyRule(rule, snapshot)
		if err != nil {
			evalErr := domain.NewRuleEvaluationError(rule.ID, err)
			e.logger.WithError(evalErr).WithField("rule_id", rule.ID).Warn("Rule evaluation failed")
			failed = append(failed, rule.ID)
			continue
		}
		if !applies || seen[rule.ID] {
			continue
		}
		seen[rule.ID] = true

		alert := rule.Alert(snapshot)
		findings = append(findings, domain.Finding{
			RuleID:            rule.ID,
			Title:             alert.Title,
			Description:       alert.Description,
			RecommendedAction: alert.RecommendedAction,
			Category:          rule.Category,
			Module:            rule.Module,
			Priority:          rule.Priority,
			GuidelineSource:   rule.GuidelineSource,
		})
	}

	// Priority descending; the stable sort keeps catalog insertion order
	// for ties, which makes the output fully deterministic.
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Priority > findings[j].Priority
	})

	result := &domain.EvaluationResult{
		Module:         module,
		Findings:       findings,
		FailedRuleIDs:  failed,
		RulesEvaluated: evaluated,
		Duration:       time.Since(start),
	}

	e.logger.WithFields(logrus.Fields{
		"module":          module.String(),
		"rules_evaluated": evaluated,
		"findings":        len(findings),
		"failed_rules":    len(failed),
	}).Debug("Completed rule evaluation")

	return result, nil
}

// applyRule runs one predicate, converting a panic inside the predicate
// into a per-rule failure so one bad rule cannot blind the rest.
func (e *RuleEngine) applyRule(rule catalog.Rule, snapshot *domain.PatientSnapshot) (applies bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			applies = false
			err = fmt.Errorf("predicate panicked: %v", r)
		}
	}()
	return rule.Predicate(snapshot)
}

// ListRules summarizes the catalog entries, optionally filtered by module
// (empty module means no filter). Inactive rules are included so callers
// can inspect the full catalog.
func (e *RuleEngine) ListRules(module domain.Module) ([]domain.RuleSummary, error) {
	if module != "" && !module.IsValid() {
		return nil, domain.NewValidationError("module",
			fmt.Sprintf("unknown module %q, allowed values: %v", module, domain.AllModules), module.String())
	}

	rules := e.rules.RulesForModule(module)
	summaries := make([]domain.RuleSummary, 0, len(rules))
	for _, r := range rules {
		summaries = append(summaries, r.Summary())
	}
	return summaries, nil
}

// ActiveRuleCount counts active rules, overall and per category, optionally
// filtered by module.
func (e *RuleEngine) ActiveRuleCount(module domain.Module) (*domain.RuleCount, error) {
	if module != "" && !module.IsValid() {
		return nil, domain.NewValidationError("module",
			fmt.Sprintf("unknown module %q, allowed values: %v", module, domain.AllModules), module.String())
	}

	count := &domain.RuleCount{ByCategory: make(map[string]int)}
	for _, r := range e.rules.RulesForModule(module) {
		if !r.Active {
			continue
		}
		count.Total++
		count.ByCategory[r.Category]++
	}
	return count, nil
}
