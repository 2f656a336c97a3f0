// Package catalog holds the static reference data the CDSS core evaluates
// against: the guideline rule catalog and the drug interaction/dosing
// catalog. Catalogs are built once, are read-only afterwards, and may be
// shared freely across concurrent evaluations.
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/cdss-core/internal/domain"
)

// PredicateFunc decides whether a rule applies to a snapshot. Returning an
// error marks the rule as failed for this evaluation without affecting the
// other rules.
type PredicateFunc func(*domain.PatientSnapshot) (bool, error)

// AlertFunc renders the alert content of a fired rule against the snapshot.
type AlertFunc func(*domain.PatientSnapshot) domain.AlertContent

// Rule is one guideline-derived catalog entry: a tagged data record plus its
// predicate/alert pair. Rule IDs are stable across catalog versions so that
// caller-side dismissed state stays valid.
type Rule struct {
	ID              string
	Name            string
	Description     string
	Category        string
	Module          domain.Module // empty means the rule applies everywhere
	GuidelineSource string
	Priority        int
	Active          bool
	Predicate       PredicateFunc
	Alert           AlertFunc
}

// Summary strips the executable parts for listing.
func (r Rule) Summary() domain.RuleSummary {
	return domain.RuleSummary{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Category:        r.Category,
		Module:          r.Module,
		Priority:        r.Priority,
		GuidelineSource: r.GuidelineSource,
		Active:          r.Active,
	}
}

// AppliesTo reports whether the rule participates in an evaluation filtered
// by the given module. Rules without a module apply to every filter.
func (r Rule) AppliesTo(module domain.Module) bool {
	return r.Module == "" || module == "" || r.Module == module
}

// RuleCatalog is an insertion-ordered, read-only collection of rules.
// Insertion order is significant: it breaks priority ties during result
// ordering, so two catalogs built from the same registrations always
// evaluate identically.
type RuleCatalog struct {
	rules []Rule
	index map[string]int
}

// NewRuleCatalog creates an empty catalog.
func NewRuleCatalog() *RuleCatalog {
	return &RuleCatalog{index: make(map[string]int)}
}

// Register adds a rule to the catalog. IDs must be unique and non-empty,
// and both functions must be present. Register is for construction time
// only; once the catalog is handed to an engine it must not change.
func (c *RuleCatalog) Register(rule Rule) error {
	if strings.TrimSpace(rule.ID) == "" {
		return domain.NewValidationError("rule_id", "rule ID must not be empty", rule.ID)
	}
	if rule.Predicate == nil {
		return domain.NewValidationError("predicate", "rule predicate must not be nil", rule.ID)
	}
	if rule.Alert == nil {
		return domain.NewValidationError("alert", "rule alert producer must not be nil", rule.ID)
	}
	if rule.Module != "" && !rule.Module.IsValid() {
		return domain.NewValidationError("module",
			fmt.Sprintf("unknown module %q", rule.Module), rule.ID)
	}
	if _, exists := c.index[rule.ID]; exists {
		return domain.NewValidationError("rule_id", "duplicate rule ID", rule.ID)
	}

	c.index[rule.ID] = len(c.rules)
	c.rules = append(c.rules, rule)
	return nil
}

// Get returns the rule with the given ID.
func (c *RuleCatalog) Get(id string) (Rule, bool) {
	i, ok := c.index[id]
	if !ok {
		return Rule{}, false
	}
	return c.rules[i], true
}

// Rules returns the catalog entries in insertion order. The returned slice
// is a copy; the catalog itself stays immutable.
func (c *RuleCatalog) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// RulesForModule returns the entries participating in an evaluation
// filtered by the given module (empty = no filter), in insertion order.
func (c *RuleCatalog) RulesForModule(module domain.Module) []Rule {
	out := make([]Rule, 0, len(c.rules))
	for _, r := range c.rules {
		if r.AppliesTo(module) {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of registered rules, active or not.
func (c *RuleCatalog) Len() int {
	return len(c.rules)
}

// Version is a content fingerprint over rule identity, activation and
// priority. Two catalogs with the same version evaluate identically, which
// makes the version safe to embed in result cache keys.
func (c *RuleCatalog) Version() string {
	var b strings.Builder
	for _, r := range c.rules {
		fmt.Fprintf(&b, "%s|%t|%d|%s\n", r.ID, r.Active, r.Priority, r.Module)
	}
	return shortHash(b.String())
}

// shortHash is the catalog fingerprint primitive shared by both catalogs.
func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:16]
}

// WithDisabled returns a copy of the catalog with the given rule IDs marked
// inactive. Unknown IDs are ignored. Used at construction time to apply
// configuration without mutating a shared catalog.
func (c *RuleCatalog) WithDisabled(ids []string) *RuleCatalog {
	disabled := make(map[string]bool, len(ids))
	for _, id := range ids {
		disabled[id] = true
	}

	out := NewRuleCatalog()
	for _, r := range c.rules {
		if disabled[r.ID] {
			r.Active = false
		}
		// Register cannot fail here: the source catalog already validated.
		_ = out.Register(r)
	}
	return out
}
