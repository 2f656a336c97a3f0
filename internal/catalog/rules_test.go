package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdss-core/internal/domain"
)

func alwaysTrue(*domain.PatientSnapshot) (bool, error) { return true, nil }

func staticAlert(title string) AlertFunc {
	return func(*domain.PatientSnapshot) domain.AlertContent {
		return domain.AlertContent{Title: title}
	}
}

func testRule(id string, priority int) Rule {
	return Rule{
		ID:        id,
		Name:      id,
		Category:  "test",
		Priority:  priority,
		Active:    true,
		Predicate: alwaysTrue,
		Alert:     staticAlert(id),
	}
}

func TestRuleCatalogRegisterValidation(t *testing.T) {
	tests := []struct {
		name  string
		rule  Rule
		field string
	}{
		{"empty ID", Rule{Predicate: alwaysTrue, Alert: staticAlert("x")}, "rule_id"},
		{"blank ID", Rule{ID: "   ", Predicate: alwaysTrue, Alert: staticAlert("x")}, "rule_id"},
		{"nil predicate", Rule{ID: "R1", Alert: staticAlert("x")}, "predicate"},
		{"nil alert", Rule{ID: "R1", Predicate: alwaysTrue}, "alert"},
		{
			"unknown module",
			Rule{ID: "R1", Module: domain.Module("radiology"), Predicate: alwaysTrue, Alert: staticAlert("x")},
			"module",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewRuleCatalog()
			err := c.Register(tt.rule)
			require.Error(t, err)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestRuleCatalogRejectsDuplicateIDs(t *testing.T) {
	c := NewRuleCatalog()
	require.NoError(t, c.Register(testRule("R1", 10)))

	err := c.Register(testRule("R1", 20))
	require.Error(t, err)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "rule_id", vErr.Field)
	assert.Equal(t, 1, c.Len())
}

func TestRuleCatalogPreservesInsertionOrder(t *testing.T) {
	c := NewRuleCatalog()
	for _, id := range []string{"C", "A", "B"} {
		require.NoError(t, c.Register(testRule(id, 10)))
	}

	rules := c.Rules()
	require.Len(t, rules, 3)
	assert.Equal(t, "C", rules[0].ID)
	assert.Equal(t, "A", rules[1].ID)
	assert.Equal(t, "B", rules[2].ID)

	got, ok := c.Get("A")
	require.True(t, ok)
	assert.Equal(t, "A", got.ID)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestRuleAppliesTo(t *testing.T) {
	global := Rule{ID: "G"}
	dialysis := Rule{ID: "D", Module: domain.ModuleDialysis}

	assert.True(t, global.AppliesTo(""))
	assert.True(t, global.AppliesTo(domain.ModuleCardiology))
	assert.True(t, dialysis.AppliesTo(""))
	assert.True(t, dialysis.AppliesTo(domain.ModuleDialysis))
	assert.False(t, dialysis.AppliesTo(domain.ModuleCardiology))
}

func TestRulesForModule(t *testing.T) {
	c := NewRuleCatalog()

	global := testRule("GLOBAL", 10)
	cardio := testRule("CARDIO", 10)
	cardio.Module = domain.ModuleCardiology
	dial := testRule("DIAL", 10)
	dial.Module = domain.ModuleDialysis

	require.NoError(t, c.Register(global))
	require.NoError(t, c.Register(cardio))
	require.NoError(t, c.Register(dial))

	all := c.RulesForModule("")
	assert.Len(t, all, 3)

	forCardio := c.RulesForModule(domain.ModuleCardiology)
	require.Len(t, forCardio, 2)
	assert.Equal(t, "GLOBAL", forCardio[0].ID)
	assert.Equal(t, "CARDIO", forCardio[1].ID)
}

func TestWithDisabledLeavesSourceUntouched(t *testing.T) {
	c := NewRuleCatalog()
	require.NoError(t, c.Register(testRule("R1", 10)))
	require.NoError(t, c.Register(testRule("R2", 20)))

	clone := c.WithDisabled([]string{"R1", "unknown-id"})

	disabled, ok := clone.Get("R1")
	require.True(t, ok)
	assert.False(t, disabled.Active)

	kept, ok := clone.Get("R2")
	require.True(t, ok)
	assert.True(t, kept.Active)

	original, ok := c.Get("R1")
	require.True(t, ok)
	assert.True(t, original.Active)
}

func TestRuleCatalogVersion(t *testing.T) {
	build := func() *RuleCatalog {
		c := NewRuleCatalog()
		_ = c.Register(testRule("R1", 10))
		_ = c.Register(testRule("R2", 20))
		return c
	}

	a, b := build(), build()
	assert.Equal(t, a.Version(), b.Version(), "same registrations must fingerprint identically")

	disabled := a.WithDisabled([]string{"R2"})
	assert.NotEqual(t, a.Version(), disabled.Version(), "activation changes must change the fingerprint")
}

func TestDefaultRuleCatalog(t *testing.T) {
	c := DefaultRuleCatalog()
	assert.Equal(t, 24, c.Len())

	seen := map[string]bool{}
	for _, r := range c.Rules() {
		assert.False(t, seen[r.ID], "duplicate rule ID %s", r.ID)
		seen[r.ID] = true

		assert.True(t, r.Active, "default rules ship active: %s", r.ID)
		assert.NotEmpty(t, r.Name, "rule %s has no name", r.ID)
		assert.NotEmpty(t, r.Category, "rule %s has no category", r.ID)
		assert.NotEmpty(t, r.GuidelineSource, "rule %s has no guideline source", r.ID)
		assert.Positive(t, r.Priority, "rule %s has no priority", r.ID)
		if r.Module != "" {
			assert.True(t, r.Module.IsValid(), "rule %s has invalid module %s", r.ID, r.Module)
		}
	}
}

func TestDefaultRuleCatalogCoversEveryModule(t *testing.T) {
	c := DefaultRuleCatalog()
	for _, module := range domain.AllModules {
		assert.NotEmpty(t, c.RulesForModule(module), "no rules participate in module %s", module)
	}
}
