package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdss-core/internal/domain"
)

func TestDrugCatalogResolve(t *testing.T) {
	c := DefaultDrugCatalog()

	tests := []struct {
		name     string
		input    string
		resolved string
		known    bool
	}{
		{"generic passes through", "warfarin", "warfarin", true},
		{"case folded", "WARFARIN", "warfarin", true},
		{"whitespace trimmed", "  warfarin  ", "warfarin", true},
		{"brand alias", "Coumadin", "warfarin", true},
		{"french brand alias", "Tahor", "atorvastatin", true},
		{"class member without own rules", "naproxen", "naproxen", true},
		{"unknown drug", "obscuremycin", "obscuremycin", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, known := c.Resolve(tt.input)
			assert.Equal(t, tt.resolved, resolved)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestDrugCatalogClassMembership(t *testing.T) {
	c := DefaultDrugCatalog()

	assert.True(t, c.InClass("ibuprofen", "nsaids"))
	assert.True(t, c.InClass("Ibuprofen", "NSAIDS"))
	assert.False(t, c.InClass("warfarin", "nsaids"))
	assert.False(t, c.InClass("ibuprofen", "no-such-class"))

	assert.Contains(t, c.ClassesOf("metoprolol"), "beta-blockers")
	assert.Empty(t, c.ClassesOf("warfarin"))
}

func TestFindInteractionIsSymmetric(t *testing.T) {
	c := DefaultDrugCatalog()

	ab := c.FindInteraction("warfarin", "amiodarone")
	ba := c.FindInteraction("amiodarone", "warfarin")
	require.Len(t, ab, 1)
	assert.Equal(t, ab, ba)
	assert.Equal(t, domain.SeverityMajor, ab[0].Severity)
}

func TestFindInteractionMatchesClassMembers(t *testing.T) {
	c := DefaultDrugCatalog()

	// warfarin + nsaids is a class-level entry; any member should match it.
	for _, nsaid := range []string{"ibuprofen", "naproxen", "diclofenac"} {
		matches := c.FindInteraction("warfarin", nsaid)
		require.Len(t, matches, 1, "warfarin with %s", nsaid)
		assert.Equal(t, domain.SeverityMajor, matches[0].Severity)
	}

	// Class orientation is symmetric too.
	matches := c.FindInteraction("ibuprofen", "warfarin")
	require.Len(t, matches, 1)
}

func TestFindInteractionIgnoresSelfPairs(t *testing.T) {
	c := DefaultDrugCatalog()
	assert.Nil(t, c.FindInteraction("warfarin", "warfarin"))
	assert.Empty(t, c.FindInteraction("warfarin", "paracetamol"))
}

func TestFindContraindications(t *testing.T) {
	c := DefaultDrugCatalog()

	t.Run("class against condition substring", func(t *testing.T) {
		matches := c.FindContraindications("ibuprofen", "chronic kidney disease stage 4")
		require.Len(t, matches, 1)
		assert.Equal(t, "nsaids", matches[0].Class)
	})

	t.Run("exact drug against condition", func(t *testing.T) {
		matches := c.FindContraindications("metformin", "severe renal impairment")
		require.Len(t, matches, 1)
		assert.Equal(t, domain.SeverityContraindicated, matches[0].Severity)
	})

	t.Run("class against allergy", func(t *testing.T) {
		matches := c.FindContraindications("amoxicillin", "penicillin")
		require.Len(t, matches, 1)
		assert.Equal(t, "penicillins", matches[0].Class)
	})

	t.Run("no match for unrelated condition", func(t *testing.T) {
		assert.Empty(t, c.FindContraindications("metformin", "migraine"))
	})

	t.Run("empty subject matches nothing", func(t *testing.T) {
		assert.Nil(t, c.FindContraindications("ibuprofen", ""))
	})
}

func TestDoseRule(t *testing.T) {
	c := DefaultDrugCatalog()

	rule, ok := c.DoseRule("Metformin")
	require.True(t, ok)
	assert.Equal(t, "metformin", rule.Drug)
	assert.Contains(t, rule.EGFR15to29, "Contraindicated")

	_, ok = c.DoseRule("paracetamol")
	assert.False(t, ok)
}

func TestClassesAreFoldedAndCopied(t *testing.T) {
	c := DefaultDrugCatalog()

	classes := c.Classes()
	require.NotEmpty(t, classes)
	for _, class := range classes {
		assert.Equal(t, class.Name, fold(class.Name))
		for _, m := range class.Members {
			assert.Equal(t, m, fold(m))
		}
	}

	classes[0].Name = "mutated"
	assert.NotEqual(t, "mutated", c.Classes()[0].Name)
}

func TestDrugCatalogVersion(t *testing.T) {
	a := DefaultDrugCatalog()
	b := DefaultDrugCatalog()
	assert.Equal(t, a.Version(), b.Version(), "identical tables must fingerprint identically")

	trimmed := NewDrugCatalog(nil, nil, defaultRenalDosing, defaultDrugClasses, defaultAliases)
	assert.NotEqual(t, a.Version(), trimmed.Version())
}
