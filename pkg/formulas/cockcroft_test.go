package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdss-core/internal/domain"
)

func TestCockcroftGault(t *testing.T) {
	tests := []struct {
		name       string
		age        int
		weight     float64
		sex        domain.Sex
		creatinine float64
		clearance  float64
		category   string
	}{
		{
			name:       "60yo male moderate impairment",
			age:        60,
			weight:     70,
			sex:        domain.MALE,
			creatinine: 1.5,
			clearance:  51.9,
			category:   ClearanceModerate,
		},
		{
			name:       "60yo female gets 0.85 factor",
			age:        60,
			weight:     70,
			sex:        domain.FEMALE,
			creatinine: 1.5,
			clearance:  44.1,
			category:   ClearanceModerate,
		},
		{
			name:       "young male normal clearance",
			age:        30,
			weight:     80,
			sex:        domain.MALE,
			creatinine: 0.9,
			clearance:  135.8,
			category:   ClearanceNormal,
		},
		{
			name:       "elderly female severe impairment",
			age:        85,
			weight:     55,
			sex:        domain.FEMALE,
			creatinine: 1.8,
			clearance:  19.8,
			category:   ClearanceSevere,
		},
		{
			name:       "end stage clearance",
			age:        80,
			weight:     60,
			sex:        domain.MALE,
			creatinine: 4.0,
			clearance:  12.5,
			category:   ClearanceTerminal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CockcroftGault(tt.age, tt.weight, tt.sex, tt.creatinine)
			require.NoError(t, err)
			assert.Equal(t, tt.clearance, result.ClearanceMLMin)
			assert.Equal(t, tt.category, result.Category)
		})
	}
}

func TestCockcroftGaultRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		age        int
		weight     float64
		sex        domain.Sex
		creatinine float64
		field      string
	}{
		{"negative age", -1, 70, domain.MALE, 1.0, "age"},
		{"age above limit", 151, 70, domain.MALE, 1.0, "age"},
		{"weight too low", 60, 10, domain.MALE, 1.0, "weight_kg"},
		{"weight too high", 60, 600, domain.MALE, 1.0, "weight_kg"},
		{"unknown sex", 60, 70, domain.Sex("other"), 1.0, "sex"},
		{"zero creatinine", 60, 70, domain.MALE, 0, "creatinine"},
		{"creatinine too high", 60, 70, domain.MALE, 25, "creatinine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CockcroftGault(tt.age, tt.weight, tt.sex, tt.creatinine)
			require.Error(t, err)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}
