package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdss-core/internal/domain"
)

func TestCorrectedQT(t *testing.T) {
	tests := []struct {
		name     string
		qt       float64
		hr       float64
		formula  QTFormula
		qtc      float64
		rr       float64
		category string
	}{
		{
			name:     "bazett at 75 bpm",
			qt:       440,
			hr:       75,
			formula:  Bazett,
			qtc:      492,
			rr:       800,
			category: QTcProlonged,
		},
		{
			name:     "fridericia at 75 bpm",
			qt:       440,
			hr:       75,
			formula:  Fridericia,
			qtc:      474,
			rr:       800,
			category: QTcProlonged,
		},
		{
			name:     "framingham at 75 bpm",
			qt:       440,
			hr:       75,
			formula:  Framingham,
			qtc:      471,
			rr:       800,
			category: QTcProlonged,
		},
		{
			name:     "bazett at 60 bpm is the identity",
			qt:       400,
			hr:       60,
			formula:  Bazett,
			qtc:      400,
			rr:       1000,
			category: QTcNormal,
		},
		{
			name:     "borderline qtc",
			qt:       450,
			hr:       60,
			formula:  Bazett,
			qtc:      450,
			rr:       1000,
			category: QTcBorderline,
		},
		{
			name:     "severely prolonged qtc",
			qt:       520,
			hr:       60,
			formula:  Bazett,
			qtc:      520,
			rr:       1000,
			category: QTcSeverelyProlonged,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CorrectedQT(tt.qt, tt.hr, tt.formula)
			require.NoError(t, err)
			assert.Equal(t, tt.qtc, result.QTcMs)
			assert.Equal(t, tt.rr, result.RRMs)
			assert.Equal(t, tt.formula, result.Formula)
			assert.Equal(t, tt.category, result.Category)
		})
	}
}

func TestCorrectedQTRecommendationsOnlyWhenSevere(t *testing.T) {
	prolonged, err := CorrectedQT(440, 75, Bazett)
	require.NoError(t, err)
	assert.Equal(t, QTcProlonged, prolonged.Category)
	assert.Empty(t, prolonged.Recommendations)

	severe, err := CorrectedQT(520, 60, Bazett)
	require.NoError(t, err)
	assert.Equal(t, QTcSeverelyProlonged, severe.Category)
	require.NotEmpty(t, severe.Recommendations)
	assert.Contains(t, severe.Recommendations[0], "torsades de pointes")
}

func TestCorrectedQTRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		qt      float64
		hr      float64
		formula QTFormula
		field   string
	}{
		{"qt too short", 50, 75, Bazett, "qt_ms"},
		{"qt too long", 900, 75, Bazett, "qt_ms"},
		{"heart rate too low", 440, 10, Bazett, "heart_rate"},
		{"heart rate too high", 440, 350, Bazett, "heart_rate"},
		{"unknown formula", 440, 75, QTFormula("hodges"), "formula"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CorrectedQT(tt.qt, tt.hr, tt.formula)
			require.Error(t, err)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestQTFormulaIsValid(t *testing.T) {
	assert.True(t, Bazett.IsValid())
	assert.True(t, Fridericia.IsValid())
	assert.True(t, Framingham.IsValid())
	assert.False(t, QTFormula("").IsValid())
	assert.False(t, QTFormula("bazet").IsValid())
}
