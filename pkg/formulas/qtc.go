package formulas

import (
	"math"

	"github.com/cdss-core/internal/domain"
)

// QTFormula selects the rate-correction formula for the QT interval.
type QTFormula string

const (
	Bazett     QTFormula = "bazett"
	Fridericia QTFormula = "fridericia"
	Framingham QTFormula = "framingham"
)

// IsValid reports whether the formula is one of the supported corrections.
func (f QTFormula) IsValid() bool {
	switch f {
	case Bazett, Fridericia, Framingham:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f QTFormula) String() string {
	return string(f)
}

// QTc risk categories. Thresholds follow the AHA/ACCF/HRS 2009 consensus on
// QT interval monitoring; torsades-de-pointes risk language is attached only
// at the severe tier.
const (
	QTcNormal            = "normal"
	QTcBorderline        = "borderline"
	QTcProlonged         = "prolonged"
	QTcSeverelyProlonged = "severely prolonged"
)

// QTcResult is the corrected QT interval in ms with its risk category. The
// Recommendations list is populated only when the category is severely
// prolonged.
type QTcResult struct {
	QTcMs           float64   `json:"qtc_ms"`
	RRMs            float64   `json:"rr_ms"`
	Formula         QTFormula `json:"formula"`
	Category        string    `json:"category"`
	Recommendations []string  `json:"recommendations,omitempty"`
}

// CorrectedQT computes the heart-rate-corrected QT interval. RR is derived
// as 60000 / heartRate (ms); the selected formula is then applied:
//
//	Bazett:     QT / sqrt(RR/1000)
//	Fridericia: QT / cbrt(RR/1000)
//	Framingham: QT + 0.154 × (1000 − RR)
//
// The result is rounded to the nearest millisecond.
func CorrectedQT(qtMs, heartRate float64, formula QTFormula) (*QTcResult, error) {
	if err := validateQT(qtMs); err != nil {
		return nil, err
	}
	if err := validateHeartRate(heartRate); err != nil {
		return nil, err
	}
	if !formula.IsValid() {
		return nil, domain.NewValidationError("formula",
			"formula must be one of 'bazett', 'fridericia', 'framingham'", formula.String())
	}

	rr := 60000 / heartRate
	rrSec := rr / 1000

	var qtc float64
	switch formula {
	case Bazett:
		qtc = qtMs / math.Sqrt(rrSec)
	case Fridericia:
		qtc = qtMs / math.Cbrt(rrSec)
	case Framingham:
		qtc = qtMs + 0.154*(1000-rr)
	}

	qtc = roundN(qtc, 1)

	result := &QTcResult{
		QTcMs:    qtc,
		RRMs:     roundN(rr, 1),
		Formula:  formula,
		Category: qtcCategory(qtc),
	}

	if result.Category == QTcSeverelyProlonged {
		result.Recommendations = []string{
			"High risk of torsades de pointes: urgent cardiology review",
			"Stop or substitute all QT-prolonging medications",
			"Correct hypokalemia and hypomagnesemia",
			"Continuous ECG monitoring until QTc normalizes",
		}
	}

	return result, nil
}

func qtcCategory(qtcMs float64) string {
	switch {
	case qtcMs < 440:
		return QTcNormal
	case qtcMs < 460:
		return QTcBorderline
	case qtcMs < 500:
		return QTcProlonged
	default:
		return QTcSeverelyProlonged
	}
}
