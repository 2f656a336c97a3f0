package formulas

import (
	"github.com/cdss-core/internal/domain"
)

// CreatinineClearanceResult is the Cockcroft-Gault estimate of creatinine
// clearance in mL/min, with its clearance category.
//
// Reference: Cockcroft DW, Gault MH. Prediction of creatinine clearance
// from serum creatinine. Nephron. 1976;16(1):31-41.
type CreatinineClearanceResult struct {
	ClearanceMLMin float64 `json:"clearance_ml_min"`
	Category       string  `json:"category"`
}

// Clearance categories reuse the KDIGO band boundaries. Labels follow the
// French renal nomenclature used by the consuming clinic software.
const (
	ClearanceNormal   = "Normale"
	ClearanceMild     = "Diminution légère"
	ClearanceModerate = "Diminution modérée"
	ClearanceSevere   = "Diminution sévère"
	ClearanceTerminal = "Insuffisance rénale terminale"
)

// CockcroftGault estimates creatinine clearance from age, weight, sex and
// serum creatinine (mg/dL):
//
//	CrCl = ((140 - age) × weight) / (72 × creatinine), × 0.85 if female
//
// The result is rounded to one decimal.
func CockcroftGault(ageYears int, weightKg float64, sex domain.Sex, creatinineMgDL float64) (*CreatinineClearanceResult, error) {
	if err := validateAge(ageYears); err != nil {
		return nil, err
	}
	if err := validateWeight(weightKg); err != nil {
		return nil, err
	}
	if !sex.IsValid() {
		return nil, domain.NewValidationError("sex", "sex must be 'male' or 'female'", sex.String())
	}
	if err := validateCreatinine(creatinineMgDL); err != nil {
		return nil, err
	}

	clearance := (float64(140-ageYears) * weightKg) / (72 * creatinineMgDL)
	if sex == domain.FEMALE {
		clearance *= 0.85
	}
	clearance = round1(clearance)

	return &CreatinineClearanceResult{
		ClearanceMLMin: clearance,
		Category:       clearanceCategory(clearance),
	}, nil
}

func clearanceCategory(clearance float64) string {
	switch {
	case clearance >= 90:
		return ClearanceNormal
	case clearance >= 60:
		return ClearanceMild
	case clearance >= 30:
		return ClearanceModerate
	case clearance >= 15:
		return ClearanceSevere
	default:
		return ClearanceTerminal
	}
}
