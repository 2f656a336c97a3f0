package formulas

import (
	"github.com/cdss-core/internal/domain"
)

// CKDStageResult is the KDIGO CKD stage for a given eGFR, with the fixed
// guideline description and follow-up recommendations for that stage.
//
// Reference: KDIGO 2012 Clinical Practice Guideline for the Evaluation and
// Management of Chronic Kidney Disease. Kidney Int Suppl. 2013;3:1-150.
type CKDStageResult struct {
	Stage           string   `json:"stage"`
	EGFR            float64  `json:"egfr"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
}

type ckdBand struct {
	stage           string
	lower           float64 // inclusive
	description     string
	recommendations []string
}

// KDIGO G1-G5 bands. Each lower bound is inclusive; the slice is ordered
// from best to worst kidney function so the first match wins.
var ckdBands = []ckdBand{
	{
		stage:       "1",
		lower:       90,
		description: "Normal or high kidney function (G1) with evidence of kidney damage",
		recommendations: []string{
			"Treat comorbid conditions and cardiovascular risk factors",
			"Annual monitoring of eGFR and albuminuria",
		},
	},
	{
		stage:       "2",
		lower:       60,
		description: "Mildly decreased kidney function (G2)",
		recommendations: []string{
			"Estimate progression with annual eGFR and albuminuria",
			"Blood pressure control, target <130/80 mmHg if albuminuria",
		},
	},
	{
		stage:       "3a",
		lower:       45,
		description: "Mildly to moderately decreased kidney function (G3a)",
		recommendations: []string{
			"Monitor eGFR and albuminuria at least annually",
			"Review medication doses for renal adjustment",
			"Evaluate and treat cardiovascular risk",
		},
	},
	{
		stage:       "3b",
		lower:       30,
		description: "Moderately to severely decreased kidney function (G3b)",
		recommendations: []string{
			"Monitor eGFR every 3-6 months",
			"Screen for anemia and CKD-MBD (calcium, phosphate, PTH)",
			"Avoid nephrotoxic drugs including NSAIDs",
		},
	},
	{
		stage:       "4",
		lower:       15,
		description: "Severely decreased kidney function (G4)",
		recommendations: []string{
			"Refer to nephrology",
			"Plan renal replacement therapy (dialysis access or transplant work-up)",
			"Adjust all renally cleared medications",
			"Monitor eGFR every 3 months",
		},
	},
	{
		stage:       "5",
		lower:       0,
		description: "Kidney failure (G5)",
		recommendations: []string{
			"Initiate dialysis or transplantation when indicated",
			"Urgent nephrology management",
			"Strict dietary potassium and phosphate control",
		},
	},
}

// StageCKD maps an eGFR in mL/min/1.73m² to its KDIGO CKD stage. The lower
// bound of each stage is inclusive: eGFR 90 is stage 1, eGFR 15 is stage 4.
func StageCKD(egfr float64) (*CKDStageResult, error) {
	if err := validateEGFR(egfr); err != nil {
		return nil, err
	}

	for _, band := range ckdBands {
		if egfr >= band.lower {
			recs := make([]string, len(band.recommendations))
			copy(recs, band.recommendations)
			return &CKDStageResult{
				Stage:           band.stage,
				EGFR:            egfr,
				Description:     band.description,
				Recommendations: recs,
			}, nil
		}
	}

	// Unreachable: the last band's lower bound is 0 and eGFR is validated
	// non-negative.
	return nil, domain.NewValidationError("egfr", "eGFR outside stageable range", egfr)
}
