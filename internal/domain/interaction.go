package domain

// DrugInteractionFinding is one matched interaction between two medications
// of the checked list. DrugA and DrugB are the resolved generic names as the
// catalog knows them, not the raw input spellings.
type DrugInteractionFinding struct {
	DrugA      string   `json:"drug_a"`
	DrugB      string   `json:"drug_b"`
	Severity   Severity `json:"severity"`
	Mechanism  string   `json:"mechanism"`
	Management string   `json:"management"`
	Source     string   `json:"source,omitempty"`
}

// ContraindicationFinding is one matched drug/condition or drug/allergy
// contraindication.
type ContraindicationFinding struct {
	Drug      string   `json:"drug"`
	MatchedOn string   `json:"matched_on"`
	Severity  Severity `json:"severity"`
	Rationale string   `json:"rationale"`
	Source    string   `json:"source,omitempty"`
}

// DoseRecommendation is the single resolved dose guidance for one drug at
// the patient's renal function. SelectedBand names which bucket the
// precedence rules picked; SelectedDose is that bucket's text.
type DoseRecommendation struct {
	Drug         string `json:"drug"`
	NormalDose   string `json:"normal_dose"`
	SelectedBand string `json:"selected_band"`
	SelectedDose string `json:"selected_dose"`
}

// Renal dose band identifiers, matching the half-open eGFR intervals of the
// dosing catalog. Dialysis takes precedence over any eGFR value.
const (
	BandNormal      = "normal"
	BandEGFR30to59  = "egfr_30_59"
	BandEGFR15to29  = "egfr_15_29"
	BandEGFRBelow15 = "egfr_below_15"
	BandDialysis    = "dialysis"
)

// ClassReference describes one drug class and its known members.
type ClassReference struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// InteractionCheckResult bundles everything the checker computed for one
// medication list. UnknownDrugs lists input names with no catalog data at
// all; "no data" is a distinct outcome from "no findings".
type InteractionCheckResult struct {
	Interactions      []DrugInteractionFinding      `json:"interactions"`
	Contraindications []ContraindicationFinding     `json:"contraindications"`
	DoseAdjustments   map[string]DoseRecommendation `json:"dose_adjustments"`
	UnknownDrugs      []string                      `json:"unknown_drugs,omitempty"`
}
