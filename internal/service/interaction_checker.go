package service

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/cdss-core/internal/catalog"
	"github.com/cdss-core/internal/domain"
)

// InteractionCheckRequest is the input to a drug interaction check. EGFR is
// optional; nil means renal function is unknown and only the dialysis flag
// can drive dose selection.
type InteractionCheckRequest struct {
	Medications []string `json:"medications"`
	Conditions  []string `json:"conditions,omitempty"`
	Allergies   []string `json:"allergies,omitempty"`
	EGFR        *float64 `json:"egfr,omitempty"`
	OnDialysis  bool     `json:"on_dialysis"`
}

// InteractionChecker computes drug-drug interactions, contraindications and
// renal dose recommendations against the drug catalog. Pure computation:
// the checker reads only its arguments and the read-only catalog.
type InteractionChecker struct {
	logger *logrus.Logger
	drugs  *catalog.DrugCatalog
}

// NewInteractionChecker creates a checker over the given drug catalog.
func NewInteractionChecker(logger *logrus.Logger, drugs *catalog.DrugCatalog) *InteractionChecker {
	return &InteractionChecker{logger: logger, drugs: drugs}
}

// CheckInteractions runs the full check for one medication list. An empty
// medication list is a caller error, not an empty result.
func (c *InteractionChecker) CheckInteractions(req InteractionCheckRequest) (*domain.InteractionCheckResult, error) {
	if len(req.Medications) == 0 {
		return nil, domain.NewValidationError("medications",
			"at least one medication is required", req.Medications)
	}

	// Resolve input names once: case folding, brand aliases, and catalog
	// coverage. Duplicated input names collapse to one resolved entry.
	resolved := make([]string, 0, len(req.Medications))
	seenDrug := make(map[string]bool, len(req.Medications))
	var unknown []string
	for _, name := range req.Medications {
		drug, known := c.drugs.Resolve(name)
		if drug == "" {
			continue
		}
		if !known {
			unknown = append(unknown, drug)
		}
		if !seenDrug[drug] {
			seenDrug[drug] = true
			resolved = append(resolved, drug)
		}
	}

	result := &domain.InteractionCheckResult{
		Interactions:      c.pairwiseInteractions(resolved),
		Contraindications: c.contraindications(resolved, req.Conditions, req.Allergies),
		DoseAdjustments:   c.doseAdjustments(resolved, req.EGFR, req.OnDialysis),
		UnknownDrugs:      unknown,
	}

	c.logger.WithFields(logrus.Fields{
		"medications":       len(resolved),
		"interactions":      len(result.Interactions),
		"contraindications": len(result.Contraindications),
		"dose_adjustments":  len(result.DoseAdjustments),
		"unknown_drugs":     len(unknown),
	}).Debug("Completed interaction check")

	return result, nil
}

// pairwiseInteractions checks every unordered pair of distinct resolved
// medications. The pair iteration follows a canonical order (sorted names)
// so that the output does not depend on the input medication order.
func (c *InteractionChecker) pairwiseInteractions(drugs []string) []domain.DrugInteractionFinding {
	ordered := make([]string, len(drugs))
	copy(ordered, drugs)
	sort.Strings(ordered)

	findings := make([]domain.DrugInteractionFinding, 0)
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			for _, rule := range c.drugs.FindInteraction(ordered[i], ordered[j]) {
				findings = append(findings, domain.DrugInteractionFinding{
					DrugA:      ordered[i],
					DrugB:      ordered[j],
					Severity:   rule.Severity,
					Mechanism:  rule.Mechanism,
					Management: rule.Management,
					Source:     rule.Source,
				})
			}
		}
	}

	sortBySeverity(findings, func(f domain.DrugInteractionFinding) domain.Severity { return f.Severity })
	return findings
}

// contraindications checks every resolved medication against every supplied
// condition and allergy. A class-level allergy (e.g. "penicillins") matches
// any drug of the class through the catalog's class entries. Drugs are
// iterated in canonical (sorted) order so that equal-severity findings keep
// the same order regardless of the input medication order.
func (c *InteractionChecker) contraindications(drugs, conditions, allergies []string) []domain.ContraindicationFinding {
	ordered := make([]string, len(drugs))
	copy(ordered, drugs)
	sort.Strings(ordered)

	subjects := make([]string, 0, len(conditions)+len(allergies))
	subjects = append(subjects, conditions...)
	subjects = append(subjects, allergies...)

	findings := make([]domain.ContraindicationFinding, 0)
	for _, drug := range ordered {
		for _, subject := range subjects {
			for _, rule := range c.drugs.FindContraindications(drug, subject) {
				findings = append(findings, domain.ContraindicationFinding{
					Drug:      drug,
					MatchedOn: subject,
					Severity:  rule.Severity,
					Rationale: rule.Rationale,
					Source:    rule.Source,
				})
			}
		}
	}

	sortBySeverity(findings, func(f domain.ContraindicationFinding) domain.Severity { return f.Severity })
	return findings
}

// doseAdjustments resolves one dose recommendation per medication present
// in the dosing catalog. Medications without a dosing row yield no entry:
// "no data" must stay distinguishable from "no adjustment needed".
func (c *InteractionChecker) doseAdjustments(drugs []string, egfr *float64, onDialysis bool) map[string]domain.DoseRecommendation {
	adjustments := make(map[string]domain.DoseRecommendation)
	for _, drug := range drugs {
		rule, ok := c.drugs.DoseRule(drug)
		if !ok {
			continue
		}
		adjustments[drug] = selectDose(rule, egfr, onDialysis)
	}
	return adjustments
}

// DoseAdjustment resolves the dose recommendation for one drug. The second
// return value is false when the dosing catalog has no row for the drug.
func (c *InteractionChecker) DoseAdjustment(drugName string, egfr *float64, onDialysis bool) (*domain.DoseRecommendation, bool) {
	drug, _ := c.drugs.Resolve(drugName)
	rule, ok := c.drugs.DoseRule(drug)
	if !ok {
		return nil, false
	}
	rec := selectDose(rule, egfr, onDialysis)
	return &rec, true
}

// DrugClasses returns the catalog's drug class references.
func (c *InteractionChecker) DrugClasses() []domain.ClassReference {
	return c.drugs.Classes()
}

// selectDose applies the band precedence: dialysis first regardless of any
// eGFR value, then the half-open eGFR intervals, then the normal dose. A
// nil eGFR without dialysis selects the normal dose, since no renal signal
// argues otherwise.
func selectDose(rule catalog.RenalDoseRule, egfr *float64, onDialysis bool) domain.DoseRecommendation {
	band, dose := domain.BandNormal, rule.NormalDose

	switch {
	case onDialysis:
		band, dose = domain.BandDialysis, rule.Dialysis
	case egfr == nil:
		// renal function unknown, keep the normal dose
	case *egfr < 15:
		band, dose = domain.BandEGFRBelow15, rule.EGFRBelow15
	case *egfr < 30:
		band, dose = domain.BandEGFR15to29, rule.EGFR15to29
	case *egfr < 60:
		band, dose = domain.BandEGFR30to59, rule.EGFR30to59
	}

	return domain.DoseRecommendation{
		Drug:         rule.Drug,
		NormalDose:   rule.NormalDose,
		SelectedBand: band,
		SelectedDose: dose,
	}
}

// sortBySeverity orders findings by descending severity, keeping catalog
// and canonical pair order for equal severities.
func sortBySeverity[T any](findings []T, severity func(T) domain.Severity) {
	sort.SliceStable(findings, func(i, j int) bool {
		return severity(findings[i]).Rank() > severity(findings[j]).Rank()
	})
}
