package catalog

import (
	"fmt"

	"github.com/cdss-core/internal/domain"
	"github.com/cdss-core/pkg/formulas"
)

// DefaultRuleCatalog builds the seeded guideline rule catalog. Rule IDs are
// stable identifiers; clinical thresholds and recommendation text come from
// the cited guidelines, never from the evaluation mechanics.
func DefaultRuleCatalog() *RuleCatalog {
	c := NewRuleCatalog()

	mustRegister := func(r Rule) {
		if err := c.Register(r); err != nil {
			// Registration of the built-in catalog only fails on a
			// programming error (duplicate or incomplete rule).
			panic(fmt.Sprintf("default rule catalog: %v", err))
		}
	}

	// Renal / electrolytes

	mustRegister(Rule{
		ID:              "RENAL-K-CRITICAL",
		Name:            "Critical hyperkalemia",
		Description:     "Serum potassium at or above 6.5 mmol/L",
		Category:        "renal",
		GuidelineSource: "KDIGO 2012 CKD Guideline; UK Renal Association Hyperkalaemia Guideline 2020",
		Priority:        100,
		Active:          true,
		Predicate:       labAtLeast(potassium, 6.5),
		Alert: labAlert(potassium, "Critical hyperkalemia",
			"Serum potassium %.1f mmol/L is at a life-threatening level.",
			"Urgent ECG, IV calcium and potassium-lowering therapy; hold potassium-retaining drugs"),
	})

	mustRegister(Rule{
		ID:              "RENAL-K-HIGH",
		Name:            "Hyperkalemia",
		Description:     "Serum potassium between 5.5 and 6.5 mmol/L",
		Category:        "renal",
		GuidelineSource: "UK Renal Association Hyperkalaemia Guideline 2020",
		Priority:        80,
		Active:          true,
		Predicate:       labBetween(potassium, 5.5, 6.5),
		Alert: labAlert(potassium, "Hyperkalemia",
			"Serum potassium %.1f mmol/L is above the safe range.",
			"Repeat potassium, review ACE inhibitors, ARBs and potassium-sparing diuretics"),
	})

	mustRegister(Rule{
		ID:              "RENAL-CKD-ADVANCED",
		Name:            "Advanced chronic kidney disease",
		Description:     "eGFR in KDIGO stage 4 or 5 without renal follow-up recorded",
		Category:        "renal",
		GuidelineSource: "KDIGO 2012 CKD Guideline, chapter 5 (referral to specialists)",
		Priority:        85,
		Active:          true,
		Predicate:       ckdStageAtLeast4,
		Alert:           ckdStageAlert,
	})

	mustRegister(Rule{
		ID:              "RENAL-ANEMIA",
		Name:            "Anemia of chronic kidney disease",
		Description:     "Hemoglobin below 10 g/dL with eGFR below 60",
		Category:        "renal",
		GuidelineSource: "KDIGO 2012 Anemia in CKD Guideline",
		Priority:        60,
		Active:          true,
		Predicate:       renalAnemia,
		Alert: func(s *domain.PatientSnapshot) domain.AlertContent {
			return domain.AlertContent{
				Title: "Renal anemia",
				Description: fmt.Sprintf("Hemoglobin %.1f g/dL with reduced kidney function (eGFR %.0f).",
					*s.Labs.Hemoglobin, *s.Labs.EGFR),
				RecommendedAction: "Check iron status (ferritin, TSAT); consider ESA therapy per KDIGO targets",
			}
		},
	})

	// Dialysis module

	mustRegister(Rule{
		ID:              "DIAL-KTV-LOW",
		Name:            "Inadequate dialysis dose",
		Description:     "Single-pool Kt/V below 1.2",
		Category:        "dialysis-adequacy",
		Module:          domain.ModuleDialysis,
		GuidelineSource: "KDOQI 2015 Hemodialysis Adequacy Update",
		Priority:        75,
		Active:          true,
		Predicate:       dialysisKtVLow,
		Alert: func(s *domain.PatientSnapshot) domain.AlertContent {
			return domain.AlertContent{
				Title:             "Dialysis dose below target",
				Description:       fmt.Sprintf("Kt/V %.2f is below the KDOQI minimum of 1.2.", *s.Dialysis.KtV),
				RecommendedAction: "Review session duration, blood flow and access recirculation",
			}
		},
	})

	mustRegister(Rule{
		ID:              "DIAL-IDWG-HIGH",
		Name:            "Excessive interdialytic weight gain",
		Description:     "Weight gain between sessions above 4 kg or 4.5% of body weight",
		Category:        "dialysis-adequacy",
		Module:          domain.ModuleDialysis,
		GuidelineSource: "EBPG Guideline on Haemodynamic Instability 2007",
		Priority:        55,
		Active:          true,
		Predicate:       dialysisIDWGHigh,
		Alert: func(s *domain.PatientSnapshot) domain.AlertContent {
			return domain.AlertContent{
				Title:             "Excessive interdialytic weight gain",
				Description:       fmt.Sprintf("Interdialytic weight gain of %.1f kg.", *s.Dialysis.InterdialyticWeightGainKg),
				RecommendedAction: "Dietary sodium and fluid counselling; reassess dry weight",
			}
		},
	})

	mustRegister(Rule{
		ID:              "DIAL-PHOS-HIGH",
		Name:            "Hyperphosphatemia",
		Description:     "Serum phosphorus above 5.5 mg/dL in a dialysis patient",
		Category:        "mineral-bone",
		Module:          domain.ModuleDialysis,
		GuidelineSource: "KDIGO 2017 CKD-MBD Update",
		Priority:        50,
		Active:          true,
		Predicate:       requireDialysis(labAtLeast(phosphorus, 5.5)),
		Alert: labAlert(phosphorus, "Hyperphosphatemia",
			"Serum phosphorus %.1f mg/dL exceeds the CKD-MBD target.",
			"Review phosphate binder prescription and dietary phosphate intake"),
	})

	mustRegister(Rule{
		ID:              "DIAL-PTH-HIGH",
		Name:            "Secondary hyperparathyroidism",
		Description:     "PTH above 585 pg/mL (nine times the assay upper limit)",
		Category:        "mineral-bone",
		Module:          domain.ModuleDialysis,
		GuidelineSource: "KDIGO 2017 CKD-MBD Update",
		Priority:        45,
		Active:          true,
		Predicate:       requireDialysis(labAtLeast(pth, 585)),
		Alert: labAlert(pth, "Secondary hyperparathyroidism",
			"PTH %.0f pg/mL is above the KDIGO target range for dialysis patients.",
			"Evaluate vitamin D analogues or calcimimetics; check calcium and phosphorus"),
	})

	mustRegister(Rule{
		ID:              "DIAL-ALB-LOW",
		Name:            "Hypoalbuminemia",
		Description:     "Serum albumin below 3.5 g/dL in a dialysis patient",
		Category:        "nutrition",
		Module:          domain.ModuleDialysis,
		GuidelineSource: "KDOQI 2020 Nutrition in CKD Guideline",
		Priority:        40,
		Active:          true,
		Predicate:       requireDialysis(labBelow(albumin, 3.5)),
		Alert: labAlert(albumin, "Hypoalbuminemia",
			"Serum albumin %.1f g/dL suggests protein-energy wasting.",
			"Dietitian referral and nutritional assessment"),
	})

	// Cardiology module

	mustRegister(Rule{
		ID:              "CARD-BP-CRISIS",
		Name:            "Hypertensive crisis",
		Description:     "Blood pressure at or above 180/120 mmHg",
		Category:        "cardiovascular",
		GuidelineSource: "ESC/ESH 2018 Arterial Hypertension Guideline",
		Priority:        95,
		Active:          true,
		Predicate:       bpAtLeast(180, 120),
		Alert:           bpAlert("Hypertensive crisis", "Immediate evaluation for acute organ damage"),
	})

	mustRegister(Rule{
		ID:              "CARD-BP-STAGE2",
		Name:            "Grade 2 hypertension",
		Description:     "Blood pressure at or above 160/100 mmHg",
		Category:        "cardiovascular",
		GuidelineSource: "ESC/ESH 2018 Arterial Hypertension Guideline",
		Priority:        55,
		Active:          true,
		Predicate:       bpStage2,
		Alert:           bpAlert("Grade 2 hypertension", "Confirm with repeated measurements; intensify antihypertensive therapy"),
	})

	mustRegister(Rule{
		ID:              "CARD-LVEF-REDUCED",
		Name:            "Reduced ejection fraction",
		Description:     "LVEF below 40%",
		Category:        "cardiovascular",
		Module:          domain.ModuleCardiology,
		GuidelineSource: "ESC 2021 Heart Failure Guideline",
		Priority:        70,
		Active:          true,
		Predicate:       lvefReduced,
		Alert: func(s *domain.PatientSnapshot) domain.AlertContent {
			return domain.AlertContent{
				Title:             "Heart failure with reduced ejection fraction",
				Description:       fmt.Sprintf("LVEF %.0f%% is below 40%%.", *s.Cardiology.LVEF),
				RecommendedAction: "Verify guideline-directed medical therapy (ACEi/ARNI, beta-blocker, MRA, SGLT2i)",
			}
		},
	})

	mustRegister(Rule{
		ID:              "CARD-QTC-LONG",
		Name:            "Prolonged corrected QT interval",
		Description:     "Bazett QTc at or above 500 ms",
		Category:        "cardiovascular",
		Module:          domain.ModuleCardiology,
		GuidelineSource: "AHA/ACCF/HRS 2009 QT Monitoring Statement",
		Priority:        90,
		Active:          true,
		Predicate:       qtcSeverelyProlonged,
		Alert: func(s *domain.PatientSnapshot) domain.AlertContent {
			return domain.AlertContent{
				Title:             "Severely prolonged QTc",
				Description:       "Corrected QT interval is at or above 500 ms with risk of torsades de pointes.",
				RecommendedAction: "Stop QT-prolonging drugs, correct electrolytes, continuous ECG monitoring",
			}
		},
	})

	mustRegister(Rule{
		ID:              "CARD-AF-NO-OAC",
		Name:            "Atrial fibrillation without anticoagulation",
		Description:     "Documented AF with no anticoagulant on the medication list",
		Category:        "cardiovascular",
		Module:          domain.ModuleCardiology,
		GuidelineSource: "ESC 2020 Atrial Fibrillation Guideline",
		Priority:        65,
		Active:          true,
		Predicate:       afWithoutAnticoagulation,
		Alert: func(s *domain.PatientSnapshot) domain.AlertContent {
			return domain.AlertContent{
				Title:             "Anticoagulation gap in atrial fibrillation",
				Description:       "Patient has atrial fibrillation but no anticoagulant therapy is recorded.",
				RecommendedAction: "Assess stroke risk (CHA2DS2-VASc) and bleeding risk; consider oral anticoagulation",
			}
		},
	})

	mustRegister(Rule{
		ID:              "CARD-BNP-HIGH",
		Name:            "Elevated BNP",
		Description:     "BNP above 400 pg/mL",
		Category:        "cardiovascular",
		Module:          domain.ModuleCardiology,
		GuidelineSource: "ESC 2021 Heart Failure Guideline (natriuretic peptide thresholds)",
		Priority:        60,
		Active:          true,
		Predicate:       labAtLeast(bnp, 400),
		Alert: labAlert(bnp, "Elevated BNP",
			"BNP %.0f pg/mL is strongly suggestive of heart failure.",
			"Echocardiography and volume status assessment"),
	})

	mustRegister(Rule{
		ID:              "CARD-TROPONIN-HIGH",
		Name:            "Elevated troponin",
		Description:     "High-sensitivity troponin above 52 ng/L",
		Category:        "cardiovascular",
		GuidelineSource: "ESC 2023 Acute Coronary Syndromes Guideline",
		Priority:        98,
		Active:          true,
		Predicate:       labAtLeast(troponin, 52),
		Alert: labAlert(troponin, "Elevated troponin",
			"Troponin %.0f ng/L is above the rule-in threshold.",
			"Activate acute coronary syndrome pathway; serial ECG and troponin"),
	})

	// Medication safety

	mustRegister(Rule{
		ID:              "MED-INR-HIGH",
		Name:            "Supratherapeutic INR",
		Description:     "INR at or above 5",
		Category:        "medication-safety",
		GuidelineSource: "ACCP 2012 Antithrombotic Therapy Guideline",
		Priority:        90,
		Active:          true,
		Predicate:       labAtLeast(inr, 5),
		Alert: labAlert(inr, "Supratherapeutic INR",
			"INR %.1f carries a high bleeding risk.",
			"Hold vitamin K antagonist; consider vitamin K per ACCP protocol"),
	})

	// General medicine

	mustRegister(Rule{
		ID:              "GEN-SPO2-LOW",
		Name:            "Hypoxemia",
		Description:     "Oxygen saturation below 90%",
		Category:        "respiratory",
		GuidelineSource: "BTS 2017 Emergency Oxygen Guideline",
		Priority:        92,
		Active:          true,
		Predicate:       labBelow(oxygenSaturation, 90),
		Alert: func(s *domain.PatientSnapshot) domain.AlertContent {
			return domain.AlertContent{
				Title:             "Hypoxemia",
				Description:       fmt.Sprintf("Oxygen saturation %.0f%% is below 90%%.", *s.Vitals.OxygenSaturation),
				RecommendedAction: "Administer oxygen, target saturation 94-98% (88-92% if CO2 retention risk)",
			}
		},
	})

	mustRegister(Rule{
		ID:              "GEN-SEPSIS-FLAG",
		Name:            "Possible sepsis",
		Description:     "Fever at or above 38.3°C with heart rate above 100 bpm",
		Category:        "infection",
		GuidelineSource: "Surviving Sepsis Campaign 2021",
		Priority:        88,
		Active:          true,
		Predicate:       sepsisFlag,
		Alert: func(s *domain.PatientSnapshot) domain.AlertContent {
			return domain.AlertContent{
				Title: "Possible sepsis",
				Description: fmt.Sprintf("Temperature %.1f°C with heart rate %.0f bpm.",
					*s.Vitals.TemperatureC, *s.Vitals.HeartRate),
				RecommendedAction: "Screen with qSOFA, obtain cultures and lactate before antibiotics",
			}
		},
	})

	mustRegister(Rule{
		ID:              "GEN-HBA1C-HIGH",
		Name:            "Poor glycemic control",
		Description:     "HbA1c at or above 9%",
		Category:        "metabolic",
		Module:          domain.ModuleGeneral,
		GuidelineSource: "ADA Standards of Care in Diabetes 2024",
		Priority:        50,
		Active:          true,
		Predicate:       labAtLeast(hba1c, 9),
		Alert: labAlert(hba1c, "Poor glycemic control",
			"HbA1c %.1f%% is well above target.",
			"Intensify glucose-lowering therapy and reinforce self-management education"),
	})

	mustRegister(Rule{
		ID:              "GEN-LDL-SEVERE",
		Name:            "Severe LDL elevation",
		Description:     "LDL cholesterol at or above 190 mg/dL",
		Category:        "metabolic",
		Module:          domain.ModuleGeneral,
		GuidelineSource: "ESC/EAS 2019 Dyslipidaemia Guideline",
		Priority:        40,
		Active:          true,
		Predicate:       labAtLeast(ldl, 190),
		Alert: labAlert(ldl, "Severe LDL elevation",
			"LDL cholesterol %.0f mg/dL; consider familial hypercholesterolemia.",
			"High-intensity statin therapy and family screening"),
	})

	mustRegister(Rule{
		ID:              "GEN-OBESITY-SEVERE",
		Name:            "Severe obesity",
		Description:     "Body mass index at or above 35",
		Category:        "metabolic",
		Module:          domain.ModuleGeneral,
		GuidelineSource: "WHO TRS 894 (2000); NICE CG189",
		Priority:        45,
		Active:          true,
		Predicate:       severeObesity,
		Alert:           severeObesityAlert,
	})

	// Ophthalmology module

	mustRegister(Rule{
		ID:              "OPH-IOP-HIGH",
		Name:            "Ocular hypertension",
		Description:     "Intraocular pressure above 21 mmHg in either eye",
		Category:        "ophthalmology",
		Module:          domain.ModuleOphthalmology,
		GuidelineSource: "AAO Primary Open-Angle Glaucoma PPP 2020",
		Priority:        70,
		Active:          true,
		Predicate:       ocularHypertension,
		Alert:           ocularHypertensionAlert,
	})

	mustRegister(Rule{
		ID:              "OPH-CDR-HIGH",
		Name:            "Suspicious optic disc cupping",
		Description:     "Cup-to-disc ratio at or above 0.7",
		Category:        "ophthalmology",
		Module:          domain.ModuleOphthalmology,
		GuidelineSource: "AAO Primary Open-Angle Glaucoma PPP 2020",
		Priority:        60,
		Active:          true,
		Predicate:       cupDiscSuspicious,
		Alert: func(s *domain.PatientSnapshot) domain.AlertContent {
			return domain.AlertContent{
				Title:             "Glaucoma suspect",
				Description:       fmt.Sprintf("Cup-to-disc ratio %.2f is at or above 0.7.", *s.Ophthalmology.CupDiscRatio),
				RecommendedAction: "Visual field testing and OCT of the retinal nerve fiber layer",
			}
		},
	})

	return c
}

// Lab and vital selectors. Selectors keep threshold predicates generic while
// preserving the "absent means unknown" contract: a nil value never fires.

type labSelector func(*domain.PatientSnapshot) *float64

func potassium(s *domain.PatientSnapshot) *float64  { return s.Labs.Potassium }
func phosphorus(s *domain.PatientSnapshot) *float64 { return s.Labs.Phosphorus }
func pth(s *domain.PatientSnapshot) *float64        { return s.Labs.PTH }
func albumin(s *domain.PatientSnapshot) *float64    { return s.Labs.Albumin }
func bnp(s *domain.PatientSnapshot) *float64        { return s.Labs.BNP }
func troponin(s *domain.PatientSnapshot) *float64   { return s.Labs.Troponin }
func inr(s *domain.PatientSnapshot) *float64        { return s.Labs.INR }
func hba1c(s *domain.PatientSnapshot) *float64      { return s.Labs.HbA1c }
func ldl(s *domain.PatientSnapshot) *float64        { return s.Labs.LDL }

func oxygenSaturation(s *domain.PatientSnapshot) *float64 { return s.Vitals.OxygenSaturation }

func labAtLeast(sel labSelector, threshold float64) PredicateFunc {
	return func(s *domain.PatientSnapshot) (bool, error) {
		v := sel(s)
		return v != nil && *v >= threshold, nil
	}
}

func labBelow(sel labSelector, threshold float64) PredicateFunc {
	return func(s *domain.PatientSnapshot) (bool, error) {
		v := sel(s)
		return v != nil && *v < threshold, nil
	}
}

func labBetween(sel labSelector, lower, upper float64) PredicateFunc {
	return func(s *domain.PatientSnapshot) (bool, error) {
		v := sel(s)
		return v != nil && *v >= lower && *v < upper, nil
	}
}

// labAlert renders a one-value alert, formatting the selected lab into the
// description template.
func labAlert(sel labSelector, title, descriptionFmt, action string) AlertFunc {
	return func(s *domain.PatientSnapshot) domain.AlertContent {
		v := sel(s)
		value := 0.0
		if v != nil {
			value = *v
		}
		return domain.AlertContent{
			Title:             title,
			Description:       fmt.Sprintf(descriptionFmt, value),
			RecommendedAction: action,
		}
	}
}

// requireDialysis gates a predicate on the dialysis extension being present.
// A missing extension means not applicable, never a zero-value dialysis
// record.
func requireDialysis(p PredicateFunc) PredicateFunc {
	return func(s *domain.PatientSnapshot) (bool, error) {
		if s.Dialysis == nil {
			return false, nil
		}
		return p(s)
	}
}

func ckdStageAtLeast4(s *domain.PatientSnapshot) (bool, error) {
	if s.Labs.EGFR == nil || s.Dialysis != nil {
		return false, nil
	}
	stage, err := formulas.StageCKD(*s.Labs.EGFR)
	if err != nil {
		return false, err
	}
	return stage.Stage == "4" || stage.Stage == "5", nil
}

func ckdStageAlert(s *domain.PatientSnapshot) domain.AlertContent {
	stageText := "4 or 5"
	if s.Labs.EGFR != nil {
		if stage, err := formulas.StageCKD(*s.Labs.EGFR); err == nil {
			stageText = stage.Stage
		}
	}
	return domain.AlertContent{
		Title:             "Advanced chronic kidney disease",
		Description:       fmt.Sprintf("eGFR corresponds to KDIGO stage %s.", stageText),
		RecommendedAction: "Nephrology referral and renal replacement therapy planning",
	}
}

func renalAnemia(s *domain.PatientSnapshot) (bool, error) {
	if s.Labs.Hemoglobin == nil || s.Labs.EGFR == nil {
		return false, nil
	}
	return *s.Labs.Hemoglobin < 10 && *s.Labs.EGFR < 60, nil
}

func dialysisKtVLow(s *domain.PatientSnapshot) (bool, error) {
	if s.Dialysis == nil || s.Dialysis.KtV == nil {
		return false, nil
	}
	return *s.Dialysis.KtV < 1.2, nil
}

func dialysisIDWGHigh(s *domain.PatientSnapshot) (bool, error) {
	if s.Dialysis == nil || s.Dialysis.InterdialyticWeightGainKg == nil {
		return false, nil
	}
	gain := *s.Dialysis.InterdialyticWeightGainKg
	if s.Demographics.WeightKg != nil && *s.Demographics.WeightKg > 0 {
		return gain/(*s.Demographics.WeightKg) > 0.045, nil
	}
	return gain > 4, nil
}

func bpAtLeast(systolic, diastolic float64) PredicateFunc {
	return func(s *domain.PatientSnapshot) (bool, error) {
		sbp, dbp := s.Vitals.SystolicBP, s.Vitals.DiastolicBP
		return (sbp != nil && *sbp >= systolic) || (dbp != nil && *dbp >= diastolic), nil
	}
}

// bpStage2 fires for grade 2 hypertension but stays silent in crisis range,
// where the crisis rule takes over.
func bpStage2(s *domain.PatientSnapshot) (bool, error) {
	stage2, _ := bpAtLeast(160, 100)(s)
	crisis, _ := bpAtLeast(180, 120)(s)
	return stage2 && !crisis, nil
}

func bpAlert(title, action string) AlertFunc {
	return func(s *domain.PatientSnapshot) domain.AlertContent {
		sbp, dbp := 0.0, 0.0
		if s.Vitals.SystolicBP != nil {
			sbp = *s.Vitals.SystolicBP
		}
		if s.Vitals.DiastolicBP != nil {
			dbp = *s.Vitals.DiastolicBP
		}
		return domain.AlertContent{
			Title:             title,
			Description:       fmt.Sprintf("Blood pressure %.0f/%.0f mmHg.", sbp, dbp),
			RecommendedAction: action,
		}
	}
}

func lvefReduced(s *domain.PatientSnapshot) (bool, error) {
	if s.Cardiology == nil || s.Cardiology.LVEF == nil {
		return false, nil
	}
	return *s.Cardiology.LVEF < 40, nil
}

func qtcSeverelyProlonged(s *domain.PatientSnapshot) (bool, error) {
	if s.Cardiology == nil || s.Cardiology.QTMs == nil || s.Vitals.HeartRate == nil {
		return false, nil
	}
	qtc, err := formulas.CorrectedQT(*s.Cardiology.QTMs, *s.Vitals.HeartRate, formulas.Bazett)
	if err != nil {
		return false, err
	}
	return qtc.QTcMs >= 500, nil
}

// Oral anticoagulants recognized for the AF anticoagulation-gap rule.
var anticoagulants = []string{"warfarin", "apixaban", "rivaroxaban", "dabigatran", "edoxaban", "acenocoumarol", "fluindione"}

func afWithoutAnticoagulation(s *domain.PatientSnapshot) (bool, error) {
	if s.Cardiology == nil || !s.Cardiology.AtrialFibrillation {
		return false, nil
	}
	if s.Cardiology.OnAnticoagulation {
		return false, nil
	}
	for _, drug := range anticoagulants {
		if s.OnMedication(drug) {
			return false, nil
		}
	}
	return true, nil
}

func sepsisFlag(s *domain.PatientSnapshot) (bool, error) {
	t, hr := s.Vitals.TemperatureC, s.Vitals.HeartRate
	if t == nil || hr == nil {
		return false, nil
	}
	return *t >= 38.3 && *hr > 100, nil
}

func severeObesity(s *domain.PatientSnapshot) (bool, error) {
	w, h := s.Demographics.WeightKg, s.Demographics.HeightCm
	if w == nil || h == nil {
		return false, nil
	}
	bmi, err := formulas.BodyMassIndex(*w, *h)
	if err != nil {
		return false, err
	}
	return bmi.BMI >= 35, nil
}

func severeObesityAlert(s *domain.PatientSnapshot) domain.AlertContent {
	description := "Body mass index is at or above 35."
	if s.Demographics.WeightKg != nil && s.Demographics.HeightCm != nil {
		if bmi, err := formulas.BodyMassIndex(*s.Demographics.WeightKg, *s.Demographics.HeightCm); err == nil {
			description = fmt.Sprintf("Body mass index %.1f (%s).", bmi.BMI, bmi.Category)
		}
	}
	return domain.AlertContent{
		Title:             "Severe obesity",
		Description:       description,
		RecommendedAction: "Multidisciplinary weight management; screen for metabolic comorbidities",
	}
}

func ocularHypertension(s *domain.PatientSnapshot) (bool, error) {
	if s.Ophthalmology == nil {
		return false, nil
	}
	r, l := s.Ophthalmology.IOPRight, s.Ophthalmology.IOPLeft
	return (r != nil && *r > 21) || (l != nil && *l > 21), nil
}

func ocularHypertensionAlert(s *domain.PatientSnapshot) domain.AlertContent {
	parts := ""
	if s.Ophthalmology != nil {
		if s.Ophthalmology.IOPRight != nil {
			parts += fmt.Sprintf(" right %.0f mmHg", *s.Ophthalmology.IOPRight)
		}
		if s.Ophthalmology.IOPLeft != nil {
			parts += fmt.Sprintf(" left %.0f mmHg", *s.Ophthalmology.IOPLeft)
		}
	}
	return domain.AlertContent{
		Title:             "Ocular hypertension",
		Description:       fmt.Sprintf("Intraocular pressure above 21 mmHg:%s.", parts),
		RecommendedAction: "Gonioscopy, pachymetry and glaucoma risk assessment",
	}
}

func cupDiscSuspicious(s *domain.PatientSnapshot) (bool, error) {
	if s.Ophthalmology == nil || s.Ophthalmology.CupDiscRatio == nil {
		return false, nil
	}
	return *s.Ophthalmology.CupDiscRatio >= 0.7, nil
}
