package domain

import "strings"

// PatientSnapshot is the immutable input to every evaluation call. It is a
// value object: the engine never mutates it and never learns where it came
// from. Every optional field uses a pointer so that "absent" stays distinct
// from a zero measurement: rules must treat absence as unknown, never as
// normal.
type PatientSnapshot struct {
	Demographics Demographics `json:"demographics"`
	Vitals       Vitals       `json:"vitals"`
	Labs         Labs         `json:"labs"`
	Conditions   []string     `json:"conditions,omitempty"`
	Medications  []Medication `json:"medications,omitempty"`
	Allergies    []string     `json:"allergies,omitempty"`

	// Module extensions. A nil extension means the patient is not followed
	// by that module; rules requiring one must treat nil as not applicable.
	Dialysis      *DialysisData      `json:"dialysis,omitempty"`
	Cardiology    *CardiologyData    `json:"cardiology,omitempty"`
	Ophthalmology *OphthalmologyData `json:"ophthalmology,omitempty"`
}

// Demographics carries the identity-free demographic inputs to formulas.
type Demographics struct {
	AgeYears int      `json:"age_years"`
	Sex      Sex      `json:"sex"`
	WeightKg *float64 `json:"weight_kg,omitempty"`
	HeightCm *float64 `json:"height_cm,omitempty"`
}

// Vitals holds the most recent vital signs, each optional.
type Vitals struct {
	SystolicBP       *float64 `json:"systolic_bp,omitempty"`
	DiastolicBP      *float64 `json:"diastolic_bp,omitempty"`
	HeartRate        *float64 `json:"heart_rate,omitempty"`
	TemperatureC     *float64 `json:"temperature_c,omitempty"`
	OxygenSaturation *float64 `json:"oxygen_saturation,omitempty"`
}

// Labs holds the most recent laboratory values, each optional.
//
// Units are the conventional ones used by the seeded rule catalog:
// creatinine mg/dL, eGFR mL/min/1.73m², potassium mmol/L, hemoglobin g/dL,
// HbA1c %, lipids mg/dL, calcium and phosphorus mg/dL, PTH pg/mL,
// albumin g/dL, BNP pg/mL, troponin ng/L.
type Labs struct {
	Creatinine       *float64 `json:"creatinine,omitempty"`
	EGFR             *float64 `json:"egfr,omitempty"`
	Potassium        *float64 `json:"potassium,omitempty"`
	Hemoglobin       *float64 `json:"hemoglobin,omitempty"`
	HbA1c            *float64 `json:"hba1c,omitempty"`
	TotalCholesterol *float64 `json:"total_cholesterol,omitempty"`
	LDL              *float64 `json:"ldl,omitempty"`
	HDL              *float64 `json:"hdl,omitempty"`
	Triglycerides    *float64 `json:"triglycerides,omitempty"`
	Calcium          *float64 `json:"calcium,omitempty"`
	Phosphorus       *float64 `json:"phosphorus,omitempty"`
	PTH              *float64 `json:"pth,omitempty"`
	Albumin          *float64 `json:"albumin,omitempty"`
	INR              *float64 `json:"inr,omitempty"`
	BNP              *float64 `json:"bnp,omitempty"`
	Troponin         *float64 `json:"troponin,omitempty"`
}

// Medication is one entry of the patient's active medication list.
type Medication struct {
	Name      string `json:"name"`
	Dose      string `json:"dose,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	ATCCode   string `json:"atc_code,omitempty"`
}

// DialysisData is the dialysis module extension.
type DialysisData struct {
	KtV                       *float64 `json:"ktv,omitempty"`
	URR                       *float64 `json:"urr,omitempty"`
	VascularAccess            string   `json:"vascular_access,omitempty"`
	InterdialyticWeightGainKg *float64 `json:"interdialytic_weight_gain_kg,omitempty"`
	SessionsPerWeek           *int     `json:"sessions_per_week,omitempty"`
}

// CardiologyData is the cardiology module extension.
type CardiologyData struct {
	LVEF               *float64 `json:"lvef,omitempty"`
	AtrialFibrillation bool     `json:"atrial_fibrillation,omitempty"`
	QTMs               *float64 `json:"qt_ms,omitempty"`
	NYHAClass          *int     `json:"nyha_class,omitempty"`
	OnAnticoagulation  bool     `json:"on_anticoagulation,omitempty"`
}

// OphthalmologyData is the ophthalmology module extension. Pressures in mmHg.
type OphthalmologyData struct {
	IOPRight     *float64 `json:"iop_right,omitempty"`
	IOPLeft      *float64 `json:"iop_left,omitempty"`
	CupDiscRatio *float64 `json:"cup_disc_ratio,omitempty"`
	VisualAcuity string   `json:"visual_acuity,omitempty"`
}

// HasCondition reports whether any recorded condition contains the given
// term, case-insensitively. Condition identifiers are free text or coded
// strings, so substring matching is the contract rule predicates rely on.
func (s *PatientSnapshot) HasCondition(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	for _, c := range s.Conditions {
		if strings.Contains(strings.ToLower(c), term) {
			return true
		}
	}
	return false
}

// OnMedication reports whether the medication list contains the given drug
// name, case-insensitively.
func (s *PatientSnapshot) OnMedication(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return false
	}
	for _, m := range s.Medications {
		if strings.ToLower(strings.TrimSpace(m.Name)) == name {
			return true
		}
	}
	return false
}

// HasAllergy reports whether any recorded allergy contains the given
// substance term, case-insensitively.
func (s *PatientSnapshot) HasAllergy(substance string) bool {
	substance = strings.ToLower(strings.TrimSpace(substance))
	if substance == "" {
		return false
	}
	for _, a := range s.Allergies {
		if strings.Contains(strings.ToLower(a), substance) {
			return true
		}
	}
	return false
}

// MedicationNames returns the medication list as plain names, preserving
// the list order.
func (s *PatientSnapshot) MedicationNames() []string {
	names := make([]string, 0, len(s.Medications))
	for _, m := range s.Medications {
		names = append(names, m.Name)
	}
	return names
}
