package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdss-core/internal/domain"
)

func fptr(v float64) *float64 { return &v }

func firesFor(t *testing.T, ruleID string, s *domain.PatientSnapshot) bool {
	t.Helper()
	rule, ok := DefaultRuleCatalog().Get(ruleID)
	require.True(t, ok, "rule %s not in default catalog", ruleID)
	fired, err := rule.Predicate(s)
	require.NoError(t, err)
	return fired
}

func TestPotassiumRuleBoundaries(t *testing.T) {
	tests := []struct {
		potassium float64
		critical  bool
		high      bool
	}{
		{4.5, false, false},
		{5.4, false, false},
		{5.5, false, true},
		{6.4, false, true},
		{6.5, true, false},
		{7.2, true, false},
	}

	for _, tt := range tests {
		s := &domain.PatientSnapshot{Labs: domain.Labs{Potassium: fptr(tt.potassium)}}
		assert.Equal(t, tt.critical, firesFor(t, "RENAL-K-CRITICAL", s), "K=%.1f critical", tt.potassium)
		assert.Equal(t, tt.high, firesFor(t, "RENAL-K-HIGH", s), "K=%.1f high", tt.potassium)
	}
}

func TestAbsentLabNeverFires(t *testing.T) {
	empty := &domain.PatientSnapshot{}
	for _, id := range []string{"RENAL-K-CRITICAL", "RENAL-K-HIGH", "MED-INR-HIGH", "GEN-SPO2-LOW", "CARD-TROPONIN-HIGH"} {
		assert.False(t, firesFor(t, id, empty), "rule %s fired on empty snapshot", id)
	}
}

func TestAdvancedCKDRule(t *testing.T) {
	stage4 := &domain.PatientSnapshot{Labs: domain.Labs{EGFR: fptr(22)}}
	assert.True(t, firesFor(t, "RENAL-CKD-ADVANCED", stage4))

	stage3 := &domain.PatientSnapshot{Labs: domain.Labs{EGFR: fptr(45)}}
	assert.False(t, firesFor(t, "RENAL-CKD-ADVANCED", stage3))

	// An established dialysis patient is already under renal follow-up.
	onDialysis := &domain.PatientSnapshot{
		Labs:     domain.Labs{EGFR: fptr(8)},
		Dialysis: &domain.DialysisData{},
	}
	assert.False(t, firesFor(t, "RENAL-CKD-ADVANCED", onDialysis))
}

func TestDialysisRulesRequireExtension(t *testing.T) {
	noExt := &domain.PatientSnapshot{Labs: domain.Labs{Phosphorus: fptr(7.0)}}
	assert.False(t, firesFor(t, "DIAL-PHOS-HIGH", noExt))

	withExt := &domain.PatientSnapshot{
		Labs:     domain.Labs{Phosphorus: fptr(7.0)},
		Dialysis: &domain.DialysisData{},
	}
	assert.True(t, firesFor(t, "DIAL-PHOS-HIGH", withExt))
}

func TestKtVRule(t *testing.T) {
	low := &domain.PatientSnapshot{Dialysis: &domain.DialysisData{KtV: fptr(1.0)}}
	assert.True(t, firesFor(t, "DIAL-KTV-LOW", low))

	adequate := &domain.PatientSnapshot{Dialysis: &domain.DialysisData{KtV: fptr(1.4)}}
	assert.False(t, firesFor(t, "DIAL-KTV-LOW", adequate))

	unknown := &domain.PatientSnapshot{Dialysis: &domain.DialysisData{}}
	assert.False(t, firesFor(t, "DIAL-KTV-LOW", unknown))
}

func TestInterdialyticWeightGainRule(t *testing.T) {
	// With a known body weight the 4.5% relative threshold applies.
	relative := &domain.PatientSnapshot{
		Demographics: domain.Demographics{WeightKg: fptr(60)},
		Dialysis:     &domain.DialysisData{InterdialyticWeightGainKg: fptr(3.0)},
	}
	assert.True(t, firesFor(t, "DIAL-IDWG-HIGH", relative), "3 kg is 5%% of 60 kg")

	// Without body weight the absolute 4 kg threshold applies.
	absolute := &domain.PatientSnapshot{
		Dialysis: &domain.DialysisData{InterdialyticWeightGainKg: fptr(3.0)},
	}
	assert.False(t, firesFor(t, "DIAL-IDWG-HIGH", absolute))
}

func TestBloodPressureRulesDoNotOverlap(t *testing.T) {
	crisis := &domain.PatientSnapshot{
		Vitals: domain.Vitals{SystolicBP: fptr(190), DiastolicBP: fptr(110)},
	}
	assert.True(t, firesFor(t, "CARD-BP-CRISIS", crisis))
	assert.False(t, firesFor(t, "CARD-BP-STAGE2", crisis))

	grade2 := &domain.PatientSnapshot{
		Vitals: domain.Vitals{SystolicBP: fptr(165), DiastolicBP: fptr(95)},
	}
	assert.False(t, firesFor(t, "CARD-BP-CRISIS", grade2))
	assert.True(t, firesFor(t, "CARD-BP-STAGE2", grade2))
}

func TestQTcRuleUsesBazettCorrection(t *testing.T) {
	// QT 460 ms at 90 bpm corrects to well above 500 ms under Bazett.
	prolonged := &domain.PatientSnapshot{
		Vitals:     domain.Vitals{HeartRate: fptr(90)},
		Cardiology: &domain.CardiologyData{QTMs: fptr(460)},
	}
	assert.True(t, firesFor(t, "CARD-QTC-LONG", prolonged))

	// The same raw QT at 60 bpm stays below threshold.
	normal := &domain.PatientSnapshot{
		Vitals:     domain.Vitals{HeartRate: fptr(60)},
		Cardiology: &domain.CardiologyData{QTMs: fptr(460)},
	}
	assert.False(t, firesFor(t, "CARD-QTC-LONG", normal))
}

func TestAtrialFibrillationAnticoagulationGap(t *testing.T) {
	af := func() *domain.PatientSnapshot {
		return &domain.PatientSnapshot{
			Cardiology: &domain.CardiologyData{AtrialFibrillation: true},
		}
	}

	assert.True(t, firesFor(t, "CARD-AF-NO-OAC", af()))

	flagged := af()
	flagged.Cardiology.OnAnticoagulation = true
	assert.False(t, firesFor(t, "CARD-AF-NO-OAC", flagged))

	medicated := af()
	medicated.Medications = []domain.Medication{{Name: "Apixaban"}}
	assert.False(t, firesFor(t, "CARD-AF-NO-OAC", medicated))

	noAF := &domain.PatientSnapshot{Cardiology: &domain.CardiologyData{}}
	assert.False(t, firesFor(t, "CARD-AF-NO-OAC", noAF))
}

func TestSepsisFlagNeedsBothVitals(t *testing.T) {
	both := &domain.PatientSnapshot{
		Vitals: domain.Vitals{TemperatureC: fptr(38.5), HeartRate: fptr(110)},
	}
	assert.True(t, firesFor(t, "GEN-SEPSIS-FLAG", both))

	feverOnly := &domain.PatientSnapshot{
		Vitals: domain.Vitals{TemperatureC: fptr(38.5)},
	}
	assert.False(t, firesFor(t, "GEN-SEPSIS-FLAG", feverOnly))
}

func TestSevereObesityRule(t *testing.T) {
	severe := &domain.PatientSnapshot{
		Demographics: domain.Demographics{WeightKg: fptr(110), HeightCm: fptr(170)},
	}
	assert.True(t, firesFor(t, "GEN-OBESITY-SEVERE", severe))

	overweight := &domain.PatientSnapshot{
		Demographics: domain.Demographics{WeightKg: fptr(80), HeightCm: fptr(170)},
	}
	assert.False(t, firesFor(t, "GEN-OBESITY-SEVERE", overweight))
}

func TestOcularHypertensionEitherEye(t *testing.T) {
	leftOnly := &domain.PatientSnapshot{
		Ophthalmology: &domain.OphthalmologyData{IOPRight: fptr(18), IOPLeft: fptr(24)},
	}
	assert.True(t, firesFor(t, "OPH-IOP-HIGH", leftOnly))

	normal := &domain.PatientSnapshot{
		Ophthalmology: &domain.OphthalmologyData{IOPRight: fptr(16), IOPLeft: fptr(17)},
	}
	assert.False(t, firesFor(t, "OPH-IOP-HIGH", normal))

	assert.False(t, firesFor(t, "OPH-IOP-HIGH", &domain.PatientSnapshot{}))
}
