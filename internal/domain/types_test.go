package domain

import (
	"testing"
)

func TestModuleConstants(t *testing.T) {
	tests := []struct {
		name     string
		value    Module
		expected string
	}{
		{"Dialysis", ModuleDialysis, "dialyse"},
		{"Cardiology", ModuleCardiology, "cardiology"},
		{"Ophthalmology", ModuleOphthalmology, "ophthalmology"},
		{"General", ModuleGeneral, "general"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.value) != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, string(tt.value))
			}
			if !tt.value.IsValid() {
				t.Errorf("Expected %s to be valid", tt.value)
			}
		})
	}
}

func TestModuleValidation(t *testing.T) {
	invalid := []Module{"", "cardio", "Dialyse", "renal"}
	for _, m := range invalid {
		if m.IsValid() {
			t.Errorf("Expected module %q to be invalid", m)
		}
	}
}

func TestSeverityRanking(t *testing.T) {
	ordered := []Severity{SeverityMinor, SeverityModerate, SeverityMajor, SeverityContraindicated}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Rank() <= ordered[i-1].Rank() {
			t.Errorf("Expected %s to rank above %s", ordered[i], ordered[i-1])
		}
	}

	if Severity("unknown").Rank() >= SeverityMinor.Rank() {
		t.Error("Expected unknown severity to rank below minor")
	}
	if Severity("unknown").IsValid() {
		t.Error("Expected unknown severity to be invalid")
	}
}

func TestSexValidation(t *testing.T) {
	if !MALE.IsValid() || !FEMALE.IsValid() {
		t.Error("Expected male and female to be valid")
	}
	if Sex("other").IsValid() || Sex("").IsValid() {
		t.Error("Expected unrecognized sex values to be invalid")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("egfr", "eGFR must be between 0 and 300 mL/min/1.73m²", 450.0)
	expected := "validation error for field 'egfr': eGFR must be between 0 and 300 mL/min/1.73m²"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
}

func TestRuleEvaluationErrorUnwrap(t *testing.T) {
	cause := NewValidationError("qt_ms", "out of range", 9000.0)
	err := NewRuleEvaluationError("CARD-QTC-LONG", cause)

	if err.RuleID != "CARD-QTC-LONG" {
		t.Errorf("Expected rule ID to be preserved, got %s", err.RuleID)
	}
	if err.Unwrap() != cause {
		t.Error("Expected Unwrap to return the predicate failure")
	}
}
