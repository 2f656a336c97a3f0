// Package formulas provides the stateless clinical calculators used by the
// CDSS core: CKD staging, Cockcroft-Gault creatinine clearance, body mass
// index, and heart-rate-corrected QT interval. Every formula validates its
// physiological domain and rejects out-of-range input instead of producing
// a numerically valid but clinically meaningless result.
package formulas

import "github.com/cdss-core/internal/domain"

// Physiological input bounds. Values outside these ranges are treated as
// data entry errors, not extreme physiology.
const (
	MinAgeYears = 0
	MaxAgeYears = 150

	MinWeightKg = 20.0
	MaxWeightKg = 500.0

	MinHeightCm = 50.0
	MaxHeightCm = 280.0

	MinCreatinineMgDL = 0.1
	MaxCreatinineMgDL = 20.0

	MinHeartRateBPM = 20.0
	MaxHeartRateBPM = 300.0

	MinQTMs = 100.0
	MaxQTMs = 800.0

	MinEGFR = 0.0
	MaxEGFR = 300.0
)

func validateAge(age int) error {
	if age < MinAgeYears || age > MaxAgeYears {
		return domain.NewValidationError("age", "age must be between 0 and 150 years", age)
	}
	return nil
}

func validateWeight(weightKg float64) error {
	if weightKg < MinWeightKg || weightKg > MaxWeightKg {
		return domain.NewValidationError("weight_kg", "weight must be between 20 and 500 kg", weightKg)
	}
	return nil
}

func validateHeight(heightCm float64) error {
	if heightCm < MinHeightCm || heightCm > MaxHeightCm {
		return domain.NewValidationError("height_cm", "height must be between 50 and 280 cm", heightCm)
	}
	return nil
}

func validateCreatinine(creatinine float64) error {
	if creatinine < MinCreatinineMgDL || creatinine > MaxCreatinineMgDL {
		return domain.NewValidationError("creatinine", "creatinine must be between 0.1 and 20 mg/dL", creatinine)
	}
	return nil
}

func validateHeartRate(heartRate float64) error {
	if heartRate < MinHeartRateBPM || heartRate > MaxHeartRateBPM {
		return domain.NewValidationError("heart_rate", "heart rate must be between 20 and 300 bpm", heartRate)
	}
	return nil
}

func validateQT(qtMs float64) error {
	if qtMs < MinQTMs || qtMs > MaxQTMs {
		return domain.NewValidationError("qt_ms", "QT interval must be between 100 and 800 ms", qtMs)
	}
	return nil
}

func validateEGFR(egfr float64) error {
	if egfr < MinEGFR || egfr > MaxEGFR {
		return domain.NewValidationError("egfr", "eGFR must be between 0 and 300 mL/min/1.73m²", egfr)
	}
	return nil
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return roundN(v, 10)
}

func roundN(v, factor float64) float64 {
	if v >= 0 {
		return float64(int64(v*factor+0.5)) / factor
	}
	return float64(int64(v*factor-0.5)) / factor
}
