package formulas

// BMIResult is the body mass index with its WHO classification, the fixed
// recommendations for that tier, and the ideal weight range for the
// patient's height.
//
// Reference: WHO Technical Report Series 894, Obesity: preventing and
// managing the global epidemic (2000).
type BMIResult struct {
	BMI              float64  `json:"bmi"`
	Category         string   `json:"category"`
	Recommendations  []string `json:"recommendations"`
	IdealWeightMinKg float64  `json:"ideal_weight_min_kg"`
	IdealWeightMaxKg float64  `json:"ideal_weight_max_kg"`
}

// WHO BMI categories.
const (
	BMIUnderweight = "Underweight"
	BMINormal      = "Normal weight"
	BMIOverweight  = "Overweight"
	BMIObesityI    = "Obesity class I"
	BMIObesityII   = "Obesity class II"
	BMIObesityIII  = "Obesity class III"
)

// Boundary BMIs used to derive the ideal weight range from height.
const (
	idealBMILow  = 18.5
	idealBMIHigh = 24.9
)

type bmiTier struct {
	upper           float64 // exclusive; the last tier is open-ended
	category        string
	recommendations []string
}

var bmiTiers = []bmiTier{
	{
		upper:    18.5,
		category: BMIUnderweight,
		recommendations: []string{
			"Nutritional assessment and weight gain support",
			"Screen for underlying causes of low weight",
		},
	},
	{
		upper:    25,
		category: BMINormal,
		recommendations: []string{
			"Maintain current weight through balanced diet and regular activity",
		},
	},
	{
		upper:    30,
		category: BMIOverweight,
		recommendations: []string{
			"Lifestyle counselling: diet and at least 150 min/week of moderate activity",
			"Monitor blood pressure, glucose and lipids",
		},
	},
	{
		upper:    35,
		category: BMIObesityI,
		recommendations: []string{
			"Structured weight loss program targeting 5-10% body weight",
			"Screen for diabetes, dyslipidemia and sleep apnea",
		},
	},
	{
		upper:    40,
		category: BMIObesityII,
		recommendations: []string{
			"Intensive multidisciplinary weight management",
			"Consider pharmacotherapy in addition to lifestyle measures",
		},
	},
	{
		upper:    -1,
		category: BMIObesityIII,
		recommendations: []string{
			"Referral to specialized obesity service",
			"Evaluate eligibility for bariatric surgery",
			"Aggressive management of cardiovascular comorbidities",
		},
	},
}

// BodyMassIndex computes BMI = weight / height² (height in meters), rounded
// to one decimal, together with its six-tier WHO category and the ideal
// weight range obtained by applying the boundary BMIs 18.5 and 24.9 to the
// patient's height.
func BodyMassIndex(weightKg, heightCm float64) (*BMIResult, error) {
	if err := validateWeight(weightKg); err != nil {
		return nil, err
	}
	if err := validateHeight(heightCm); err != nil {
		return nil, err
	}

	heightM := heightCm / 100
	bmi := round1(weightKg / (heightM * heightM))

	tier := bmiTiers[len(bmiTiers)-1]
	for _, t := range bmiTiers {
		if t.upper > 0 && bmi < t.upper {
			tier = t
			break
		}
	}

	recs := make([]string, len(tier.recommendations))
	copy(recs, tier.recommendations)

	return &BMIResult{
		BMI:              bmi,
		Category:         tier.category,
		Recommendations:  recs,
		IdealWeightMinKg: round1(idealBMILow * heightM * heightM),
		IdealWeightMaxKg: round1(idealBMIHigh * heightM * heightM),
	}, nil
}
