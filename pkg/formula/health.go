package formula

import "errors"

// BMI returns weight (kg) over height (m) squared.
func BMI(weightKg, heightM float64) (float64, error) {
	if heightM <= 0 || weightKg <= 0 {
		return 0, errors.New("formula: weight and height must be positive")
	}
	return weightKg / (heightM * heightM), nil
}

// BMIClass buckets a BMI into the WHO adult classes.
func BMIClass(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}

// BMR returns the Mifflin-St Jeor basal metabolic rate in kcal/day.
func BMR(weightKg, heightCm, ageYears float64, male bool) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*ageYears
	if male {
		return base + 5
	}
	return base - 161
}

// Activity multipliers applied to BMR to estimate daily energy expenditure.
var ActivityFactors = map[string]float64{
	"sedentary": 1.2,
	"light":     1.375,
	"moderate":  1.55,
	"active":    1.725,
	"extra":     1.9,
}
