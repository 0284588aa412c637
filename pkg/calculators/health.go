package calculators

import (
	"github.com/goliatone/go-calckit/pkg/formula"
	"github.com/goliatone/go-calckit/pkg/model"
)

const (
	poundKg = 0.45359237
	inchM   = 0.0254
)

func health() []model.Definition {
	return []model.Definition{
		{
			ID:          "bmi",
			Title:       "BMI Calculator",
			Description: "Body mass index and weight class from height and weight, in metric or imperial units.",
			Category:    model.CategoryHealth,
			Keywords:    []string{"bmi", "body mass index", "weight", "obesity"},
			Inputs: []model.InputField{
				choice("system", "Units", options("metric", "Metric (kg, cm)", "imperial", "Imperial (lb, in)")),
				number("weight-kg", "Weight", withUnit("kg"), withMin(positive), withMax(500), visibleIf(`system == "metric"`)),
				number("height-cm", "Height", withUnit("cm"), withMin(positive), withMax(300), visibleIf(`system == "metric"`)),
				number("weight-lb", "Weight", withUnit("lb"), withMin(positive), withMax(1100), visibleIf(`system == "imperial"`)),
				number("height-in", "Height", withUnit("in"), withMin(positive), withMax(120), visibleIf(`system == "imperial"`)),
			},
			Outputs: []model.OutputField{
				{ID: "bmi", Label: "BMI", Unit: "kg/m²", Format: precision(1), Calculate: bmi},
				{ID: "class", Label: "Category", Calculate: func(_ model.Values, prev model.Results) model.Result {
					v, ok := prev.Float("bmi")
					if !ok {
						return model.Pending()
					}
					return model.Str(formula.BMIClass(v))
				}},
			},
		},
		{
			ID:          "calorie-needs",
			Title:       "Daily Calorie Calculator",
			Description: "Basal metabolic rate and daily energy needs using the Mifflin-St Jeor equation.",
			Category:    model.CategoryHealth,
			Keywords:    []string{"calories", "bmr", "tdee", "diet"},
			Inputs: []model.InputField{
				choice("sex", "Sex", options("female", "Female", "male", "Male")),
				number("age", "Age", withUnit("years"), withMin(model.Float(15)), withMax(100)),
				number("weight", "Weight", withUnit("kg"), withMin(positive)),
				number("height", "Height", withUnit("cm"), withMin(positive)),
				choice("activity", "Activity", options(
					"sedentary", "Sedentary",
					"light", "Lightly active",
					"moderate", "Moderately active",
					"active", "Very active",
					"extra", "Extra active",
				)),
			},
			Outputs: []model.OutputField{
				{ID: "bmr", Label: "BMR", Unit: "kcal/day", Format: precision(0), Calculate: func(in model.Values, _ model.Results) model.Result {
					v, ok := in.Floats("weight", "height", "age")
					if !ok {
						return model.Pending()
					}
					return model.Num(formula.BMR(v[0], v[1], v[2], in.String("sex") == "male"))
				}},
				{ID: "tdee", Label: "Daily calories", Unit: "kcal/day", Format: precision(0), Calculate: func(in model.Values, prev model.Results) model.Result {
					bmr, ok := prev.Float("bmr")
					factor, known := formula.ActivityFactors[in.String("activity")]
					if !ok || !known {
						return model.Pending()
					}
					return model.Num(bmr * factor)
				}},
			},
		},
		{
			ID:          "water-intake",
			Title:       "Water Intake Calculator",
			Description: "Recommended daily water intake from body weight and exercise.",
			Category:    model.CategoryHealth,
			Keywords:    []string{"hydration", "water", "drink"},
			Inputs: []model.InputField{
				number("weight", "Weight", withUnit("kg"), withMin(positive)),
				number("exercise", "Exercise", withUnit("min/day"), withMin(zero), withDefault(model.Number(0))),
			},
			Outputs: []model.OutputField{
				{ID: "litres", Label: "Water", Unit: "l/day", Format: precision(1), Calculate: pure(func(v []float64) float64 {
					return v[0]*0.033 + v[1]/30*0.35
				}, "weight", "exercise")},
			},
		},
	}
}

func bmi(in model.Values, _ model.Results) model.Result {
	var weight, height float64
	switch in.String("system") {
	case "imperial":
		v, ok := in.Floats("weight-lb", "height-in")
		if !ok {
			return model.Pending()
		}
		weight, height = v[0]*poundKg, v[1]*inchM
	default:
		v, ok := in.Floats("weight-kg", "height-cm")
		if !ok {
			return model.Pending()
		}
		weight, height = v[0], v[1]/100
	}
	out, err := formula.BMI(weight, height)
	if err != nil {
		return model.Invalid(message(err))
	}
	return model.Num(out)
}
