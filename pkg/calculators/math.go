package calculators

import (
	"math"

	"github.com/goliatone/go-calckit/pkg/formula"
	"github.com/goliatone/go-calckit/pkg/model"
)

func mathematics() []model.Definition {
	return []model.Definition{
		{
			ID:          "percentage",
			Title:       "Percentage Calculator",
			Description: "Work out a percentage of a number.",
			Category:    model.CategoryMath,
			Keywords:    []string{"percent", "%", "proportion"},
			Inputs: []model.InputField{
				number("percentage", "Percentage", withUnit("%"), withPlaceholder("20")),
				number("base", "Of", withPlaceholder("100")),
			},
			Outputs: []model.OutputField{
				{ID: "result", Label: "Result", Calculate: pure(func(v []float64) float64 { return formula.Percent(v[0], v[1]) }, "percentage", "base")},
			},
		},
		{
			ID:          "percentage-change",
			Title:       "Percentage Change Calculator",
			Description: "Relative increase or decrease between two values.",
			Category:    model.CategoryMath,
			Keywords:    []string{"percent", "increase", "decrease", "growth"},
			Inputs: []model.InputField{
				number("from", "Original value"),
				number("to", "New value"),
			},
			Outputs: []model.OutputField{
				{ID: "change", Label: "Change", Unit: "%", Format: precision(2), Calculate: numeric(func(v []float64) (float64, error) {
					out, ok := formula.PercentChange(v[0], v[1])
					if !ok {
						return 0, errZeroDivisor
					}
					return out, nil
				}, "from", "to")},
				{ID: "difference", Label: "Difference", Calculate: pure(func(v []float64) float64 { return v[1] - v[0] }, "from", "to")},
			},
		},
		{
			ID:          "what-percent",
			Title:       "What Percent Is X of Y",
			Description: "Express one number as a percentage of another.",
			Category:    model.CategoryMath,
			Keywords:    []string{"percent", "ratio", "share"},
			Inputs: []model.InputField{
				number("part", "Part"),
				number("whole", "Whole"),
			},
			Outputs: []model.OutputField{
				{ID: "percent", Label: "Percentage", Unit: "%", Format: precision(2), Calculate: numeric(func(v []float64) (float64, error) {
					out, ok := formula.PercentOf(v[0], v[1])
					if !ok {
						return 0, errZeroDivisor
					}
					return out, nil
				}, "part", "whole")},
			},
		},
		{
			ID:          "square-root",
			Title:       "Square Root Calculator",
			Description: "Square root and cube root of a number.",
			Category:    model.CategoryMath,
			Keywords:    []string{"root", "sqrt", "radical"},
			Inputs: []model.InputField{
				number("value", "Number"),
			},
			Outputs: []model.OutputField{
				{ID: "sqrt", Label: "Square root", Format: precision(6), Calculate: numeric(func(v []float64) (float64, error) {
					if v[0] < 0 {
						return 0, errNegativeRoot
					}
					return math.Sqrt(v[0]), nil
				}, "value")},
				{ID: "cbrt", Label: "Cube root", Format: precision(6), Calculate: pure(func(v []float64) float64 { return math.Cbrt(v[0]) }, "value")},
			},
		},
		{
			ID:          "exponent",
			Title:       "Exponent Calculator",
			Description: "Raise a base to a power.",
			Category:    model.CategoryMath,
			Keywords:    []string{"power", "exponent"},
			Inputs: []model.InputField{
				number("base", "Base"),
				number("exponent", "Exponent"),
			},
			Outputs: []model.OutputField{
				{ID: "result", Label: "Result", Format: model.Format{Notation: model.NotationStandard}, Calculate: pure(func(v []float64) float64 { return math.Pow(v[0], v[1]) }, "base", "exponent")},
			},
		},
		{
			ID:          "gcd-lcm",
			Title:       "GCD and LCM Calculator",
			Description: "Greatest common divisor and least common multiple of two integers.",
			Category:    model.CategoryMath,
			Keywords:    []string{"gcd", "lcm", "divisor", "multiple"},
			Inputs: []model.InputField{
				number("a", "First number", withStep(1)),
				number("b", "Second number", withStep(1)),
			},
			Outputs: []model.OutputField{
				{ID: "gcd", Label: "GCD", Calculate: numeric(func(v []float64) (float64, error) {
					a, b, err := integers(v[0], v[1])
					if err != nil {
						return 0, err
					}
					return float64(gcd(a, b)), nil
				}, "a", "b")},
				{ID: "lcm", Label: "LCM", Calculate: func(in model.Values, prev model.Results) model.Result {
					g, ok := prev.Float("gcd")
					if !ok || g == 0 {
						return model.Pending()
					}
					v, _ := in.Floats("a", "b")
					return model.Num(math.Abs(v[0]*v[1]) / g)
				}},
			},
		},
		{
			ID:          "number-base-converter",
			Title:       "Number Base Converter",
			Description: "Convert integers between binary, octal, decimal, hexadecimal and any base up to 36.",
			Category:    model.CategoryMath,
			Keywords:    []string{"binary", "hex", "octal", "radix"},
			Inputs: []model.InputField{
				input("number", "Number", model.InputTypeText, withPlaceholder("ff")),
				choice("from", "From base", baseOptions(), withDefault(model.Text("10"))),
				choice("to", "To base", baseOptions(), withDefault(model.Text("2"))),
			},
			Outputs: []model.OutputField{
				{ID: "converted", Label: "Converted", Calculate: func(in model.Values, _ model.Results) model.Result {
					digits := in.String("number")
					from, okFrom := in.Float("from")
					to, okTo := in.Float("to")
					if digits == "" || !okFrom || !okTo {
						return model.Pending()
					}
					out, err := formula.ConvertBase(digits, int(from), int(to))
					if err != nil {
						return model.Invalid(message(err))
					}
					return model.Str(out)
				}},
			},
		},
	}
}

func baseOptions() []model.Option {
	return options("2", "Binary (2)", "8", "Octal (8)", "10", "Decimal (10)", "16", "Hexadecimal (16)", "36", "Base 36")
}

func integers(a, b float64) (int64, int64, error) {
	if a != math.Trunc(a) || b != math.Trunc(b) {
		return 0, 0, errNotInteger
	}
	return int64(a), int64(b), nil
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
