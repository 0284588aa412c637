package calculators

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-calckit/pkg/formula"
	"github.com/goliatone/go-calckit/pkg/model"
)

func statistics() []model.Definition {
	return []model.Definition{
		{
			ID:          "mean-median-mode",
			Title:       "Mean, Median and Mode Calculator",
			Description: "Average, median, mode and range of a list of numbers.",
			Category:    model.CategoryStatistics,
			Keywords:    []string{"average", "mean", "median", "mode", "range"},
			Inputs: []model.InputField{
				input("numbers", "Numbers", model.InputTypeText, withPlaceholder("2 4 4 4 5 5 7 9"), withWidget("textarea"), withHelp("Separate numbers with spaces, commas or new lines")),
			},
			Outputs: []model.OutputField{
				{ID: "count", Label: "Count", Calculate: sample(func(v []float64) (model.Result, error) { return model.Num(float64(len(v))), nil })},
				{ID: "mean", Label: "Mean", Format: precision(4), Calculate: sampleStat(formula.Mean)},
				{ID: "median", Label: "Median", Calculate: sampleStat(formula.Median)},
				{ID: "mode", Label: "Mode", Calculate: sample(func(v []float64) (model.Result, error) {
					modes := formula.Mode(v)
					if len(modes) == 0 {
						return model.Str("none"), nil
					}
					parts := make([]string, len(modes))
					for i, m := range modes {
						parts[i] = strconv.FormatFloat(m, 'f', -1, 64)
					}
					return model.Str(strings.Join(parts, ", ")), nil
				})},
				{ID: "range", Label: "Range", Calculate: sampleStat(formula.Range)},
			},
		},
		{
			ID:          "standard-deviation",
			Title:       "Standard Deviation Calculator",
			Description: "Variance and standard deviation of a population or a sample.",
			Category:    model.CategoryStatistics,
			Keywords:    []string{"standard deviation", "variance", "sigma", "spread"},
			Inputs: []model.InputField{
				input("numbers", "Numbers", model.InputTypeText, withPlaceholder("2 4 4 4 5 5 7 9"), withWidget("textarea")),
				input("sample", "Data is a sample", model.InputTypeCheckbox, withHelp("Use n-1 in the denominator")),
			},
			Outputs: []model.OutputField{
				{ID: "variance", Label: "Variance", Format: precision(4), Calculate: func(in model.Values, prev model.Results) model.Result {
					isSample := in.Get("sample").Bool()
					return sample(func(v []float64) (model.Result, error) {
						out, err := formula.Variance(v, isSample)
						return model.Num(out), err
					})(in, prev)
				}},
				{ID: "stddev", Label: "Standard deviation", Format: precision(4), Calculate: func(in model.Values, prev model.Results) model.Result {
					isSample := in.Get("sample").Bool()
					return sample(func(v []float64) (model.Result, error) {
						out, err := formula.StdDev(v, isSample)
						return model.Num(out), err
					})(in, prev)
				}},
			},
		},
	}
}

// sample parses the "numbers" list input before handing it to fn.
func sample(fn func([]float64) (model.Result, error)) model.CalculateFunc {
	return func(in model.Values, _ model.Results) model.Result {
		raw := in.String("numbers")
		if strings.TrimSpace(raw) == "" {
			return model.Pending()
		}
		values, err := formula.ParseNumberList(raw)
		if err != nil {
			return model.Invalid(message(err))
		}
		out, err := fn(values)
		if err != nil {
			return model.Invalid(message(err))
		}
		return out
	}
}

func sampleStat(fn func([]float64) (float64, error)) model.CalculateFunc {
	return sample(func(v []float64) (model.Result, error) {
		out, err := fn(v)
		return model.Num(out), err
	})
}
