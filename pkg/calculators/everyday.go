package calculators

import (
	"github.com/goliatone/go-calckit/pkg/formula"
	"github.com/goliatone/go-calckit/pkg/model"
)

func everyday() []model.Definition {
	return []model.Definition{
		{
			ID:          "tip-calculator",
			Title:       "Tip Calculator",
			Description: "Tip amount and per person share of a restaurant bill.",
			Category:    model.CategoryEveryday,
			Keywords:    []string{"tip", "gratuity", "split", "bill"},
			Inputs: []model.InputField{
				number("bill", "Bill", withMin(zero), withUnit("$")),
				number("tip", "Tip", withMin(zero), withUnit("%"), withDefault(model.Number(15))),
				number("people", "People", withMin(model.Float(1)), withStep(1), withDefault(model.Number(1))),
			},
			Outputs: []model.OutputField{
				{ID: "tip-amount", Label: "Tip", Currency: "$", Format: precision(2), Calculate: numeric(func(v []float64) (float64, error) {
					tip, _, _, err := formula.Tip(v[0], v[1], int(v[2]))
					return tip, err
				}, "bill", "tip", "people")},
				{ID: "total", Label: "Total", Currency: "$", Format: precision(2), Calculate: numeric(func(v []float64) (float64, error) {
					_, total, _, err := formula.Tip(v[0], v[1], int(v[2]))
					return total, err
				}, "bill", "tip", "people")},
				{ID: "each", Label: "Per person", Currency: "$", Format: precision(2), Calculate: numeric(func(v []float64) (float64, error) {
					_, _, each, err := formula.Tip(v[0], v[1], int(v[2]))
					return each, err
				}, "bill", "tip", "people")},
			},
		},
		{
			ID:          "fuel-cost",
			Title:       "Fuel Cost Calculator",
			Description: "Fuel needed and cost of a trip from distance, consumption and price.",
			Category:    model.CategoryEveryday,
			Keywords:    []string{"fuel", "gas", "petrol", "trip"},
			Inputs: []model.InputField{
				number("distance", "Distance", withMin(zero), withUnit("km")),
				number("consumption", "Consumption", withMin(positive), withUnit("l/100km"), withDefault(model.Number(7))),
				number("price", "Fuel price", withMin(zero), withUnit("$/l")),
			},
			Outputs: []model.OutputField{
				{ID: "fuel", Label: "Fuel needed", Unit: "l", Format: precision(2), Calculate: pure(func(v []float64) float64 { return v[0] * v[1] / 100 }, "distance", "consumption")},
				{ID: "cost", Label: "Trip cost", Currency: "$", Format: precision(2), Calculate: func(in model.Values, prev model.Results) model.Result {
					fuel, ok := prev.Float("fuel")
					price, okP := in.Float("price")
					if !ok || !okP {
						return model.Pending()
					}
					return model.Num(fuel * price)
				}},
			},
		},
		{
			ID:          "unit-price",
			Title:       "Unit Price Comparison",
			Description: "Compare the price per unit of two package sizes.",
			Category:    model.CategoryEveryday,
			Keywords:    []string{"grocery", "price per unit", "compare", "deal"},
			Inputs: []model.InputField{
				number("price-a", "Price A", withMin(zero)),
				number("size-a", "Size A", withMin(positive)),
				number("price-b", "Price B", withMin(zero)),
				number("size-b", "Size B", withMin(positive)),
			},
			Outputs: []model.OutputField{
				{ID: "unit-a", Label: "Unit price A", Format: precision(4), Calculate: numeric(divide, "price-a", "size-a")},
				{ID: "unit-b", Label: "Unit price B", Format: precision(4), Calculate: numeric(divide, "price-b", "size-b")},
				{ID: "better", Label: "Better deal", Calculate: func(_ model.Values, prev model.Results) model.Result {
					a, okA := prev.Float("unit-a")
					b, okB := prev.Float("unit-b")
					switch {
					case !okA || !okB:
						return model.Pending()
					case a < b:
						return model.Str("A")
					case b < a:
						return model.Str("B")
					}
					return model.Str("=")
				}},
			},
		},
	}
}

func divide(v []float64) (float64, error) {
	if v[1] == 0 {
		return 0, errZeroDivisor
	}
	return v[0] / v[1], nil
}
