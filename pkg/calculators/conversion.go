package calculators

import (
	"github.com/goliatone/go-calckit/pkg/formula"
	"github.com/goliatone/go-calckit/pkg/model"
)

func conversion() []model.Definition {
	defs := []model.Definition{
		tableConverter("length-converter", "Length Converter", "metres, feet, miles", formula.Length, "m", "ft", "distance", "metric", "imperial"),
		tableConverter("weight-converter", "Weight Converter", "kilograms, pounds, ounces", formula.Mass, "kg", "lb", "mass", "weight"),
		tableConverter("volume-converter", "Volume Converter", "litres, cups, gallons", formula.Volume, "l", "gal", "capacity", "cooking"),
		tableConverter("speed-converter", "Speed Converter", "km/h, mph, knots", formula.Speed, "km/h", "mph", "velocity"),
		{
			ID:          "temperature-converter",
			Title:       "Temperature Converter",
			Description: "Convert between Celsius, Fahrenheit and Kelvin.",
			Category:    model.CategoryConversion,
			Keywords:    []string{"temperature", "celsius", "fahrenheit", "kelvin"},
			Inputs: []model.InputField{
				number("value", "Temperature"),
				choice("from", "From", temperatureOptions(), withDefault(model.Text(formula.Celsius))),
				choice("to", "To", temperatureOptions(), withDefault(model.Text(formula.Fahrenheit))),
			},
			Outputs: []model.OutputField{
				{ID: "converted", Label: "Result", Format: precision(2), Calculate: func(in model.Values, _ model.Results) model.Result {
					v, ok := in.Float("value")
					if !ok {
						return model.Pending()
					}
					out, err := formula.ConvertTemperature(v, in.String("from"), in.String("to"))
					if err != nil {
						return model.Invalid(message(err))
					}
					return model.Num(out)
				}},
			},
		},
	}
	return defs
}

func temperatureOptions() []model.Option {
	return options(formula.Celsius, "Celsius (°C)", formula.Fahrenheit, "Fahrenheit (°F)", formula.Kelvin, "Kelvin (K)")
}

func tableConverter(id, title, examples string, table formula.UnitTable, from, to string, keywords ...string) model.Definition {
	return model.Definition{
		ID:          id,
		Title:       title,
		Description: "Convert between " + examples + " and other units.",
		Category:    model.CategoryConversion,
		Keywords:    append([]string{"convert", "units"}, keywords...),
		Inputs: []model.InputField{
			{
				ID:    "value",
				Label: "Value",
				Type:  model.InputTypeNumber,
				PlaceholderFunc: func(v model.Values) string {
					if unit := v.String("from"); unit != "" {
						return "1 " + unit
					}
					return ""
				},
			},
			choice("from", "From", unitOptions(table), withDefault(model.Text(from))),
			choice("to", "To", unitOptions(table), withDefault(model.Text(to))),
		},
		Outputs: []model.OutputField{
			{ID: "converted", Label: "Result", Format: model.Format{Notation: model.NotationStandard}, Calculate: func(in model.Values, _ model.Results) model.Result {
				v, ok := in.Float("value")
				if !ok {
					return model.Pending()
				}
				out, err := table.Convert(v, in.String("from"), in.String("to"))
				if err != nil {
					return model.Invalid(message(err))
				}
				return model.Num(out)
			}},
		},
	}
}
