package calculators

import (
	"github.com/goliatone/go-calckit/pkg/model"
)

func physics() []model.Definition {
	return []model.Definition{
		{
			ID:          "speed-distance-time",
			Title:       "Speed, Distance and Time Calculator",
			Description: "Solve for speed, distance or time given the other two.",
			Category:    model.CategoryPhysics,
			Keywords:    []string{"speed", "velocity", "distance", "travel time"},
			Inputs: []model.InputField{
				choice("solve", "Solve for", options("speed", "Speed", "distance", "Distance", "time", "Time")),
				number("speed", "Speed", withUnit("km/h"), withMin(zero), visibleIf(`solve != "speed"`)),
				number("distance", "Distance", withUnit("km"), withMin(zero), visibleIf(`solve != "distance"`)),
				number("time", "Time", withUnit("h"), withMin(zero), visibleIf(`solve != "time"`)),
			},
			Outputs: []model.OutputField{
				{ID: "answer", Label: "Answer", Format: precision(2), Calculate: func(in model.Values, _ model.Results) model.Result {
					switch in.String("solve") {
					case "distance":
						v, ok := in.Floats("speed", "time")
						if !ok {
							return model.Pending()
						}
						return model.Num(v[0] * v[1])
					case "time":
						v, ok := in.Floats("distance", "speed")
						if !ok {
							return model.Pending()
						}
						if v[1] == 0 {
							return model.Invalid(errZeroDivisor.Error())
						}
						return model.Num(v[0] / v[1])
					default:
						v, ok := in.Floats("distance", "time")
						if !ok {
							return model.Pending()
						}
						if v[1] == 0 {
							return model.Invalid(errZeroDivisor.Error())
						}
						return model.Num(v[0] / v[1])
					}
				}},
			},
		},
		{
			ID:          "ohms-law",
			Title:       "Ohm's Law Calculator",
			Description: "Current and power from voltage and resistance.",
			Category:    model.CategoryPhysics,
			Keywords:    []string{"ohm", "voltage", "current", "resistance", "electricity"},
			Inputs: []model.InputField{
				number("voltage", "Voltage", withUnit("V")),
				number("resistance", "Resistance", withUnit("Ω"), withMin(positive)),
			},
			Outputs: []model.OutputField{
				{ID: "current", Label: "Current", Unit: "A", Format: precision(4), Calculate: numeric(divide, "voltage", "resistance")},
				{ID: "power", Label: "Power", Unit: "W", Format: precision(4), Calculate: func(in model.Values, prev model.Results) model.Result {
					current, ok := prev.Float("current")
					voltage, okV := in.Float("voltage")
					if !ok || !okV {
						return model.Pending()
					}
					return model.Num(current * voltage)
				}},
			},
		},
		{
			ID:          "kinetic-energy",
			Title:       "Kinetic Energy Calculator",
			Description: "Kinetic energy and momentum of a moving mass.",
			Category:    model.CategoryPhysics,
			Keywords:    []string{"energy", "momentum", "joule"},
			Inputs: []model.InputField{
				number("mass", "Mass", withUnit("kg"), withMin(zero)),
				number("velocity", "Velocity", withUnit("m/s")),
			},
			Outputs: []model.OutputField{
				{ID: "energy", Label: "Kinetic energy", Unit: "J", Format: precision(2), Calculate: pure(func(v []float64) float64 { return 0.5 * v[0] * v[1] * v[1] }, "mass", "velocity")},
				{ID: "momentum", Label: "Momentum", Unit: "kg·m/s", Format: precision(2), Calculate: pure(func(v []float64) float64 { return v[0] * v[1] }, "mass", "velocity")},
			},
		},
		{
			ID:          "density",
			Title:       "Density Calculator",
			Description: "Density of an object from its mass and volume.",
			Category:    model.CategoryPhysics,
			Keywords:    []string{"density", "mass", "volume"},
			Inputs: []model.InputField{
				number("mass", "Mass", withUnit("kg"), withMin(zero)),
				number("volume", "Volume", withUnit("m³"), withMin(positive)),
			},
			Outputs: []model.OutputField{
				{ID: "density", Label: "Density", Unit: "kg/m³", Format: precision(3), Calculate: numeric(divide, "mass", "volume")},
			},
		},
	}
}
