package calculators

import (
	"math"

	"github.com/goliatone/go-calckit/pkg/formula"
	"github.com/goliatone/go-calckit/pkg/model"
)

func geometry() []model.Definition {
	return []model.Definition{
		{
			ID:          "square-area",
			Title:       "Square Area Calculator",
			Description: "Area and perimeter of a square from the length of its side.",
			Category:    model.CategoryGeometry,
			Keywords:    []string{"square", "area", "perimeter"},
			Inputs: []model.InputField{
				number("side", "Side length", withMin(zero), withPlaceholder("5")),
			},
			Outputs: []model.OutputField{
				{ID: "area", Label: "Area", Calculate: pure(func(v []float64) float64 { return v[0] * v[0] }, "side")},
				{ID: "perimeter", Label: "Perimeter", Calculate: pure(func(v []float64) float64 { return 4 * v[0] }, "side")},
			},
		},
		{
			ID:          "rectangle-area",
			Title:       "Rectangle Area Calculator",
			Description: "Area, perimeter and diagonal of a rectangle.",
			Category:    model.CategoryGeometry,
			Keywords:    []string{"rectangle", "area", "diagonal"},
			Inputs: []model.InputField{
				number("length", "Length", withMin(zero)),
				number("width", "Width", withMin(zero)),
			},
			Outputs: []model.OutputField{
				{ID: "area", Label: "Area", Calculate: pure(func(v []float64) float64 { return v[0] * v[1] }, "length", "width")},
				{ID: "perimeter", Label: "Perimeter", Calculate: pure(func(v []float64) float64 { return 2 * (v[0] + v[1]) }, "length", "width")},
				{ID: "diagonal", Label: "Diagonal", Format: precision(4), Calculate: pure(func(v []float64) float64 { return math.Hypot(v[0], v[1]) }, "length", "width")},
			},
		},
		{
			ID:          "circle-area",
			Title:       "Circle Area Calculator",
			Description: "Area, circumference and diameter of a circle from its radius.",
			Category:    model.CategoryGeometry,
			Keywords:    []string{"circle", "pi", "radius", "circumference"},
			Inputs: []model.InputField{
				number("radius", "Radius", withMin(zero), withPlaceholder("10")),
			},
			Outputs: []model.OutputField{
				{ID: "area", Label: "Area", Format: precision(2), Calculate: pure(func(v []float64) float64 { return round2(math.Pi * v[0] * v[0]) }, "radius")},
				{ID: "circumference", Label: "Circumference", Format: precision(2), Calculate: pure(func(v []float64) float64 { return round2(2 * math.Pi * v[0]) }, "radius")},
				{ID: "diameter", Label: "Diameter", Calculate: pure(func(v []float64) float64 { return 2 * v[0] }, "radius")},
			},
		},
		{
			ID:          "triangle-area",
			Title:       "Triangle Area Calculator",
			Description: "Area of a triangle from its base and height.",
			Category:    model.CategoryGeometry,
			Keywords:    []string{"triangle", "area"},
			Inputs: []model.InputField{
				number("base", "Base", withMin(zero)),
				number("height", "Height", withMin(zero)),
			},
			Outputs: []model.OutputField{
				{ID: "area", Label: "Area", Calculate: pure(func(v []float64) float64 { return v[0] * v[1] / 2 }, "base", "height")},
			},
		},
		{
			ID:          "cube-surface-area",
			Title:       "Cube Surface Area Calculator",
			Description: "Surface area and volume of a cube from its edge length.",
			Category:    model.CategoryGeometry,
			Keywords:    []string{"cube", "surface", "volume"},
			Inputs: []model.InputField{
				number("edge", "Edge length", withMin(zero), withPlaceholder("5")),
			},
			Outputs: []model.OutputField{
				{ID: "area", Label: "Surface area", Calculate: pure(func(v []float64) float64 { return 6 * v[0] * v[0] }, "edge")},
				{ID: "volume", Label: "Volume", Calculate: pure(func(v []float64) float64 { return math.Pow(v[0], 3) }, "edge")},
			},
		},
		{
			ID:          "sphere-volume",
			Title:       "Sphere Volume Calculator",
			Description: "Volume and surface area of a sphere from its radius.",
			Category:    model.CategoryGeometry,
			Keywords:    []string{"sphere", "ball", "volume"},
			Inputs: []model.InputField{
				number("radius", "Radius", withMin(zero)),
			},
			Outputs: []model.OutputField{
				{ID: "volume", Label: "Volume", Format: precision(2), Calculate: pure(func(v []float64) float64 { return 4.0 / 3.0 * math.Pi * math.Pow(v[0], 3) }, "radius")},
				{ID: "surface", Label: "Surface area", Format: precision(2), Calculate: pure(func(v []float64) float64 { return 4 * math.Pi * v[0] * v[0] }, "radius")},
			},
		},
		{
			ID:          "cylinder-volume",
			Title:       "Cylinder Volume Calculator",
			Description: "Volume of a cylinder from its radius and height.",
			Category:    model.CategoryGeometry,
			Keywords:    []string{"cylinder", "tank", "volume"},
			Inputs: []model.InputField{
				number("radius", "Radius", withMin(zero), withUnit("m")),
				number("height", "Height", withMin(zero), withUnit("m")),
			},
			Outputs: []model.OutputField{
				{ID: "volume", Label: "Volume", Unit: "m³", Format: precision(2), Calculate: pure(func(v []float64) float64 { return math.Pi * v[0] * v[0] * v[1] }, "radius", "height")},
				{ID: "litres", Label: "Capacity", Unit: "l", Format: precision(2), Calculate: derived("volume", func(v float64) float64 { return v * 1000 })},
			},
		},
		{
			ID:          "pythagorean-theorem",
			Title:       "Pythagorean Theorem Calculator",
			Description: "Hypotenuse of a right triangle from its two legs.",
			Category:    model.CategoryGeometry,
			Keywords:    []string{"pythagoras", "hypotenuse", "right triangle"},
			Inputs: []model.InputField{
				number("a", "Leg a", withMin(zero)),
				number("b", "Leg b", withMin(zero)),
			},
			Outputs: []model.OutputField{
				{ID: "c", Label: "Hypotenuse c", Format: precision(4), Calculate: pure(func(v []float64) float64 { return math.Hypot(v[0], v[1]) }, "a", "b")},
				{ID: "angle", Label: "Angle opposite a", Unit: "°", Format: precision(2), Calculate: numeric(func(v []float64) (float64, error) {
					if v[1] == 0 {
						return 0, errZeroLeg
					}
					return formula.Round(math.Atan(v[0]/v[1])*180/math.Pi, 6), nil
				}, "a", "b")},
			},
		},
	}
}
