package formula

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Unit is one entry of a linear conversion table: value * Factor converts to
// the table's base unit.
type Unit struct {
	Symbol string
	Label  string
	Factor float64
}

// UnitTable groups units that share a base unit.
type UnitTable struct {
	Base  string
	Units []Unit
}

// Length, mass, volume, area, speed and time tables, keyed by symbol.
var (
	Length = UnitTable{Base: "m", Units: []Unit{
		{Symbol: "mm", Label: "Millimetres", Factor: 0.001},
		{Symbol: "cm", Label: "Centimetres", Factor: 0.01},
		{Symbol: "m", Label: "Metres", Factor: 1},
		{Symbol: "km", Label: "Kilometres", Factor: 1000},
		{Symbol: "in", Label: "Inches", Factor: 0.0254},
		{Symbol: "ft", Label: "Feet", Factor: 0.3048},
		{Symbol: "yd", Label: "Yards", Factor: 0.9144},
		{Symbol: "mi", Label: "Miles", Factor: 1609.344},
	}}
	Mass = UnitTable{Base: "kg", Units: []Unit{
		{Symbol: "mg", Label: "Milligrams", Factor: 1e-6},
		{Symbol: "g", Label: "Grams", Factor: 0.001},
		{Symbol: "kg", Label: "Kilograms", Factor: 1},
		{Symbol: "t", Label: "Tonnes", Factor: 1000},
		{Symbol: "oz", Label: "Ounces", Factor: 0.028349523125},
		{Symbol: "lb", Label: "Pounds", Factor: 0.45359237},
		{Symbol: "st", Label: "Stones", Factor: 6.35029318},
	}}
	Volume = UnitTable{Base: "l", Units: []Unit{
		{Symbol: "ml", Label: "Millilitres", Factor: 0.001},
		{Symbol: "l", Label: "Litres", Factor: 1},
		{Symbol: "m3", Label: "Cubic metres", Factor: 1000},
		{Symbol: "tsp", Label: "Teaspoons (US)", Factor: 0.00492892159375},
		{Symbol: "tbsp", Label: "Tablespoons (US)", Factor: 0.01478676478125},
		{Symbol: "cup", Label: "Cups (US)", Factor: 0.2365882365},
		{Symbol: "gal", Label: "Gallons (US)", Factor: 3.785411784},
	}}
	Speed = UnitTable{Base: "m/s", Units: []Unit{
		{Symbol: "m/s", Label: "Metres per second", Factor: 1},
		{Symbol: "km/h", Label: "Kilometres per hour", Factor: 1 / 3.6},
		{Symbol: "mph", Label: "Miles per hour", Factor: 0.44704},
		{Symbol: "kn", Label: "Knots", Factor: 1852.0 / 3600},
	}}
)

// ErrUnknownUnit is returned when a symbol is missing from a table.
var ErrUnknownUnit = errors.New("formula: unknown unit")

// Lookup returns the unit registered under symbol.
func (t UnitTable) Lookup(symbol string) (Unit, bool) {
	for _, u := range t.Units {
		if u.Symbol == symbol {
			return u, true
		}
	}
	return Unit{}, false
}

// Convert scales v from one unit to another through the base unit.
func (t UnitTable) Convert(v float64, from, to string) (float64, error) {
	src, ok := t.Lookup(from)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownUnit, from)
	}
	dst, ok := t.Lookup(to)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownUnit, to)
	}
	return v * src.Factor / dst.Factor, nil
}

// Temperature scales.
const (
	Celsius    = "c"
	Fahrenheit = "f"
	Kelvin     = "k"
)

// ConvertTemperature converts between Celsius, Fahrenheit and Kelvin.
func ConvertTemperature(v float64, from, to string) (float64, error) {
	var kelvin float64
	switch from {
	case Celsius:
		kelvin = v + 273.15
	case Fahrenheit:
		kelvin = (v-32)*5/9 + 273.15
	case Kelvin:
		kelvin = v
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownUnit, from)
	}
	if kelvin < 0 {
		return 0, errors.New("formula: temperature below absolute zero")
	}
	switch to {
	case Celsius:
		return kelvin - 273.15, nil
	case Fahrenheit:
		return (kelvin-273.15)*9/5 + 32, nil
	case Kelvin:
		return kelvin, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownUnit, to)
}

// ConvertBase rewrites digits written in base from into base to. Bases range
// from 2 to 36; letters are accepted in either case and emitted lowercase.
// Arbitrarily large integers are supported, fractions are not.
func ConvertBase(digits string, from, to int) (string, error) {
	if from < 2 || from > 36 || to < 2 || to > 36 {
		return "", fmt.Errorf("formula: base must be between 2 and 36")
	}
	clean := strings.TrimSpace(strings.ToLower(digits))
	if clean == "" {
		return "", errors.New("formula: number is empty")
	}
	n, ok := new(big.Int).SetString(clean, from)
	if !ok {
		return "", fmt.Errorf("formula: %q is not a valid base %d number", digits, from)
	}
	return n.Text(to), nil
}
