package formula

import "math"

// Round rounds v half away from zero to the given number of fraction digits.
func Round(v float64, digits int) float64 {
	if digits < 0 {
		return v
	}
	scale := math.Pow(10, float64(digits))
	rounded := math.Round(v*scale) / scale
	if math.IsInf(rounded, 0) || math.IsNaN(rounded) {
		return v
	}
	return rounded
}

// Percent returns p percent of base.
func Percent(p, base float64) float64 {
	return p / 100 * base
}

// PercentOf returns what percentage part is of whole. ok is false when whole
// is zero.
func PercentOf(part, whole float64) (float64, bool) {
	if whole == 0 {
		return 0, false
	}
	return part / whole * 100, true
}

// PercentChange returns the relative change from old to new in percent.
func PercentChange(from, to float64) (float64, bool) {
	if from == 0 {
		return 0, false
	}
	return (to - from) / math.Abs(from) * 100, true
}
