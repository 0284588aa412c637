package formula

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrEmptySample is returned when a statistic needs at least one number.
var ErrEmptySample = errors.New("formula: sample is empty")

// ParseNumberList splits raw on commas, semicolons, whitespace and newlines
// and parses each token. A comma inside a token is never treated as a decimal
// separator; use spaces or semicolons to separate "1,5" style numbers.
func ParseNumberList(raw string) ([]float64, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		switch r {
		case ',', ';', ' ', '\t', '\n', '\r':
			return true
		}
		return false
	})
	out := make([]float64, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("formula: %q is not a number", field)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, ErrEmptySample
	}
	return out, nil
}

// Sum adds all values.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Mean returns the arithmetic mean.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptySample
	}
	return Sum(values) / float64(len(values)), nil
}

// Median returns the middle value, averaging the two central values for even
// sample sizes. The input slice is not modified.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptySample
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2, nil
	}
	return sorted[mid], nil
}

// Mode returns the most frequent values in ascending order. When every value
// occurs once the sample has no mode and nil is returned.
func Mode(values []float64) []float64 {
	counts := make(map[float64]int, len(values))
	best := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > best {
			best = counts[v]
		}
	}
	if best < 2 {
		return nil
	}
	var modes []float64
	for v, c := range counts {
		if c == best {
			modes = append(modes, v)
		}
	}
	sort.Float64s(modes)
	return modes
}

// Variance returns the population variance, or the sample variance (n-1
// denominator) when sample is true.
func Variance(values []float64, sample bool) (float64, error) {
	mean, err := Mean(values)
	if err != nil {
		return 0, err
	}
	denom := float64(len(values))
	if sample {
		if len(values) < 2 {
			return 0, errors.New("formula: sample variance needs at least two values")
		}
		denom--
	}
	var acc float64
	for _, v := range values {
		d := v - mean
		acc += d * d
	}
	return acc / denom, nil
}

// StdDev is the square root of Variance.
func StdDev(values []float64, sample bool) (float64, error) {
	v, err := Variance(values, sample)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// Range returns max minus min.
func Range(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptySample
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return hi - lo, nil
}
