// Package compute turns raw form submissions into typed values and evaluates
// a calculator definition against them. Evaluation is synchronous, never
// panics, and reports input problems per field instead of returning errors.
package compute

import (
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-calckit/pkg/model"
)

// Coerce converts raw string values keyed by input id into typed values.
// Numeric inputs become numbers when parseable (a lone comma is accepted as
// the decimal separator) and otherwise stay as the trimmed text so the
// evaluator can flag them. Missing or blank values fall back to the input
// default. Unknown keys are ignored.
func Coerce(def model.Definition, raw map[string]string) model.Values {
	values := make(model.Values, len(def.Inputs))
	for _, input := range def.Inputs {
		text, present := raw[input.ID]
		text = strings.TrimSpace(text)

		if input.Type == model.InputTypeCheckbox {
			switch {
			case present:
				values[input.ID] = model.Bool(parseFlag(text))
			case !input.Default.IsZero():
				values[input.ID] = model.Bool(input.Default.Bool())
			default:
				values[input.ID] = model.Bool(false)
			}
			continue
		}

		if text == "" {
			values[input.ID] = input.Default
			continue
		}
		if input.Type == model.InputTypeNumber {
			values[input.ID] = ParseNumber(text)
			continue
		}
		values[input.ID] = model.Text(text)
	}
	return values
}

// ParseNumber parses user typed numbers. "1,5" is read as 1.5; "1,234.5" has
// its grouping commas removed. Anything else that fails to parse is returned
// as text.
func ParseNumber(text string) model.Value {
	normalized := strings.ReplaceAll(strings.TrimSpace(text), " ", "")
	switch {
	case strings.Contains(normalized, ",") && strings.Contains(normalized, "."):
		normalized = strings.ReplaceAll(normalized, ",", "")
	case strings.Count(normalized, ",") == 1:
		normalized = strings.Replace(normalized, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return model.Text(text)
	}
	return model.Number(f)
}

func parseFlag(text string) bool {
	switch strings.ToLower(text) {
	case "1", "true", "on", "yes", "checked":
		return true
	}
	return false
}
