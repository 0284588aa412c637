package calculators

import (
	"strings"

	"github.com/goliatone/go-calckit/pkg/formula"
	"github.com/goliatone/go-calckit/pkg/model"
)

var (
	zero     = model.Float(0)
	positive = model.Float(0.000001)
)

func precision(p int) model.Format {
	return model.Format{Notation: model.NotationFixed, Precision: model.Precision(p)}
}

type inputOption func(*model.InputField)

func withUnit(unit string) inputOption {
	return func(f *model.InputField) { f.Unit = unit }
}

func withMin(min *float64) inputOption {
	return func(f *model.InputField) { f.Min = min }
}

func withMax(max float64) inputOption {
	return func(f *model.InputField) { f.Max = model.Float(max) }
}

func withStep(step float64) inputOption {
	return func(f *model.InputField) { f.Step = model.Float(step) }
}

func withDefault(v model.Value) inputOption {
	return func(f *model.InputField) { f.Default = v }
}

func withPlaceholder(p string) inputOption {
	return func(f *model.InputField) { f.Placeholder = p }
}

func withHelp(text string) inputOption {
	return func(f *model.InputField) { f.HelpText = text }
}

func withWidget(name string) inputOption {
	return func(f *model.InputField) { f.Widget = name }
}

func visibleIf(rule string) inputOption {
	return func(f *model.InputField) { f.VisibleIf = rule }
}

func input(id, label string, kind model.InputType, opts ...inputOption) model.InputField {
	field := model.InputField{ID: id, Label: label, Type: kind}
	for _, opt := range opts {
		opt(&field)
	}
	return field
}

func number(id, label string, opts ...inputOption) model.InputField {
	return input(id, label, model.InputTypeNumber, opts...)
}

func choice(id, label string, options []model.Option, opts ...inputOption) model.InputField {
	field := input(id, label, model.InputTypeSelect, opts...)
	field.Options = options
	if field.Default.IsZero() && len(options) > 0 {
		field.Default = model.Text(options[0].Value)
	}
	return field
}

func options(pairs ...string) []model.Option {
	out := make([]model.Option, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.Option{Value: pairs[i], Label: pairs[i+1]})
	}
	return out
}

func unitOptions(table formula.UnitTable) []model.Option {
	out := make([]model.Option, len(table.Units))
	for i, u := range table.Units {
		out[i] = model.Option{Value: u.Symbol, Label: u.Label}
	}
	return out
}

// numeric builds a calculate function over the listed numeric inputs. Any
// missing or non numeric input leaves the result pending; an error from fn
// marks it invalid.
func numeric(fn func(v []float64) (float64, error), ids ...string) model.CalculateFunc {
	return func(in model.Values, _ model.Results) model.Result {
		values, ok := in.Floats(ids...)
		if !ok {
			return model.Pending()
		}
		out, err := fn(values)
		if err != nil {
			return model.Invalid(message(err))
		}
		return model.Num(out)
	}
}

// pure lifts an infallible formula into numeric.
func pure(fn func(v []float64) float64, ids ...string) model.CalculateFunc {
	return numeric(func(v []float64) (float64, error) { return fn(v), nil }, ids...)
}

// derived computes from the valid result of an earlier output.
func derived(key string, fn func(float64) float64) model.CalculateFunc {
	return func(_ model.Values, prev model.Results) model.Result {
		v, ok := prev.Float(key)
		if !ok {
			return model.Pending()
		}
		return model.Num(fn(v))
	}
}

func round2(v float64) float64 { return formula.Round(v, 2) }

// message turns a formula error into a user facing sentence.
func message(err error) string {
	text := strings.TrimPrefix(err.Error(), "formula: ")
	if text == "" {
		return text
	}
	return strings.ToUpper(text[:1]) + text[1:]
}
