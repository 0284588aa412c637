// Package visibility decides whether calculator inputs are shown, either from
// a Go predicate attached to the input or from a textual visibleIf rule
// evaluated by an Evaluator (see the expr subpackage).
package visibility

import "github.com/goliatone/go-calckit/pkg/model"

// Evaluator determines whether an input should be visible based on a rule
// string and the current input values.
type Evaluator interface {
	Eval(inputID, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values holds the current coerced
// input values as plain Go values while Extras lets callers inject request
// scoped facts such as the active locale (`extras.locale`).
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// FromValues builds a Context from coerced input values.
func FromValues(values model.Values, extras map[string]any) Context {
	return Context{Values: values.Plain(), Extras: extras}
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(inputID, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(inputID, rule string, ctx Context) (bool, error) {
	return fn(inputID, rule, ctx)
}

// Visible resolves the visibility of input. The Go predicate wins when both a
// predicate and a rule are present; inputs without either are visible. A nil
// evaluator treats rules as visible.
func Visible(input model.InputField, values model.Values, eval Evaluator, extras map[string]any) (bool, error) {
	if input.Condition != nil {
		return input.Condition(values), nil
	}
	if input.VisibleIf == "" || eval == nil {
		return true, nil
	}
	return eval.Eval(input.ID, input.VisibleIf, FromValues(values, extras))
}
