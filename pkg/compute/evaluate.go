package compute

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/visibility"
	"github.com/goliatone/go-calckit/pkg/visibility/expr"
)

// Input error messages. Renderers translate them by using the message as the
// catalog key.
const (
	MsgNotNumber    = "Enter a number"
	MsgBelowMin     = "Value must be at least %s"
	MsgAboveMax     = "Value must be at most %s"
	MsgUnknownValue = "Choose one of the listed options"
	MsgFixInputs    = "Fix the highlighted inputs"
	MsgFailed       = "This result could not be calculated"
)

// ErrInvalidDefinition wraps structural problems that prevent evaluation.
var ErrInvalidDefinition = errors.New("compute: invalid definition")

// InputError describes a rejected input value.
type InputError struct {
	Message string `json:"message"`
	Args    []any  `json:"args,omitempty"`
}

func (e InputError) String() string {
	if len(e.Args) == 0 {
		return e.Message
	}
	return fmt.Sprintf(e.Message, e.Args...)
}

// OutputResult pairs an output with its computed result in declaration order.
type OutputResult struct {
	Output model.OutputField `json:"-"`
	Key    string            `json:"id"`
	Label  string            `json:"label"`
	Result model.Result      `json:"result"`
}

// Evaluation is the outcome of one evaluation pass.
type Evaluation struct {
	Values  model.Values          `json:"values"`
	Visible map[string]bool       `json:"visible"`
	Errors  map[string]InputError `json:"errors,omitempty"`
	Results model.Results         `json:"-"`
	Outputs []OutputResult        `json:"outputs"`
}

// OK reports whether every visible input was accepted.
func (e Evaluation) OK() bool { return len(e.Errors) == 0 }

// Ready reports whether at least one output produced a valid result.
func (e Evaluation) Ready() bool {
	for _, out := range e.Outputs {
		if out.Result.Valid() {
			return true
		}
	}
	return false
}

// Option customises evaluation.
type Option func(*config)

type config struct {
	evaluator visibility.Evaluator
	extras    map[string]any
}

// WithEvaluator overrides the visibleIf rule evaluator.
func WithEvaluator(e visibility.Evaluator) Option {
	return func(c *config) { c.evaluator = e }
}

// WithExtras exposes request scoped values to visibleIf rules under the
// `extras.` prefix.
func WithExtras(extras map[string]any) Option {
	return func(c *config) { c.extras = extras }
}

var defaultEvaluator = expr.New()

// Run coerces raw and evaluates def in one step.
func Run(def model.Definition, raw map[string]string, opts ...Option) (Evaluation, error) {
	return Evaluate(def, Coerce(def, raw), opts...)
}

// Evaluate checks visibility and constraints of every input and then runs each
// output in declaration order, passing the results of earlier outputs. Hidden
// inputs are neither checked nor passed to calculate functions. When any
// visible input is rejected no calculate function runs: text that is not a
// number leaves every output pending, while a range or option violation makes
// every output invalid. Both are reported in Errors. A panicking calculate
// function yields an invalid result for that output only.
func Evaluate(def model.Definition, values model.Values, opts ...Option) (Evaluation, error) {
	if err := def.Check(); err != nil {
		return Evaluation{}, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	cfg := config{evaluator: defaultEvaluator}
	for _, opt := range opts {
		opt(&cfg)
	}

	eval := Evaluation{
		Values:  make(model.Values, len(values)),
		Visible: make(map[string]bool, len(def.Inputs)),
		Results: make(model.Results, len(def.Outputs)),
	}
	for key, value := range values {
		eval.Values[key] = value
	}

	violated := false

	for _, input := range def.Inputs {
		visible, err := visibility.Visible(input, values, cfg.evaluator, cfg.extras)
		if err != nil {
			// a broken rule must not hide inputs from the user
			visible = true
		}
		eval.Visible[input.ID] = visible
		if !visible {
			delete(eval.Values, input.ID)
			continue
		}
		if problem, ok := CheckInput(input, values.Get(input.ID)); ok {
			if eval.Errors == nil {
				eval.Errors = make(map[string]InputError)
			}
			eval.Errors[input.ID] = problem
			if problem.Message != MsgNotNumber {
				violated = true
			}
		}
	}

	for _, output := range def.Outputs {
		key := output.Key()
		var result model.Result
		switch {
		case eval.OK():
			result = invoke(output.Calculate, eval.Values, eval.Results)
		case violated:
			result = model.Invalid(MsgFixInputs)
		default:
			result = model.Pending()
		}
		eval.Results[key] = result
		eval.Outputs = append(eval.Outputs, OutputResult{Output: output, Key: key, Label: output.Label, Result: result})
	}
	return eval, nil
}

// CheckInput validates one visible input value. Empty values are accepted;
// they make the outputs that need them pending.
func CheckInput(input model.InputField, value model.Value) (InputError, bool) {
	if value.IsEmpty() {
		return InputError{}, false
	}
	switch input.Type {
	case model.InputTypeNumber:
		f, ok := value.Float()
		if !ok {
			return InputError{Message: MsgNotNumber}, true
		}
		if input.Min != nil && f < *input.Min {
			return InputError{Message: MsgBelowMin, Args: []any{formatBound(*input.Min)}}, true
		}
		if input.Max != nil && f > *input.Max {
			return InputError{Message: MsgAboveMax, Args: []any{formatBound(*input.Max)}}, true
		}
	case model.InputTypeSelect:
		if len(input.Options) > 0 && !input.HasOption(value.String()) {
			return InputError{Message: MsgUnknownValue}, true
		}
	}
	return InputError{}, false
}

func invoke(fn model.CalculateFunc, values model.Values, prev model.Results) (result model.Result) {
	defer func() {
		if recovered := recover(); recovered != nil {
			result = model.Invalid(MsgFailed)
		}
	}()
	return fn(values, prev)
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
