package compute_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-calckit/pkg/compute"
	"github.com/goliatone/go-calckit/pkg/model"
)

func squareDefinition() model.Definition {
	return model.Definition{
		ID: "square-area",
		Inputs: []model.InputField{
			{ID: "side", Label: "Side", Type: model.InputTypeNumber, Min: model.Float(0), Max: model.Float(1000)},
		},
		Outputs: []model.OutputField{
			{ID: "area", Label: "Area", Calculate: func(in model.Values, _ model.Results) model.Result {
				side, ok := in.Float("side")
				if !ok {
					return model.Pending()
				}
				return model.Num(side * side)
			}},
			{Label: "Double Area", Calculate: func(_ model.Values, prev model.Results) model.Result {
				area, ok := prev.Float("area")
				if !ok {
					return model.Pending()
				}
				return model.Num(area * 2)
			}},
		},
	}
}

func TestCoerce(t *testing.T) {
	def := model.Definition{
		Inputs: []model.InputField{
			{ID: "n", Type: model.InputTypeNumber},
			{ID: "comma", Type: model.InputTypeNumber},
			{ID: "grouped", Type: model.InputTypeNumber},
			{ID: "bad", Type: model.InputTypeNumber},
			{ID: "blank", Type: model.InputTypeNumber, Default: model.Number(7)},
			{ID: "flag", Type: model.InputTypeCheckbox},
			{ID: "unset-flag", Type: model.InputTypeCheckbox, Default: model.Bool(true)},
			{ID: "cleared-flag", Type: model.InputTypeCheckbox, Default: model.Bool(true)},
			{ID: "choice", Type: model.InputTypeSelect, Default: model.Text("a")},
			{ID: "note", Type: model.InputTypeText},
		},
	}
	raw := map[string]string{
		"n":       " 5 ",
		"comma":   "2,5",
		"grouped": "1,234.5",
		"bad":     "five",
		"blank":   "  ",
		"flag":    "on",
		"note":    "hello",
		"ignored": "x",

		// unchecked boxes post their hidden "false" companion
		"cleared-flag": "false",
	}

	got := compute.Coerce(def, raw)
	want := model.Values{
		"n":            model.Number(5),
		"comma":        model.Number(2.5),
		"grouped":      model.Number(1234.5),
		"bad":          model.Text("five"),
		"blank":        model.Number(7),
		"flag":         model.Bool(true),
		"unset-flag":   model.Bool(true),
		"cleared-flag": model.Bool(false),
		"choice":       model.Text("a"),
		"note":         model.Text("hello"),
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b model.Value) bool { return a.Equal(b) })); diff != "" {
		t.Fatalf("coerced values mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluateChainsOutputs(t *testing.T) {
	eval, err := compute.Run(squareDefinition(), map[string]string{"side": "5"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !eval.OK() || !eval.Ready() {
		t.Fatalf("expected successful evaluation: %+v", eval.Errors)
	}
	if got := eval.Results["area"].Float(); got != 25 {
		t.Fatalf("area = %v", got)
	}
	if got := eval.Results["double-area"].Float(); got != 50 {
		t.Fatalf("derived output keyed by slug = %v", got)
	}
	if eval.Outputs[1].Key != "double-area" {
		t.Fatalf("expected ordered outputs, got %+v", eval.Outputs)
	}
}

func TestEvaluatePendingAndRange(t *testing.T) {
	cases := []struct {
		name       string
		raw        map[string]string
		wantStatus model.Status
		wantError  string
	}{
		{name: "empty", raw: map[string]string{}, wantStatus: model.StatusPending},
		{name: "non numeric", raw: map[string]string{"side": "abc"}, wantStatus: model.StatusPending, wantError: compute.MsgNotNumber},
		{name: "below min", raw: map[string]string{"side": "-1"}, wantStatus: model.StatusInvalid, wantError: "Value must be at least 0"},
		{name: "above max", raw: map[string]string{"side": "1001"}, wantStatus: model.StatusInvalid, wantError: "Value must be at most 1000"},
		{name: "boundary", raw: map[string]string{"side": "1000"}, wantStatus: model.StatusValid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eval, err := compute.Run(squareDefinition(), tc.raw)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			for _, out := range eval.Outputs {
				if out.Result.Status != tc.wantStatus {
					t.Fatalf("output %q status = %s, want %s", out.Key, out.Result.Status, tc.wantStatus)
				}
			}
			if got := eval.Errors["side"].String(); got != tc.wantError {
				t.Fatalf("input error = %q, want %q", got, tc.wantError)
			}
		})
	}
}

func TestEvaluateRangeViolationOutranksNonNumeric(t *testing.T) {
	def := squareDefinition()
	def.Inputs = append(def.Inputs, model.InputField{ID: "scale", Label: "Scale", Type: model.InputTypeNumber, Min: model.Float(1)})

	eval, err := compute.Run(def, map[string]string{"side": "abc", "scale": "0"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(eval.Errors) != 2 {
		t.Fatalf("expected both inputs rejected, got %v", eval.Errors)
	}
	for _, out := range eval.Outputs {
		if out.Result.Status != model.StatusInvalid || out.Result.Message != compute.MsgFixInputs {
			t.Fatalf("output %q = %s (%q), want invalid", out.Key, out.Result.Status, out.Result.Message)
		}
	}
}

func TestEvaluateVisibility(t *testing.T) {
	def := model.Definition{
		ID: "visibility",
		Inputs: []model.InputField{
			{ID: "unit", Label: "Unit", Type: model.InputTypeSelect, Options: []model.Option{{Value: "metric"}, {Value: "imperial"}}},
			{ID: "cm", Label: "cm", Type: model.InputTypeNumber, Max: model.Float(10), VisibleIf: `unit == "metric"`},
			{ID: "in", Label: "in", Type: model.InputTypeNumber, Condition: func(v model.Values) bool { return v.String("unit") == "imperial" }},
			{ID: "rule", Label: "broken", Type: model.InputTypeText, VisibleIf: "unit = metric"},
		},
		Outputs: []model.OutputField{
			{ID: "seen", Label: "Seen", Calculate: func(in model.Values, _ model.Results) model.Result {
				return model.Str(in.Get("cm").String() + "|" + in.Get("in").String())
			}},
		},
	}

	eval, err := compute.Run(def, map[string]string{"unit": "imperial", "cm": "999", "in": "3"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := map[string]bool{"unit": true, "cm": false, "in": true, "rule": true}
	if diff := cmp.Diff(want, eval.Visible); diff != "" {
		t.Fatalf("visibility mismatch (-want +got):\n%s", diff)
	}
	if !eval.OK() {
		t.Fatalf("hidden inputs must not be range checked: %+v", eval.Errors)
	}
	if got := eval.Results["seen"].Value.String(); got != "|3" {
		t.Fatalf("hidden values must not reach calculate, got %q", got)
	}

	eval, _ = compute.Run(def, map[string]string{"unit": "kelvin"})
	if eval.Errors["unit"].Message != compute.MsgUnknownValue {
		t.Fatalf("expected unknown option error, got %+v", eval.Errors)
	}
}

func TestEvaluateRecoversPanics(t *testing.T) {
	def := squareDefinition()
	def.Outputs = append([]model.OutputField{{ID: "boom", Label: "Boom", Calculate: func(model.Values, model.Results) model.Result {
		var m map[string]int
		m["x"]++
		return model.Pending()
	}}}, def.Outputs...)

	eval, err := compute.Run(def, map[string]string{"side": "2"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if eval.Results["boom"].Status != model.StatusInvalid || eval.Results["boom"].Message != compute.MsgFailed {
		t.Fatalf("expected panic to become invalid result, got %+v", eval.Results["boom"])
	}
	if eval.Results["area"].Float() != 4 {
		t.Fatalf("expected later outputs to still run")
	}
}

func TestEvaluateRejectsBrokenDefinitions(t *testing.T) {
	_, err := compute.Evaluate(model.Definition{ID: "x", Inputs: []model.InputField{{ID: "a"}}, Outputs: []model.OutputField{{Label: "nil"}}}, nil)
	if !errors.Is(err, compute.ErrInvalidDefinition) {
		t.Fatalf("expected ErrInvalidDefinition, got %v", err)
	}
}
