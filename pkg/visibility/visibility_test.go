package visibility_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/visibility"
)

func TestVisiblePrefersPredicate(t *testing.T) {
	input := model.InputField{
		ID:        "height",
		Condition: func(v model.Values) bool { return v.String("unit") == "metric" },
		VisibleIf: "never",
	}
	called := false
	eval := visibility.EvaluatorFunc(func(string, string, visibility.Context) (bool, error) {
		called = true
		return false, nil
	})

	ok, err := visibility.Visible(input, model.Values{"unit": model.Text("metric")}, eval, nil)
	if err != nil || !ok {
		t.Fatalf("expected predicate to show input, got %v (%v)", ok, err)
	}
	if called {
		t.Fatalf("expected evaluator to be skipped when a predicate exists")
	}
}

func TestVisibleDelegatesRule(t *testing.T) {
	input := model.InputField{ID: "feet", VisibleIf: `unit == "imperial"`}
	var seen visibility.Context
	eval := visibility.EvaluatorFunc(func(id, rule string, ctx visibility.Context) (bool, error) {
		if id != "feet" || rule != input.VisibleIf {
			return false, errors.New("unexpected arguments")
		}
		seen = ctx
		return true, nil
	})

	ok, err := visibility.Visible(input, model.Values{"unit": model.Text("imperial")}, eval, map[string]any{"locale": "en"})
	if err != nil || !ok {
		t.Fatalf("expected visible, got %v (%v)", ok, err)
	}
	if seen.Values["unit"] != "imperial" || seen.Extras["locale"] != "en" {
		t.Fatalf("unexpected context %+v", seen)
	}
}

func TestVisibleWithoutRules(t *testing.T) {
	ok, err := visibility.Visible(model.InputField{ID: "a", VisibleIf: "x"}, nil, nil, nil)
	if err != nil || !ok {
		t.Fatalf("expected nil evaluator to leave input visible")
	}
}
