package expr

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-calckit/pkg/visibility"
)

func TestEvaluatorEquality(t *testing.T) {
	t.Parallel()

	eval := New()
	cases := []struct {
		name   string
		rule   string
		values map[string]any
		want   bool
	}{
		{name: "bool literal", rule: "advanced == true", values: map[string]any{"advanced": true}, want: true},
		{name: "string true", rule: "advanced == true", values: map[string]any{"advanced": "true"}, want: true},
		{name: "string literal", rule: `unit == "metric"`, values: map[string]any{"unit": "metric"}, want: true},
		{name: "single quotes", rule: `unit == 'metric'`, values: map[string]any{"unit": "metric"}, want: true},
		{name: "bare word", rule: "unit != imperial", values: map[string]any{"unit": "metric"}, want: true},
		{name: "number", rule: "count == 3", values: map[string]any{"count": 3.0}, want: true},
		{name: "number from text", rule: "count == 3", values: map[string]any{"count": "3"}, want: true},
		{name: "null", rule: "missing == null", values: map[string]any{}, want: true},
		{name: "not null", rule: "advanced != null", values: map[string]any{"advanced": false}, want: true},
		{name: "blank rule", rule: "  ", want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := eval.Eval("field", tc.rule, visibility.Context{Values: tc.values})
			if err != nil {
				t.Fatalf("Eval(%q) returned error: %v", tc.rule, err)
			}
			if got != tc.want {
				t.Fatalf("Eval(%q) = %v, want %v", tc.rule, got, tc.want)
			}
		})
	}
}

func TestEvaluatorOrdering(t *testing.T) {
	t.Parallel()

	eval := New()
	values := map[string]any{"age": 30.0, "amount": "999.5", "blank": ""}
	cases := map[string]bool{
		"age >= 18":       true,
		"age > 30":        false,
		"age <= 30":       true,
		"amount < 1000":   true,
		"amount > -1":     true,
		"blank > 0":       false,
		"blank < 0":       false,
		"blank != 0":      true,
		"missing >= 0":    false,
		"age>=18&&age<65": true,
	}
	for rule, want := range cases {
		got, err := eval.Eval("field", rule, visibility.Context{Values: values})
		if err != nil {
			t.Fatalf("Eval(%q) returned error: %v", rule, err)
		}
		if got != want {
			t.Fatalf("Eval(%q) = %v, want %v", rule, got, want)
		}
	}
}

func TestEvaluatorTruthyAndNot(t *testing.T) {
	t.Parallel()

	eval := New()
	ok, err := eval.Eval("field", "!advanced", visibility.Context{Values: map[string]any{"advanced": false}})
	if err != nil || !ok {
		t.Fatalf("expected !false to be true, got %v (%v)", ok, err)
	}
	ok, err = eval.Eval("field", "advanced", visibility.Context{Values: map[string]any{"advanced": "on"}})
	if err != nil || !ok {
		t.Fatalf("expected non empty string to be truthy, got %v (%v)", ok, err)
	}
}

func TestEvaluatorComposition(t *testing.T) {
	t.Parallel()

	eval := New()
	rule := `(unit == "metric" || extras.locale == "fr") && !advanced`
	ok, err := eval.Eval("height", rule, visibility.Context{
		Values: map[string]any{"unit": "imperial", "advanced": false},
		Extras: map[string]any{"locale": "fr"},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected extras lookup to satisfy disjunction")
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	for _, rule := range []string{
		"unit = metric",
		"a & b",
		"(a || b",
		`unit == "open`,
		"age > metric",
		"== 3",
		"a b",
	} {
		if err := Check(rule); err == nil {
			t.Fatalf("expected %q to fail", rule)
		}
	}
}

func TestProgramIdentifiers(t *testing.T) {
	t.Parallel()

	prog, err := Compile(`unit == metric && (age > 3 || !unit) && extras.locale != "de"`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if diff := cmp.Diff([]string{"unit", "age", "extras.locale"}, prog.Identifiers()); diff != "" {
		t.Fatalf("identifiers mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluatorCachesPrograms(t *testing.T) {
	t.Parallel()

	eval := New()
	ctx := visibility.Context{Values: map[string]any{"a": true}}
	for i := 0; i < 3; i++ {
		if ok, err := eval.Eval("x", "a", ctx); err != nil || !ok {
			t.Fatalf("unexpected result %v (%v)", ok, err)
		}
	}
	if _, ok := eval.cache.Load("a"); !ok {
		t.Fatalf("expected compiled program to be cached")
	}
}
