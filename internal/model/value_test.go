package model

import (
	"encoding/json"
	"testing"
)

func TestValueFloat(t *testing.T) {
	cases := []struct {
		name   string
		value  Value
		want   float64
		wantOK bool
	}{
		{name: "number", value: Number(2.5), want: 2.5, wantOK: true},
		{name: "numeric text", value: Text("10"), want: 10, wantOK: true},
		{name: "text", value: Text("abc")},
		{name: "empty", value: Empty()},
		{name: "bool", value: Bool(true)},
		{name: "nan collapses", value: Number(nan())},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.value.Float()
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("Float() = (%v, %v), want (%v, %v)", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestValueEmptiness(t *testing.T) {
	if !Text("").IsEmpty() {
		t.Fatalf("expected blank text to be empty")
	}
	if Number(0).IsEmpty() {
		t.Fatalf("expected zero number to be non-empty")
	}
	if Bool(false).IsEmpty() {
		t.Fatalf("expected false checkbox to be non-empty")
	}
}

func TestValueJSON(t *testing.T) {
	payload := struct {
		A Value `json:"a"`
		B Value `json:"b"`
		C Value `json:"c"`
		D Value `json:"d,omitzero"`
	}{A: Number(3), B: Text("x"), C: Bool(true)}

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"a":3,"b":"x","c":true}` {
		t.Fatalf("unexpected json %s", raw)
	}

	var decoded Value
	if err := json.Unmarshal([]byte(`12.5`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if f, ok := decoded.Float(); !ok || f != 12.5 {
		t.Fatalf("expected 12.5, got %v", decoded)
	}
}

func TestResultZeroIsPending(t *testing.T) {
	var r Result
	if r.Status != StatusPending {
		t.Fatalf("expected zero result to be pending, got %s", r.Status)
	}
	if r.Float() != 0 {
		t.Fatalf("expected neutral value")
	}
	raw, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"status":"pending","value":0}` {
		t.Fatalf("unexpected json %s", raw)
	}
	if Num(inf()).Status != StatusInvalid {
		t.Fatalf("expected infinite result to be invalid")
	}
}

func TestSlugifyAndKebab(t *testing.T) {
	cases := map[string]string{
		"Area":           "area",
		"Surface Area":   "surface-area",
		"monthlyPayment": "monthly-payment",
		"  BMI (kg/m²) ": "bmi-kg-m",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
		if !IsKebabCase(want) {
			t.Fatalf("expected %q to be kebab-case", want)
		}
	}
	for _, bad := range []string{"", "Foo", "foo_bar", "foo--bar", "-foo"} {
		if IsKebabCase(bad) {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestDefinitionCloneIsolation(t *testing.T) {
	def := Definition{
		ID:       "x",
		Inputs:   []InputField{{ID: "a", Options: []Option{{Label: "A", Value: "a"}}}},
		Keywords: []string{"k"},
		Meta:     &Meta{Title: "t", Keywords: []string{"m"}},
		Content:  &Content{FAQ: []FAQ{{Question: "q"}}},
	}
	clone := def.Clone()
	clone.Inputs[0].Options[0].Label = "changed"
	clone.Keywords[0] = "changed"
	clone.Meta.Title = "changed"
	clone.Content.FAQ[0].Question = "changed"

	if def.Inputs[0].Options[0].Label != "A" || def.Keywords[0] != "k" || def.Meta.Title != "t" || def.Content.FAQ[0].Question != "q" {
		t.Fatalf("clone mutated source definition: %+v", def)
	}
}

func nan() float64 {
	zero := 0.0
	return zero / zero
}

func inf() float64 {
	zero := 0.0
	return 1 / zero
}
