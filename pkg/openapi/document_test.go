package openapi_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-calckit/pkg/calculators"
	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/openapi"
	"github.com/goliatone/go-calckit/pkg/registry"
)

func TestSchemaName(t *testing.T) {
	cases := map[string]string{
		"square-area": "SquareAreaInput",
		"bmi":         "BmiInput",
		"a--b":        "ABInput",
	}
	for id, want := range cases {
		if got := openapi.SchemaName(id); got != want {
			t.Fatalf("SchemaName(%q): got %q want %q", id, got, want)
		}
	}
}

func TestBuildDescribesEveryCalculator(t *testing.T) {
	ctx := context.Background()
	reg := calculators.Registry()

	doc, err := openapi.Build(ctx, reg, openapi.WithTitle("Test API"), openapi.WithServer("http://localhost:8080"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if doc.Info.Title != "Test API" {
		t.Fatalf("title: got %q", doc.Info.Title)
	}
	for _, def := range reg.List() {
		if _, ok := doc.Components.Schemas[openapi.SchemaName(def.ID)]; !ok {
			t.Fatalf("missing request schema for %s", def.ID)
		}
		if doc.Paths.Find("/api/calculators/"+def.ID+"/evaluate") == nil {
			t.Fatalf("missing evaluate path for %s", def.ID)
		}
	}

	data, err := openapi.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	loaded, err := openapi.Load(ctx, data)
	if err != nil {
		t.Fatalf("reload generated document: %v", err)
	}

	var square openapi.Operation
	for _, op := range openapi.Operations(loaded) {
		if op.ID == "evaluateSquareArea" {
			square = op
		}
	}
	want := openapi.Operation{
		ID:       "evaluateSquareArea",
		Method:   "POST",
		Path:     "/api/calculators/square-area/evaluate",
		Summary:  "Square Area Calculator",
		Category: "geometry",
		Inputs:   []string{"side"},
	}
	if diff := cmp.Diff(want, square); diff != "" {
		t.Fatalf("square-area operation mismatch (-want +got):\n%s", diff)
	}
}

func TestInputSchemaMapsTypes(t *testing.T) {
	def := model.Definition{
		ID:       "demo",
		Title:    "Demo",
		Category: model.CategoryMath,
		Inputs: []model.InputField{
			{ID: "n", Label: "N", Type: model.InputTypeNumber, Min: model.Float(0), Max: model.Float(10), Unit: "cm"},
			{ID: "mode", Label: "Mode", Type: model.InputTypeSelect, Options: []model.Option{{Label: "A", Value: "a"}, {Label: "B", Value: "b"}}, Default: model.Text("a")},
			{ID: "on", Label: "On", Type: model.InputTypeCheckbox, VisibleIf: `mode == "b"`},
			{ID: "day", Label: "Day", Type: model.InputTypeDate},
			{ID: "at", Label: "At", Type: model.InputTypeTime},
		},
	}

	schema := openapi.InputSchema(def)
	n := schema.Properties["n"].Value
	if n.Min == nil || *n.Min != 0 || n.Max == nil || *n.Max != 10 {
		t.Fatalf("number bounds not carried over: %+v", n)
	}
	if n.Extensions[openapi.ExtensionUnit] != "cm" {
		t.Fatalf("unit extension missing: %+v", n.Extensions)
	}
	mode := schema.Properties["mode"].Value
	if diff := cmp.Diff([]any{"a", "b"}, mode.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
	if mode.Default != "a" {
		t.Fatalf("default: got %v", mode.Default)
	}
	if schema.Properties["on"].Value.Extensions[openapi.ExtensionVisibleIf] != `mode == "b"` {
		t.Fatalf("visibleIf extension missing")
	}
	if schema.Properties["day"].Value.Format != "date" {
		t.Fatalf("date format missing")
	}
	if !strings.Contains(schema.Properties["at"].Value.Pattern, "[0-5]") {
		t.Fatalf("time pattern missing")
	}
}

func TestBuildRejectsNilRegistry(t *testing.T) {
	if _, err := openapi.Build(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil registry")
	}
	empty := registry.New()
	if _, err := openapi.Build(context.Background(), empty); err != nil {
		t.Fatalf("empty registry should still describe the catalog endpoints: %v", err)
	}
}
