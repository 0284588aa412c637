package overlay_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-calckit/pkg/calculators"
	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/overlay"
	"github.com/goliatone/go-calckit/pkg/registry"
)

func TestLoadEmbedded(t *testing.T) {
	store, err := overlay.LoadFS(overlay.EmbeddedFS())
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if store.Len() < 10 {
		t.Fatalf("expected bundled overlays, got %d", store.Len())
	}
	if unknown := store.Unmatched(calculators.Entries()); len(unknown) != 0 {
		t.Fatalf("bundled overlays reference unknown calculators: %v", unknown)
	}

	bmi, ok := store.Get("bmi")
	if !ok || bmi.Meta == nil || bmi.Meta.Title == "" {
		t.Fatalf("expected TOML overlay for bmi, got %+v", bmi)
	}
	if bmi.Source != "health.toml" {
		t.Fatalf("unexpected source %q", bmi.Source)
	}

	compound, _ := store.Get("compound-interest")
	body := compound.Content.Sections[0].Body
	if strings.Contains(body, "script") || strings.Contains(body, "alert") {
		t.Fatalf("expected script to be stripped, got %q", body)
	}
}

func TestLoadFSFormats(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json": {Data: []byte(`{"calculators":{"one":{"title":"One <b>bold</b>"}}}`)},
		"b.yml":  {Data: []byte("calculators:\n  two:\n    keywords: [x, '<i>y</i>']\n")},
		"c.toml": {Data: []byte("[calculators.three]\ndescription = \"Three & more\"\n")},
		"README": {Data: []byte("ignored")},
	}
	store, err := overlay.LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if diff := cmp.Diff([]string{"one", "two", "three"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	one, _ := store.Get("one")
	if one.Title != "One bold" {
		t.Fatalf("expected markup stripped from title, got %q", one.Title)
	}
	two, _ := store.Get("two")
	if diff := cmp.Diff([]string{"x", "y"}, two.Keywords); diff != "" {
		t.Fatalf("keywords mismatch (-want +got):\n%s", diff)
	}
	three, _ := store.Get("three")
	if three.Description != "Three & more" {
		t.Fatalf("expected entities decoded, got %q", three.Description)
	}
}

func TestLoadFSErrors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"duplicate": {
			"a.json": {Data: []byte(`{"calculators":{"one":{}}}`)},
			"b.yaml": {Data: []byte("calculators:\n  one: {}\n")},
		},
		"empty":     {"a.json": {Data: []byte("  ")}},
		"malformed": {"a.toml": {Data: []byte("[calculators.one\n")}},
		"no table":  {"a.yaml": {Data: []byte("other: 1\n")}},
	}
	for name, fsys := range cases {
		if _, err := overlay.LoadFS(fsys); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extra.yaml")
	if err := os.WriteFile(path, []byte("calculators:\n  square-area:\n    title: Squares\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store, err := overlay.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	ov, ok := store.Get("square-area")
	if !ok || ov.Title != "Squares" || ov.Source != "extra.yaml" {
		t.Fatalf("unexpected overlay %+v", ov)
	}

	if _, err := overlay.LoadFile(filepath.Join(dir, "notes.txt")); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestApplyDecoratesCopies(t *testing.T) {
	store := overlay.NewStore()
	if err := store.Add(overlay.Overlay{
		ID:       "square-area",
		Keywords: []string{"quadrat", "square"},
		Meta:     &model.Meta{Title: "SEO"},
		Content:  &model.Content{FAQ: []model.FAQ{{Question: "Q", Answer: "A"}}},
		Inputs:   map[string]overlay.FieldOverride{"side": {Label: "Edge"}},
		Outputs:  map[string]overlay.FieldOverride{"area": {Label: "Surface"}},
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	source := calculators.Entries()
	decorated, err := overlay.Apply(source, overlay.NewDecorator(store))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	reg := registry.New(decorated...)
	def, _ := reg.Get("square-area")
	if def.Meta == nil || def.Meta.Title != "SEO" || def.Content.Empty() {
		t.Fatalf("expected meta and content applied, got %+v", def)
	}
	if def.Inputs[0].Label != "Edge" || def.Outputs[0].Label != "Surface" || def.Outputs[0].ID != "area" {
		t.Fatalf("expected label overrides, got %+v / %+v", def.Inputs[0], def.Outputs[0])
	}
	if diff := cmp.Diff([]string{"square", "area", "perimeter", "quadrat"}, def.Keywords); diff != "" {
		t.Fatalf("keywords mismatch (-want +got):\n%s", diff)
	}
	if got := reg.Search("quadrat", 0); len(got) != 1 || got[0].ID != "square-area" {
		t.Fatalf("expected overlay keywords to be searchable, got %v", got)
	}

	original := source[0].Definition
	if original.Meta != nil || original.Inputs[0].Label != "Side length" {
		t.Fatalf("Apply mutated the source definitions: %+v", original)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	store, err := overlay.LoadFS(overlay.EmbeddedFS())
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	for _, format := range []overlay.Format{overlay.FormatJSON, overlay.FormatYAML, overlay.FormatTOML} {
		data, err := store.Encode(format)
		if err != nil {
			t.Fatalf("Encode(%s): %v", format, err)
		}
		again, err := overlay.LoadFS(fstest.MapFS{"all." + string(format): {Data: data}})
		if err != nil {
			t.Fatalf("reload %s: %v", format, err)
		}
		if again.Len() != store.Len() {
			t.Fatalf("%s: expected %d overlays, got %d", format, store.Len(), again.Len())
		}
		bmi, _ := again.Get("bmi")
		if bmi.Meta == nil || bmi.Meta.Title == "" {
			t.Fatalf("%s: lost bmi meta", format)
		}
	}
}
