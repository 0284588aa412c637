package registry_test

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/registry"
)

func def(id, title string, category model.Category, keywords ...string) model.Definition {
	return model.Definition{
		ID:          id,
		Title:       title,
		Description: title + " description",
		Category:    category,
		Keywords:    keywords,
	}
}

func ids(defs []model.Definition) []string {
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = d.ID
	}
	return out
}

func TestRegistryGetAndList(t *testing.T) {
	reg := registry.FromDefinitions(
		def("square-area", "Square Area", model.CategoryGeometry),
		def("bmi", "BMI", model.CategoryHealth),
	)

	got, ok := reg.Get("bmi")
	if !ok || got.ID != "bmi" {
		t.Fatalf("expected bmi definition, got %+v (%v)", got, ok)
	}
	if _, ok := reg.Get("missing"); ok {
		t.Fatalf("expected missing id to report false")
	}
	if diff := cmp.Diff([]string{"square-area", "bmi"}, ids(reg.List())); diff != "" {
		t.Fatalf("list order mismatch (-want +got):\n%s", diff)
	}
	for _, id := range reg.IDs() {
		d, _ := reg.Get(id)
		if d.ID != id {
			t.Fatalf("key %q resolved to id %q", id, d.ID)
		}
	}
}

func TestRegistryFirstOccurrenceWins(t *testing.T) {
	reg := registry.New(
		registry.Entry{Key: "foo", Definition: def("foo", "First", model.CategoryMath)},
		registry.Entry{Key: "bar", Definition: def("bar", "Bar", model.CategoryMath)},
		registry.Entry{Key: "foo", Definition: def("foo", "Second", model.CategoryMath)},
	)

	got, _ := reg.Get("foo")
	if got.Title != "First" {
		t.Fatalf("expected first occurrence to be canonical, got %q", got.Title)
	}
	if reg.Len() != 2 {
		t.Fatalf("expected 2 canonical entries, got %d", reg.Len())
	}
	if len(reg.Source()) != 3 {
		t.Fatalf("expected source to keep duplicates, got %d", len(reg.Source()))
	}
}

func TestRegistrySearch(t *testing.T) {
	defs := []model.Definition{
		def("square-area", "Square Area", model.CategoryGeometry),
		def("circle-area", "Circle Area Calculator", model.CategoryGeometry),
		def("circle-circumference", "Circumference", model.CategoryGeometry, "circle"),
		def("strasse", "STRASSE length", model.CategoryConversion),
		def("bmi", "BMI", model.CategoryHealth),
	}
	reg := registry.FromDefinitions(defs...)

	cases := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{name: "title match", query: "circle", want: []string{"circle-area", "circle-circumference"}},
		{name: "case insensitive", query: "CIRCLE area", want: []string{"circle-area"}},
		{name: "category match", query: "health", want: []string{"bmi"}},
		{name: "folded upper", query: "strasse", want: []string{"strasse"}},
		{name: "limit", query: "area", limit: 1, want: []string{"square-area"}},
		{name: "blank", query: "   ", want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := reg.Search(tc.query, tc.limit)
			var gotIDs []string
			if len(got) > 0 {
				gotIDs = ids(got)
			}
			if diff := cmp.Diff(tc.want, gotIDs); diff != "" {
				t.Fatalf("search %q mismatch (-want +got):\n%s", tc.query, diff)
			}
		})
	}
}

func TestRegistrySearchDefaultLimit(t *testing.T) {
	var defs []model.Definition
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		defs = append(defs, def("calc-"+id, "Calc "+id, model.CategoryMath))
	}
	reg := registry.FromDefinitions(defs...)
	if got := reg.Search("calc", 0); len(got) != registry.DefaultSearchLimit {
		t.Fatalf("expected %d results, got %d", registry.DefaultSearchLimit, len(got))
	}
}

func TestRegistryCategories(t *testing.T) {
	reg := registry.FromDefinitions(
		def("bmi", "BMI", model.CategoryHealth),
		def("square-area", "Square", model.CategoryGeometry),
		def("odd", "Odd", model.Category("astrology")),
		def("circle-area", "Circle", model.CategoryGeometry),
	)
	groups := reg.Categories()
	var got []string
	for _, g := range groups {
		got = append(got, string(g.Category)+":"+joinIDs(g.Definitions))
	}
	want := []string{"geometry:square-area,circle-area", "health:bmi", "astrology:odd"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryConcurrentReads(t *testing.T) {
	reg := registry.FromDefinitions(def("circle-area", "Circle Area", model.CategoryGeometry))
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if len(reg.Search("circle", 5)) != 1 {
				t.Errorf("expected concurrent search hit")
			}
			if _, ok := reg.Get("circle-area"); !ok {
				t.Errorf("expected concurrent get hit")
			}
		}()
	}
	wg.Wait()
}

func TestNilRegistry(t *testing.T) {
	var reg *registry.Registry
	if _, ok := reg.Get("x"); ok || reg.Len() != 0 || reg.List() != nil || reg.Search("x", 1) != nil {
		t.Fatalf("expected nil registry to behave as empty")
	}
}

func joinIDs(defs []model.Definition) string {
	out := ""
	for i, d := range defs {
		if i > 0 {
			out += ","
		}
		out += d.ID
	}
	return out
}
