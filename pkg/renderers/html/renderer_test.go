package html_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-calckit/pkg/compute"
	"github.com/goliatone/go-calckit/pkg/i18n"
	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/render"
	"github.com/goliatone/go-calckit/pkg/renderers/html"
	"github.com/goliatone/go-calckit/pkg/testsupport"
)

func newRenderer(t *testing.T) *html.Renderer {
	t.Helper()
	r, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func evaluate(t *testing.T, def model.Definition, raw map[string]string) *compute.Evaluation {
	t.Helper()
	eval, err := compute.Run(def, raw)
	if err != nil {
		t.Fatalf("run %s: %v", def.ID, err)
	}
	return &eval
}

func renderPage(t *testing.T, page render.Page, opts render.RenderOptions) string {
	t.Helper()
	out, err := newRenderer(t).Render(context.Background(), page, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

// fieldTag returns the opening tag of the wrapper div of input id.
func fieldTag(t *testing.T, doc, id string) string {
	t.Helper()
	marker := `data-field="` + id + `"`
	start := strings.Index(doc, marker)
	if start < 0 {
		t.Fatalf("field %q not rendered", id)
	}
	end := strings.Index(doc[start:], ">")
	return doc[start : start+end]
}

func assertContains(t *testing.T, doc string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(doc, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, doc)
		}
	}
}

func TestRendererMetadata(t *testing.T) {
	r := newRenderer(t)
	if r.Name() != "html" {
		t.Fatalf("name: got %q", r.Name())
	}
	if !strings.HasPrefix(r.ContentType(), "text/html") {
		t.Fatalf("content type: got %q", r.ContentType())
	}
}

func TestRenderCalculatorWithResults(t *testing.T) {
	reg := testsupport.Catalog(t)
	def := testsupport.MustDefinition(t, reg, "square-area")
	raw := map[string]string{"side": "5"}

	doc := renderPage(t, render.Page{
		Definition: def,
		Evaluation: evaluate(t, def, raw),
		Raw:        raw,
		Submitted:  true,
	}, render.RenderOptions{Locale: "en", Locales: []string{"en", "es"}})

	assertContains(t, doc,
		`<html lang="en">`,
		`<h1>Square Area Calculator</h1>`,
		`action="/en/square-area"`,
		`name="side" type="number" value="5"`,
		`min="0"`,
		`step="any"`,
		`data-output="area" data-status="valid"`,
		`>25</dd>`,
		`>20</dd>`,
		`href="/es/square-area"`,
		`<button type="submit">Calculate</button>`,
	)
	if strings.Contains(doc, "calckit-errors") {
		t.Fatalf("valid submission should not list errors")
	}
}

func TestRenderPendingResults(t *testing.T) {
	reg := testsupport.Catalog(t)
	def := testsupport.MustDefinition(t, reg, "square-area")

	doc := renderPage(t, render.Page{Definition: def}, render.RenderOptions{})
	assertContains(t, doc,
		`data-output="area" data-status="pending" aria-labelledby="result-area-label">-</dd>`,
		`placeholder="5"`,
	)
}

func TestRenderInputErrorsOnlyWhenSubmitted(t *testing.T) {
	reg := testsupport.Catalog(t)
	def := testsupport.MustDefinition(t, reg, "square-area")
	raw := map[string]string{"side": "-1"}
	eval := evaluate(t, def, raw)

	doc := renderPage(t, render.Page{Definition: def, Evaluation: eval, Raw: raw}, render.RenderOptions{Locale: "en"})
	if strings.Contains(doc, "Value must be at least") {
		t.Fatalf("errors rendered before submission")
	}

	doc = renderPage(t, render.Page{Definition: def, Evaluation: eval, Raw: raw, Submitted: true}, render.RenderOptions{Locale: "en"})
	assertContains(t, doc,
		`calckit-field--invalid`,
		`<p class="calckit-field-error" role="alert">Value must be at least 0</p>`,
		`<li>Fix the highlighted inputs</li>`,
		`value="-1"`,
	)
}

func TestRenderHiddenInputs(t *testing.T) {
	reg := testsupport.Catalog(t)
	def := testsupport.MustDefinition(t, reg, "bmi")
	raw := map[string]string{"system": "imperial", "weight-lb": "150", "height-in": "65"}

	doc := renderPage(t, render.Page{
		Definition: def,
		Evaluation: evaluate(t, def, raw),
		Raw:        raw,
		Submitted:  true,
	}, render.RenderOptions{Locale: "en"})

	if tag := fieldTag(t, doc, "weight-kg"); !strings.HasSuffix(tag, " hidden") {
		t.Fatalf("metric weight should be hidden, got %q", tag)
	}
	if tag := fieldTag(t, doc, "weight-lb"); strings.Contains(tag, "hidden") {
		t.Fatalf("imperial weight should be visible, got %q", tag)
	}
	if tag := fieldTag(t, doc, "system"); !strings.Contains(tag, `data-widget="radio"`) {
		t.Fatalf("two option select should render as radio, got %q", tag)
	}
	assertContains(t, doc, `value="imperial" checked`, `data-output="class" data-status="valid"`)
}

func TestRenderCheckboxPostsFalseWhenUnchecked(t *testing.T) {
	reg := testsupport.Catalog(t)
	def := testsupport.MustDefinition(t, reg, "sales-tax")
	raw := map[string]string{"amount": "100", "inclusive": "false"}

	doc := renderPage(t, render.Page{
		Definition: def,
		Evaluation: evaluate(t, def, raw),
		Raw:        raw,
		Submitted:  true,
	}, render.RenderOptions{Locale: "en"})

	hidden := strings.Index(doc, `<input type="hidden" name="inclusive" value="false">`)
	box := strings.Index(doc, `<input type="checkbox" id="in-inclusive" name="inclusive" value="true"`)
	if hidden < 0 || box < 0 || hidden > box {
		t.Fatalf("expected hidden false field before the checkbox, got hidden=%d box=%d", hidden, box)
	}
	if strings.Contains(doc, `name="inclusive" value="true" checked`) {
		t.Fatalf("unchecked submission rendered as checked")
	}
}

func TestRenderLocalized(t *testing.T) {
	bundle, err := i18n.Load(i18n.EmbeddedFS())
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	opts := render.RenderOptions{Locale: "es", Locales: bundle.Locales(), Translator: bundle}

	reg := testsupport.Catalog(t)
	def := render.LocalizeDefinition(testsupport.MustDefinition(t, reg, "square-area"), opts)
	raw := map[string]string{"side": "2,5"}

	doc := renderPage(t, render.Page{
		Definition: def,
		Evaluation: evaluate(t, def, raw),
		Raw:        raw,
		Submitted:  true,
	}, opts)

	assertContains(t, doc,
		`<html lang="es">`,
		`Calculadora del área de un cuadrado`,
		`Longitud del lado`,
		`<button type="submit">Calcular</button>`,
		`>6,25</dd>`,
		`Geometría`,
	)
}

func TestRenderThemeVariant(t *testing.T) {
	themes, err := render.NewThemes("", "dark")
	if err != nil {
		t.Fatalf("themes: %v", err)
	}
	sel, err := themes.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	cfg := render.RendererConfig(sel, nil)

	reg := testsupport.Catalog(t)
	def := testsupport.MustDefinition(t, reg, "square-area")
	doc := renderPage(t, render.Page{Definition: def}, render.RenderOptions{Theme: cfg})

	assertContains(t, doc,
		`data-theme="calckit" data-variant="dark"`,
		`--surface: #111827;`,
		`href="/static/calckit.css"`,
	)
}

func TestRenderIndex(t *testing.T) {
	reg := testsupport.Catalog(t)
	r := newRenderer(t)

	out, err := r.RenderIndex(context.Background(), render.Index{
		Groups:   reg.Categories(),
		Query:    "circle",
		Matches:  reg.Search("circle", 0),
		Searched: true,
	}, render.RenderOptions{Locale: "en", Locales: []string{"en", "de"}})
	if err != nil {
		t.Fatalf("render index: %v", err)
	}
	doc := string(out)
	assertContains(t, doc,
		`<h2>Search: circle</h2>`,
		`href="/en/circle-area"`,
		`id="geometry"`,
		`href="/de/?q=circle"`,
	)

	out, err = r.RenderIndex(context.Background(), render.Index{
		Groups:   reg.Categories(),
		Query:    "zzzz",
		Searched: true,
	}, render.RenderOptions{Locale: "en"})
	if err != nil {
		t.Fatalf("render empty search: %v", err)
	}
	assertContains(t, string(out), "No calculators match your search.")
}

func TestRenderNotFound(t *testing.T) {
	out, err := newRenderer(t).RenderNotFound(context.Background(), "no-such-thing", render.RenderOptions{Locale: "en"})
	if err != nil {
		t.Fatalf("render not found: %v", err)
	}
	assertContains(t, string(out),
		`data-missing="no-such-thing"`,
		`<h1>Calculator not found</h1>`,
		`href="/en/"`,
	)
}

func TestRenderContentIsNotEscaped(t *testing.T) {
	reg := testsupport.Catalog(t)
	def := testsupport.MustDefinition(t, reg, "square-area")
	def.Content = &model.Content{
		Sections: []model.Section{{Heading: "How it works", Body: "<p>Multiply the <strong>side</strong> by itself.</p>"}},
		FAQ:      []model.FAQ{{Question: "Units?", Answer: "<p>Any unit.</p>"}},
	}

	doc := renderPage(t, render.Page{Definition: def}, render.RenderOptions{})
	assertContains(t, doc,
		`<p>Multiply the <strong>side</strong> by itself.</p>`,
		`<summary>Units?</summary>`,
		`<h2>Frequently asked questions</h2>`,
	)
}
