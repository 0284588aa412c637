package render_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-calckit/pkg/render"
)

type namedRenderer struct{ name, contentType string }

func (r namedRenderer) Name() string        { return r.name }
func (r namedRenderer) ContentType() string { return r.contentType }
func (r namedRenderer) Render(context.Context, render.Page, render.RenderOptions) ([]byte, error) {
	return []byte(r.name), nil
}

func TestRegistry(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(namedRenderer{"html", "text/html; charset=utf-8"})
	reg.MustRegister(namedRenderer{"tui", "text/plain; charset=utf-8"})

	if err := reg.Register(namedRenderer{"html", "text/html"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register(namedRenderer{"", "text/html"}); err == nil {
		t.Fatalf("expected empty name error")
	}

	got, err := reg.Get("")
	if err != nil || got.Name() != "html" {
		t.Fatalf("expected first registered renderer as default, got %v (%v)", got, err)
	}
	got, err = reg.ForAccept("application/json, text/plain;q=0.9")
	if err != nil || got.Name() != "tui" {
		t.Fatalf("expected accept negotiation to pick tui, got %v (%v)", got, err)
	}
	got, _ = reg.ForAccept("*/*")
	if got.Name() != "html" {
		t.Fatalf("expected default for wildcard, got %s", got.Name())
	}
	if err := reg.SetDefault("missing"); err == nil {
		t.Fatalf("expected SetDefault error")
	}
	if names := reg.List(); len(names) != 2 || names[0] != "html" || !reg.Has("tui") {
		t.Fatalf("unexpected list %v", names)
	}
}

func TestPaths(t *testing.T) {
	if got := render.IndexPath("/calc/", "es"); got != "/calc/es/" {
		t.Fatalf("unexpected index path %q", got)
	}
	if got := render.CalculatorPath("", "en", "square-area"); got != "/en/square-area" {
		t.Fatalf("unexpected calculator path %q", got)
	}
	if got := render.SearchPath("", "de", "kreis fläche"); got != "/de/?q=kreis+fl%C3%A4che" {
		t.Fatalf("unexpected search path %q", got)
	}
}
