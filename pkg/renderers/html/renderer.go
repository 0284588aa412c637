// Package html renders calculator pages, the catalog index and the missing
// calculator page as server-side HTML using pongo2 templates.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-calckit/pkg/render"
	rendertemplate "github.com/goliatone/go-calckit/pkg/render/template"
	gotemplate "github.com/goliatone/go-calckit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-calckit/pkg/widgets"
)

// Name is the registry name of the renderer.
const Name = "html"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	widgets          *widgets.Registry
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithWidgets overrides the widget registry used to pick form controls.
func WithWidgets(reg *widgets.Registry) Option {
	return func(cfg *config) {
		if reg != nil {
			cfg.widgets = reg
		}
	}
}

// Renderer produces full HTML documents.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	widgets   *widgets.Registry
}

var (
	_ render.Renderer         = (*Renderer)(nil)
	_ render.IndexRenderer    = (*Renderer)(nil)
	_ render.NotFoundRenderer = (*Renderer)(nil)
)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
			gotemplate.WithPreload("layout", "page", "index", "notfound", "field"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, widgets: cfg.widgets}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render renders one calculator page.
func (r *Renderer) Render(_ context.Context, page render.Page, opts render.RenderOptions) ([]byte, error) {
	l := render.NewLocalizer(opts)
	def := page.Definition

	view := newPageView(l, opts, def.Title, def.Description)
	if def.Meta != nil {
		if def.Meta.Title != "" {
			view.MetaTitle = def.Meta.Title
		}
		if def.Meta.Description != "" {
			view.MetaDescription = def.Meta.Description
		}
		view.Keywords = strings.Join(def.Meta.Keywords, ", ")
	}
	view.Nav.Canonical = render.CalculatorPath(opts.BasePath, l.Locale(), def.ID)
	view.withLocales(opts, func(locale string) string {
		return render.CalculatorPath(opts.BasePath, locale, def.ID)
	})

	return r.execute(render.PartialPage, "page", opts, map[string]any{
		"page": view,
		"calc": newCalcView(page, l, opts, r.widgets),
	})
}

// RenderIndex renders the catalog grouped by category with optional search
// matches.
func (r *Renderer) RenderIndex(_ context.Context, index render.Index, opts render.RenderOptions) ([]byte, error) {
	l := render.NewLocalizer(opts)
	view := newPageView(l, opts, "", l.Text("ui.site_intro", UIDefaults["ui.site_intro"]))
	view.Nav.Query = index.Query
	view.withLocales(opts, func(locale string) string {
		if index.Query != "" {
			return render.SearchPath(opts.BasePath, locale, index.Query)
		}
		return render.IndexPath(opts.BasePath, locale)
	})

	return r.execute(render.PartialIndex, "index", opts, map[string]any{
		"page":  view,
		"index": newIndexView(index, l, opts),
	})
}

// RenderNotFound renders the page shown for unknown calculator ids.
func (r *Renderer) RenderNotFound(_ context.Context, id string, opts render.RenderOptions) ([]byte, error) {
	l := render.NewLocalizer(opts)
	view := newPageView(l, opts, l.Text("ui.not_found", UIDefaults["ui.not_found"]), "")
	view.withLocales(opts, func(locale string) string {
		return render.IndexPath(opts.BasePath, locale)
	})

	return r.execute(render.PartialNotFound, "notfound", opts, map[string]any{
		"page":    view,
		"missing": id,
	})
}

func (r *Renderer) execute(partial, fallback string, opts render.RenderOptions, data map[string]any) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	name := fallback
	if opts.Theme != nil {
		if override := opts.Theme.Partials[partial]; override != "" {
			name = override
		}
	}

	data["locale"] = render.NewLocalizer(opts).Locale()
	for key, fn := range render.TemplateI18nFuncs(opts.Translator, render.TemplateI18nConfig{
		Defaults:  UIDefaults,
		OnMissing: opts.OnMissing,
	}) {
		data[key] = fn
	}

	result, err := r.templates.RenderTemplate(name, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template %q: %w", name, err)
	}
	return []byte(result), nil
}
