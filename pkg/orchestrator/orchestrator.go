package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-calckit/pkg/calculators"
	"github.com/goliatone/go-calckit/pkg/compute"
	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/registry"
	"github.com/goliatone/go-calckit/pkg/render"
	"github.com/goliatone/go-calckit/pkg/renderers/html"
	"github.com/goliatone/go-calckit/pkg/visibility"
	"github.com/goliatone/go-calckit/pkg/visibility/expr"
	"github.com/goliatone/go-calckit/pkg/widgets"
)

const (
	defaultRendererName = html.Name
	// DefaultRelatedLimit caps the related calculators listed on a page.
	DefaultRelatedLimit = 5
)

var (
	// ErrNotFound is returned for calculator ids missing from the catalog.
	ErrNotFound = errors.New("orchestrator: calculator not found")
	// ErrUnsupported is returned when the selected renderer cannot render
	// the requested page kind.
	ErrUnsupported = errors.New("orchestrator: renderer does not support this page")
)

// Orchestrator coordinates the full pipeline from catalog lookup to rendered
// output. It applies sensible defaults (built-in catalog, html renderer,
// default theme) while remaining open to dependency injection for advanced
// callers.
type Orchestrator struct {
	catalog         func() *registry.Registry
	registry        *render.Registry
	defaultRenderer string
	translator      render.Translator
	onMissing       render.MissingTranslationHandler
	locales         []string
	decorators      []model.Decorator
	transformer     Transformer
	themes          theme.ThemeSelector
	themeFallbacks  map[string]string
	evaluator       visibility.Evaluator
	basePath        string
	relatedLimit    int
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		relatedLimit:    DefaultRelatedLimit,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one calculator page render.
type Request struct {
	// CalculatorID selects the definition.
	CalculatorID string
	// Locale is the resolved page locale.
	Locale string
	// Raw holds submitted form values keyed by input id.
	Raw map[string]string
	// Submitted marks a POST so input errors are displayed.
	Submitted bool
	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string
	// ThemeName and ThemeVariant select the go-theme manifest.
	ThemeName    string
	ThemeVariant string
	// Extras are exposed to visibleIf rules under the extras. prefix.
	Extras map[string]any
}

// IndexRequest describes a catalog page, optionally with a search query.
type IndexRequest struct {
	Locale       string
	Query        string
	Limit        int
	Renderer     string
	ThemeName    string
	ThemeVariant string
}

// Outcome is the localised definition together with its evaluation.
type Outcome struct {
	Definition model.Definition
	Evaluation compute.Evaluation
}

// Catalog returns the registry snapshot serving the current request.
func (o *Orchestrator) Catalog() *registry.Registry {
	if o.catalog == nil {
		return registry.New()
	}
	if reg := o.catalog(); reg != nil {
		return reg
	}
	return registry.New()
}

// Locales lists the locales offered to users.
func (o *Orchestrator) Locales() []string {
	return append([]string(nil), o.locales...)
}

// Definition returns the localised and decorated definition of id.
func (o *Orchestrator) Definition(ctx context.Context, id, locale string) (model.Definition, error) {
	if err := o.ready(ctx); err != nil {
		return model.Definition{}, err
	}
	def, ok := o.Catalog().Get(id)
	if !ok {
		return model.Definition{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return o.prepare(ctx, def, locale)
}

// List returns every definition localised for locale, in catalog order.
func (o *Orchestrator) List(ctx context.Context, locale string) ([]model.Definition, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	l := o.localizer(locale)
	defs := o.Catalog().List()
	for i := range defs {
		defs[i] = l.Definition(defs[i])
	}
	return defs, nil
}

// Search runs a catalog search and localises the matches.
func (o *Orchestrator) Search(ctx context.Context, query string, limit int, locale string) ([]model.Definition, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	l := o.localizer(locale)
	matches := o.Catalog().Search(query, limit)
	for i := range matches {
		matches[i] = l.Definition(matches[i])
	}
	return matches, nil
}

// Evaluate coerces req.Raw and runs every output of the requested calculator.
func (o *Orchestrator) Evaluate(ctx context.Context, req Request) (Outcome, error) {
	def, err := o.Definition(ctx, req.CalculatorID, req.Locale)
	if err != nil {
		return Outcome{}, err
	}
	eval, err := compute.Run(def, req.Raw, compute.WithEvaluator(o.evaluator), compute.WithExtras(req.Extras))
	if err != nil {
		return Outcome{}, fmt.Errorf("orchestrator: evaluate %q: %w", req.CalculatorID, err)
	}
	return Outcome{Definition: def, Evaluation: eval}, nil
}

// Generate executes lookup → localise → decorate → evaluate → theme →
// render and returns the rendered bytes together with their content type.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, string, error) {
	outcome, err := o.Evaluate(ctx, req)
	if err != nil {
		return nil, "", err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, "", err
	}
	opts, err := o.RenderOptions(req.Locale, req.ThemeName, req.ThemeVariant)
	if err != nil {
		return nil, "", err
	}

	page := render.Page{
		Definition: outcome.Definition,
		Evaluation: &outcome.Evaluation,
		Raw:        req.Raw,
		Submitted:  req.Submitted,
		Related:    o.related(outcome.Definition, opts.Locale),
	}
	output, err := renderer.Render(ctx, page, opts)
	if err != nil {
		return nil, "", fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, renderer.ContentType(), nil
}

// Index renders the catalog grouped by category.
func (o *Orchestrator) Index(ctx context.Context, req IndexRequest) ([]byte, string, error) {
	if err := o.ready(ctx); err != nil {
		return nil, "", err
	}
	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, "", err
	}
	indexer, ok := renderer.(render.IndexRenderer)
	if !ok {
		return nil, "", fmt.Errorf("%w: %s index", ErrUnsupported, renderer.Name())
	}
	opts, err := o.RenderOptions(req.Locale, req.ThemeName, req.ThemeVariant)
	if err != nil {
		return nil, "", err
	}

	l := render.NewLocalizer(opts)
	catalog := o.Catalog()
	groups := catalog.Categories()
	for gi := range groups {
		for di := range groups[gi].Definitions {
			groups[gi].Definitions[di] = l.Definition(groups[gi].Definitions[di])
		}
	}
	index := render.Index{Groups: groups, Query: req.Query}
	if req.Query != "" {
		index.Searched = true
		for _, def := range catalog.Search(req.Query, req.Limit) {
			index.Matches = append(index.Matches, l.Definition(def))
		}
	}

	output, err := indexer.RenderIndex(ctx, index, opts)
	if err != nil {
		return nil, "", fmt.Errorf("orchestrator: render index: %w", err)
	}
	return output, renderer.ContentType(), nil
}

// NotFound renders the page for a missing calculator id.
func (o *Orchestrator) NotFound(ctx context.Context, id string, req IndexRequest) ([]byte, string, error) {
	if err := o.ready(ctx); err != nil {
		return nil, "", err
	}
	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, "", err
	}
	nf, ok := renderer.(render.NotFoundRenderer)
	if !ok {
		return nil, "", fmt.Errorf("%w: %s not found page", ErrUnsupported, renderer.Name())
	}
	opts, err := o.RenderOptions(req.Locale, req.ThemeName, req.ThemeVariant)
	if err != nil {
		return nil, "", err
	}
	output, err := nf.RenderNotFound(ctx, id, opts)
	if err != nil {
		return nil, "", fmt.Errorf("orchestrator: render not found: %w", err)
	}
	return output, renderer.ContentType(), nil
}

// RenderOptions builds the per-request renderer options, resolving the theme
// selection when a selector is configured.
func (o *Orchestrator) RenderOptions(locale, themeName, variant string) (render.RenderOptions, error) {
	opts := render.RenderOptions{
		Locale:     o.localizer(locale).Locale(),
		Locales:    o.Locales(),
		Translator: o.translator,
		OnMissing:  o.onMissing,
		BasePath:   o.basePath,
	}
	if o.themes == nil {
		return opts, nil
	}
	selection, err := o.themes.Select(themeName, variant)
	if err != nil {
		return opts, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	opts.Theme = render.RendererConfig(selection, o.themeFallbacks)
	return opts, nil
}

func (o *Orchestrator) prepare(ctx context.Context, def model.Definition, locale string) (model.Definition, error) {
	out := o.localizer(locale).Definition(def)
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &out); err != nil {
			return model.Definition{}, fmt.Errorf("orchestrator: transform %q: %w", def.ID, err)
		}
	}
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&out); err != nil {
			return model.Definition{}, fmt.Errorf("orchestrator: decorate %q: %w", def.ID, err)
		}
	}
	return out, nil
}

func (o *Orchestrator) related(def model.Definition, locale string) []model.Definition {
	if o.relatedLimit == 0 {
		return nil
	}
	l := o.localizer(locale)
	var out []model.Definition
	for _, group := range o.Catalog().Categories() {
		if group.Category != def.Category {
			continue
		}
		for _, candidate := range group.Definitions {
			if candidate.ID == def.ID {
				continue
			}
			out = append(out, l.Definition(candidate))
			if len(out) == o.relatedLimit {
				return out
			}
		}
	}
	return out
}

func (o *Orchestrator) localizer(locale string) render.Localizer {
	return render.NewLocalizer(render.RenderOptions{
		Locale:     locale,
		Translator: o.translator,
		OnMissing:  o.onMissing,
	})
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return o.initialiseErr
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	renderer, err := o.registry.Get(target)
	if err == nil {
		return renderer, nil
	}
	if name != "" {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
	}
	renderer, err = o.registry.Get("")
	if err != nil {
		return nil, fmt.Errorf("orchestrator: no renderers registered: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.catalog == nil {
		builtin := calculators.Registry()
		o.catalog = func() *registry.Registry { return builtin }
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.evaluator == nil {
		o.evaluator = expr.New()
	}
	if len(o.decorators) == 0 {
		o.decorators = []model.Decorator{widgets.NewRegistry()}
	}
	if o.themes == nil {
		themes, err := render.NewThemes("", "")
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default theme: %w", err)
		} else {
			o.themes = themes
		}
	}
}
