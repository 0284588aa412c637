package orchestrator

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/registry"
	"github.com/goliatone/go-calckit/pkg/render"
	"github.com/goliatone/go-calckit/pkg/visibility"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// Transformer mutates a localised definition before decorators run.
type Transformer interface {
	Transform(ctx context.Context, def *model.Definition) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, def *model.Definition) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, def *model.Definition) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, def)
}

// WithCatalog serves a fixed registry.
func WithCatalog(reg *registry.Registry) Option {
	return func(o *Orchestrator) {
		if reg != nil {
			o.catalog = func() *registry.Registry { return reg }
		}
	}
}

// WithCatalogFunc resolves the registry on every request, which lets callers
// swap snapshots without rebuilding the orchestrator.
func WithCatalogFunc(fn func() *registry.Registry) Option {
	return func(o *Orchestrator) {
		if fn != nil {
			o.catalog = fn
		}
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTranslator sets the translator and the locales offered to users.
func WithTranslator(t render.Translator, locales ...string) Option {
	return func(o *Orchestrator) {
		o.translator = t
		o.locales = append([]string(nil), locales...)
	}
}

// WithMissingTranslationHandler customises what renderers show for keys the
// translator cannot resolve.
func WithMissingTranslationHandler(fn render.MissingTranslationHandler) Option {
	return func(o *Orchestrator) {
		o.onMissing = fn
	}
}

// WithDecorators registers decorators applied to the localised definition of
// every request.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithTransformer registers a Transformer that runs before decorators.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithThemeSelector resolves theme and variant names before rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themes = selector
	}
}

// WithThemeFallbacks supplies partials used when a theme defines none.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = fallbacks
	}
}

// WithVisibilityEvaluator overrides the evaluator for visibleIf rules.
func WithVisibilityEvaluator(e visibility.Evaluator) Option {
	return func(o *Orchestrator) {
		o.evaluator = e
	}
}

// WithBasePath prefixes generated links.
func WithBasePath(base string) Option {
	return func(o *Orchestrator) {
		o.basePath = base
	}
}

// WithRelatedLimit caps the related calculators listed on a page. Zero
// disables the list.
func WithRelatedLimit(n int) Option {
	return func(o *Orchestrator) {
		if n >= 0 {
			o.relatedLimit = n
		}
	}
}
