// Package calckit is the entry point for embedding the calculator catalog:
// it loads the built-in definitions with their overlays, the translation
// bundle and an orchestrator wired to both.
package calckit

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/goliatone/go-calckit/pkg/calculators"
	"github.com/goliatone/go-calckit/pkg/i18n"
	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/orchestrator"
	"github.com/goliatone/go-calckit/pkg/overlay"
	"github.com/goliatone/go-calckit/pkg/overlay/sqlstore"
	"github.com/goliatone/go-calckit/pkg/registry"
	"github.com/goliatone/go-calckit/pkg/render"
)

// RenderOptions aliases render.RenderOptions for callers rendering pages
// without importing the render package.
type RenderOptions = render.RenderOptions

// CatalogConfig selects the overlay sources layered over the built-in
// definitions. OverlayDir and OverlayDB are applied after the embedded
// overlays, so their copy wins.
type CatalogConfig struct {
	OverlayDir string
	OverlayDB  string
	// SkipEmbedded leaves out the overlays bundled with the binary.
	SkipEmbedded bool
}

// Catalog is a decorated registry together with the data it was built from.
type Catalog struct {
	Registry *registry.Registry
	// Overlays lists the applied stores in order.
	Overlays []*overlay.Store
	// Unmatched holds overlay ids with no calculator.
	Unmatched []string
}

// LoadCatalog builds the registry served by the CLI and the server.
func LoadCatalog(ctx context.Context, cfg CatalogConfig) (*Catalog, error) {
	var stores []*overlay.Store
	if !cfg.SkipEmbedded {
		store, err := overlay.LoadFS(overlay.EmbeddedFS())
		if err != nil {
			return nil, fmt.Errorf("calckit: embedded overlays: %w", err)
		}
		stores = append(stores, store)
	}
	if cfg.OverlayDir != "" {
		info, err := os.Stat(cfg.OverlayDir)
		if err != nil {
			return nil, fmt.Errorf("calckit: overlay dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("calckit: overlay dir %s is not a directory", cfg.OverlayDir)
		}
		store, err := overlay.LoadFS(os.DirFS(cfg.OverlayDir))
		if err != nil {
			return nil, fmt.Errorf("calckit: overlay dir: %w", err)
		}
		stores = append(stores, store)
	}
	if cfg.OverlayDB != "" {
		store, err := loadDB(ctx, cfg.OverlayDB)
		if err != nil {
			return nil, err
		}
		stores = append(stores, store)
	}
	return BuildCatalog(calculators.Entries(), stores...)
}

// BuildCatalog decorates entries with every store, in order.
func BuildCatalog(entries []registry.Entry, stores ...*overlay.Store) (*Catalog, error) {
	decorators := make([]model.Decorator, 0, len(stores))
	seen := map[string]bool{}
	out := &Catalog{}
	for _, store := range stores {
		if store == nil {
			continue
		}
		decorators = append(decorators, overlay.NewDecorator(store))
		out.Overlays = append(out.Overlays, store)
		for _, id := range store.Unmatched(entries) {
			if !seen[id] {
				seen[id] = true
				out.Unmatched = append(out.Unmatched, id)
			}
		}
	}
	decorated, err := overlay.Apply(entries, decorators...)
	if err != nil {
		return nil, fmt.Errorf("calckit: apply overlays: %w", err)
	}
	out.Registry = registry.New(decorated...)
	return out, nil
}

func loadDB(ctx context.Context, path string) (store *overlay.Store, err error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("calckit: overlay db: %w", err)
	}
	db, err := sqlstore.Open(path)
	if err != nil {
		return nil, fmt.Errorf("calckit: overlay db: %w", err)
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()
	store, err = db.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("calckit: overlay db: %w", err)
	}
	return store, nil
}

// LoadBundle loads the embedded translations, optionally restricted to
// locales, with the catalogs of dir layered on top.
func LoadBundle(defaultLocale string, locales []string, dir string) (*i18n.Bundle, error) {
	opts := []i18n.Option{i18n.WithDefault(defaultLocale)}
	if len(locales) > 0 {
		opts = append(opts, i18n.WithLocales(locales...))
	}
	if dir != "" {
		opts = append(opts, i18n.WithLayer(os.DirFS(dir)))
	}
	bundle, err := i18n.Load(i18n.EmbeddedFS(), opts...)
	if err != nil {
		return nil, fmt.Errorf("calckit: load translations: %w", err)
	}
	return bundle, nil
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderHTML renders one calculator page with the default html renderer.
// It is the simplest entry point for callers that just want markup.
func RenderHTML(ctx context.Context, id, locale string, raw map[string]string, options ...orchestrator.Option) ([]byte, error) {
	out, _, err := orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		CalculatorID: id,
		Locale:       locale,
		Raw:          raw,
		Submitted:    raw != nil,
	})
	return out, err
}
