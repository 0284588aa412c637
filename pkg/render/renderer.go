package render

import (
	"context"

	"github.com/goliatone/go-calckit/pkg/compute"
	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/registry"
)

// Renderer turns one calculator page into bytes (HTML, terminal text, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page Page, options RenderOptions) ([]byte, error)
}

// IndexRenderer is implemented by renderers that can list the catalog.
type IndexRenderer interface {
	RenderIndex(ctx context.Context, index Index, options RenderOptions) ([]byte, error)
}

// NotFoundRenderer is implemented by renderers with a dedicated missing
// calculator page.
type NotFoundRenderer interface {
	RenderNotFound(ctx context.Context, id string, options RenderOptions) ([]byte, error)
}

// Page is the data needed to render one calculator. Definition is expected
// to be localised already. Evaluation may be nil, in which case every input
// is shown and every result is pending. Input errors are only displayed
// when Submitted is set.
type Page struct {
	Definition model.Definition
	Evaluation *compute.Evaluation
	Raw        map[string]string
	Submitted  bool
	Related    []model.Definition
}

// Index lists the catalog grouped by category, optionally with the matches
// of a search query.
type Index struct {
	Groups   []registry.Group
	Query    string
	Matches  []model.Definition
	Searched bool
}
