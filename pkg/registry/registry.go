// Package registry holds the immutable catalog of calculator definitions.
// A Registry is built once from an ordered source and never mutated, so it is
// safe for concurrent readers without locking. Rebuilding (for example after
// overlay content changes) produces a new Registry value.
package registry

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/goliatone/go-calckit/pkg/model"
)

// DefaultSearchLimit caps Search results when the caller passes limit <= 0.
const DefaultSearchLimit = 5

// Entry is one element of a registry source: the key a definition was stored
// under together with the definition itself. Key and Definition.ID are
// expected to match; the validator reports drift.
type Entry struct {
	Key        string
	Definition model.Definition
}

// Group is a category together with its definitions in insertion order.
type Group struct {
	Category    model.Category
	Definitions []model.Definition
}

// Registry maps calculator ids to definitions. The first occurrence of a key
// wins for lookup; later duplicates are only visible through Source.
type Registry struct {
	source  []Entry
	order   []string
	byKey   map[string]int
	indexes []string
}

// New builds a registry from entries in order.
func New(entries ...Entry) *Registry {
	r := &Registry{
		source: append([]Entry(nil), entries...),
		byKey:  make(map[string]int, len(entries)),
	}
	fold := cases.Fold()
	for i, entry := range r.source {
		if _, exists := r.byKey[entry.Key]; exists {
			continue
		}
		r.byKey[entry.Key] = i
		r.order = append(r.order, entry.Key)
		r.indexes = append(r.indexes, haystack(fold, entry.Definition))
	}
	return r
}

// FromDefinitions builds a registry keyed by each definition's own id.
func FromDefinitions(defs ...model.Definition) *Registry {
	entries := make([]Entry, len(defs))
	for i, def := range defs {
		entries[i] = Entry{Key: def.ID, Definition: def}
	}
	return New(entries...)
}

// Get returns the canonical definition stored under id.
func (r *Registry) Get(id string) (model.Definition, bool) {
	if r == nil {
		return model.Definition{}, false
	}
	idx, ok := r.byKey[id]
	if !ok {
		return model.Definition{}, false
	}
	return r.source[idx].Definition, true
}

// Has reports whether id resolves to a definition.
func (r *Registry) Has(id string) bool {
	_, ok := r.Get(id)
	return ok
}

// List returns the canonical definitions in insertion order.
func (r *Registry) List() []model.Definition {
	if r == nil {
		return nil
	}
	out := make([]model.Definition, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.source[r.byKey[key]].Definition)
	}
	return out
}

// IDs returns the canonical keys in insertion order.
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

// Len returns the number of canonical definitions.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Source returns every entry the registry was built from, duplicates
// included, in original order.
func (r *Registry) Source() []Entry {
	if r == nil {
		return nil
	}
	return append([]Entry(nil), r.source...)
}

// Search returns definitions whose title, description, category or keywords
// contain query, compared with Unicode case folding. Results keep insertion
// order and are capped at limit (DefaultSearchLimit when limit <= 0). A blank
// query matches nothing.
func (r *Registry) Search(query string, limit int) []model.Definition {
	if r == nil {
		return nil
	}
	needle := strings.TrimSpace(query)
	if needle == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	needle = cases.Fold().String(needle)

	var out []model.Definition
	for i, key := range r.order {
		if !strings.Contains(r.indexes[i], needle) {
			continue
		}
		out = append(out, r.source[r.byKey[key]].Definition)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Categories groups definitions by category following the category
// enumeration order. Empty categories are omitted; definitions with an
// unknown category are appended in a trailing group per category.
func (r *Registry) Categories() []Group {
	defs := r.List()
	buckets := make(map[model.Category][]model.Definition)
	var unknown []model.Category
	for _, def := range defs {
		if _, seen := buckets[def.Category]; !seen && !def.Category.Valid() {
			unknown = append(unknown, def.Category)
		}
		buckets[def.Category] = append(buckets[def.Category], def)
	}

	var groups []Group
	for _, category := range append(model.Categories(), unknown...) {
		if items := buckets[category]; len(items) > 0 {
			groups = append(groups, Group{Category: category, Definitions: items})
		}
	}
	return groups
}

// haystack joins the searchable fields, folded, separated by newlines so a
// query never matches across field boundaries.
func haystack(fold cases.Caser, def model.Definition) string {
	parts := []string{def.Title, def.Description, string(def.Category)}
	parts = append(parts, def.Keywords...)
	if def.Meta != nil {
		parts = append(parts, def.Meta.Keywords...)
	}
	return fold.String(strings.Join(parts, "\n"))
}
