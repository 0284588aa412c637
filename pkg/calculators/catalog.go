// Package calculators holds the built-in calculator catalog authored in Go.
// Definitions are grouped by category in separate files and assembled in a
// fixed order by All.
package calculators

import (
	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/registry"
)

// All returns a fresh copy of every built-in definition in catalog order.
func All() []model.Definition {
	var defs []model.Definition
	for _, group := range [][]model.Definition{
		geometry(),
		mathematics(),
		finance(),
		health(),
		physics(),
		conversion(),
		statistics(),
		datetime(),
		everyday(),
	} {
		defs = append(defs, group...)
	}
	return defs
}

// Entries returns All keyed by id, ready for registry.New or decoration.
func Entries() []registry.Entry {
	defs := All()
	entries := make([]registry.Entry, len(defs))
	for i, def := range defs {
		entries[i] = registry.Entry{Key: def.ID, Definition: def}
	}
	return entries
}

// Registry builds an immutable registry of the built-in catalog.
func Registry() *registry.Registry {
	return registry.New(Entries()...)
}
