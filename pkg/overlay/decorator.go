package overlay

import (
	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/registry"
)

// Decorator applies overlays to definitions. It implements model.Decorator.
type Decorator struct {
	store *Store
}

var _ model.Decorator = (*Decorator)(nil)

// NewDecorator builds a Decorator backed by store. A nil or empty store makes
// the decorator a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

// Decorate merges the overlay registered for def.ID into def. Non-empty
// overlay values win; keywords are appended without duplicates. Definitions
// without an overlay are left untouched.
func (d *Decorator) Decorate(def *model.Definition) error {
	if d == nil || d.store.Empty() || def == nil {
		return nil
	}
	ov, ok := d.store.Get(def.ID)
	if !ok {
		return nil
	}

	if ov.Title != "" {
		def.Title = ov.Title
	}
	if ov.Description != "" {
		def.Description = ov.Description
	}
	def.Keywords = appendUnique(def.Keywords, ov.Keywords...)
	if ov.Meta != nil {
		meta := *ov.Meta
		meta.Keywords = append([]string(nil), ov.Meta.Keywords...)
		def.Meta = &meta
	}
	if ov.Content != nil {
		def.Content = cloneContent(ov.Content)
	}

	for i, input := range def.Inputs {
		if f, ok := ov.Inputs[input.ID]; ok {
			def.Inputs[i].Label = pick(f.Label, input.Label)
			def.Inputs[i].Placeholder = pick(f.Placeholder, input.Placeholder)
			def.Inputs[i].HelpText = pick(f.HelpText, input.HelpText)
		}
	}
	for i, output := range def.Outputs {
		if f, ok := ov.Outputs[output.Key()]; ok {
			if output.ID == "" {
				// pin the key so a label override cannot rename the result
				def.Outputs[i].ID = output.Key()
			}
			def.Outputs[i].Label = pick(f.Label, output.Label)
			def.Outputs[i].HelpText = pick(f.HelpText, output.HelpText)
		}
	}
	return nil
}

// Apply decorates a copy of every entry. The input slice and the definitions
// it holds are not modified.
func Apply(entries []registry.Entry, decorators ...model.Decorator) ([]registry.Entry, error) {
	out := make([]registry.Entry, len(entries))
	for i, entry := range entries {
		def := entry.Definition.Clone()
		for _, decorator := range decorators {
			if decorator == nil {
				continue
			}
			if err := decorator.Decorate(&def); err != nil {
				return nil, err
			}
		}
		out[i] = registry.Entry{Key: entry.Key, Definition: def}
	}
	return out, nil
}

// Unmatched returns overlay ids that do not correspond to any entry key.
func (s *Store) Unmatched(entries []registry.Entry) []string {
	known := make(map[string]bool, len(entries))
	for _, entry := range entries {
		known[entry.Key] = true
	}
	var out []string
	for _, id := range s.IDs() {
		if !known[id] {
			out = append(out, id)
		}
	}
	return out
}

func pick(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}

func appendUnique(dst []string, values ...string) []string {
	seen := make(map[string]bool, len(dst))
	for _, v := range dst {
		seen[v] = true
	}
	for _, v := range values {
		if !seen[v] {
			dst = append(dst, v)
			seen[v] = true
		}
	}
	return dst
}
