package overlay

import "github.com/goliatone/go-calckit/pkg/model"

// FieldOverride replaces display strings of one input or output.
type FieldOverride struct {
	Label       string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty" toml:"placeholder,omitempty"`
	HelpText    string `json:"helpText,omitempty" yaml:"helpText,omitempty" toml:"helpText,omitempty"`
}

// Overlay is the editorial content attached to one calculator id.
type Overlay struct {
	ID          string                   `json:"-" yaml:"-" toml:"-"`
	Source      string                   `json:"-" yaml:"-" toml:"-"`
	Title       string                   `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Description string                   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Keywords    []string                 `json:"keywords,omitempty" yaml:"keywords,omitempty" toml:"keywords,omitempty"`
	Meta        *model.Meta              `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
	Content     *model.Content           `json:"content,omitempty" yaml:"content,omitempty" toml:"content,omitempty"`
	Inputs      map[string]FieldOverride `json:"inputs,omitempty" yaml:"inputs,omitempty" toml:"inputs,omitempty"`
	Outputs     map[string]FieldOverride `json:"outputs,omitempty" yaml:"outputs,omitempty" toml:"outputs,omitempty"`
}

// Store holds overlays keyed by calculator id.
type Store struct {
	overlays map[string]Overlay
	order    []string
}

// NewStore builds a store from already parsed overlays. Later entries with an
// id already present are rejected by Add.
func NewStore() *Store {
	return &Store{overlays: make(map[string]Overlay)}
}

// Get returns the overlay for id.
func (s *Store) Get(id string) (Overlay, bool) {
	if s == nil {
		return Overlay{}, false
	}
	ov, ok := s.overlays[id]
	return ov, ok
}

// IDs lists overlay ids in load order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Len returns the number of overlays.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Empty reports whether the store holds any overlays.
func (s *Store) Empty() bool {
	return s.Len() == 0
}

// All returns the overlays in load order.
func (s *Store) All() []Overlay {
	out := make([]Overlay, 0, s.Len())
	for _, id := range s.IDs() {
		out = append(out, s.overlays[id])
	}
	return out
}
