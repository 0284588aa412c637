package tui

import (
	"github.com/goliatone/go-calckit/pkg/compute"
	"github.com/goliatone/go-calckit/pkg/model"
)

// State tracks the raw answers collected so far. Prefilled answers act as
// prompt defaults.
type State struct {
	def model.Definition
	raw map[string]string
}

// NewState seeds the state with prefilled raw values.
func NewState(def model.Definition, prefill map[string]string) *State {
	raw := make(map[string]string, len(prefill))
	for k, v := range prefill {
		raw[k] = v
	}
	return &State{def: def, raw: raw}
}

// Raw returns the collected answers (mutable).
func (s *State) Raw() map[string]string {
	if s == nil {
		return nil
	}
	return s.raw
}

// Get returns the answer recorded for id.
func (s *State) Get(id string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.raw[id]
	return v, ok
}

// Set records an answer.
func (s *State) Set(id, value string) {
	s.raw[id] = value
}

// Values coerces the answers collected so far.
func (s *State) Values() model.Values {
	return compute.Coerce(s.def, s.raw)
}

// Default returns the prompt default for input: the recorded answer, or the
// declared default.
func (s *State) Default(input model.InputField) string {
	if v, ok := s.Get(input.ID); ok {
		return v
	}
	if input.Default.IsEmpty() {
		return ""
	}
	return input.Default.String()
}
