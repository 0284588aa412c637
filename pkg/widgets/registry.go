// Package widgets picks the form control used to render each calculator
// input. Renderers map widget names to templates or prompt kinds.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-calckit/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetToggle   = "toggle"
	WidgetRadio    = "radio"
	WidgetSelect   = "select"
	WidgetDate     = "date"
	WidgetTime     = "time"
	WidgetNumber   = "number"
	WidgetTextarea = "textarea"
	WidgetText     = "text"
)

// MaxRadioOptions is the largest option count rendered as radio buttons.
const MaxRadioOptions = 3

// Matcher decides whether a widget should handle the supplied input.
type Matcher func(input model.InputField) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for inputs based on the explicit Widget field or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

var _ model.Decorator = (*Registry)(nil)

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Empty returns a registry without matchers.
func Empty() *Registry {
	return &Registry{}
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence; equal priorities resolve in registration
// order.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
	sort.SliceStable(r.rules, func(i, j int) bool {
		if r.rules[i].priority == r.rules[j].priority {
			return r.rules[i].order < r.rules[j].order
		}
		return r.rules[i].priority > r.rules[j].priority
	})
}

// Resolve returns the widget name for input. An explicit Widget value wins.
func (r *Registry) Resolve(input model.InputField) (string, bool) {
	if explicit := strings.TrimSpace(input.Widget); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.rules {
		if entry.match(input) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator, filling the Widget of every input
// that does not declare one.
func (r *Registry) Decorate(def *model.Definition) error {
	if r == nil || def == nil {
		return nil
	}
	for i := range def.Inputs {
		if widget, ok := r.Resolve(def.Inputs[i]); ok {
			def.Inputs[i].Widget = widget
		}
	}
	return nil
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetToggle, 90, func(input model.InputField) bool {
		return input.Type == model.InputTypeCheckbox
	})
	r.Register(WidgetRadio, 80, func(input model.InputField) bool {
		return input.Type == model.InputTypeSelect && len(input.Options) > 1 && len(input.Options) <= MaxRadioOptions
	})
	r.Register(WidgetSelect, 70, func(input model.InputField) bool {
		return input.Type == model.InputTypeSelect
	})
	r.Register(WidgetDate, 60, func(input model.InputField) bool {
		return input.Type == model.InputTypeDate
	})
	r.Register(WidgetTime, 60, func(input model.InputField) bool {
		return input.Type == model.InputTypeTime
	})
	r.Register(WidgetNumber, 50, func(input model.InputField) bool {
		return input.Type == model.InputTypeNumber
	})
	r.Register(WidgetText, 0, func(model.InputField) bool { return true })
}
