package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-calckit/pkg/model"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// translator is configured.
var ErrMissingTranslator = errors.New("render: translator is not configured")

// Translator resolves a catalog key for a locale. i18n.Bundle satisfies it.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler returns the string to render when key has no
// translation. fallback is the source string, possibly empty.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

func missingTranslationDefault(_, _, fallback string, _ error) string {
	return fallback
}

// DefinitionKey builds the catalog key of a definition string, for example
// DefinitionKey("bmi", "inputs", "system", "label").
func DefinitionKey(id string, parts ...string) string {
	return "calculators." + id + "." + strings.Join(parts, ".")
}

// CategoryKey is the catalog key of a category label.
func CategoryKey(c model.Category) string {
	return "categories." + string(c)
}

// DefaultLocale is assumed when RenderOptions carry no locale.
const DefaultLocale = "en"

// Localizer translates strings for one locale.
type Localizer struct {
	locale     string
	translator Translator
	onMissing  MissingTranslationHandler
}

// NewLocalizer binds opts to a Localizer.
func NewLocalizer(opts RenderOptions) Localizer {
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	locale := strings.TrimSpace(opts.Locale)
	if locale == "" {
		locale = DefaultLocale
	}
	return Localizer{locale: locale, translator: opts.Translator, onMissing: onMissing}
}

// Locale returns the bound locale.
func (l Localizer) Locale() string { return l.locale }

// Text translates key, keeping fallback when the translation is missing.
func (l Localizer) Text(key, fallback string, args ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if l.translator == nil {
		return l.missing(key, fallback, ErrMissingTranslator)
	}
	msg, err := l.translator.Translate(l.locale, key, args...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return l.missing(key, fallback, err)
	}
	return msg
}

func (l Localizer) missing(key, fallback string, err error) string {
	if l.onMissing == nil {
		return missingTranslationDefault(l.locale, key, fallback, err)
	}
	return l.onMissing(l.locale, key, fallback, err)
}

// Message translates a compute or formula message. The English text is the
// catalog key and is returned unchanged when no translation exists.
func (l Localizer) Message(key string) string {
	if strings.TrimSpace(key) == "" {
		return ""
	}
	if l.translator == nil {
		return key
	}
	msg, err := l.translator.Translate(l.locale, key)
	if err != nil || strings.TrimSpace(msg) == "" {
		return key
	}
	return msg
}

// Messagef is Message for keys carrying format verbs, such as the range
// messages of compute.InputError.
func (l Localizer) Messagef(format string, args ...any) string {
	if len(args) == 0 {
		return l.Message(format)
	}
	if strings.TrimSpace(format) == "" {
		return ""
	}
	fallback := fmt.Sprintf(format, args...)
	if l.translator == nil {
		return fallback
	}
	msg, err := l.translator.Translate(l.locale, format, args...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}

// Category returns the translated category label.
func (l Localizer) Category(c model.Category) string {
	return l.Text(CategoryKey(c), c.Label())
}

// Definition returns a localised copy of def. Display strings are looked up
// under calculators.<id>.*; ids, option values and functions are unchanged.
func (l Localizer) Definition(def model.Definition) model.Definition {
	out := def.Clone()
	id := def.ID

	out.Title = l.Text(DefinitionKey(id, "title"), def.Title)
	out.Description = l.Text(DefinitionKey(id, "description"), def.Description)
	if out.Meta != nil {
		out.Meta.Title = l.Text(DefinitionKey(id, "meta", "title"), out.Meta.Title)
		out.Meta.Description = l.Text(DefinitionKey(id, "meta", "description"), out.Meta.Description)
	}

	for i := range out.Inputs {
		input := &out.Inputs[i]
		input.Label = l.Text(DefinitionKey(id, "inputs", input.ID, "label"), input.Label)
		input.Placeholder = l.Text(DefinitionKey(id, "inputs", input.ID, "placeholder"), input.Placeholder)
		input.HelpText = l.Text(DefinitionKey(id, "inputs", input.ID, "help"), input.HelpText)
		for j := range input.Options {
			opt := &input.Options[j]
			opt.Label = l.Text(DefinitionKey(id, "inputs", input.ID, "options", opt.Value), opt.Label)
		}
	}
	for i := range out.Outputs {
		output := &out.Outputs[i]
		key := output.Key()
		if output.ID == "" {
			// keep the result key stable when the label changes
			output.ID = key
		}
		output.Label = l.Text(DefinitionKey(id, "outputs", key, "label"), output.Label)
		output.HelpText = l.Text(DefinitionKey(id, "outputs", key, "help"), output.HelpText)
	}
	return out
}

// LocalizeDefinition is a shorthand for NewLocalizer(opts).Definition(def).
func LocalizeDefinition(def model.Definition, opts RenderOptions) model.Definition {
	return NewLocalizer(opts).Definition(def)
}
