package render

import theme "github.com/goliatone/go-theme"

// RenderOptions carry per-request data renderers use to customise output
// without touching the definition.
type RenderOptions struct {
	// Locale is the resolved page locale, for example "es".
	Locale string
	// Locales lists every supported locale, used for the language switcher.
	Locales []string
	// Translator resolves catalog keys. A nil translator keeps source strings.
	Translator Translator
	// OnMissing decides what to render when a key has no translation.
	OnMissing MissingTranslationHandler
	// Theme is the resolved go-theme configuration.
	Theme *theme.RendererConfig
	// BasePath prefixes every generated link.
	BasePath string
}
