package render

import (
	"fmt"
	"strings"
)

// TemplateI18nConfig configures template-level translation helpers.
type TemplateI18nConfig struct {
	// LocaleKey selects the key used to read the locale when templates pass
	// a map instead of a locale string. Defaults to "locale".
	LocaleKey string
	// FuncName customises the translator helper name (defaults to "translate").
	FuncName string
	// Defaults supplies source strings for keys the translator misses.
	Defaults map[string]string
	// OnMissing controls the string returned when a translation is missing.
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs returns helpers for template engines:
//
//	translate(localeSrc, key, ...args) string
//	current_locale(localeSrc) string
//
// localeSrc is either a locale string or a map holding one under LocaleKey.
// Missing keys fall back to cfg.Defaults and then to the key itself.
func TemplateI18nFuncs(t Translator, cfg TemplateI18nConfig) map[string]any {
	localeKey := strings.TrimSpace(cfg.LocaleKey)
	if localeKey == "" {
		localeKey = "locale"
	}
	name := strings.TrimSpace(cfg.FuncName)
	if name == "" {
		name = "translate"
	}

	return map[string]any{
		name: func(localeSrc any, key string, args ...any) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			fallback, ok := cfg.Defaults[key]
			if !ok {
				fallback = key
			}
			l := NewLocalizer(RenderOptions{
				Locale:     resolveLocale(localeSrc, localeKey),
				Translator: t,
				OnMissing:  cfg.OnMissing,
			})
			return l.Text(key, fallback, args...)
		},
		"current_locale": func(localeSrc any) string {
			return resolveLocale(localeSrc, localeKey)
		},
	}
}

func resolveLocale(src any, key string) string {
	switch data := src.(type) {
	case nil:
		return ""
	case string:
		return data
	case map[string]any:
		if v, ok := data[key]; ok && v != nil {
			return strings.TrimSpace(fmt.Sprint(v))
		}
	case map[string]string:
		return data[key]
	}
	return ""
}
