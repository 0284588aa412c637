package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when no option overrides it.
const DefaultLocale = "en"

const messagesSection = "messages"

var (
	// ErrMissingMessage is returned when a key has no translation for the
	// resolved locale or any of its parents.
	ErrMissingMessage = errors.New("i18n: missing message")
	// ErrInvalidLocale reports a catalog file whose name is not a valid tag.
	ErrInvalidLocale = errors.New("i18n: invalid locale")
)

// Bundle holds the catalogs of every supported locale. It is safe for
// concurrent use once loaded.
type Bundle struct {
	fallback language.Tag
	tags     []language.Tag
	matcher  language.Matcher
	builder  *catalog.Builder
	keys     map[language.Tag]map[string]string
}

// Option customises Load.
type Option func(*settings)

type settings struct {
	defaultLocale string
	only          []string
	layers        []fs.FS
}

// WithDefault sets the fallback locale. It is always part of the supported
// set even when no catalog file exists for it.
func WithDefault(locale string) Option {
	return func(s *settings) {
		if trimmed := strings.TrimSpace(locale); trimmed != "" {
			s.defaultLocale = trimmed
		}
	}
}

// WithLocales restricts loading to the listed locales. Files for other
// locales are skipped.
func WithLocales(locales ...string) Option {
	return func(s *settings) {
		s.only = append(s.only, locales...)
	}
}

// WithLayer loads the catalogs of fsys after the primary ones. Keys defined
// in a layer replace earlier translations of the same locale.
func WithLayer(fsys fs.FS) Option {
	return func(s *settings) {
		if fsys != nil {
			s.layers = append(s.layers, fsys)
		}
	}
}

// Load reads every *.yaml or *.yml file at the root of fsys, then the root
// of every layer.
func Load(fsys fs.FS, opts ...Option) (*Bundle, error) {
	cfg := settings{defaultLocale: DefaultLocale}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	fallback, err := language.Parse(cfg.defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("%w: default %q: %v", ErrInvalidLocale, cfg.defaultLocale, err)
	}
	allowed, err := parseTags(cfg.only)
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		fallback: fallback,
		builder:  catalog.NewBuilder(catalog.Fallback(fallback)),
		keys:     make(map[language.Tag]map[string]string),
	}

	for _, src := range append([]fs.FS{fsys}, cfg.layers...) {
		if src == nil {
			continue
		}
		matches, err := fs.Glob(src, "*.y*ml")
		if err != nil {
			return nil, fmt.Errorf("i18n: list catalogs: %w", err)
		}
		sort.Strings(matches)
		for _, name := range matches {
			if err := b.loadFile(src, name, allowed); err != nil {
				return nil, err
			}
		}
	}

	b.tags = []language.Tag{fallback}
	for tag := range b.keys {
		if tag != fallback {
			b.tags = append(b.tags, tag)
		}
	}
	rest := b.tags[1:]
	sort.Slice(rest, func(i, j int) bool { return rest[i].String() < rest[j].String() })
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

func parseTags(locales []string) (map[language.Tag]bool, error) {
	if len(locales) == 0 {
		return nil, nil
	}
	out := make(map[language.Tag]bool, len(locales))
	for _, locale := range locales {
		locale = strings.TrimSpace(locale)
		if locale == "" {
			continue
		}
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidLocale, locale, err)
		}
		out[tag] = true
	}
	return out, nil
}

func (b *Bundle) loadFile(fsys fs.FS, name string, allowed map[language.Tag]bool) error {
	ext := path.Ext(name)
	if ext != ".yaml" && ext != ".yml" {
		return nil
	}
	tag, err := language.Parse(strings.TrimSuffix(name, ext))
	if err != nil {
		return fmt.Errorf("%w: file %s: %v", ErrInvalidLocale, name, err)
	}
	if allowed != nil && !allowed[tag] && tag != b.fallback {
		return nil
	}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("i18n: read %s: %w", name, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("i18n: parse %s: %w", name, err)
	}

	flat := make(map[string]string)
	for key, value := range doc {
		if key == messagesSection {
			if entries, ok := value.(map[string]any); ok {
				for msg, translated := range entries {
					flat[msg] = fmt.Sprint(translated)
				}
			}
			continue
		}
		flatten(key, value, flat)
	}

	known := b.keys[tag]
	if known == nil {
		known = make(map[string]string, len(flat))
		b.keys[tag] = known
	}
	for key, msg := range flat {
		if err := b.builder.SetString(tag, key, msg); err != nil {
			return fmt.Errorf("i18n: %s: key %q: %w", name, key, err)
		}
		known[key] = msg
	}
	return nil
}

func flatten(prefix string, value any, out map[string]string) {
	switch v := value.(type) {
	case map[string]any:
		for key, child := range v {
			flatten(prefix+"."+key, child, out)
		}
	case nil:
	default:
		out[prefix] = fmt.Sprint(v)
	}
}

// Default returns the fallback locale.
func (b *Bundle) Default() string {
	return b.fallback.String()
}

// Locales lists the supported locales, fallback first.
func (b *Bundle) Locales() []string {
	out := make([]string, len(b.tags))
	for i, tag := range b.tags {
		out[i] = tag.String()
	}
	return out
}

// Supports reports whether locale names one of the supported tags exactly.
func (b *Bundle) Supports(locale string) bool {
	tag, err := language.Parse(locale)
	if err != nil {
		return false
	}
	for _, supported := range b.tags {
		if supported == tag {
			return true
		}
	}
	return false
}

// Match picks the best supported locale for the supplied preferences. Each
// preference may be a single tag or a full Accept-Language header; earlier
// preferences win. The fallback is returned when nothing matches.
func (b *Bundle) Match(preferences ...string) string {
	for _, pref := range preferences {
		if strings.TrimSpace(pref) == "" {
			continue
		}
		desired, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(desired) == 0 {
			continue
		}
		_, index, confidence := b.matcher.Match(desired...)
		if confidence != language.No {
			return b.tags[index].String()
		}
	}
	return b.fallback.String()
}

// Translate formats the message registered under key for locale. Parent
// locales (es-MX, then es) and finally the fallback locale are consulted
// before giving up with ErrMissingMessage. Without args the message is
// returned verbatim, so a literal % survives.
func (b *Bundle) Translate(locale, key string, args ...any) (string, error) {
	found, msg, ok := b.lookup(b.resolve(locale), key)
	if !ok {
		return "", fmt.Errorf("%w: %q (%s)", ErrMissingMessage, key, locale)
	}
	if len(args) == 0 {
		return msg, nil
	}
	return b.printer(found).Sprintf(key, args...), nil
}

// Has reports whether key is translated for locale.
func (b *Bundle) Has(locale, key string) bool {
	_, _, ok := b.lookup(b.resolve(locale), key)
	return ok
}

// Printer returns a message printer bound to the resolved locale. It formats
// numbers with the locale's separators and only sees that locale's own
// messages; use Translate for the fallback chain.
func (b *Bundle) Printer(locale string) *message.Printer {
	return b.printer(b.resolve(locale))
}

func (b *Bundle) printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(b.builder))
}

func (b *Bundle) resolve(locale string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return b.fallback
	}
	return tag
}

func (b *Bundle) lookup(tag language.Tag, key string) (language.Tag, string, bool) {
	for t := tag; ; t = t.Parent() {
		if msg, found := b.keys[t][key]; found {
			return t, msg, true
		}
		if t.IsRoot() {
			break
		}
	}
	if tag != b.fallback {
		if msg, found := b.keys[b.fallback][key]; found {
			return b.fallback, msg, true
		}
	}
	return language.Und, "", false
}
