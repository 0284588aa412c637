// Package config loads calckit settings from defaults, an optional TOML
// file and CALCKIT_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, for example
// CALCKIT_SERVER_ADDR or CALCKIT_CATALOG_OVERLAY_DB.
const EnvPrefix = "CALCKIT_"

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "calckit.toml"

// Config is the full application configuration.
type Config struct {
	Server  Server  `koanf:"server"`
	Catalog Catalog `koanf:"catalog"`
	I18n    I18n    `koanf:"i18n"`
	Theme   Theme   `koanf:"theme"`
	Log     Log     `koanf:"log"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr  string        `koanf:"addr"`
	Grace time.Duration `koanf:"grace"`
}

// Catalog configures where overlays come from.
type Catalog struct {
	// Overlays is a directory of JSON, YAML or TOML overlay files.
	Overlays string `koanf:"overlays"`
	// OverlayDB is a SQLite database written by `calckit overlay import`.
	OverlayDB string `koanf:"overlay_db"`
	// Watch reloads the catalog when overlay files change.
	Watch bool `koanf:"watch"`
}

// I18n configures locales.
type I18n struct {
	DefaultLocale string   `koanf:"default_locale"`
	Locales       []string `koanf:"locales"`
	// Dir holds extra <locale>.yaml catalogs layered over the embedded ones.
	Dir string `koanf:"dir"`
}

// Theme selects the go-theme manifest and variant.
type Theme struct {
	Name    string `koanf:"name"`
	Variant string `koanf:"variant"`
}

// Log configures zerolog.
type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Defaults returns the built-in settings as a flat koanf map.
func Defaults() map[string]any {
	return map[string]any{
		"server.addr":         ":8080",
		"server.grace":        "10s",
		"catalog.overlays":    "",
		"catalog.overlay_db":  "",
		"catalog.watch":       false,
		"i18n.default_locale": "en",
		"i18n.locales":        []string{"en", "es", "de"},
		"i18n.dir":            "",
		"theme.name":          "",
		"theme.variant":       "",
		"log.level":           "info",
		"log.format":          "console",
	}
}

// Load merges defaults, the TOML file at path and the environment. An empty
// path reads DefaultFile when it exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps CALCKIT_CATALOG_OVERLAY_DB to catalog.overlay_db: the first
// segment is the section, the rest is the key.
func envKey(name string) string {
	name = strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok {
		return name
	}
	return section + "." + key
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("config: server.addr is required"))
	}
	if c.Server.Grace < 0 {
		errs = append(errs, errors.New("config: server.grace must not be negative"))
	}
	if c.Catalog.Overlays != "" && c.Catalog.OverlayDB != "" {
		errs = append(errs, errors.New("config: catalog.overlays and catalog.overlay_db are mutually exclusive"))
	}
	if c.Catalog.Watch && c.Catalog.Overlays == "" {
		errs = append(errs, errors.New("config: catalog.watch requires catalog.overlays"))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("config: log.format %q must be console or json", c.Log.Format))
	}
	return errors.Join(errs...)
}
