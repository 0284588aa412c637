package main

import (
	"context"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-calckit"
	"github.com/goliatone/go-calckit/internal/config"
	"github.com/goliatone/go-calckit/internal/logging"
	"github.com/goliatone/go-calckit/pkg/i18n"
	"github.com/goliatone/go-calckit/pkg/orchestrator"
	"github.com/goliatone/go-calckit/pkg/renderers/tui"
)

// app carries state shared by every subcommand.
type app struct {
	in  io.Reader
	out io.Writer
	err io.Writer

	configPath string
	verbosity  int
	overlays   string
	overlayDB  string
	locale     string

	cfg *config.Config
	// driver replaces the survey prompts, used by tests.
	driver tui.PromptDriver
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{in: in, out: out, err: errOut}
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "calckit",
		Short: "A multilingual calculator catalog",
		Long: `calckit serves a catalog of calculators as localised web pages and a JSON
API, validates the catalog and lets you run any calculator from the terminal.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.err)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./"+config.DefaultFile+" when present)")
	flags.CountVarP(&a.verbosity, "verbose", "v", "increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	flags.StringVar(&a.overlays, "overlays", "", "directory of overlay files layered over the catalog")
	flags.StringVar(&a.overlayDB, "overlay-db", "", "SQLite overlay database layered over the catalog")
	flags.StringVarP(&a.locale, "locale", "l", "", "locale for titles, labels and numbers")

	root.AddCommand(
		newServeCmd(a),
		newValidateCmd(a),
		newListCmd(a),
		newSearchCmd(a),
		newShowCmd(a),
		newRunCmd(a),
		newOpenAPICmd(a),
		newOverlayCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("overlays") {
		cfg.Catalog.Overlays = a.overlays
	}
	if cmd.Flags().Changed("overlay-db") {
		cfg.Catalog.OverlayDB = a.overlayDB
	}
	a.cfg = cfg

	level := cfg.Log.Level
	if a.verbosity > 0 {
		level = logging.Verbosity(a.verbosity)
	}
	if err := logging.SetupWriter(a.err, level, cfg.Log.Format); err != nil {
		return err
	}
	log.Debug().Str("command", cmd.Name()).Msg("command started")
	return nil
}

func (a *app) catalog(ctx context.Context) (*calckit.Catalog, error) {
	catalog, err := calckit.LoadCatalog(ctx, calckit.CatalogConfig{
		OverlayDir: a.cfg.Catalog.Overlays,
		OverlayDB:  a.cfg.Catalog.OverlayDB,
	})
	if err != nil {
		return nil, err
	}
	for _, id := range catalog.Unmatched {
		log.Warn().Str("id", id).Msg("overlay has no calculator")
	}
	return catalog, nil
}

func (a *app) bundle() (*i18n.Bundle, error) {
	return calckit.LoadBundle(a.cfg.I18n.DefaultLocale, a.cfg.I18n.Locales, a.cfg.I18n.Dir)
}

// resolveLocale picks the --locale flag, then the configured default, and
// narrows it to a supported locale.
func (a *app) resolveLocale(bundle *i18n.Bundle) string {
	return bundle.Match(a.locale, a.cfg.I18n.DefaultLocale)
}

// orchestrator wires a fresh catalog and the translation bundle.
func (a *app) orchestrator(ctx context.Context, extra ...orchestrator.Option) (*orchestrator.Orchestrator, *i18n.Bundle, error) {
	catalog, err := a.catalog(ctx)
	if err != nil {
		return nil, nil, err
	}
	bundle, err := a.bundle()
	if err != nil {
		return nil, nil, err
	}
	opts := append([]orchestrator.Option{
		orchestrator.WithCatalog(catalog.Registry),
		orchestrator.WithTranslator(bundle, bundle.Locales()...),
	}, extra...)
	return orchestrator.New(opts...), bundle, nil
}
