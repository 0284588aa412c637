package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-calckit/pkg/overlay"
	"github.com/goliatone/go-calckit/pkg/overlay/sqlstore"
)

func newOverlayCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overlay",
		Short: "Move overlays between files and the SQLite store",
	}
	cmd.AddCommand(newOverlayExportCmd(a), newOverlayImportCmd(a))
	return cmd
}

func newOverlayExportCmd(a *app) *cobra.Command {
	var db, format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write overlays as one JSON, YAML or TOML document",
		Long: `Export reads the overlays stored in --db, or the overlays embedded in the
binary when --db is empty, and writes them as a single overlay document.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			var store *overlay.Store
			if db == "" {
				store, err = overlay.LoadFS(overlay.EmbeddedFS())
				if err != nil {
					return err
				}
			} else {
				if _, err := os.Stat(db); err != nil {
					return fmt.Errorf("overlay db: %w", err)
				}
				var sql *sqlstore.Store
				if sql, err = sqlstore.Open(db); err != nil {
					return err
				}
				defer func() { err = errors.Join(err, sql.Close()) }()
				if store, err = sql.Load(cmd.Context()); err != nil {
					return err
				}
			}

			f := overlay.Format(format)
			if output != "" && format == "" {
				detected, ok := overlay.FormatFor(output)
				if !ok {
					return fmt.Errorf("cannot infer format from %s", output)
				}
				f = detected
			}
			if f == "" {
				f = overlay.FormatYAML
			}
			data, err := store.Encode(f)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = a.out.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(a.out, "%d overlays written to %s\n", store.Len(), output)
			return nil
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "SQLite overlay database (embedded overlays if empty)")
	cmd.Flags().StringVar(&format, "format", "", "json, yaml or toml (default from --output, else yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func newOverlayImportCmd(a *app) *cobra.Command {
	var db string
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <dir|file>",
		Short: "Load overlay files into the SQLite store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if db == "" {
				db = a.cfg.Catalog.OverlayDB
			}
			if db == "" {
				return errors.New("--db or catalog.overlay_db is required")
			}
			store, err := loadOverlayPath(args[0])
			if err != nil {
				return err
			}

			sql, err := sqlstore.Open(db)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, sql.Close()) }()
			if err := sql.Save(cmd.Context(), store, replace); err != nil {
				return err
			}
			total, err := sql.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "imported %d overlays into %s (%d stored)\n", store.Len(), db, total)
			return nil
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "SQLite overlay database (default catalog.overlay_db)")
	cmd.Flags().BoolVar(&replace, "replace", false, "remove stored overlays missing from the import")
	return cmd
}

// loadOverlayPath reads a directory tree or a single overlay file.
func loadOverlayPath(path string) (*overlay.Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return overlay.LoadFS(os.DirFS(path))
	}
	return overlay.LoadFile(path)
}
