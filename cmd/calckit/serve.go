package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-calckit/internal/logging"
	"github.com/goliatone/go-calckit/internal/server"
	"github.com/goliatone/go-calckit/internal/watch"
	"github.com/goliatone/go-calckit/pkg/overlay"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	var watchFlag bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("watch") {
				a.cfg.Catalog.Watch = watchFlag
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&watchFlag, "watch", false, "reload when overlay files change")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	logger := logging.Component("server")

	catalog, err := a.catalog(ctx)
	if err != nil {
		return err
	}
	bundle, err := a.bundle()
	if err != nil {
		return err
	}
	srv, err := server.New(catalog.Registry, bundle, []server.Option{
		server.WithLogger(logger),
		server.WithTheme(a.cfg.Theme.Name, a.cfg.Theme.Variant),
	})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx, a.cfg.Server.Addr, a.cfg.Server.Grace)
	})

	if a.cfg.Catalog.Watch {
		reload := func(ctx context.Context) error {
			next, err := a.catalog(ctx)
			if err != nil {
				return err
			}
			return srv.Swap(ctx, next.Registry)
		}
		w, err := watch.New(a.cfg.Catalog.Overlays, reload,
			watch.WithLogger(logging.Component("watch")),
			watch.WithFilter(func(path string) bool {
				_, ok := overlay.FormatFor(path)
				return ok
			}),
		)
		if err != nil {
			return err
		}
		g.Go(func() error { return w.Run(ctx) })
	}

	return g.Wait()
}
