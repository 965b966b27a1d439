package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kbc-construction/site/internal/errors"
	"github.com/kbc-construction/site/pkg/server"
)

func serveCmd(configPath *string) *cobra.Command {
	var (
		addr string
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the live page",
		Long: `Serve the page, the live endpoint and the client script.

Routes:
  /            the page
  /_live       WebSocket for view-triggered animation
  /_kbc/live.js
  /images/*, /videos/*
  /healthz, /metrics

Examples:
  kbcsite serve
  kbcsite serve --addr=:3000 --dev`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			sc := e.cfg.ServerConfig()
			if addr != "" {
				sc.Address = addr
			}
			if dev {
				sc.DevMode = true
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, sc, e)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from kbc.json)")
	cmd.Flags().BoolVar(&dev, "dev", false, "Disable client caching")

	return cmd
}

func runServe(ctx context.Context, sc server.Config, e *env) error {
	if err := sc.Validate(); err != nil {
		return errors.New("KBC001").Wrap(err)
	}
	srv := server.New(sc, e.content, server.WithLogger(e.logger))
	if err := srv.ListenAndServe(ctx); err != nil {
		return errors.New("KBC020").Wrap(err)
	}
	return nil
}
