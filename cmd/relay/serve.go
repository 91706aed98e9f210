package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"matchrelay/internal/core"
)

// shutdownGrace is how long in-flight requests get to finish after SIGTERM.
const shutdownGrace = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the relay HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	a, err := buildApp()
	if err != nil {
		return err
	}

	srv, err := core.NewServer(a.cfg, a.logger)
	if err != nil {
		return err
	}
	srv.RouteRegistrars = append(srv.RouteRegistrars, a.handler.RegisterRoutes)
	srv.MountRoutes()

	a.logger.Info("matchrelay starting",
		"environment", a.cfg.Environment,
		"version", a.cfg.Build.Version,
		"commit", a.cfg.Build.Commit,
		"port", a.cfg.Server.Port,
	)

	httpSrv := &http.Server{
		Addr:              ":" + a.cfg.Server.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		a.logger.Info("shutdown signal received")
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return httpSrv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("matchrelay stopped")
	return nil
}
