package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"purchasing/cmd"
	httpadapter "purchasing/internal/adapters/in/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cli.Command{
	Name:  "serve",
	Usage: "Run the HTTP API and the scheduled jobs",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Usage:   "HTTP listen port",
			Value:   cmd.DefaultConfig().HTTPPort,
			Sources: cli.EnvVars(cmd.EnvHTTPPort),
		},
		&cli.StringFlag{
			Name:    "engine",
			Usage:   "Engine for orders created without one: table or conditional",
			Value:   cmd.DefaultConfig().DefaultEngine,
			Sources: cli.EnvVars(cmd.EnvDefaultEngine),
		},
		&cli.StringFlag{
			Name:    "retry-schedule",
			Usage:   "Cron spec (with seconds) for the confirmation retry job; empty disables it",
			Sources: cli.EnvVars(cmd.EnvConfirmationRetrySchedule),
		},
		discountCodesFlag,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		cfg := configFrom(c)
		if err := cfg.Validate(); err != nil {
			return cli.Exit(fmt.Errorf("invalid configuration: %w", err), 1)
		}

		logger := slog.Default()
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		root, err := cmd.NewCompositionRoot(cfg, logger, registry)
		if err != nil {
			return cli.Exit(fmt.Errorf("failed to compose application: %w", err), 1)
		}

		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		jobManager := root.CreateJobManager()
		if err = jobManager.StartAll(); err != nil {
			return cli.Exit(err, 1)
		}
		defer jobManager.StopAll()

		e := httpadapter.NewEcho(logger)
		root.CreateHTTPServer().RegisterRoutes(e, registry)

		serveErr := make(chan error, 1)
		go func() {
			logger.Info("HTTP server listening", "port", cfg.HTTPPort)
			serveErr <- e.Start(":" + cfg.HTTPPort)
		}()

		select {
		case err = <-serveErr:
			if !errors.Is(err, http.ErrServerClosed) {
				return cli.Exit(fmt.Errorf("HTTP server failed: %w", err), 1)
			}
		case <-ctx.Done():
			logger.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err = e.Shutdown(shutdownCtx); err != nil {
				return cli.Exit(fmt.Errorf("HTTP shutdown failed: %w", err), 1)
			}
		}

		logger.Info("Server shutdown complete")
		return nil
	},
}
