package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"github.com/AntonStoeckl/library-circulation-go/shell/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "librarysim: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, getenv func(string) string) error {
	cfg, err := config.Load(args, getenv)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	obs, err := newObservability(cfg)
	if err != nil {
		return fmt.Errorf("setting up observability: %w", err)
	}
	defer func() {
		if shutdownErr := obs.shutdown(context.Background()); shutdownErr != nil {
			logger.Warn("observability shutdown failed", "error", shutdownErr)
		}
	}()

	j, closeJournal, err := openJournal(ctx, cfg, logger, obs.metrics)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer closeJournal()

	libraryID := uuid.New()
	logger.Info("starting simulation",
		"library_id", libraryID.String(),
		"journal", cfg.Journal,
		"metrics", cfg.Metrics,
		"seed", cfg.Seed,
		"steps", cfg.Steps,
		"workers", cfg.Workers,
	)

	sim, err := newSimulation(libraryID, j, cfg, obs, logger)
	if err != nil {
		return err
	}

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	g, gctx := errgroup.WithContext(runCtx)

	var summary Summary

	g.Go(func() error {
		defer cancelRun()

		var simErr error
		summary, simErr = sim.Run(gctx)

		return simErr
	})

	if cfg.MetricsAddr != "" {
		server := newMetricsServer(cfg.MetricsAddr, obs.gatherer)
		logger.Info("serving metrics", "addr", cfg.MetricsAddr)

		g.Go(func() error {
			return serveUntilDone(gctx, server)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	summary.Print(os.Stdout)

	if ctx.Err() != nil {
		logger.Info("simulation interrupted")
	}

	return nil
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	})), nil
}
