package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgnsrekt/gexray/internal/exposure"
	"github.com/dgnsrekt/gexray/internal/marketclock"
	"github.com/dgnsrekt/gexray/internal/provider"
	"github.com/dgnsrekt/gexray/internal/refresh"
	"github.com/dgnsrekt/gexray/internal/server"
	"github.com/dgnsrekt/gexray/internal/store"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Refresh exposure snapshots on an interval and serve them over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	logger.Info("configuration loaded",
		zap.Strings("symbols", cfg.Symbols),
		zap.Duration("refreshInterval", cfg.Refresh.Interval()),
		zap.Int("workers", cfg.Refresh.Workers),
		zap.String("port", cfg.Server.Port),
	)

	clock := marketclock.New()
	engine := exposure.NewEngine(cfg.Engine, clock, logger)
	st := store.New()

	chainProvider := provider.NewHTTPProvider(
		cfg.Provider.BaseURL,
		cfg.Provider.APIKey,
		cfg.Provider.RatePerSecond,
		cfg.Provider.Timeout(),
		cfg.Provider.RetryDelay(),
		cfg.Provider.RetryCount,
		logger,
	)

	refresher := refresh.New(chainProvider, engine, st, clock, cfg.Symbols, cfg.Refresh.Workers, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go refresher.Run(ctx, cfg.Refresh.Interval(), cfg.Refresh.MarketHoursOnly, cfg.Refresh.RunOnStartup)

	srv := server.NewServer(st, logger)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           server.NewRouter(srv, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", httpServer.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
