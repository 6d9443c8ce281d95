package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/courier-tracker/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/courier-tracker/internal/adapter/kafka"
	"github.com/couchcryptid/courier-tracker/internal/catalog"
	"github.com/couchcryptid/courier-tracker/internal/config"
	"github.com/couchcryptid/courier-tracker/internal/domain"
	"github.com/couchcryptid/courier-tracker/internal/observability"
	"github.com/couchcryptid/courier-tracker/internal/tracker"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	table, err := catalog.Load(cfg.StationsFile)
	if err != nil {
		logger.Error("failed to load station table", "error", err, "path", cfg.StationsFile)
		os.Exit(1)
	}
	logger.Info("station table loaded", "stations", table.Len(), "path", cfg.StationsFile)

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	generator := domain.NewMessageGenerator(rand.New(rand.NewPCG(seed, seed>>1)))

	// Snapshot publishing is feature-flagged via KAFKA_ENABLED.
	var publisher tracker.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
	} else {
		logger.Info("kafka snapshot publishing disabled")
	}

	t := tracker.New(table, generator, publisher, clockwork.NewRealClock(), logger, metrics, tracker.Settings{
		PositionInterval: cfg.PositionInterval,
		LogInterval:      cfg.LogInterval,
		LogCapacity:      cfg.LogCapacity,
	})

	srv := httpadapter.NewServer(cfg.HTTPAddr, t, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start tracker loop.
	go func() {
		if err := t.Run(ctx); err != nil {
			logger.Error("tracker error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
