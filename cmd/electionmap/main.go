package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/election-map/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/election-map/internal/adapter/kafka"
	"github.com/couchcryptid/election-map/internal/config"
	"github.com/couchcryptid/election-map/internal/observability"
	"github.com/couchcryptid/election-map/internal/pipeline"
	"github.com/couchcryptid/election-map/internal/render"
	"github.com/couchcryptid/election-map/internal/source"
	"github.com/joho/godotenv"
)

func main() {
	// Variables already set in the environment win over .env.
	envFileErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if envFileErr != nil {
		logger.Debug("no .env file loaded", "error", envFileErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Nothing renders unless both sources load.
	fetcher := source.NewFetcher(cfg.FetchTimeout, logger)
	ds, err := source.Load(ctx, fetcher, source.Sources{
		Geometry: cfg.GeometrySource,
		Election: cfg.ElectionSource,
		Properties: source.FeatureProperties{
			State:  cfg.GeoStateProperty,
			County: cfg.GeoCountyProperty,
			Name:   cfg.GeoNameProperty,
		},
	}, logger, metrics)
	if err != nil {
		logger.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}

	snapshot := render.NewSnapshot(metrics)
	renderers := pipeline.Renderers{snapshot}

	var writer *kafkaadapter.LayerWriter
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewLayerWriter(cfg, logger, metrics)
		renderers = append(renderers, writer)
		logger.Info("kafka layer sink enabled", "topic", cfg.KafkaLayerTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka layer sink disabled")
	}

	p := pipeline.New(ds, renderers, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, snapshot, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Initial render.
	if _, err := p.SelectYear(ctx, cfg.DefaultYear); err != nil {
		logger.Error("initial render failed", "year", cfg.DefaultYear, "error", err)
	}

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
