// Package source loads the county boundary and election datasets.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/election-map/internal/domain"
	"github.com/couchcryptid/election-map/internal/observability"
	"golang.org/x/sync/errgroup"
)

// ErrDataLoad wraps every failure to load either dataset. Nothing should be
// rendered when it is returned.
var ErrDataLoad = errors.New("data load failed")

// Sources locates the two datasets.
type Sources struct {
	Geometry   string
	Election   string
	Properties FeatureProperties
}

// Load fetches and decodes both datasets concurrently and returns once both
// have succeeded. The first failure cancels the other fetch.
func Load(ctx context.Context, fetcher *Fetcher, src Sources, logger *slog.Logger, metrics *observability.Metrics) (*domain.Dataset, error) {
	var (
		features []domain.GeographicFeature
		records  []domain.ElectionRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		defer func() { metrics.DatasetLoadDuration.WithLabelValues("geometry").Observe(time.Since(start).Seconds()) }()

		rc, err := fetcher.Open(gctx, src.Geometry)
		if err != nil {
			return fmt.Errorf("%w: geometry: %w", ErrDataLoad, err)
		}
		defer rc.Close()

		features, err = DecodeFeatures(rc, src.Properties)
		if err != nil {
			return fmt.Errorf("%w: geometry: %w", ErrDataLoad, err)
		}
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		defer func() { metrics.DatasetLoadDuration.WithLabelValues("election").Observe(time.Since(start).Seconds()) }()

		rc, err := fetcher.Open(gctx, src.Election)
		if err != nil {
			return fmt.Errorf("%w: election: %w", ErrDataLoad, err)
		}
		defer rc.Close()

		records, err = DecodeElectionRecords(rc, logger)
		if err != nil {
			return fmt.Errorf("%w: election: %w", ErrDataLoad, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics.DatasetSize.WithLabelValues("geometry").Set(float64(len(features)))
	metrics.DatasetSize.WithLabelValues("election").Set(float64(len(records)))
	logger.Info("datasets loaded",
		"features", len(features),
		"records", len(records),
		"geometry_source", src.Geometry,
		"election_source", src.Election,
	)
	return domain.NewDataset(features, records), nil
}
