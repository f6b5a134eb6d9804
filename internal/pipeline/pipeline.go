// Package pipeline orchestrates render passes: it joins the loaded dataset
// against one election year and hands the resulting layer to the renderers.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/election-map/internal/domain"
	"github.com/couchcryptid/election-map/internal/observability"
)

// ErrNotReady is reported by CheckReadiness until the first render pass
// has completed.
var ErrNotReady = errors.New("no render pass has completed yet")

// Renderer receives the full joined layer at the end of every render pass.
type Renderer interface {
	Render(ctx context.Context, layer domain.Layer) error
}

// Renderers fans a layer out to several renderers in order. Every renderer
// is invoked even if an earlier one fails; the errors are joined.
type Renderers []Renderer

// Render implements Renderer.
func (rs Renderers) Render(ctx context.Context, layer domain.Layer) error {
	var errs []error
	for _, r := range rs {
		if err := r.Render(ctx, layer); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Summary describes one completed render pass.
type Summary struct {
	Year       int           `json:"year"`
	Features   int           `json:"features"`
	Matched    int           `json:"matched"`
	Records    int           `json:"records"`
	Degenerate int           `json:"degenerate"`
	Duration   time.Duration `json:"duration_ns"`
}

// Pipeline owns the loaded dataset and runs render passes against it.
type Pipeline struct {
	dataset  *domain.Dataset
	renderer Renderer
	logger   *slog.Logger
	metrics  *observability.Metrics

	mu    sync.Mutex // serializes render passes
	ready atomic.Bool
}

// New creates a Pipeline over an already loaded dataset.
func New(ds *domain.Dataset, r Renderer, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		dataset:  ds,
		renderer: r,
		logger:   logger,
		metrics:  metrics,
	}
}

// Years returns the election years present in the dataset.
func (p *Pipeline) Years() []int {
	return p.dataset.Years()
}

// CheckReadiness returns nil once a render pass has completed.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return ErrNotReady
	}
	return nil
}

// SelectYear runs a full render pass for year. Passes never overlap, and a
// pass that has started runs to completion even if ctx is cancelled. A year
// with no records is not an error: every feature renders as NoData.
func (p *Pipeline) SelectYear(ctx context.Context, year int) (Summary, error) {
	ctx = context.WithoutCancel(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	start := domain.Now()
	p.metrics.RenderPasses.Inc()

	results, ms := domain.ComputeMargins(p.dataset.Records, year)
	layer := domain.BuildLayer(year, p.dataset.Features, results)

	summary := Summary{
		Year:       year,
		Features:   len(layer.Features),
		Matched:    layer.Matched,
		Records:    ms.Records,
		Degenerate: ms.Degenerate,
	}
	if ms.Degenerate > 0 {
		p.metrics.DegenerateRecords.Add(float64(ms.Degenerate))
		p.logger.Warn("records with zero total votes skipped", "year", year, "degenerate", ms.Degenerate)
	}
	if ms.Records == 0 {
		p.logger.Info("no election records for year", "year", year)
	}

	if err := p.renderer.Render(ctx, layer); err != nil {
		p.metrics.RenderErrors.Inc()
		p.logger.Error("render failed", "year", year, "error", err)
		return summary, fmt.Errorf("render year %d: %w", year, err)
	}

	summary.Duration = domain.Since(start)
	p.metrics.RenderDuration.Observe(summary.Duration.Seconds())
	p.metrics.FeaturesRendered.Set(float64(summary.Features))
	p.metrics.FeaturesNoData.Set(float64(summary.Features - summary.Matched))
	p.metrics.SelectedYear.Set(float64(year))
	p.ready.Store(true)

	p.logger.Info("render pass complete",
		"year", year,
		"features", summary.Features,
		"matched", summary.Matched,
		"degenerate", summary.Degenerate,
		"duration", summary.Duration,
	)
	return summary, nil
}
