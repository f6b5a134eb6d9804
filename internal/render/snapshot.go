// Package render turns joined layers into their published forms: the latest
// layer kept in memory for the HTTP surface, and its GeoJSON encoding.
package render

import (
	"context"
	"sync/atomic"

	"github.com/couchcryptid/election-map/internal/domain"
	"github.com/couchcryptid/election-map/internal/observability"
)

// Snapshot keeps the most recently rendered layer. It implements
// pipeline.Renderer and is safe for concurrent use.
type Snapshot struct {
	latest  atomic.Pointer[domain.Layer]
	metrics *observability.Metrics
}

// NewSnapshot returns an empty Snapshot.
func NewSnapshot(metrics *observability.Metrics) *Snapshot {
	return &Snapshot{metrics: metrics}
}

// Render replaces the held layer.
func (s *Snapshot) Render(_ context.Context, layer domain.Layer) error {
	s.latest.Store(&layer)
	s.metrics.LayerPublished.WithLabelValues("snapshot").Inc()
	return nil
}

// Latest returns the most recent layer, or false before the first render.
func (s *Snapshot) Latest() (domain.Layer, bool) {
	l := s.latest.Load()
	if l == nil {
		return domain.Layer{}, false
	}
	return *l, true
}
