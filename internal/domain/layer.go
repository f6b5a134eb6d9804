package domain

import "time"

// LayerFeature pairs a boundary feature with the result attached to it for
// one render pass.
type LayerFeature struct {
	Feature GeographicFeature
	Result  CountyResult
}

// Layer is the joined, render-local view of every feature for one year. It
// is built fresh on each pass and never shares state with a previous one.
type Layer struct {
	Year       int
	Features   []LayerFeature
	Matched    int // features with a result for Year
	RenderedAt time.Time
}

// BuildLayer attaches a result to every feature: the entry for its canonical
// id when present, otherwise NoData. The feature slice is not modified.
func BuildLayer(year int, features []GeographicFeature, results map[string]CountyResult) Layer {
	layer := Layer{
		Year:       year,
		Features:   make([]LayerFeature, len(features)),
		RenderedAt: clock.Now(),
	}
	for i, f := range features {
		result, ok := results[f.CanonicalID]
		if !ok {
			result = NoData
		} else {
			layer.Matched++
		}
		layer.Features[i] = LayerFeature{Feature: f, Result: result}
	}
	return layer
}

// Lookup returns the feature with the given canonical id and its attached
// result, and whether such a feature exists in the layer.
func (l Layer) Lookup(canonicalID string) (LayerFeature, bool) {
	for _, lf := range l.Features {
		if lf.Feature.CanonicalID == canonicalID {
			return lf, true
		}
	}
	return LayerFeature{Result: NoData}, false
}
