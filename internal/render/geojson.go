package render

import (
	"time"

	"github.com/couchcryptid/election-map/internal/domain"
	"github.com/paulmach/orb/geojson"
)

// Feature property keys written by EncodeLayer.
const (
	PropFIPS    = "fips"
	PropName    = "name"
	PropParty   = "party"
	PropMargin  = "margin"
	PropBucket  = "bucket"
	PropFill    = "fill"
	PropTooltip = "tooltip"
)

// EncodeLayer converts a layer into a feature collection with one feature
// per county. Each feature carries its display attributes as properties;
// party is null for counties without data, and bucket is null unless the
// winner is one of the two major parties.
func EncodeLayer(layer domain.Layer) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.ExtraMembers = geojson.Properties{
		"year":        layer.Year,
		"matched":     layer.Matched,
		"rendered_at": layer.RenderedAt.UTC().Format(time.RFC3339),
	}
	for _, lf := range layer.Features {
		fc.Append(encodeFeature(lf))
	}
	return fc
}

func encodeFeature(lf domain.LayerFeature) *geojson.Feature {
	f := geojson.NewFeature(lf.Feature.Geometry)
	f.ID = lf.Feature.CanonicalID
	f.Properties[PropFIPS] = lf.Feature.CanonicalID
	f.Properties[PropName] = lf.Feature.Name
	f.Properties[PropMargin] = lf.Result.Margin
	f.Properties[PropFill] = domain.Fill(lf.Result)
	f.Properties[PropTooltip] = domain.Tooltip(lf.Feature.Name, lf.Result)

	f.Properties[PropParty] = nil
	if lf.Result.HasData() {
		f.Properties[PropParty] = lf.Result.Party
	}
	f.Properties[PropBucket] = nil
	if x, ok := domain.SignedMargin(lf.Result); ok {
		f.Properties[PropBucket] = domain.Classify(x).String()
	}
	return f
}
