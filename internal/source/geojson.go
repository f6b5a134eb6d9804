package source

import (
	"fmt"
	"io"
	"strconv"

	"github.com/couchcryptid/election-map/internal/domain"
	"github.com/paulmach/orb/geojson"
)

// FeatureProperties names the GeoJSON properties that carry a county's
// sub-codes and display name.
type FeatureProperties struct {
	State  string
	County string
	Name   string
}

// DefaultFeatureProperties matches the Census county boundary files.
var DefaultFeatureProperties = FeatureProperties{
	State:  "STATE",
	County: "COUNTY",
	Name:   "NAME",
}

// DecodeFeatures reads a GeoJSON feature collection into county features.
// Features lacking a state or county code are kept; their canonical id is
// padded from empty sub-codes and never matches election data.
func DecodeFeatures(r io.Reader, props FeatureProperties) ([]domain.GeographicFeature, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read geometry: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode geometry: %w", err)
	}

	features := make([]domain.GeographicFeature, 0, len(fc.Features))
	for _, f := range fc.Features {
		features = append(features, domain.NewGeographicFeature(
			propertyString(f.Properties, props.State),
			propertyString(f.Properties, props.County),
			propertyString(f.Properties, props.Name),
			f.Geometry,
		))
	}
	return features, nil
}

// propertyString reads a property as a string. Some boundary files encode
// codes as JSON numbers; those are formatted without a fractional part.
func propertyString(p geojson.Properties, key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
