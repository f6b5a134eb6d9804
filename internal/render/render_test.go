package render

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/couchcryptid/election-map/internal/domain"
	"github.com/couchcryptid/election-map/internal/observability"
	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayer() domain.Layer {
	return domain.Layer{
		Year: 2020,
		Features: []domain.LayerFeature{
			{
				Feature: domain.NewGeographicFeature("6", "37", "Los Angeles", orb.Point{-118.2, 34.0}),
				Result:  domain.CountyResult{Party: domain.PartyDemocrat, Margin: 75},
			},
			{
				Feature: domain.NewGeographicFeature("1", "1", "Autauga", orb.Point{-86.6, 32.5}),
				Result:  domain.CountyResult{Party: domain.PartyRepublican, Margin: 7.5},
			},
			{
				Feature: domain.NewGeographicFeature("15", "5", "Kalawao", orb.Point{-156.9, 21.2}),
				Result:  domain.NoData,
			},
			{
				Feature: domain.NewGeographicFeature("50", "7", "Chittenden", orb.Point{-73.1, 44.5}),
				Result:  domain.CountyResult{Party: "GREEN", Margin: 40},
			},
		},
		Matched:    3,
		RenderedAt: time.Date(2020, 11, 3, 12, 0, 0, 0, time.UTC),
	}
}

func TestSnapshot_LatestBeforeRender(t *testing.T) {
	s := NewSnapshot(observability.NewMetricsForTesting())
	_, ok := s.Latest()
	assert.False(t, ok)
}

func TestSnapshot_RenderReplacesLayer(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	s := NewSnapshot(metrics)
	ctx := context.Background()

	require.NoError(t, s.Render(ctx, domain.Layer{Year: 2016}))
	require.NoError(t, s.Render(ctx, testLayer()))

	got, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, 2020, got.Year)
	assert.Len(t, got.Features, 4)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.LayerPublished.WithLabelValues("snapshot")), 0)
}

func TestEncodeLayer_Properties(t *testing.T) {
	fc := EncodeLayer(testLayer())
	require.Len(t, fc.Features, 4)

	assert.Equal(t, 2020, fc.ExtraMembers["year"])
	assert.Equal(t, 3, fc.ExtraMembers["matched"])
	assert.Equal(t, "2020-11-03T12:00:00Z", fc.ExtraMembers["rendered_at"])

	la := fc.Features[0]
	assert.Equal(t, "06037", la.ID)
	assert.Equal(t, "06037", la.Properties[PropFIPS])
	assert.Equal(t, "Los Angeles", la.Properties[PropName])
	assert.Equal(t, domain.PartyDemocrat, la.Properties[PropParty])
	assert.InDelta(t, 75.0, la.Properties[PropMargin], 0)
	assert.Equal(t, "safe_democrat", la.Properties[PropBucket])
	assert.Equal(t, "#00008b", la.Properties[PropFill])
	assert.Equal(t, "County: Los Angeles\nMargin: 75%\nParty: DEMOCRAT", la.Properties[PropTooltip])
	assert.Equal(t, orb.Point{-118.2, 34.0}, la.Geometry)

	autauga := fc.Features[1]
	assert.Equal(t, "likely_republican", autauga.Properties[PropBucket])
	assert.Equal(t, "#e06666", autauga.Properties[PropFill])

	kalawao := fc.Features[2]
	assert.Nil(t, kalawao.Properties[PropParty])
	assert.Nil(t, kalawao.Properties[PropBucket])
	assert.Equal(t, domain.NoDataColor, kalawao.Properties[PropFill])
	assert.Contains(t, kalawao.Properties[PropTooltip], "Party: No Data")

	green := fc.Features[3]
	assert.Equal(t, "GREEN", green.Properties[PropParty])
	assert.Nil(t, green.Properties[PropBucket])
	assert.Equal(t, domain.NoDataColor, green.Properties[PropFill])
}

func TestEncodeLayer_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(EncodeLayer(testLayer()))
	require.NoError(t, err)

	var doc struct {
		Type     string `json:"type"`
		Year     int    `json:"year"`
		Features []struct {
			ID         string         `json:"id"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "FeatureCollection", doc.Type)
	assert.Equal(t, 2020, doc.Year)
	require.Len(t, doc.Features, 4)
	assert.Equal(t, "01001", doc.Features[1].ID)
	assert.Contains(t, doc.Features[2].Properties, PropParty)
	assert.Nil(t, doc.Features[2].Properties[PropParty])
}

func TestEncodeLayer_Empty(t *testing.T) {
	fc := EncodeLayer(domain.Layer{Year: 1999})
	assert.Empty(t, fc.Features)
	assert.Equal(t, 1999, fc.ExtraMembers["year"])
}
