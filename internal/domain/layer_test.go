package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFeatures() []GeographicFeature {
	return []GeographicFeature{
		NewGeographicFeature("06", "037", "Los Angeles", nil),
		NewGeographicFeature("48", "201", "Harris", nil),
		NewGeographicFeature("2", "13", "Aleutians East", nil),
	}
}

func TestBuildLayer(t *testing.T) {
	fixed := time.Date(2020, 11, 4, 6, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	results := map[string]CountyResult{
		"06037": {Party: PartyDemocrat, Margin: 75},
		"48201": {Party: PartyDemocrat, Margin: 55.96},
		"99999": {Party: PartyRepublican, Margin: 80},
	}

	layer := BuildLayer(2020, testFeatures(), results)

	require.Len(t, layer.Features, 3)
	assert.Equal(t, 2020, layer.Year)
	assert.Equal(t, 2, layer.Matched)
	assert.Equal(t, fixed, layer.RenderedAt)

	assert.Equal(t, "Los Angeles", layer.Features[0].Feature.Name)
	assert.Equal(t, CountyResult{Party: PartyDemocrat, Margin: 75}, layer.Features[0].Result)
	assert.Equal(t, CountyResult{Party: PartyDemocrat, Margin: 55.96}, layer.Features[1].Result)
	assert.Equal(t, NoData, layer.Features[2].Result)
	assert.False(t, layer.Features[2].Result.HasData())
}

func TestBuildLayer_NoResultsFallsBackToSentinel(t *testing.T) {
	layer := BuildLayer(1850, testFeatures(), map[string]CountyResult{})

	assert.Equal(t, 0, layer.Matched)
	for _, lf := range layer.Features {
		assert.Equal(t, CountyResult{Party: "", Margin: 0}, lf.Result)
	}
}

func TestBuildLayer_DoesNotMutateFeatures(t *testing.T) {
	features := testFeatures()
	before := append([]GeographicFeature(nil), features...)

	first := BuildLayer(2020, features, map[string]CountyResult{"06037": {Party: PartyDemocrat, Margin: 75}})
	second := BuildLayer(2016, features, map[string]CountyResult{})

	assert.Equal(t, before, features)
	assert.Equal(t, PartyDemocrat, first.Features[0].Result.Party)
	assert.Equal(t, NoData, second.Features[0].Result)
}

func TestLayerLookup(t *testing.T) {
	layer := BuildLayer(2020, testFeatures(), map[string]CountyResult{"02013": {Party: PartyRepublican, Margin: 61.2}})

	lf, ok := layer.Lookup("02013")
	assert.True(t, ok)
	assert.Equal(t, PartyRepublican, lf.Result.Party)
	assert.Equal(t, "02013", lf.Feature.CanonicalID)

	lf, ok = layer.Lookup("06037")
	assert.True(t, ok)
	assert.Equal(t, NoData, lf.Result)

	lf, ok = layer.Lookup("00000")
	assert.False(t, ok)
	assert.Equal(t, NoData, lf.Result)
}

func TestDatasetYears(t *testing.T) {
	ds := NewDataset(nil, []ElectionRecord{
		NewElectionRecord("1001", 2020, PartyDemocrat, 1, 2),
		NewElectionRecord("1001", 2008, PartyDemocrat, 1, 2),
		NewElectionRecord("1003", 2020, PartyDemocrat, 1, 2),
		NewElectionRecord("1003", 2012, PartyDemocrat, 1, 2),
	})

	assert.Equal(t, []int{2008, 2012, 2020}, ds.Years())
	assert.Empty(t, NewDataset(nil, nil).Years())
}

func TestSetClock(t *testing.T) {
	t.Run("set custom clock", func(t *testing.T) {
		fixedTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		SetClock(clockwork.NewFakeClockAt(fixedTime))
		assert.Equal(t, fixedTime, clock.Now())
		SetClock(nil)
	})

	t.Run("reset to real clock", func(t *testing.T) {
		SetClock(clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
		SetClock(nil)
		assert.True(t, time.Since(clock.Now()) < time.Second)
	})

	t.Run("now and since follow the fake clock", func(t *testing.T) {
		fake := clockwork.NewFakeClockAt(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		SetClock(fake)
		defer SetClock(nil)

		start := Now()
		fake.Advance(250 * time.Millisecond)
		assert.Equal(t, 250*time.Millisecond, Since(start))
	})
}
