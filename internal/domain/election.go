package domain

import (
	"slices"

	"github.com/paulmach/orb"
)

// Party names as they appear in the election source. The set is open; any
// other value (GREEN, LIBERTARIAN, OTHER, ...) is carried through as-is.
const (
	PartyDemocrat   = "DEMOCRAT"
	PartyRepublican = "REPUBLICAN"
)

// ElectionRecord is one candidate's result in one county in one year.
type ElectionRecord struct {
	RawFIPS        string
	CanonicalID    string
	Year           int
	Party          string
	CandidateVotes int64
	TotalVotes     int64
}

// NewElectionRecord builds a record and derives its canonical id from the raw
// county_fips value.
func NewElectionRecord(rawFIPS string, year int, party string, candidateVotes, totalVotes int64) ElectionRecord {
	return ElectionRecord{
		RawFIPS:        rawFIPS,
		CanonicalID:    NormalizeFIPS(rawFIPS),
		Year:           year,
		Party:          party,
		CandidateVotes: candidateVotes,
		TotalVotes:     totalVotes,
	}
}

// GeographicFeature is one county boundary. Geometry is owned by the map
// renderer and never inspected here.
type GeographicFeature struct {
	StateCode   string
	CountyCode  string
	CanonicalID string
	Name        string
	Geometry    orb.Geometry
}

// NewGeographicFeature pads the state and county sub-codes and derives the
// canonical id.
func NewGeographicFeature(state, county, name string, geometry orb.Geometry) GeographicFeature {
	state = PadLeft(state, StateCodeWidth)
	county = PadLeft(county, CountyCodeWidth)
	return GeographicFeature{
		StateCode:   state,
		CountyCode:  county,
		CanonicalID: state + county,
		Name:        name,
		Geometry:    geometry,
	}
}

// CountyResult is the winning party and its margin for one county and year.
// The zero value is the "no data" sentinel.
type CountyResult struct {
	Party  string  `json:"party,omitempty"`
	Margin float64 `json:"margin"`
}

// NoData is the result attached to features without election data for the
// selected year.
var NoData = CountyResult{}

// HasData reports whether r carries a party.
func (r CountyResult) HasData() bool {
	return r.Party != ""
}

// Dataset is the loaded, immutable input to every render pass.
type Dataset struct {
	Features []GeographicFeature
	Records  []ElectionRecord
}

// NewDataset wraps the two loaded sources.
func NewDataset(features []GeographicFeature, records []ElectionRecord) *Dataset {
	return &Dataset{Features: features, Records: records}
}

// Years returns the distinct election years in ascending order.
func (d *Dataset) Years() []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, rec := range d.Records {
		if _, ok := seen[rec.Year]; ok {
			continue
		}
		seen[rec.Year] = struct{}{}
		years = append(years, rec.Year)
	}
	slices.Sort(years)
	return years
}
