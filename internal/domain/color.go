package domain

import (
	"fmt"
	"math"
	"strconv"
)

// Classification thresholds in margin points, shared by both parties.
const (
	LeanThreshold   = 5.0
	LikelyThreshold = 10.0
)

// NoDataColor fills counties without a result.
const NoDataColor = "#ccc"

// Bucket is a color class ordered from most Republican to most Democratic.
// Bucket b and Bucket(BucketCount-1-b) are mirror images.
type Bucket int

const (
	BucketSafeRepublican Bucket = iota
	BucketLikelyRepublican
	BucketLeanRepublican
	BucketLeanDemocrat
	BucketLikelyDemocrat
	BucketSafeDemocrat

	BucketCount = 6
)

var palette = [BucketCount]string{
	"#a70000", // dark red
	"#e06666", // red
	"#f4cccc", // light red
	"#add8e6", // light blue
	"#4682b4", // blue
	"#00008b", // dark blue
}

var bucketNames = [BucketCount]string{
	"safe_republican",
	"likely_republican",
	"lean_republican",
	"lean_democrat",
	"likely_democrat",
	"safe_democrat",
}

// Color returns the fill for b.
func (b Bucket) Color() string {
	if b < 0 || b >= BucketCount {
		return NoDataColor
	}
	return palette[b]
}

func (b Bucket) String() string {
	if b < 0 || b >= BucketCount {
		return fmt.Sprintf("bucket(%d)", int(b))
	}
	return bucketNames[b]
}

// Mirror returns the bucket at the opposite palette position.
func (b Bucket) Mirror() Bucket {
	return BucketCount - 1 - b
}

// Classify maps a signed margin to a bucket. The side comes from the sign
// bit, so a negated zero lands on the Republican side. Magnitudes below 5 are
// lean, below 10 likely, anything else safe.
func Classify(x float64) Bucket {
	var offset Bucket
	a := math.Abs(x)
	switch {
	case a < LeanThreshold:
		offset = 0
	case a < LikelyThreshold:
		offset = 1
	default:
		offset = 2
	}
	b := BucketLeanDemocrat + offset
	if math.Signbit(x) {
		return b.Mirror()
	}
	return b
}

// SignedMargin applies the party sign convention: Democratic margins are
// positive, Republican margins negated. ok is false for parties that do not
// map onto the red/blue scale, including the NoData sentinel.
func SignedMargin(r CountyResult) (float64, bool) {
	switch r.Party {
	case PartyDemocrat:
		return r.Margin, true
	case PartyRepublican:
		return -r.Margin, true
	default:
		return 0, false
	}
}

// Fill returns the map color for a county result.
func Fill(r CountyResult) string {
	x, ok := SignedMargin(r)
	if !ok {
		return NoDataColor
	}
	return Classify(x).Color()
}

// Tooltip renders the hover text for a county.
func Tooltip(name string, r CountyResult) string {
	party := r.Party
	if party == "" {
		party = "No Data"
	}
	return fmt.Sprintf("County: %s\nMargin: %s%%\nParty: %s",
		name, strconv.FormatFloat(r.Margin, 'f', -1, 64), party)
}
