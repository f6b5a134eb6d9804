// Package domain models county-level presidential election results joined to
// county boundary features for a choropleth map.
//
// # Data Sources
//
// Election results follow the MIT Election Data + Science Lab county
// returns layout: one row per candidate per county per year, with the
// columns county_fips, year, party, candidatevotes and totalvotes. County
// boundaries come from a Census-style GeoJSON feature collection whose
// properties carry the state and county sub-codes (STATE, COUNTY) and a
// display name (NAME).
//
// # FIPS Conventions
//
// A county is identified by its 5-digit FIPS code: a 2-digit state code
// followed by a 3-digit county code, e.g. "06037" for Los Angeles County, CA.
// The two sources disagree on formatting:
//
//	election rows:  "6037"        (numeric, leading zero dropped)
//	features:       "06", "037"   (separate sub-codes, sometimes unpadded)
//
// Both are left-padded with '0' to a fixed width before joining (see
// [NormalizeFIPS] and [CanonicalID]). Values longer than the target width
// pass through unchanged; they are never truncated.
//
// # Margin
//
// A candidate's margin is its share of the county's total votes as a
// percentage, rounded to two decimals:
//
//	margin = round2(candidatevotes / totalvotes * 100)
//
// The county winner for a year is the record with the strictly greatest
// rounded margin; on a tie the record seen first wins. Rows with a zero
// total are rejected (see [ErrDegenerateVoteTotal]).
//
// # Color Buckets
//
// Margins are signed by party before classification: Democratic margins are
// positive, Republican margins are negated. The signed value is split by
// side and by magnitude at 5 and 10 points into six buckets:
//
//	< -10     safe republican    #a70000
//	-10..-5   likely republican  #e06666
//	-5..0     lean republican    #f4cccc
//	0..5      lean democrat      #add8e6
//	5..10     likely democrat    #4682b4
//	>= 10     safe democrat      #00008b
//
// Counties without a result for the selected year are drawn in neutral gray.
package domain
