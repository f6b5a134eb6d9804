package domain

import (
	"errors"
	"math"
)

// ErrDegenerateVoteTotal is returned for records whose total vote count is
// zero, which leaves the margin undefined.
var ErrDegenerateVoteTotal = errors.New("degenerate vote total")

// MarginSummary counts what ComputeMargins saw for a year.
type MarginSummary struct {
	Records    int // records matching the year
	Degenerate int // records rejected for a zero total
	Counties   int // counties with a result
}

// Round2 rounds v to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RecordMargin returns the candidate's rounded share of total votes as a
// percentage.
func RecordMargin(rec ElectionRecord) (float64, error) {
	if rec.TotalVotes <= 0 {
		return 0, ErrDegenerateVoteTotal
	}
	return Round2(float64(rec.CandidateVotes) / float64(rec.TotalVotes) * 100), nil
}

// ComputeMargins picks, for every county with records in year, the record
// with the strictly greatest rounded margin. Records are scanned in input
// order, so on a tie the first one seen is kept. Records with a zero total
// are skipped and counted in the summary.
func ComputeMargins(records []ElectionRecord, year int) (map[string]CountyResult, MarginSummary) {
	results := make(map[string]CountyResult)
	var summary MarginSummary

	for _, rec := range records {
		if rec.Year != year {
			continue
		}
		summary.Records++

		margin, err := RecordMargin(rec)
		if err != nil {
			summary.Degenerate++
			continue
		}

		current, ok := results[rec.CanonicalID]
		if ok && margin <= current.Margin {
			continue
		}
		results[rec.CanonicalID] = CountyResult{Party: rec.Party, Margin: margin}
	}

	summary.Counties = len(results)
	return results, summary
}
