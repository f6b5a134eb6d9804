package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/couchcryptid/election-map/internal/domain"
)

// Required election source columns.
const (
	colCountyFIPS     = "county_fips"
	colYear           = "year"
	colParty          = "party"
	colCandidateVotes = "candidatevotes"
	colTotalVotes     = "totalvotes"
)

var requiredColumns = []string{colCountyFIPS, colYear, colParty, colCandidateVotes, colTotalVotes}

// DecodeElectionRecords reads the tabular election source. Columns are
// matched by header name, case-insensitively, and may appear in any order.
// Rows with an unparseable year are skipped; unparseable vote counts read as
// zero, which the margin calculator then treats as degenerate or zero share.
func DecodeElectionRecords(r io.Reader, logger *slog.Logger) ([]domain.ElectionRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read election headers: %w", err)
	}
	index, err := columnIndex(headers)
	if err != nil {
		return nil, err
	}

	var records []domain.ElectionRecord
	skipped := 0
	for row := 2; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read election row %d: %w", row, err)
		}

		get := func(col string) string {
			i := index[col]
			if i >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[i])
		}

		year, err := parseYear(get(colYear))
		if err != nil {
			skipped++
			logger.Debug("skipping election row with invalid year", "row", row, "year", get(colYear))
			continue
		}

		records = append(records, domain.NewElectionRecord(
			get(colCountyFIPS),
			year,
			get(colParty),
			parseVotes(get(colCandidateVotes)),
			parseVotes(get(colTotalVotes)),
		))
	}

	if skipped > 0 {
		logger.Warn("skipped election rows", "count", skipped)
	}
	return records, nil
}

func columnIndex(headers []string) (map[string]int, error) {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("election source missing column %q", col)
		}
	}
	return index, nil
}

// parseYear accepts integer years and whole-number float forms such as
// "2020.0".
func parseYear(s string) (int, error) {
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("year %q is not a whole number", s)
	}
	return int(f), nil
}

// parseVotes parses a vote count, returning 0 for empty, "NA" or negative values.
func parseVotes(s string) int64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0
		}
		v = int64(f)
	}
	if v < 0 {
		return 0
	}
	return v
}
