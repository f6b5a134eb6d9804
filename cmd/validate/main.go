// Command validate performs data integrity checks on the two map inputs, the
// county boundary GeoJSON and the county election CSV, before they are
// served. It verifies identifier widths, duplicate counties, vote totals, and
// how well each election year joins against the boundaries.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -geometry data/usa_counties.geojson \
//	  -election data/election_results.csv \
//	  -year 2020
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/couchcryptid/election-map/internal/domain"
	"github.com/couchcryptid/election-map/internal/observability"
	"github.com/couchcryptid/election-map/internal/source"
)

// maxReported caps the per-phase error listing.
const maxReported = 20

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	geometry := flag.String("geometry", "", "path or URL of the county boundary GeoJSON")
	election := flag.String("election", "", "path or URL of the county election CSV")
	year := flag.Int("year", 0, "validate a single year (0 checks every year in the CSV)")
	minCoverage := flag.Float64("min-coverage", 0.95, "fraction of features that must have a result for each year")
	flag.Parse()

	if *geometry == "" || *election == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(os.Stdout, *geometry, *election, *year, *minCoverage); code != 0 {
		os.Exit(code)
	}
}

func run(out io.Writer, geometryPath, electionPath string, year int, minCoverage float64) int {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	fmt.Fprintln(out, "=== County Election Data Validation ===")
	fmt.Fprintln(out)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ds, err := source.Load(ctx, source.NewFetcher(time.Minute, logger), source.Sources{
		Geometry:   geometryPath,
		Election:   electionPath,
		Properties: source.DefaultFeatureProperties,
	}, logger, observability.NewUnregisteredMetrics())
	if err != nil {
		fmt.Fprintf(out, "FATAL: %v\n", err)
		return 1
	}

	years := ds.Years()
	if year != 0 {
		years = []int{year}
	}

	phases := []*phase{
		validateIdentifiers(ds),
		validateUniqueFeatures(ds.Features),
		validateVoteTotals(ds.Records),
	}
	for _, y := range years {
		phases = append(phases, validateJoin(ds, y, minCoverage))
	}

	report(out, phases)
	fmt.Fprintf(out, "\nFeatures: %d, records: %d, years: %v\n", len(ds.Features), len(ds.Records), ds.Years())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i == maxReported {
				fmt.Fprintf(out, "  ... %d more\n", len(p.errors)-maxReported)
				break
			}
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	for _, p := range phases {
		if !p.passed() {
			fmt.Fprintln(out, "\nValidation FAILED.")
			return 1
		}
	}
	fmt.Fprintln(out, "\nAll validations passed.")
	return 0
}

func report(out io.Writer, phases []*phase) {
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}
}

// ── Phases ──

// validateIdentifiers flags ids that normalization could not bring to the
// canonical width. They pass through unchanged and will never join.
func validateIdentifiers(ds *domain.Dataset) *phase {
	p := &phase{name: "Identifier widths"}
	for _, f := range ds.Features {
		if len(f.CanonicalID) != domain.FIPSWidth {
			p.errorf("feature %q: canonical id %q is %d characters", f.Name, f.CanonicalID, len(f.CanonicalID))
		}
	}
	for _, r := range ds.Records {
		if len(r.CanonicalID) != domain.FIPSWidth {
			p.errorf("record %d/%s: county_fips %q normalizes to %q", r.Year, r.Party, r.RawFIPS, r.CanonicalID)
		}
	}
	return p
}

func validateUniqueFeatures(features []domain.GeographicFeature) *phase {
	p := &phase{name: "Unique county features"}
	seen := make(map[string]string, len(features))
	for _, f := range features {
		if prev, ok := seen[f.CanonicalID]; ok {
			p.errorf("canonical id %s shared by %q and %q", f.CanonicalID, prev, f.Name)
			continue
		}
		seen[f.CanonicalID] = f.Name
	}
	return p
}

func validateVoteTotals(records []domain.ElectionRecord) *phase {
	p := &phase{name: "Vote totals"}
	for _, r := range records {
		if _, err := domain.RecordMargin(r); err != nil {
			p.errorf("%s %d %s: %v", r.CanonicalID, r.Year, r.Party, err)
			continue
		}
		if r.CandidateVotes > r.TotalVotes {
			p.errorf("%s %d %s: candidate votes %d exceed total %d",
				r.CanonicalID, r.Year, r.Party, r.CandidateVotes, r.TotalVotes)
		}
	}
	return p
}

// validateJoin checks that every county with a result for year has a
// boundary, and that enough boundaries receive a result.
func validateJoin(ds *domain.Dataset, year int, minCoverage float64) *phase {
	p := &phase{name: fmt.Sprintf("Join coverage %d", year)}

	results, _ := domain.ComputeMargins(ds.Records, year)
	layer := domain.BuildLayer(year, ds.Features, results)

	known := make(map[string]struct{}, len(ds.Features))
	for _, f := range ds.Features {
		known[f.CanonicalID] = struct{}{}
	}
	orphans := make([]string, 0)
	for id := range results {
		if _, ok := known[id]; !ok {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		p.errorf("result for %s has no boundary feature", id)
	}

	if len(layer.Features) > 0 {
		coverage := float64(layer.Matched) / float64(len(layer.Features))
		if coverage < minCoverage {
			p.errorf("%d of %d features have a result (%.1f%%, want at least %.1f%%)",
				layer.Matched, len(layer.Features), coverage*100, minCoverage*100)
		}
	}
	return p
}
