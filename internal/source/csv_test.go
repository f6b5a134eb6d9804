package source

import (
	"os"
	"strings"
	"testing"

	"github.com/couchcryptid/election-map/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeElectionRecords(t *testing.T) {
	f, err := os.Open("testdata/election.csv")
	require.NoError(t, err)
	defer f.Close()

	records, err := DecodeElectionRecords(f, discardLogger())
	require.NoError(t, err)

	// The row with year "NA" is skipped.
	require.Len(t, records, 10)

	first := records[0]
	assert.Equal(t, "6037", first.RawFIPS)
	assert.Equal(t, "06037", first.CanonicalID)
	assert.Equal(t, 2016, first.Year)
	assert.Equal(t, domain.PartyDemocrat, first.Party)
	assert.Equal(t, int64(2464364), first.CandidateVotes)
	assert.Equal(t, int64(3434308), first.TotalVotes)

	kalawao := records[9]
	assert.Equal(t, "15005", kalawao.CanonicalID)
	assert.Equal(t, int64(0), kalawao.CandidateVotes)
	assert.Equal(t, int64(0), kalawao.TotalVotes)
}

func TestDecodeElectionRecords_ColumnOrderAndCase(t *testing.T) {
	doc := "TotalVotes,Party,County_FIPS,CandidateVotes,Year\n1000,REPUBLICAN,1001,600,2020\n"

	records, err := DecodeElectionRecords(strings.NewReader(doc), discardLogger())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.NewElectionRecord("1001", 2020, domain.PartyRepublican, 600, 1000), records[0])
}

func TestDecodeElectionRecords_ByteOrderMark(t *testing.T) {
	doc := "\ufeffcounty_fips,year,party,candidatevotes,totalvotes\n6037,2020,DEMOCRAT,3,4\n"

	records, err := DecodeElectionRecords(strings.NewReader(doc), discardLogger())
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestDecodeElectionRecords_MissingColumn(t *testing.T) {
	doc := "county_fips,year,party,candidatevotes\n6037,2020,DEMOCRAT,3\n"

	_, err := DecodeElectionRecords(strings.NewReader(doc), discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "totalvotes")
}

func TestDecodeElectionRecords_Empty(t *testing.T) {
	_, err := DecodeElectionRecords(strings.NewReader(""), discardLogger())
	require.Error(t, err)
}

func TestDecodeElectionRecords_ShortRow(t *testing.T) {
	doc := "county_fips,year,party,candidatevotes,totalvotes\n6037,2020,DEMOCRAT\n"

	records, err := DecodeElectionRecords(strings.NewReader(doc), discardLogger())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(0), records[0].TotalVotes)
}

func TestParseVotes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
	}{
		{"integer", "3028885", 3028885},
		{"float export", "3028885.0", 3028885},
		{"empty", "", 0},
		{"missing marker", "NA", 0},
		{"negative", "-5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseVotes(tt.input))
		})
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"integer", "2020", 2020, false},
		{"float export", "2020.0", 2020, false},
		{"fractional", "2020.5", 0, true},
		{"missing marker", "NA", 0, true},
		{"empty", "", 0, true},
		{"infinite", "Inf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseYear(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeElectionRecords_FloatYear(t *testing.T) {
	doc := "county_fips,year,party,candidatevotes,totalvotes\n6037,2020.0,DEMOCRAT,3,4\n6037,2020.5,DEMOCRAT,3,4\n"

	records, err := DecodeElectionRecords(strings.NewReader(doc), discardLogger())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2020, records[0].Year)
}
