package domain

import "strings"

// Target widths for FIPS normalization.
const (
	StateCodeWidth  = 2
	CountyCodeWidth = 3
	FIPSWidth       = StateCodeWidth + CountyCodeWidth
)

// PadLeft left-pads s with '0' until it is width bytes long. Values already at
// or beyond width are returned unchanged.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// NormalizeFIPS pads a county_fips value from the election source to the
// 5-digit canonical id, e.g. "6037" -> "06037".
func NormalizeFIPS(raw string) string {
	return PadLeft(raw, FIPSWidth)
}

// CanonicalID joins a feature's state and county sub-codes into the 5-digit
// canonical id, e.g. ("6", "37") -> "06037".
func CanonicalID(state, county string) string {
	return PadLeft(state, StateCodeWidth) + PadLeft(county, CountyCodeWidth)
}
