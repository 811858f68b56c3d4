// Package normalize implements one core.Normalizer per data source.
// Every normalizer turns a raw fetched payload into a core.Table or
// core.HeadlineList and degrades to an explicit placeholder instead of
// failing: a malformed row is skipped or kept verbatim, and a missing table
// or undecodable payload yields an empty, reason-tagged result.
package normalize

import (
	"math"
	"strconv"
	"strings"
)

// Degradation reasons shared by the HTML table normalizers.
const (
	ReasonTableNotFound = "table not found"
	ReasonNoRows        = "no usable rows"
	ReasonEmptyPayload  = "empty payload"
)

// numberReplacer removes currency symbols, thousands separators and
// surrounding decoration before a numeric parse.
var numberReplacer = strings.NewReplacer(
	"$", "", "€", "", "£", "", ",", "", " ", "", "\u00a0", "", "%", "",
)

// parseNumber parses a humanized numeric cell such as "$1,234.5" or "-0.53%".
func parseNumber(s string) (float64, bool) {
	clean := numberReplacer.Replace(strings.TrimSpace(s))
	if clean == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// cellAt returns the trimmed cell at index i, or "" when the row is too short.
func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}
