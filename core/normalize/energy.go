package normalize

import (
	"errors"
	"regexp"

	"github.com/gaurav-prasanna/dailybrief/core"
	"github.com/gaurav-prasanna/dailybrief/core/extract"
)

// Energy price table columns.
const (
	ColRegion   = "Region"
	ColChange   = "Change %"
	ColAvgPrice = "Avg Price"
	ColHigh     = "High"
	ColLow      = "Low"
)

var energyColumns = []string{ColRegion, ColChange, ColAvgPrice, ColHigh, ColLow}

const (
	// minEnergyCells is the fewest cells a row needs to be kept.
	minEnergyCells = 3
	// changeScanCells is how many cells after the region are searched for
	// the change column.
	changeScanCells = 3
)

var (
	percentCell = regexp.MustCompile(`^[+-]?\d+(?:[.,]\d+)?\s?%$`)
	rankPrefix  = regexp.MustCompile(`^\d+(?:st|nd|rd|th)?[.)ºª°:-]?\s*`)
)

// EnergyPrices normalizes the first HTML table of an energy price
// comparison page. The position of the change column varies between page
// layouts, so it is detected per row.
type EnergyPrices struct {
	MaxRows   int // <= 0 keeps all rows
	extractor *extract.HTMLExtractor
}

// NewEnergyPrices creates an EnergyPrices normalizer keeping at most maxRows rows.
func NewEnergyPrices(maxRows int) *EnergyPrices {
	return &EnergyPrices{MaxRows: maxRows, extractor: extract.New()}
}

// Normalize returns Region, Change %, Avg Price, High and Low for every usable row.
func (e *EnergyPrices) Normalize(raw []byte) core.Result[core.Table] {
	rows, err := e.extractor.Table(raw, "table", "td, th")
	if errors.Is(err, extract.ErrNoTable) {
		return core.EmptyTable(ReasonTableNotFound)
	}
	if err != nil {
		return core.EmptyTable(err.Error())
	}
	if len(rows) > 0 {
		rows = rows[1:] // header
	}

	var out [][]string
	for _, cells := range rows {
		if e.MaxRows > 0 && len(out) >= e.MaxRows {
			break
		}
		if len(cells) < minEnergyCells {
			continue
		}
		out = append(out, energyRow(cells))
	}

	if len(out) == 0 {
		return core.EmptyTable(ReasonNoRows)
	}
	return core.OK(core.NewTable(energyColumns, out))
}

// energyRow maps one row's cells onto the energy columns. With a detected
// change column at k the region is searched in cells[:k] and the price
// columns start at k+1; without one the prices start right after the region.
func energyRow(cells []string) []string {
	region, change, first := cells[:1], "", 1
	if k := findChangeColumn(cells); k > 0 {
		region, change, first = cells[:k], cells[k], k+1
	}
	return []string{
		regionName(region),
		change,
		cellAt(cells, first),
		cellAt(cells, first+1),
		cellAt(cells, first+2),
	}
}

// findChangeColumn returns the index of the earliest percentage-shaped cell
// among the cells following the first one, or -1.
func findChangeColumn(cells []string) int {
	for i := 1; i <= changeScanCells && i < len(cells); i++ {
		if percentCell.MatchString(cells[i]) {
			return i
		}
	}
	return -1
}

// regionName returns the first candidate cell that still has text after its
// leading rank or ordinal digits are stripped.
func regionName(candidates []string) string {
	for _, c := range candidates {
		if name := StripRank(c); name != "" {
			return name
		}
	}
	if len(candidates) > 0 {
		return StripRank(candidates[0])
	}
	return ""
}

// StripRank removes a leading rank or ordinal such as "1.", "2)" or "3rd".
func StripRank(s string) string {
	return rankPrefix.ReplaceAllString(extract.CleanText(s), "")
}
