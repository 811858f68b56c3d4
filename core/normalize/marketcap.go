package normalize

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gaurav-prasanna/dailybrief/core"
	"github.com/gaurav-prasanna/dailybrief/core/format"
)

// Market-cap table columns.
const (
	ColRank      = "Rank"
	ColCompany   = "Company"
	ColMarketCap = "Market Cap"
	ColDaily     = "Daily %"
)

// MarketCapRules locate the market-cap CSV columns. Rank, name and market
// cap fall back to the first three positions; the change column is optional.
var MarketCapRules = []ColumnRule{
	{Role: RoleRank, Keywords: []string{"rank"}, Fallback: 0},
	{Role: RoleName, Keywords: []string{"name", "company"}, Fallback: 1},
	{Role: RoleMarketCap, Keywords: []string{"market"}, Fallback: 2},
	{Role: RoleChange, Keywords: []string{"change", "today", "1d"}, Fallback: NoFallback},
}

// MarketCap normalizes a ranked company CSV export.
type MarketCap struct {
	TopN  int // <= 0 keeps all rows
	Rules []ColumnRule
}

// NewMarketCap creates a MarketCap normalizer keeping the top n companies.
func NewMarketCap(n int) *MarketCap {
	return &MarketCap{TopN: n, Rules: MarketCapRules}
}

// Normalize returns Rank, Company, Market Cap and, when the export has one,
// Daily %. Values that fail to parse are kept as they appear in the file.
func (m *MarketCap) Normalize(raw []byte) core.Result[core.Table] {
	records, err := readCSV(raw)
	if err != nil {
		return core.EmptyTable(err.Error())
	}
	if len(records) == 0 {
		return core.EmptyTable(ReasonEmptyPayload)
	}

	header := records[0]
	cols := ResolveColumns(header, m.Rules)
	rankIdx, okRank := cols.Index(RoleRank)
	nameIdx, okName := cols.Index(RoleName)
	capIdx, okCap := cols.Index(RoleMarketCap)
	if !okRank || !okName || !okCap {
		return core.EmptyTable(fmt.Sprintf("header has %d columns, need at least 3", len(header)))
	}
	changeIdx, hasChange := cols.Index(RoleChange)

	columns := []string{ColRank, ColCompany, ColMarketCap}
	if hasChange {
		columns = append(columns, ColDaily)
	}

	var rows [][]string
	for _, rec := range records[1:] {
		if m.TopN > 0 && len(rows) >= m.TopN {
			break
		}
		if blankRecord(rec) {
			continue
		}
		row := []string{
			cellAt(rec, rankIdx),
			cellAt(rec, nameIdx),
			formatMarketCapCell(cellAt(rec, capIdx)),
		}
		if hasChange {
			row = append(row, formatChangeCell(cellAt(rec, changeIdx)))
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return core.EmptyTable(ReasonNoRows)
	}
	return core.OK(core.NewTable(columns, rows))
}

// readCSV reads every record, tolerating ragged rows and stray quotes.
func readCSV(raw []byte) ([][]string, error) {
	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) && len(records) > 0 {
				// Keep what was read before the malformed line.
				break
			}
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func blankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// formatMarketCapCell abbreviates a numeric market cap; anything that does
// not parse is returned unchanged.
func formatMarketCapCell(s string) string {
	v, ok := parseNumber(s)
	if !ok {
		return s
	}
	return format.MarketCap(v)
}

// formatChangeCell renders a daily change as a two-decimal percentage.
func formatChangeCell(s string) string {
	if s == "" {
		return ""
	}
	v, ok := parseNumber(s)
	if !ok {
		return s
	}
	return format.Percent(v)
}
