package normalize

import (
	"errors"

	"github.com/gaurav-prasanna/dailybrief/core"
	"github.com/gaurav-prasanna/dailybrief/core/extract"
)

// Market index table columns.
const (
	ColIndex   = "Index"
	ColWeekly  = "Weekly"
	ColMonthly = "Monthly"
	ColYTD     = "YTD"
	ColYoY     = "YoY"
)

var indexColumns = []string{ColIndex, ColWeekly, ColMonthly, ColYTD, ColYoY}

// staticIndexRows is an illustrative snapshot, not live market data.
var staticIndexRows = [][]string{
	{"S&P 500", "1.12%", "2.35%", "14.80%", "21.40%"},
	{"Nasdaq 100", "1.54%", "3.10%", "18.25%", "27.90%"},
	{"Dow Jones", "0.48%", "1.05%", "8.60%", "12.30%"},
	{"Euro Stoxx 50", "-0.35%", "0.80%", "9.75%", "11.20%"},
	{"DAX", "-0.62%", "1.45%", "16.10%", "19.85%"},
	{"IBEX 35", "0.91%", "2.70%", "22.40%", "25.60%"},
	{"FTSE 100", "-0.18%", "-0.40%", "6.30%", "8.10%"},
	{"Nikkei 225", "2.05%", "4.20%", "12.90%", "17.45%"},
}

// StaticIndices returns the fixed illustrative index dataset. It ignores
// its payload, so it can sit in the pipeline without an endpoint until a
// live source replaces it.
type StaticIndices struct{}

// NewStaticIndices creates a StaticIndices normalizer.
func NewStaticIndices() *StaticIndices {
	return &StaticIndices{}
}

// Normalize returns the static dataset.
func (StaticIndices) Normalize([]byte) core.Result[core.Table] {
	return core.OK(core.NewTable(indexColumns, staticIndexRows))
}

// Trading Economics stocks table layout: data rows have more than eight
// cells, with the index name and the weekly, monthly, YTD and YoY changes
// at fixed positions.
const (
	teMinCells   = 9
	teNameCell   = 1
	teWeeklyCell = 5
)

// TradingEconomicsIndices normalizes the Trading Economics stock index page.
type TradingEconomicsIndices struct {
	extractor *extract.HTMLExtractor
}

// NewTradingEconomicsIndices creates a TradingEconomicsIndices normalizer.
func NewTradingEconomicsIndices() *TradingEconomicsIndices {
	return &TradingEconomicsIndices{extractor: extract.New()}
}

// Normalize reads every data row of the first table.table-hover table.
func (t *TradingEconomicsIndices) Normalize(raw []byte) core.Result[core.Table] {
	rows, err := t.extractor.Table(raw, "table.table-hover", "td")
	if errors.Is(err, extract.ErrNoTable) {
		return core.EmptyTable(ReasonTableNotFound)
	}
	if err != nil {
		return core.EmptyTable(err.Error())
	}

	var out [][]string
	for _, cells := range rows {
		if len(cells) < teMinCells {
			continue
		}
		out = append(out, []string{
			cells[teNameCell],
			cells[teWeeklyCell],
			cells[teWeeklyCell+1],
			cells[teWeeklyCell+2],
			cells[teWeeklyCell+3],
		})
	}
	if len(out) == 0 {
		return core.EmptyTable(ReasonNoRows)
	}
	return core.OK(core.NewTable(indexColumns, out))
}
