package normalize

import (
	"strings"
	"testing"
)

func energyPage(rows ...string) []byte {
	return []byte(`<html><body><table>
<tr><th>Country</th><th>Change</th><th>Average</th><th>High</th><th>Low</th></tr>` +
		strings.Join(rows, "\n") + `</table></body></html>`)
}

func TestEnergyChangeColumnPosition(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{
			name: "change at position 1",
			row:  `<tr><td>Spain</td><td>-3.2%</td><td>84.10</td><td>120.00</td><td>40.50</td></tr>`,
		},
		{
			name: "change at position 2",
			row:  `<tr><td>1</td><td>Spain</td><td>-3.2%</td><td>84.10</td><td>120.00</td><td>40.50</td></tr>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewEnergyPrices(0).Normalize(energyPage(tt.row))
			if res.Degraded {
				t.Fatalf("unexpected degraded result: %s", res.Reason)
			}
			tbl := res.Value
			if tbl.Len() != 1 {
				t.Fatalf("expected 1 row, got %d", tbl.Len())
			}
			want := map[string]string{
				ColRegion:   "Spain",
				ColChange:   "-3.2%",
				ColAvgPrice: "84.10",
				ColHigh:     "120.00",
				ColLow:      "40.50",
			}
			for col, v := range want {
				if got := tbl.Cell(0, col); got != v {
					t.Errorf("%s = %q, want %q", col, got, v)
				}
			}
		})
	}
}

func TestEnergyWithoutChangeColumn(t *testing.T) {
	res := NewEnergyPrices(0).Normalize(energyPage(
		`<tr><td>France</td><td>70.00</td><td>95.00</td><td>30.00</td></tr>`,
	))
	if res.Degraded {
		t.Fatalf("unexpected degraded result: %s", res.Reason)
	}
	tbl := res.Value
	if got := tbl.Cell(0, ColChange); got != "" {
		t.Fatalf("expected empty change, got %q", got)
	}
	if tbl.Cell(0, ColAvgPrice) != "70.00" || tbl.Cell(0, ColHigh) != "95.00" || tbl.Cell(0, ColLow) != "30.00" {
		t.Fatalf("unexpected price columns: %v", tbl.Rows()[0])
	}
}

func TestEnergyEarliestPercentageWins(t *testing.T) {
	res := NewEnergyPrices(0).Normalize(energyPage(
		`<tr><td>Italy</td><td>+1.5%</td><td>-2.0%</td><td>90.00</td></tr>`,
	))
	if got := res.Value.Cell(0, ColChange); got != "+1.5%" {
		t.Fatalf("expected earliest percentage as change, got %q", got)
	}
	if got := res.Value.Cell(0, ColAvgPrice); got != "-2.0%" {
		t.Fatalf("expected average right after change, got %q", got)
	}
}

func TestEnergyDropsShortRowsAndStripsRanks(t *testing.T) {
	res := NewEnergyPrices(0).Normalize(energyPage(
		`<tr><td>Broken</td><td>1.0%</td></tr>`,
		`<tr><td>2. Germany</td><td>0.5%</td><td>91.00</td><td>110.00</td><td>60.00</td></tr>`,
		`<tr><td>3Portugal</td><td>1.1%</td><td>80.00</td></tr>`,
	))
	if res.Degraded {
		t.Fatalf("unexpected degraded result: %s", res.Reason)
	}
	regions := res.Value.Column(ColRegion)
	if len(regions) != 2 || regions[0] != "Germany" || regions[1] != "Portugal" {
		t.Fatalf("unexpected regions: %q", regions)
	}
	if got := res.Value.Cell(1, ColHigh); got != "" {
		t.Fatalf("expected missing trailing cell to be empty, got %q", got)
	}
}

func TestEnergyMaxRows(t *testing.T) {
	row := `<tr><td>X</td><td>1%</td><td>1</td><td>2</td><td>3</td></tr>`
	res := NewEnergyPrices(2).Normalize(energyPage(row, row, row))
	if res.Value.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", res.Value.Len())
	}
}

func TestEnergyDegraded(t *testing.T) {
	tests := []struct {
		name   string
		raw    []byte
		reason string
	}{
		{name: "no table", raw: []byte("<html><body><p>maintenance</p></body></html>"), reason: ReasonTableNotFound},
		{name: "empty", raw: nil, reason: ReasonTableNotFound},
		{name: "header only", raw: energyPage(), reason: ReasonNoRows},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewEnergyPrices(0).Normalize(tt.raw)
			if !res.Degraded || res.Reason != tt.reason {
				t.Fatalf("expected degraded %q, got %+v", tt.reason, res)
			}
			if !res.Value.Empty() {
				t.Fatalf("expected empty table")
			}
		})
	}
}

func TestStripRank(t *testing.T) {
	tests := map[string]string{
		"1. Spain":  "Spain",
		"12) Italy": "Italy",
		"3rd Zone":  "Zone",
		"Austria":   "Austria",
		"  7 Malta": "Malta",
	}
	for in, want := range tests {
		if got := StripRank(in); got != want {
			t.Errorf("StripRank(%q) = %q, want %q", in, got, want)
		}
	}
}
