package normalize

import (
	"fmt"
	"strings"
	"testing"
)

const companiesCSV = "\ufeffRank,Name,Symbol,marketcap,price (USD),country\n" +
	"1,ASML,ASML,1500000000000,700.10,Netherlands\n" +
	"2,SAP,SAP,2300000000,240.00,Germany\n" +
	"3,Tiny Co,TINY,500000,1.00,Spain\n" +
	"4,Odd Co,ODD,n/a,1.00,Spain\n"

func TestMarketCapFormatsValues(t *testing.T) {
	res := NewMarketCap(20).Normalize([]byte(companiesCSV))
	if res.Degraded {
		t.Fatalf("unexpected degraded result: %s", res.Reason)
	}
	tbl := res.Value

	cols := tbl.Columns()
	if strings.Join(cols, ",") != "Rank,Company,Market Cap" {
		t.Fatalf("unexpected columns: %v", cols)
	}

	want := []string{"$1.50T", "$2.30B", "$500,000", "n/a"}
	got := tbl.Column(ColMarketCap)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("market caps = %q, want %q", got, want)
	}
	if tbl.Cell(1, ColCompany) != "SAP" || tbl.Cell(1, ColRank) != "2" {
		t.Fatalf("unexpected row: %v", tbl.Rows()[1])
	}
}

func TestMarketCapChangeColumn(t *testing.T) {
	csv := "rank, Company Name ,Market Cap,Change Today\n" +
		"1,ASML,1500000000000,-0.534\n" +
		"2,SAP,2300000000,1.2%\n" +
		"3,LVMH,300000000000,\n" +
		"4,Odd,1,flat\n"

	res := NewMarketCap(0).Normalize([]byte(csv))
	if res.Degraded {
		t.Fatalf("unexpected degraded result: %s", res.Reason)
	}
	want := []string{"-0.53%", "1.20%", "", "flat"}
	got := res.Value.Column(ColDaily)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("daily = %q, want %q", got, want)
	}
	if got := res.Value.Cell(2, ColMarketCap); got != "$300.00B" {
		t.Fatalf("unexpected market cap %q", got)
	}
}

func TestMarketCapPositionalFallback(t *testing.T) {
	csv := "#,Firm,Value\n1,ASML,1500000000000\n"
	res := NewMarketCap(0).Normalize([]byte(csv))
	if res.Degraded {
		t.Fatalf("unexpected degraded result: %s", res.Reason)
	}
	row := res.Value.Rows()[0]
	if row[0] != "1" || row[1] != "ASML" || row[2] != "$1.50T" {
		t.Fatalf("unexpected row: %q", row)
	}
}

func TestMarketCapTopN(t *testing.T) {
	var b strings.Builder
	b.WriteString("Rank,Name,marketcap\n")
	for i := 1; i <= 30; i++ {
		fmt.Fprintf(&b, "%d,Company %d,%d\n", i, i, 1000000000*i)
	}
	res := NewMarketCap(20).Normalize([]byte(b.String()))
	if res.Value.Len() != 20 {
		t.Fatalf("expected 20 rows, got %d", res.Value.Len())
	}
	if got := res.Value.Cell(19, ColCompany); got != "Company 20" {
		t.Fatalf("unexpected last company %q", got)
	}
}

func TestMarketCapRaggedRows(t *testing.T) {
	csv := "Rank,Name,marketcap\n1,ASML\n\n2,SAP,2300000000,extra\n"
	res := NewMarketCap(0).Normalize([]byte(csv))
	if res.Degraded {
		t.Fatalf("unexpected degraded result: %s", res.Reason)
	}
	if res.Value.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", res.Value.Len())
	}
	if got := res.Value.Cell(0, ColMarketCap); got != "" {
		t.Fatalf("expected empty market cap for short row, got %q", got)
	}
}

func TestMarketCapDegraded(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "too few columns", raw: "Name,Value\nASML,1\n"},
		{name: "header only", raw: "Rank,Name,marketcap\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewMarketCap(20).Normalize([]byte(tt.raw))
			if !res.Degraded || res.Reason == "" {
				t.Fatalf("expected degraded result, got %+v", res)
			}
			if !res.Value.Empty() {
				t.Fatalf("expected empty table")
			}
		})
	}
}
