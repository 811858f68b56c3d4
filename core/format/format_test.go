package format

import (
	"strings"
	"testing"
)

func TestColorize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "negative",
			in:   "<td>-3.2%</td>",
			want: `<td><span class="pct-neg">-3.2%</span></td>`,
		},
		{
			name: "unsigned",
			in:   "<td>4.1%</td>",
			want: `<td><span class="pct-pos">4.1%</span></td>`,
		},
		{
			name: "explicit plus",
			in:   "<td>+0.5%</td>",
			want: `<td><span class="pct-pos">+0.5%</span></td>`,
		},
		{
			name: "escaped plus",
			in:   "<td>&#43;12%</td>",
			want: `<td><span class="pct-pos">&#43;12%</span></td>`,
		},
		{
			name: "plain number untouched",
			in:   "<td>84.10</td><td>$1.50T</td>",
			want: "<td>84.10</td><td>$1.50T</td>",
		},
		{
			name: "embedded percentage untouched",
			in:   "<td>up 3% today</td>",
			want: "<td>up 3% today</td>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Colorize(tt.in); got != tt.want {
				t.Fatalf("Colorize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorizeMixedFragment(t *testing.T) {
	in := "<tr><td>Spain</td><td>-3.2%</td><td>4.1%</td></tr>"
	got := Colorize(in)
	if strings.Count(got, "pct-neg") != 1 || strings.Count(got, "pct-pos") != 1 {
		t.Fatalf("unexpected markers: %s", got)
	}
	if !strings.Contains(got, "<td>Spain</td>") {
		t.Fatalf("non-percentage text altered: %s", got)
	}
}

func TestMarketCap(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1500000000000, "$1.50T"},
		{2300000000, "$2.30B"},
		{500000, "$500,000"},
		{999, "$999"},
		{1e12, "$1.00T"},
	}
	for _, tt := range tests {
		if got := MarketCap(tt.in); got != tt.want {
			t.Errorf("MarketCap(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(-1.234); got != "-1.23%" {
		t.Fatalf("Percent(-1.234) = %q", got)
	}
	if got := Percent(2); got != "2.00%" {
		t.Fatalf("Percent(2) = %q", got)
	}
}

func TestClass(t *testing.T) {
	tests := map[string]string{
		"-0.53%": NegativeClass,
		"+1.5%":  PositiveClass,
		" 12% ":  PositiveClass,
		"84.10":  "",
		"n/a":    "",
		"":       "",
		"5 %":    "",
	}
	for in, want := range tests {
		if got := Class(in); got != want {
			t.Errorf("Class(%q) = %q, want %q", in, got, want)
		}
	}
}
