// Package format applies value-level presentation to normalized data:
// currency abbreviation and percentage strings for normalizers, and
// sign-based color markers for rendered table fragments.
package format

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
)

// Marker classes wrapped around percentage tokens by Colorize.
const (
	NegativeClass = "pct-neg"
	PositiveClass = "pct-pos"
)

// pctToken matches a percentage that fills a whole element's text, e.g.
// ">-3.2%<". html/template escapes '+' as "&#43;", so both forms are accepted.
var pctToken = regexp.MustCompile(`>((?:-|\+|&#43;)?\d+(?:[.,]\d+)?%)<`)

var pctValue = regexp.MustCompile(`^[+-]?\d+(?:[.,]\d+)?%$`)

// Colorize wraps every percentage token in an HTML fragment with a marker
// span: negative values get NegativeClass, everything else PositiveClass.
// Text that is not a standalone percentage token is left untouched.
func Colorize(fragment string) string {
	return pctToken.ReplaceAllStringFunc(fragment, func(m string) string {
		token := m[1 : len(m)-1]
		return `><span class="` + signClass(token) + `">` + token + `</span><`
	})
}

// Class returns the marker class for a plain-text cell holding a single
// percentage, or "" when the cell is anything else.
func Class(cell string) string {
	cell = strings.TrimSpace(cell)
	if !pctValue.MatchString(cell) {
		return ""
	}
	return signClass(cell)
}

func signClass(token string) string {
	if strings.HasPrefix(token, "-") {
		return NegativeClass
	}
	return PositiveClass
}

// MarketCap abbreviates a dollar amount: trillions and billions get two
// decimals and a T/B suffix, smaller values are a thousands-separated integer.
func MarketCap(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("$%.2fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("$%.2fB", v/1e9)
	default:
		return "$" + humanize.Comma(int64(math.Round(v)))
	}
}

// Percent formats v with two decimals and a percent sign.
func Percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
