// Package extract pulls loosely structured content out of HTML pages.
// It locates tables and headings with goquery after removing noise
// elements (scripts, styles, inline SVG), and returns plain cell text with
// whitespace collapsed.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoTable is returned when no element matches the table selector.
var ErrNoTable = errors.New("table not found")

// noiseSelectors are HTML elements removed before extraction.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"svg", "canvas", "iframe",
}

// HTMLExtractor strips noise from HTML and returns table or heading text.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Table returns the text of every row of the first element matching tableSel.
// Cells are the direct children of each <tr> that match cellSel
// (e.g. "td" or "td, th"). Rows are returned in document order, header rows
// included, and may have differing lengths.
func (e *HTMLExtractor) Table(html []byte, tableSel, cellSel string) ([][]string, error) {
	doc, err := e.parse(html)
	if err != nil {
		return nil, err
	}

	table := doc.Find(tableSel).First()
	if table.Length() == 0 {
		return nil, ErrNoTable
	}

	isTable := table.Is("table")
	var rows [][]string
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		// Skip rows that belong to a table nested inside this one.
		if isTable && tr.Closest("table").Get(0) != table.Get(0) {
			return
		}
		var cells []string
		tr.ChildrenFiltered(cellSel).Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, CleanText(td.Text()))
		})
		rows = append(rows, cells)
	})
	return rows, nil
}

// Headings returns the non-empty text of every element matching sel
// (e.g. "h1, h2"), in document order.
func (e *HTMLExtractor) Headings(html []byte, sel string) ([]string, error) {
	doc, err := e.parse(html)
	if err != nil {
		return nil, err
	}

	var out []string
	doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
		if text := CleanText(s.Text()); text != "" {
			out = append(out, text)
		}
	})
	return out, nil
}

func (e *HTMLExtractor) parse(html []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
	return doc, nil
}

// CleanText collapses runs of whitespace (including non-breaking spaces)
// into single spaces and trims the result.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}
