package render

import (
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/gaurav-prasanna/dailybrief/core"
)

// MarkdownRenderer converts the HTML report into Markdown, so both
// documents always show the same content.
type MarkdownRenderer struct {
	html *HTMLRenderer
	conv *converter.Converter
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		html: NewHTMLRenderer(),
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Render renders the report as HTML and converts the result to Markdown.
func (r *MarkdownRenderer) Render(report core.Report) ([]byte, error) {
	html, err := r.html.Render(report)
	if err != nil {
		return nil, err
	}
	markdown, err := r.conv.ConvertString(string(html))
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return []byte(markdown), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
