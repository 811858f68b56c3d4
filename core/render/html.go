// Package render provides output renderers for the dailybrief pipeline.
// The HTML renderer produces the primary report; the other formats are
// exports derived from the same core.Report.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/gaurav-prasanna/dailybrief/core"
	"github.com/gaurav-prasanna/dailybrief/core/format"
)

// TimestampLayout is the layout of the generation time shown in reports.
const TimestampLayout = "2006-01-02 15:04"

// Report titles.
const (
	DocumentTitle = "Executive Dashboard"
	Heading       = "Executive Intelligence Dashboard"
)

//go:embed templates/report.html.tmpl
var reportTemplate string

// HTMLRenderer renders a report as a single self-contained HTML page.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer creates an HTMLRenderer. The embedded template is parsed
// once; a parse failure is a programming error.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		tmpl: template.Must(template.New("report").Parse(reportTemplate)),
	}
}

type sectionView struct {
	Key         string
	Title       string
	Icon        string
	Body        template.HTML
	Unavailable bool
	Reason      string
}

type reportView struct {
	Title           string
	Heading         string
	GeneratedAt     string
	Headlines       []string
	HeadlinesReason string
	Sections        []sectionView
}

// Render executes the report template. Table fragments are rendered by the
// "table" sub-template and colorized before being embedded.
func (r *HTMLRenderer) Render(report core.Report) ([]byte, error) {
	view := reportView{
		Title:       DocumentTitle,
		Heading:     Heading,
		GeneratedAt: report.GeneratedAt.Format(TimestampLayout),
		Headlines:   report.Headlines.Value,
	}
	if report.Headlines.Degraded {
		view.HeadlinesReason = report.Headlines.Reason
	}

	for _, s := range report.Sections {
		sv := sectionView{Key: s.Key, Title: s.Title, Icon: s.Icon}
		if s.Table.Degraded || s.Table.Value.Empty() {
			sv.Unavailable = true
			sv.Reason = s.Table.Reason
		} else {
			body, err := r.tableFragment(s.Table.Value, s.Colorize)
			if err != nil {
				return nil, fmt.Errorf("rendering section %s: %w", s.Key, err)
			}
			sv.Body = body
		}
		view.Sections = append(view.Sections, sv)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("executing report template: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}

func (r *HTMLRenderer) tableFragment(t core.Table, colorize bool) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "table", t); err != nil {
		return "", err
	}
	fragment := buf.String()
	if colorize {
		fragment = format.Colorize(fragment)
	}
	// The fragment was produced by html/template, so its cell text is escaped.
	return template.HTML(fragment), nil
}
