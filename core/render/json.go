package render

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gaurav-prasanna/dailybrief/core"
)

// reportJSON is the machine-readable shape of a report.
type reportJSON struct {
	GeneratedAt string        `json:"generated_at"`
	Headlines   headlinesJSON `json:"headlines"`
	Sections    []sectionJSON `json:"sections"`
	Degraded    []string      `json:"degraded"`
}

type headlinesJSON struct {
	Items    []string `json:"items"`
	Degraded bool     `json:"degraded"`
	Reason   string   `json:"reason,omitempty"`
}

type sectionJSON struct {
	Key      string              `json:"key"`
	Title    string              `json:"title"`
	Columns  []string            `json:"columns"`
	Rows     []map[string]string `json:"rows"`
	Degraded bool                `json:"degraded"`
	Reason   string              `json:"reason,omitempty"`
}

// JSONRenderer dumps the report as indented JSON. Rows are keyed by
// column name; the column list keeps their order.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts the report into JSON.
func (r *JSONRenderer) Render(report core.Report) ([]byte, error) {
	out := reportJSON{
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		Headlines: headlinesJSON{
			Items:    nonNil(report.Headlines.Value),
			Degraded: report.Headlines.Degraded,
			Reason:   report.Headlines.Reason,
		},
		Sections: make([]sectionJSON, 0, len(report.Sections)),
		Degraded: nonNil(report.Degraded()),
	}

	for _, s := range report.Sections {
		t := s.Table.Value
		cols := t.Columns()
		rows := make([]map[string]string, 0, t.Len())
		for _, row := range t.Rows() {
			m := make(map[string]string, len(cols))
			for i, c := range cols {
				m[c] = row[i]
			}
			rows = append(rows, m)
		}
		out.Sections = append(out.Sections, sectionJSON{
			Key:      s.Key,
			Title:    s.Title,
			Columns:  nonNil(cols),
			Rows:     rows,
			Degraded: s.Table.Degraded,
			Reason:   s.Table.Reason,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

func nonNil[S ~[]string](s S) []string {
	if s == nil {
		return []string{}
	}
	return []string(s)
}
