package core

import "time"

// Result is the outcome of normalizing one source. A degraded result still
// carries a renderable value (an empty table or a placeholder list) together
// with a human-readable reason.
type Result[T any] struct {
	Value    T
	Degraded bool
	Reason   string
}

// OK wraps a successfully normalized value.
func OK[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Degrade wraps a placeholder value and the reason the source degraded.
func Degrade[T any](v T, reason string) Result[T] {
	return Result[T]{Value: v, Degraded: true, Reason: reason}
}

// EmptyTable returns a degraded result holding a column-less empty table.
func EmptyTable(reason string) Result[Table] {
	return Degrade(Table{}, reason)
}

// PlaceholderHeadline is the single line shown when no headline could be read.
const PlaceholderHeadline = "No headlines available"

// NoHeadlines returns a degraded headline result holding the placeholder line.
func NoHeadlines(reason string) Result[HeadlineList] {
	return Degrade(HeadlineList{PlaceholderHeadline}, reason)
}

// HeadlinesKey is the key Report.Degraded uses for the headline list.
const HeadlinesKey = "headlines"

// Section is one tabular block of the report.
type Section struct {
	Key      string
	Title    string
	Icon     string
	Table    Result[Table]
	Colorize bool
}

// Report is everything needed to render one briefing document.
type Report struct {
	GeneratedAt time.Time
	Headlines   Result[HeadlineList]
	Sections    []Section
}

// Degraded returns the keys of every degraded part of the report, headlines first.
func (r Report) Degraded() []string {
	var keys []string
	if r.Headlines.Degraded {
		keys = append(keys, HeadlinesKey)
	}
	for _, s := range r.Sections {
		if s.Table.Degraded {
			keys = append(keys, s.Key)
		}
	}
	return keys
}
