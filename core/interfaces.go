// Package core defines the data model and pipeline interfaces for dailybrief.
// Each stage of the pipeline is a clean, testable interface: values flow
// forward only, and no stage keeps references into a previous stage's output.
package core

import "context"

// FetchResult holds the raw payload and response metadata from a fetch.
type FetchResult struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// HeadlineList is an ordered list of non-empty headline titles.
type HeadlineList []string

// Fetcher retrieves a raw payload from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Normalizer converts one source's raw payload into a renderable value.
// Implementations must always return a usable Result, degrading instead of failing.
type Normalizer[T any] interface {
	Normalize(raw []byte) Result[T]
}

// Renderer converts a finished report into a final output format.
type Renderer interface {
	Render(report Report) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".html", ".pdf").
	Extension() string
}
