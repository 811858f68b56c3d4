package normalize

import (
	"fmt"
	"strings"
	"testing"
)

func rssFeed(titles ...string) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>News</title>`)
	for i, t := range titles {
		fmt.Fprintf(&b, "<item><title>%s</title><link>https://example.com/%d</link></item>", t, i)
	}
	b.WriteString(`</channel></rss>`)
	return []byte(b.String())
}

func TestHeadlinesLimit(t *testing.T) {
	titles := make([]string, 10)
	for i := range titles {
		titles[i] = fmt.Sprintf("Story %d", i+1)
	}

	res := NewHeadlines(8).Normalize(rssFeed(titles...))
	if res.Degraded {
		t.Fatalf("unexpected degraded result: %s", res.Reason)
	}
	if len(res.Value) != 8 {
		t.Fatalf("expected 8 headlines, got %d", len(res.Value))
	}
	for i, h := range res.Value {
		if want := fmt.Sprintf("Story %d", i+1); h != want {
			t.Fatalf("headline %d = %q, want %q", i, h, want)
		}
	}
}

func TestHeadlinesSkipsEmptyTitles(t *testing.T) {
	res := NewHeadlines(3).Normalize(rssFeed("First", "", "   ", "Second", "Third", "Fourth"))
	if res.Degraded {
		t.Fatalf("unexpected degraded result: %s", res.Reason)
	}
	want := []string{"First", "Second", "Third"}
	if len(res.Value) != len(want) {
		t.Fatalf("expected %v, got %v", want, res.Value)
	}
	for i := range want {
		if res.Value[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, res.Value)
		}
	}
}

func TestHeadlinesAtomFeed(t *testing.T) {
	atom := `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom"><title>Atom</title>
<entry><title>Atom story</title><link href="https://example.com/a"/><id>a</id></entry>
</feed>`
	res := NewHeadlines(5).Normalize([]byte(atom))
	if res.Degraded || len(res.Value) != 1 || res.Value[0] != "Atom story" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestHeadlinesFallsBackToPageHeadings(t *testing.T) {
	page := `<!DOCTYPE html><html><body><h1>Breaking news</h1><p>text</p><h2>Second story</h2></body></html>`
	res := NewHeadlines(5).Normalize([]byte(page))
	if res.Degraded {
		t.Fatalf("unexpected degraded result: %s", res.Reason)
	}
	if len(res.Value) != 2 || res.Value[0] != "Breaking news" || res.Value[1] != "Second story" {
		t.Fatalf("unexpected headlines: %v", res.Value)
	}
}

func TestHeadlinesDegraded(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{name: "nil", raw: nil},
		{name: "whitespace", raw: []byte("  \n ")},
		{name: "feed without titles", raw: rssFeed("", " ")},
		{name: "page without headings", raw: []byte("<html><body><p>nothing</p></body></html>")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewHeadlines(8).Normalize(tt.raw)
			if !res.Degraded {
				t.Fatalf("expected degraded result, got %v", res.Value)
			}
			if res.Reason == "" {
				t.Fatalf("expected a reason")
			}
			if len(res.Value) != 1 || res.Value[0] != PlaceholderHeadline {
				t.Fatalf("expected placeholder line, got %v", res.Value)
			}
		})
	}
}
