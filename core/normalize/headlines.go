package normalize

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/gaurav-prasanna/dailybrief/core"
	"github.com/gaurav-prasanna/dailybrief/core/extract"
)

// PlaceholderHeadline is the single line shown when no headline could be read.
const PlaceholderHeadline = core.PlaceholderHeadline

// Headlines normalizes a syndication feed into a bounded headline list.
// When the payload is not a feed it falls back to the page's h1/h2 text.
type Headlines struct {
	Limit     int // maximum titles kept; <= 0 keeps all
	extractor *extract.HTMLExtractor
}

// NewHeadlines creates a Headlines normalizer keeping at most limit titles.
func NewHeadlines(limit int) *Headlines {
	return &Headlines{Limit: limit, extractor: extract.New()}
}

// Normalize returns up to Limit non-empty titles in document order.
func (h *Headlines) Normalize(raw []byte) core.Result[core.HeadlineList] {
	if len(bytes.TrimSpace(raw)) == 0 {
		return core.NoHeadlines(ReasonEmptyPayload)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(raw))
	if err == nil {
		titles := make([]string, 0, len(feed.Items))
		for _, item := range feed.Items {
			if item == nil {
				continue
			}
			titles = append(titles, item.Title)
		}
		if list := h.collect(titles); len(list) > 0 {
			return core.OK(list)
		}
		return core.NoHeadlines("feed has no titled entries")
	}

	headings, herr := h.extractor.Headings(raw, "h1, h2")
	if herr != nil {
		return core.NoHeadlines(fmt.Sprintf("parsing feed: %v", err))
	}
	if list := h.collect(headings); len(list) > 0 {
		return core.OK(list)
	}
	return core.NoHeadlines(fmt.Sprintf("parsing feed: %v; no page headings found", err))
}

// collect keeps non-empty titles in order until the limit is reached.
func (h *Headlines) collect(titles []string) core.HeadlineList {
	var out core.HeadlineList
	for _, t := range titles {
		if h.Limit > 0 && len(out) >= h.Limit {
			break
		}
		t = extract.CleanText(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
