// Package pipeline drives one report run: every source is fetched and
// normalized in turn, and the results are assembled into a core.Report.
// A failing source degrades its own section and never stops the run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gaurav-prasanna/dailybrief/core"
)

// ErrDegraded reports that a run produced at least one degraded section.
// The CLI returns it in strict mode, after the report has been written.
var ErrDegraded = errors.New("report has degraded sections")

// Source describes one data source and how to turn its payload into T.
type Source[T any] struct {
	Key        string
	Title      string
	Icon       string
	URL        string // empty for static sources; the normalizer gets nil
	Normalizer core.Normalizer[T]
	Colorize   bool
}

// Pipeline runs its sources sequentially with a single fetcher.
type Pipeline struct {
	Fetcher   core.Fetcher
	Headlines Source[core.HeadlineList]
	Tables    []Source[core.Table]
	Log       logrus.FieldLogger
}

// Run collects every source and returns the assembled report stamped with now.
func (p *Pipeline) Run(ctx context.Context, now time.Time) core.Report {
	report := core.Report{
		GeneratedAt: now,
		Headlines:   collect(ctx, p, p.Headlines, core.NoHeadlines),
		Sections:    make([]core.Section, 0, len(p.Tables)),
	}
	for _, src := range p.Tables {
		report.Sections = append(report.Sections, core.Section{
			Key:      src.Key,
			Title:    src.Title,
			Icon:     src.Icon,
			Table:    collect(ctx, p, src, core.EmptyTable),
			Colorize: src.Colorize,
		})
	}
	return report
}

// Summary logs the outcome of a run and returns ErrDegraded when any part
// of the report degraded.
func Summary(log logrus.FieldLogger, report core.Report) error {
	degraded := report.Degraded()
	if len(degraded) == 0 {
		log.Info("all sources collected")
		return nil
	}
	log.WithField("sections", degraded).Warnf("%d section(s) degraded", len(degraded))
	return fmt.Errorf("%w: %v", ErrDegraded, degraded)
}

// collect fetches and normalizes one source. fail builds the degraded
// result for fetch errors and panics.
func collect[T any](ctx context.Context, p *Pipeline, src Source[T], fail func(string) core.Result[T]) (res core.Result[T]) {
	log := p.logger().WithField("source", src.Key)

	defer func() {
		if r := recover(); r != nil {
			res = fail(fmt.Sprintf("source panicked: %v", r))
		}
		logResult(log, res)
	}()

	if src.Normalizer == nil {
		return fail("no normalizer configured")
	}

	var raw []byte
	if src.URL != "" {
		log.WithField("url", src.URL).Debug("fetching")
		result, err := p.Fetcher.Fetch(ctx, src.URL)
		if err != nil {
			return fail(fmt.Sprintf("fetch failed: %v", err))
		}
		raw = result.Body
	}
	return src.Normalizer.Normalize(raw)
}

func logResult[T any](log logrus.FieldLogger, res core.Result[T]) {
	if res.Degraded {
		log.WithField("reason", res.Reason).Warn("source degraded")
		return
	}
	switch v := any(res.Value).(type) {
	case core.Table:
		log.WithField("rows", v.Len()).Info("source collected")
	case core.HeadlineList:
		log.WithField("headlines", len(v)).Info("source collected")
	default:
		log.Info("source collected")
	}
}

func (p *Pipeline) logger() logrus.FieldLogger {
	if p.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return p.Log
}
