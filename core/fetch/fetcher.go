// Package fetch implements the Fetcher interface.
// It performs HTTP GET requests that present a fixed browser-like header
// bundle and a bounded timeout. There are no retries: a failed fetch is the
// caller's signal to degrade that source.
package fetch

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gaurav-prasanna/dailybrief/core"
)

const (
	defaultTimeout = 12 * time.Second
	maxBodyBytes   = 10 << 20
)

// Options configures an HTTPFetcher. The values are copied by New.
type Options struct {
	Timeout time.Duration
	Headers map[string]string
}

// Error describes a failed fetch.
type Error struct {
	URL        string
	StatusCode int // zero when no response was received
	Reason     string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: %s (status %d)", e.URL, e.Reason, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %s", e.URL, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPFetcher fetches raw payloads via HTTP.
type HTTPFetcher struct {
	client  *http.Client
	headers http.Header
}

// New creates an HTTPFetcher from opts.
func New(opts Options) *HTTPFetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	headers := make(http.Header, len(opts.Headers))
	for k, v := range opts.Headers {
		headers.Set(k, v)
	}
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		headers: headers,
	}
}

// Fetch retrieves the body of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{URL: url, Reason: "invalid request", Err: err}
	}
	for k, vs := range f.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Reason: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{URL: url, StatusCode: resp.StatusCode, Reason: "unexpected status"}
	}

	body, err := decodeBody(resp)
	if err != nil {
		return nil, &Error{URL: url, StatusCode: resp.StatusCode, Reason: "reading response body", Err: err}
	}

	return &core.FetchResult{
		URL:         url,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// decodeBody reads the response body, undoing any content encoding we asked for.
// Setting Accept-Encoding by hand disables net/http's transparent gzip handling.
func decodeBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip", "x-gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	case "deflate":
		// Most servers send zlib-wrapped data here, some send a raw stream.
		br := bufio.NewReader(resp.Body)
		if hdr, err := br.Peek(2); err == nil && isZlibHeader(hdr) {
			zr, err := zlib.NewReader(br)
			if err != nil {
				return nil, fmt.Errorf("opening zlib stream: %w", err)
			}
			defer zr.Close()
			r = zr
		} else {
			fl := flate.NewReader(br)
			defer fl.Close()
			r = fl
		}
	}
	return io.ReadAll(io.LimitReader(r, maxBodyBytes))
}

func isZlibHeader(h []byte) bool {
	return h[0]&0x0f == 8 && (uint16(h[0])<<8|uint16(h[1]))%31 == 0
}
