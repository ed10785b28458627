// Package resty provides a session-authenticated implementation of
// campcrawl.Fetcher for storefront listing pages. The storefront renders
// listings server-side, so a plain HTTP client carrying the session cookie
// is sufficient.
package resty

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/minjae-dev/campcrawl"
)

// DefaultFetchTimeout is the default timeout for listing-page requests.
const DefaultFetchTimeout = 30 * time.Second

// The storefront serves a degraded page to unknown user agents.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Ensure Fetcher implements campcrawl.Fetcher at compile time.
var _ campcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves listing pages with an authenticated session cookie.
type Fetcher struct {
	client  *resty.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for listing-page requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a Fetcher that sends the given session cookie with
// every request.
func NewFetcher(sessionCookie string, opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	client := resty.New()
	client.SetTimeout(f.timeout)
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Cookie", sessionCookie)
	f.client = client

	return f
}

// Fetch retrieves the HTML document at the URL. An expired or rejected
// session surfaces as EUNAUTHORIZED so callers can stop the crawl instead
// of retrying.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", err
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return "", campcrawl.Errorf(campcrawl.EUNAUTHORIZED, "session rejected with HTTP %d for %s", code, url)
	case code != http.StatusOK:
		return "", campcrawl.Errorf(campcrawl.EUNAVAILABLE, "HTTP %d for %s", code, url)
	}

	// The storefront answers expired sessions with a 200 redirect chain
	// ending on the login page.
	if final := resp.RawResponse.Request.URL; strings.Contains(final.Path, "login") {
		return "", campcrawl.Errorf(campcrawl.EUNAUTHORIZED, "session expired, redirected to %s", final)
	}

	return string(resp.Body()), nil
}

// Close releases resources. The underlying client needs no explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
