package campcrawl

import (
	"context"
	"strings"
)

// CrawlRequest carries the parameters of one catalog crawl, as submitted by
// the client in the initial streaming message.
type CrawlRequest struct {
	// SessionCookie authenticates listing-page fetches.
	SessionCookie string `json:"session_cookie"`

	// SelectedDays is a comma-separated list of weekday names; only
	// campaigns whose participation time falls on one of them are kept.
	SelectedDays string `json:"selected_days"`

	// ExcludeKeywords is a comma-separated list; campaigns whose title
	// contains any of them are dropped.
	ExcludeKeywords string `json:"exclude_keywords"`

	// UseFullRange crawls the whole catalog instead of an explicit range.
	UseFullRange bool `json:"use_full_range"`
	StartID      int  `json:"start_id,omitempty"`
	EndID        int  `json:"end_id,omitempty"`

	// ExcludeIDs lists campaign IDs to drop regardless of other filters.
	ExcludeIDs []string `json:"exclude_ids,omitempty"`
}

// Validate returns an error if the request cannot start a crawl.
func (r *CrawlRequest) Validate() error {
	if r.SessionCookie == "" {
		return Errorf(EUNAUTHORIZED, "session cookie required")
	}
	if r.SelectedDays == "" {
		return Errorf(EINVALID, "selected days required")
	}
	if !r.UseFullRange && (r.StartID <= 0 || r.EndID < r.StartID) {
		return Errorf(EINVALID, "invalid campaign ID range %d-%d", r.StartID, r.EndID)
	}
	return nil
}

// Days returns the selected weekday names.
func (r *CrawlRequest) Days() []string {
	return splitList(r.SelectedDays)
}

// Keywords returns the exclusion keywords.
func (r *CrawlRequest) Keywords() []string {
	return splitList(r.ExcludeKeywords)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// CrawlService drives a catalog crawl, forwarding matching records to the
// sink as they are produced.
type CrawlService interface {
	// Crawl walks the catalog range described by req for the site and
	// streams surviving records to sink. Done is signaled on the sink on
	// success; a fatal failure aborts the stream and is returned instead.
	Crawl(ctx context.Context, site Site, req CrawlRequest, sink RecordSink) error
}

// RecordSink receives campaign records incrementally as a crawl produces
// them. Records already delivered before a fatal failure are not retracted.
type RecordSink interface {
	// Send forwards one record to the consumer.
	Send(c *Campaign) error

	// Done signals the successful end of the stream.
	Done() error
}

// SeenFilter deduplicates campaign IDs within a crawl.
// Implementations may be probabilistic: false positives are acceptable,
// false negatives are not.
type SeenFilter interface {
	// Add marks a campaign ID as seen.
	Add(csq string)

	// Seen returns true if the ID might have been seen already.
	Seen(csq string) bool
}

// SiteLimiter paces listing-page requests per storefront tenant.
type SiteLimiter interface {
	// Wait blocks until the rate limit allows a request to the site's
	// storefront. Returns an error if the context is canceled.
	Wait(ctx context.Context, site Site) error
}
