// Package crawl orchestrates catalog crawls: it walks listing-page segments
// for a storefront, runs the extraction engine on each fetched page, applies
// the request's filters, and forwards surviving records to a sink.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/minjae-dev/campcrawl"
	"golang.org/x/sync/errgroup"
)

// DefaultSegmentSize is the number of campaign IDs covered by one
// listing-page request.
const DefaultSegmentSize = 500

// defaultFullRangeEnd bounds a full-range crawl. The catalog's live entries
// sit well below this ID.
const defaultFullRangeEnd = 20000

// koreanWeekdays maps time.Weekday to the weekday letters used by the
// client's day selection.
var koreanWeekdays = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// Crawler walks a storefront catalog and streams extracted campaigns.
type Crawler struct {
	Fetcher   campcrawl.Fetcher
	Extractor campcrawl.Extractor
	Seen      campcrawl.SeenFilter
	Limiter   campcrawl.SiteLimiter
	Logger    *slog.Logger

	// SegmentSize overrides DefaultSegmentSize when > 0.
	SegmentSize int

	// RetryDelays overrides DefaultRetryDelays when non-nil.
	// Tests use short delays.
	RetryDelays []time.Duration

	// Now reports the current time for weekday filtering.
	// Defaults to time.Now; tests override it.
	Now func() time.Time
}

// Crawl fetches every listing segment covered by the request, extracts
// campaigns from each, filters them, and forwards survivors to the sink in
// production order. On success the sink's Done is called; a fatal fetch or
// parse error aborts the crawl and is returned without retracting records
// already sent.
func (c *Crawler) Crawl(ctx context.Context, site campcrawl.Site, req campcrawl.CrawlRequest, sink campcrawl.RecordSink) error {
	if err := site.Validate(); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	start, end := req.StartID, req.EndID
	if req.UseFullRange {
		start, end = 1, defaultFullRangeEnd
	}

	segmentSize := c.SegmentSize
	if segmentSize <= 0 {
		segmentSize = DefaultSegmentSize
	}
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	// Producer fetches segments sequentially under the rate limit while the
	// consumer extracts and forwards, so one page is fetched while the
	// previous one is processed. Single producer and single consumer keep
	// records in segment order.
	g, ctx := errgroup.WithContext(ctx)
	pages := make(chan string, 1)

	g.Go(func() error {
		defer close(pages)
		for lo := start; lo <= end; lo += segmentSize {
			hi := min(lo+segmentSize-1, end)
			url := segmentURL(site, lo, hi)

			if c.Limiter != nil {
				if err := c.Limiter.Wait(ctx, site); err != nil {
					return err
				}
			}

			html, err := FetchWithRetry(ctx, url, c.Fetcher.Fetch, c.Logger, delays)
			if err != nil {
				// Keep fetcher error codes (e.g. an expired session)
				// visible to the caller.
				var appErr *campcrawl.Error
				if errors.As(err, &appErr) {
					return err
				}
				return campcrawl.Errorf(campcrawl.EUNAVAILABLE, "fetch %s: %v", url, err)
			}

			select {
			case pages <- html:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	g.Go(func() error {
		filter := newRecordFilter(c, req)
		for html := range pages {
			campaigns, err := c.Extractor.Extract(html, site)
			if err != nil {
				return err
			}
			for _, campaign := range campaigns {
				if !filter.keep(campaign) {
					continue
				}
				if err := sink.Send(campaign); err != nil {
					return err
				}
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return sink.Done()
}

// segmentURL builds the listing URL covering one campaign ID segment.
func segmentURL(site campcrawl.Site, lo, hi int) string {
	return fmt.Sprintf("https://%s.shopreview.co.kr/usr/campaign_list?start_csq=%d&end_csq=%d", site, lo, hi)
}

// recordFilter applies the request's per-record filters: excluded IDs,
// duplicate IDs, excluded title keywords, and selected weekdays.
type recordFilter struct {
	seen     campcrawl.SeenFilter
	excluded map[string]bool
	keywords []string
	days     []string
	rangeOK  func(csq string) bool
	year     int
}

func newRecordFilter(c *Crawler, req campcrawl.CrawlRequest) *recordFilter {
	excluded := make(map[string]bool, len(req.ExcludeIDs))
	for _, id := range req.ExcludeIDs {
		excluded[id] = true
	}

	rangeOK := func(string) bool { return true }
	if !req.UseFullRange {
		rangeOK = func(csq string) bool {
			n, err := strconv.Atoi(csq)
			return err == nil && n >= req.StartID && n <= req.EndID
		}
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	return &recordFilter{
		seen:     c.Seen,
		excluded: excluded,
		keywords: req.Keywords(),
		days:     req.Days(),
		rangeOK:  rangeOK,
		year:     now().Year(),
	}
}

func (f *recordFilter) keep(c *campcrawl.Campaign) bool {
	if f.excluded[c.CSQ] || !f.rangeOK(c.CSQ) {
		return false
	}

	if f.seen != nil {
		if f.seen.Seen(c.CSQ) {
			return false
		}
		f.seen.Add(c.CSQ)
	}

	for _, kw := range f.keywords {
		if strings.Contains(c.Title, kw) {
			return false
		}
	}

	if len(f.days) > 0 {
		t, err := campcrawl.ParseParticipationTime(c.ParticipationTime, f.year)
		if err != nil || !matchDay(f.days, koreanWeekdays[t.Weekday()]) {
			return false
		}
	}

	return true
}

// matchDay reports whether the weekday letter is selected. The client sends
// either bare letters ("월") or full names ("월요일").
func matchDay(days []string, letter string) bool {
	for _, d := range days {
		if d == letter || d == letter+"요일" {
			return true
		}
	}
	return false
}
