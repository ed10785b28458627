package crawl

import (
	"context"
	"log/slog"

	"github.com/minjae-dev/campcrawl"
)

// Ensure Service implements campcrawl.CrawlService at compile time.
var _ campcrawl.CrawlService = (*Service)(nil)

// Service runs one crawl per request. Each request carries its own session
// cookie, so the fetch client and seen-filter are built fresh per crawl while
// the extractor and rate limiter are shared.
type Service struct {
	// NewFetcher builds a fetch client authenticated with the request's
	// session cookie.
	NewFetcher func(sessionCookie string) campcrawl.Fetcher

	// NewSeen builds a fresh per-crawl dedup filter.
	NewSeen func() campcrawl.SeenFilter

	Extractor campcrawl.Extractor
	Limiter   campcrawl.SiteLimiter
	Logger    *slog.Logger
}

func (s *Service) Crawl(ctx context.Context, site campcrawl.Site, req campcrawl.CrawlRequest, sink campcrawl.RecordSink) error {
	if err := req.Validate(); err != nil {
		return err
	}

	fetcher := s.NewFetcher(req.SessionCookie)
	defer fetcher.Close()

	c := &Crawler{
		Fetcher:   fetcher,
		Extractor: s.Extractor,
		Seen:      s.NewSeen(),
		Limiter:   s.Limiter,
		Logger:    s.Logger,
	}
	return c.Crawl(ctx, site, req, sink)
}
