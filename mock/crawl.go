package mock

import (
	"context"

	"github.com/minjae-dev/campcrawl"
)

var _ campcrawl.CrawlService = (*CrawlService)(nil)

// CrawlService is a mock implementation of campcrawl.CrawlService.
type CrawlService struct {
	CrawlFn func(ctx context.Context, site campcrawl.Site, req campcrawl.CrawlRequest, sink campcrawl.RecordSink) error
}

func (s *CrawlService) Crawl(ctx context.Context, site campcrawl.Site, req campcrawl.CrawlRequest, sink campcrawl.RecordSink) error {
	return s.CrawlFn(ctx, site, req, sink)
}
