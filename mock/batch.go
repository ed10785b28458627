package mock

import (
	"context"

	"github.com/minjae-dev/campcrawl"
)

var _ campcrawl.BatchWriter = (*BatchWriter)(nil)

// BatchWriter is a mock implementation of campcrawl.BatchWriter.
type BatchWriter struct {
	WriteBatchFn func(ctx context.Context, site campcrawl.Site, campaigns []*campcrawl.Campaign) error
}

func (w *BatchWriter) WriteBatch(ctx context.Context, site campcrawl.Site, campaigns []*campcrawl.Campaign) error {
	return w.WriteBatchFn(ctx, site, campaigns)
}
