package mock

import (
	"context"

	"github.com/minjae-dev/campcrawl"
)

var _ campcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of campcrawl.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
