package crawl

import (
	"context"

	"github.com/minjae-dev/campcrawl"
	"golang.org/x/time/rate"
)

var _ campcrawl.SiteLimiter = (*Limiter)(nil)

// Limiter paces listing-page fetches per storefront tenant. Every known
// tenant gets its own token bucket with no burst, so a dbg crawl and a gtog
// crawl running at the same time do not throttle each other.
type Limiter struct {
	buckets map[campcrawl.Site]*rate.Limiter
}

// NewLimiter creates a Limiter allowing rps requests per second per tenant.
// Buckets for all known tenants are created up front; the map is read-only
// afterwards, so Wait needs no locking.
func NewLimiter(rps float64) *Limiter {
	buckets := make(map[campcrawl.Site]*rate.Limiter)
	for _, site := range campcrawl.Sites() {
		buckets[site] = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return &Limiter{buckets: buckets}
}

// Wait blocks until the rate limit allows a request to the site's
// storefront. Returns an error if the context is canceled before the wait
// completes.
func (l *Limiter) Wait(ctx context.Context, site campcrawl.Site) error {
	bucket, ok := l.buckets[site]
	if !ok {
		return campcrawl.Errorf(campcrawl.EINVALID, "unknown site %q", string(site))
	}
	return bucket.Wait(ctx)
}
