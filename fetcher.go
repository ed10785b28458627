package campcrawl

import "context"

// Fetcher retrieves listing-page HTML from URLs.
// Implementations carry the session credentials required by the storefront;
// the extraction engine is agnostic to how a document was obtained.
type Fetcher interface {
	// Fetch retrieves the HTML document at the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases client resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
