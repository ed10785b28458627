package mock

import "github.com/minjae-dev/campcrawl"

var _ campcrawl.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of campcrawl.Extractor.
type Extractor struct {
	ExtractFn func(html string, site campcrawl.Site) ([]*campcrawl.Campaign, error)
}

func (e *Extractor) Extract(html string, site campcrawl.Site) ([]*campcrawl.Campaign, error) {
	return e.ExtractFn(html, site)
}
