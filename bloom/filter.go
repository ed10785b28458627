// Package bloom provides campaign ID deduplication using Bloom filters.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/minjae-dev/campcrawl"
)

// Compile-time interface verification.
var _ campcrawl.SeenFilter = (*Filter)(nil)

// Filter wraps a Bloom filter for campaign ID deduplication during a crawl.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected IDs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a campaign ID as seen.
func (f *Filter) Add(csq string) {
	f.f.AddString(csq)
}

// Seen returns true if the ID might have been seen already.
// False positives are possible; false negatives are not.
func (f *Filter) Seen(csq string) bool {
	return f.f.TestString(csq)
}

// EstimatedCount returns the approximate number of IDs in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
