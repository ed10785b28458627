package bloom_test

import (
	"fmt"
	"testing"

	"github.com/minjae-dev/campcrawl/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndSeen(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	// ID not yet added should return false
	assert.False(t, f.Seen("10001"))

	// Add ID
	f.Add("10001")

	// Now it should return true
	assert.True(t, f.Seen("10001"))

	// Different ID should still return false
	assert.False(t, f.Seen("10002"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	// Empty filter should have count near 0
	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("10001")
	f.Add("10002")
	f.Add("10003")

	// Estimated count should be approximately 3
	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	f.Add("10001")
	countAfterFirst := f.EstimatedCount()

	// Adding the same ID multiple times should not change the filter
	f.Add("10001")
	f.Add("10001")

	assert.Equal(t, countAfterFirst, f.EstimatedCount())
	assert.True(t, f.Seen("10001"))
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.Add(fmt.Sprintf("added-%d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Seen(fmt.Sprintf("notadded-%d", i)) {
			falsePositives++
		}
	}

	// False positive rate should be approximately 1%
	// Allow up to 2% to account for statistical variance
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
