// Package bloom provides ASIN deduplication using Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/amzcrawl"
)

var _ amzcrawl.ASINSet = (*Filter)(nil)

// DefaultFalsePositiveRate keeps accidental drops below one in ten thousand.
const DefaultFalsePositiveRate = 0.0001

// Filter wraps a Bloom filter for ASIN deduplication.
// It is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected ASINs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewASINSet returns an amzcrawl.ASINSetFunc producing filters sized for n.
func NewASINSet(n uint) amzcrawl.ASINSetFunc {
	return func() amzcrawl.ASINSet {
		return NewFilter(n, DefaultFalsePositiveRate)
	}
}

// Add records asin. It returns false if asin was probably seen before.
func (f *Filter) Add(asin string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.f.TestAndAddString(asin)
}

// Test returns true if the ASIN might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(asin string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(asin)
}

// EstimatedCount returns the approximate number of ASINs in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
