// Package bloom provides a probabilistic prefilter for visited clinic URLs.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter keyed by URL.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected URLs
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a URL.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// MayContain reports whether the URL might have been added.
// A false result is definitive; a true result may be a false positive.
func (f *Filter) MayContain(url string) bool {
	return f.f.TestString(url)
}

// TestAndAdd records the URL and reports whether it might have been
// present beforehand.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of URLs recorded.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
