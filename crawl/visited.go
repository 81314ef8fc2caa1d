package crawl

import (
	"github.com/fwojciec/clinicdir"
	"github.com/fwojciec/clinicdir/bloom"
)

// Visited set sizing.
const (
	// visitedExpectedURLs is the expected number of clinic URLs per run.
	visitedExpectedURLs = 2000
	// visitedFalsePositiveRate is the prefilter's acceptable false positive rate.
	visitedFalsePositiveRate = 0.01
)

var _ clinicdir.VisitedSet = (*Visited)(nil)

// Visited is an exact set of visited URLs fronted by a Bloom filter, so
// lookups for unseen URLs usually never touch the map. It is not safe for
// concurrent use.
type Visited struct {
	filter *bloom.Filter
	urls   map[string]struct{}
}

// NewVisited creates an empty Visited set.
func NewVisited() *Visited {
	return &Visited{
		filter: bloom.NewFilter(visitedExpectedURLs, visitedFalsePositiveRate),
		urls:   make(map[string]struct{}),
	}
}

// Add marks the URL as visited.
// Returns false if it was already present.
func (v *Visited) Add(url string) bool {
	if v.filter.TestAndAdd(url) {
		if _, ok := v.urls[url]; ok {
			return false
		}
	}
	v.urls[url] = struct{}{}
	return true
}

// Seen returns true if the URL has been added.
func (v *Visited) Seen(url string) bool {
	if !v.filter.MayContain(url) {
		return false
	}
	_, ok := v.urls[url]
	return ok
}

// Len returns the number of visited URLs.
func (v *Visited) Len() int {
	return len(v.urls)
}
