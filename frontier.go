package clinicdir

import "context"

// VisitedSet records the clinic URLs extracted during a single run.
type VisitedSet interface {
	// Add marks a URL as visited.
	// Returns false if the URL was already present.
	Add(url string) bool

	// Seen returns true if the URL has been visited.
	Seen(url string) bool

	// Len returns the number of visited URLs.
	Len() int
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
