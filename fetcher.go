package clinicdir

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch issues a single GET request and returns the decoded body.
	// Transport failures and error statuses are returned as errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
