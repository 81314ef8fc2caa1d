package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/clinicdir"
)

// DefaultMaxRetries is the number of attempts made per URL.
const DefaultMaxRetries = 3

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// BackoffDelays returns the waits between maxAttempts attempts: unit, 2*unit,
// 4*unit and so on. There is no wait after the final attempt, so the result
// has maxAttempts-1 entries.
func BackoffDelays(maxAttempts int, unit time.Duration) []time.Duration {
	if maxAttempts <= 1 {
		return []time.Duration{}
	}
	delays := make([]time.Duration, maxAttempts-1)
	for i := range delays {
		delays[i] = unit << i
	}
	return delays
}

// DefaultRetryDelays returns the backoff delays for DefaultMaxRetries: 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return BackoffDelays(DefaultMaxRetries, time.Second)
}

// FetchWithRetry attempts to fetch a URL up to maxAttempts times with
// exponential backoff starting at one second. A non-positive maxAttempts
// selects DefaultMaxRetries.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, maxAttempts int) (string, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxRetries
	}
	return FetchWithRetryDelays(ctx, url, fetch, logger, BackoffDelays(maxAttempts, time.Second))
}

// FetchWithRetryDelays is like FetchWithRetry but takes the delays directly.
// It makes len(delays)+1 attempts. Each failed attempt is logged at warn
// level when logger is non-nil. Once attempts are exhausted the returned
// error carries the EUNAVAILABLE code and wraps the last failure.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if logger != nil {
			logger.Warn("fetch attempt failed",
				"url", url,
				"attempt", fmt.Sprintf("%d/%d", attempt+1, maxAttempts),
				"err", err,
			)
		}

		// Don't wait after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", fmt.Errorf("%w: %w",
		clinicdir.Errorf(clinicdir.EUNAVAILABLE, "failed after %d attempts: %s", maxAttempts, url),
		lastErr,
	)
}
