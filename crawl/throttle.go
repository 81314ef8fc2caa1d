package crawl

import (
	"context"
	"math/rand/v2"
	"net/url"
	"time"

	"github.com/fwojciec/clinicdir"
)

// Default inter-request jitter bounds.
const (
	DefaultMinDelay = 1 * time.Second
	DefaultMaxDelay = 2 * time.Second
)

// Throttle spaces out requests. Before each request it sleeps for a
// uniformly random duration in [MinDelay, MaxDelay] and then waits on the
// optional per-host Limiter.
type Throttle struct {
	MinDelay time.Duration
	MaxDelay time.Duration
	Limiter  clinicdir.DomainLimiter
}

// Delay returns the next jitter duration.
func (t *Throttle) Delay() time.Duration {
	lo, hi := t.MinDelay, t.MaxDelay
	if hi < lo {
		lo, hi = hi, lo
	}
	if lo < 0 {
		lo = 0
	}
	if hi <= lo {
		return lo
	}
	return lo + rand.N(hi-lo+1)
}

// Wait sleeps for one jitter interval and then honours the host limiter
// for rawURL. Returns the context error if ctx is done first.
func (t *Throttle) Wait(ctx context.Context, rawURL string) error {
	if t == nil {
		return ctx.Err()
	}

	if d := t.Delay(); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if t.Limiter == nil {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return clinicdir.Errorf(clinicdir.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	return t.Limiter.Wait(ctx, u.Host)
}
