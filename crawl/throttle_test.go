package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/clinicdir"
	"github.com/fwojciec/clinicdir/crawl"
	"github.com/fwojciec/clinicdir/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottle_Delay(t *testing.T) {
	t.Parallel()

	t.Run("stays within bounds", func(t *testing.T) {
		t.Parallel()

		th := &crawl.Throttle{MinDelay: 10 * time.Millisecond, MaxDelay: 20 * time.Millisecond}
		for range 200 {
			d := th.Delay()
			assert.GreaterOrEqual(t, d, 10*time.Millisecond)
			assert.LessOrEqual(t, d, 20*time.Millisecond)
		}
	})

	t.Run("equal bounds return the bound", func(t *testing.T) {
		t.Parallel()

		th := &crawl.Throttle{MinDelay: 5 * time.Millisecond, MaxDelay: 5 * time.Millisecond}
		assert.Equal(t, 5*time.Millisecond, th.Delay())
	})

	t.Run("swapped bounds are tolerated", func(t *testing.T) {
		t.Parallel()

		th := &crawl.Throttle{MinDelay: 20 * time.Millisecond, MaxDelay: 10 * time.Millisecond}
		for range 50 {
			d := th.Delay()
			assert.GreaterOrEqual(t, d, 10*time.Millisecond)
			assert.LessOrEqual(t, d, 20*time.Millisecond)
		}
	})

	t.Run("zero bounds mean no delay", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, time.Duration(0), (&crawl.Throttle{}).Delay())
	})
}

func TestThrottle_Wait(t *testing.T) {
	t.Parallel()

	t.Run("nil throttle returns immediately", func(t *testing.T) {
		t.Parallel()

		var th *crawl.Throttle
		assert.NoError(t, th.Wait(context.Background(), "https://example.com"))
	})

	t.Run("waits at least the minimum delay", func(t *testing.T) {
		t.Parallel()

		th := &crawl.Throttle{MinDelay: 30 * time.Millisecond, MaxDelay: 30 * time.Millisecond}

		start := time.Now()
		require.NoError(t, th.Wait(context.Background(), "https://example.com"))
		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	})

	t.Run("consults limiter with host", func(t *testing.T) {
		t.Parallel()

		var domain string
		th := &crawl.Throttle{
			Limiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, d string) error {
					domain = d
					return nil
				},
			},
		}

		require.NoError(t, th.Wait(context.Background(), "https://example.com:8080/our-clinics/a/"))
		assert.Equal(t, "example.com:8080", domain)
	})

	t.Run("rejects unparseable URL when limiter is set", func(t *testing.T) {
		t.Parallel()

		th := &crawl.Throttle{
			Limiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, _ string) error { return nil },
			},
		}

		err := th.Wait(context.Background(), "http://[::1")
		assert.Equal(t, clinicdir.EINVALID, clinicdir.ErrorCode(err))
	})

	t.Run("returns context error during jitter", func(t *testing.T) {
		t.Parallel()

		th := &crawl.Throttle{MinDelay: time.Hour, MaxDelay: time.Hour}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		err := th.Wait(ctx, "https://example.com")
		assert.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), time.Second)
	})
}
