package crawl_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/clinicdir"
	"github.com/fwojciec/clinicdir/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoffDelays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		attempts int
		want     []time.Duration
	}{
		{"single attempt has no waits", 1, []time.Duration{}},
		{"zero attempts has no waits", 0, []time.Duration{}},
		{"three attempts", 3, []time.Duration{time.Second, 2 * time.Second}},
		{"five attempts", 5, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, crawl.BackoffDelays(tt.attempts, time.Second))
		})
	}
}

func TestDefaultRetryDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, crawl.DefaultRetryDelays())
}

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("returns body on first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "<html></html>", nil
		}

		html, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, []time.Duration{0, 0})

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("connection reset")
			}
			return "ok", nil
		}

		html, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, []time.Duration{0, 0})

		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns unavailable error wrapping last failure when exhausted", func(t *testing.T) {
		t.Parallel()

		lastErr := errors.New("HTTP 503")
		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "", lastErr
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/x", fetch, nil, []time.Duration{0, 0})

		require.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, clinicdir.EUNAVAILABLE, clinicdir.ErrorCode(err))
		assert.ErrorIs(t, err, lastErr)
		assert.Contains(t, err.Error(), "failed after 3 attempts")
	})

	t.Run("logs each failed attempt", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		fetch := func(_ context.Context, _ string) (string, error) {
			return "", errors.New("timeout")
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, logger, []time.Duration{0})

		require.Error(t, err)
		out := buf.String()
		assert.Contains(t, out, "fetch attempt failed")
		assert.Contains(t, out, "attempt=1/2")
		assert.Contains(t, out, "attempt=2/2")
	})

	t.Run("no delays means a single attempt", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "", errors.New("fail")
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, nil)

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops waiting when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			cancel()
			return "", errors.New("fail")
		}

		start := time.Now()
		_, err := crawl.FetchWithRetryDelays(ctx, "https://example.com", fetch, nil, []time.Duration{time.Hour})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
		assert.Less(t, time.Since(start), time.Second)
	})
}

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("single attempt does not sleep", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "", errors.New("fail")
		}

		start := time.Now()
		_, err := crawl.FetchWithRetry(context.Background(), "https://example.com", fetch, nil, 1)

		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})
}
