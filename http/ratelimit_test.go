package http_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	tldrhttp "github.com/fwojciec/tldr/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiter(t *testing.T) {
	t.Parallel()

	t.Run("allows immediate request when under limit", func(t *testing.T) {
		t.Parallel()

		limiter := tldrhttp.NewHostLimiter(10, 1)

		start := time.Now()
		err := limiter.Wait(context.Background(), "api.github.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "first request should be immediate")
	})

	t.Run("allows burst of requests", func(t *testing.T) {
		t.Parallel()

		limiter := tldrhttp.NewHostLimiter(1, 5)

		start := time.Now()
		for range 5 {
			require.NoError(t, limiter.Wait(context.Background(), "api.github.com"))
		}

		assert.Less(t, time.Since(start), 50*time.Millisecond, "burst should not wait")
	})

	t.Run("rate limits requests to same host", func(t *testing.T) {
		t.Parallel()

		limiter := tldrhttp.NewHostLimiter(10, 1) // 100ms between requests

		err := limiter.Wait(context.Background(), "api.github.com")
		require.NoError(t, err)

		start := time.Now()
		err = limiter.Wait(context.Background(), "api.github.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond, "should wait for rate limit")
	})

	t.Run("different hosts have independent limits", func(t *testing.T) {
		t.Parallel()

		limiter := tldrhttp.NewHostLimiter(10, 0)

		err := limiter.Wait(context.Background(), "api.github.com")
		require.NoError(t, err)

		start := time.Now()
		err = limiter.Wait(context.Background(), "raw.githubusercontent.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "different host should not wait")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := tldrhttp.NewHostLimiter(1, 1)

		err := limiter.Wait(context.Background(), "api.github.com")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err = limiter.Wait(ctx, "api.github.com")
		assert.Error(t, err, "should fail when context times out")
	})

	t.Run("concurrent requests all complete", func(t *testing.T) {
		t.Parallel()

		limiter := tldrhttp.NewHostLimiter(100, 1)

		var wg sync.WaitGroup
		var completed atomic.Int32

		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := limiter.Wait(context.Background(), "api.github.com"); err == nil {
					completed.Add(1)
				}
			}()
		}

		wg.Wait()
		assert.Equal(t, int32(5), completed.Load(), "all requests should complete")
	})
}
