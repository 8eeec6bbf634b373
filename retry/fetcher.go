// Package retry provides an opt-in tldr.Fetcher decorator that retries
// failed page fetches with backoff.
package retry

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tldr"
)

// DefaultDelays returns the backoff delays between attempts: 1s, 2s, 4s.
func DefaultDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure Fetcher implements tldr.Fetcher at compile time.
var _ tldr.Fetcher = (*Fetcher)(nil)

// Fetcher retries the wrapped fetcher once per configured delay.
type Fetcher struct {
	next   tldr.Fetcher
	delays []time.Duration
	logger *slog.Logger
}

// NewFetcher wraps next. With no delays the fetcher makes a single attempt.
func NewFetcher(next tldr.Fetcher, delays []time.Duration, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Fetcher{next: next, delays: delays, logger: logger}
}

// Fetch attempts the fetch up to len(delays)+1 times and returns the last error.
func (f *Fetcher) Fetch(ctx context.Context, page tldr.Page) (string, error) {
	maxAttempts := len(f.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		text, err := f.next.Fetch(ctx, page)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		f.logger.Info("retrying fetch",
			"page", page.String(),
			"attempt", attempt+2,
			"err", err,
		)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}

	return "", lastErr
}
