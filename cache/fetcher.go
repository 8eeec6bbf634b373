// Package cache provides a tldr.Fetcher decorator that serves pages from a
// persistent tldr.Store and only calls the wrapped fetcher on a miss.
package cache

import (
	"context"
	"log/slog"

	"github.com/fwojciec/tldr"
	"golang.org/x/sync/singleflight"
)

// KeyPrefix is prepended to the command name to form a store key.
const KeyPrefix = "tldrfetcher.cache."

// Key returns the store key for command.
//
// The key does not include the platform: a command cached from one platform
// satisfies lookups for every other platform.
func Key(command string) string {
	return KeyPrefix + command
}

// Ensure Fetcher implements tldr.Fetcher at compile time.
var _ tldr.Fetcher = (*Fetcher)(nil)

// Fetcher wraps another tldr.Fetcher with a read-through cache.
type Fetcher struct {
	next   tldr.Fetcher
	store  tldr.Store
	logger *slog.Logger
	group  singleflight.Group
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLogger sets the logger. Logs are discarded if not specified.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// NewFetcher creates a caching Fetcher in front of next.
func NewFetcher(next tldr.Fetcher, store tldr.Store, opts ...Option) *Fetcher {
	f := &Fetcher{
		next:   next,
		store:  store,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the cached page text if present. Otherwise it fetches the
// page from the wrapped fetcher and caches the result. Errors from the
// wrapped fetcher are returned unchanged and nothing is cached.
// Concurrent misses for the same key share a single upstream fetch, which
// is not cancelled when one of the waiting callers gives up.
func (f *Fetcher) Fetch(ctx context.Context, page tldr.Page) (string, error) {
	key := Key(page.Command)

	cached, ok, err := f.store.Get(ctx, key)
	if err != nil {
		f.logger.Warn("cache read failed", "key", key, "err", err)
	} else if ok {
		f.logger.Debug("cache hit", "key", key)
		return cached, nil
	}
	f.logger.Debug("cache miss", "key", key)

	// The shared fetch outlives any single caller; each caller stops
	// waiting when its own context ends.
	fetchCtx := context.WithoutCancel(ctx)
	ch := f.group.DoChan(key, func() (any, error) {
		text, err := f.next.Fetch(fetchCtx, page)
		if err != nil {
			return "", err
		}
		if err := f.store.Update(fetchCtx, key, text); err != nil {
			f.logger.Warn("cache write failed", "key", key, "err", err)
		}
		return text, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}
