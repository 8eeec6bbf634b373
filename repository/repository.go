// Package repository provides the single entry point for looking up a
// command's tldr page: index resolution, fetching and normalization.
package repository

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/tldr"
)

// Repository resolves commands through a page index and fetches their pages.
// The Repository owns its index; nothing else should initialize it.
type Repository struct {
	index   tldr.PageIndex
	fetcher tldr.Fetcher
	logger  *slog.Logger

	start   sync.Once
	started atomic.Bool

	// ready is closed once the initialization launched by Start has
	// finished and its outcome has been logged.
	ready chan struct{}
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger. Logs are discarded if not specified.
func WithLogger(l *slog.Logger) Option {
	return func(r *Repository) {
		r.logger = l
	}
}

// New creates a Repository over index and fetcher.
func New(index tldr.PageIndex, fetcher tldr.Fetcher, opts ...Option) *Repository {
	r := &Repository{
		index:   index,
		fetcher: fetcher,
		logger:  slog.New(slog.DiscardHandler),
		ready:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start initializes the index in the background and returns immediately.
// Initialization errors are logged and otherwise absorbed: lookups against a
// partially populated index simply find fewer pages.
// Only the first call starts initialization; later calls do nothing.
func (r *Repository) Start(ctx context.Context) {
	r.start.Do(func() {
		r.started.Store(true)
		go func() {
			defer close(r.ready)
			if err := r.index.Initialize(ctx); err != nil {
				r.logger.Warn("page index initialization failed",
					"code", tldr.ErrorCode(err),
					"err", err,
				)
			}
		}()
	})
}

// Wait blocks until index initialization has finished or ctx is done.
func (r *Repository) Wait(ctx context.Context) error {
	var done <-chan struct{} = r.ready
	if !r.started.Load() {
		done = r.index.Done()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetDocument returns the normalized page text for command.
// Returns ENOTFOUND if the index has no page for command. Fetch errors are
// returned unchanged.
func (r *Repository) GetDocument(ctx context.Context, command string) (string, error) {
	page, ok := r.index.Resolve(command)
	if !ok {
		return "", tldr.Errorf(tldr.ENOTFOUND, "tldr page for %q not available", command)
	}
	r.logger.Debug("resolved command", "command", command, "page", page.String())
	return r.Render(ctx, page)
}

// Render fetches page and returns its normalized text.
func (r *Repository) Render(ctx context.Context, page tldr.Page) (string, error) {
	text, err := r.fetcher.Fetch(ctx, page)
	if err != nil {
		return "", err
	}
	return tldr.Normalize(text), nil
}
