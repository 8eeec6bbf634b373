// Package slog provides log/slog decorators for the tldr service interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tldr"
)

// Ensure LoggingFetcher implements tldr.Fetcher.
var _ tldr.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   tldr.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next tldr.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, page tldr.Page) (text string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"page", page.String(),
			"bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, page)
}
