package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tldr"
)

// Ensure LoggingStore implements tldr.Store.
var _ tldr.Store = (*LoggingStore)(nil)

// LoggingStore wraps a Store with debug logging.
type LoggingStore struct {
	next   tldr.Store
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next tldr.Store, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// Get delegates to the wrapped store and logs the lookup.
func (s *LoggingStore) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("store get",
			"key", key,
			"hit", ok,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Get(ctx, key)
}

// Update delegates to the wrapped store and logs the write.
func (s *LoggingStore) Update(ctx context.Context, key, value string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("store update",
			"key", key,
			"bytes", len(value),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Update(ctx, key, value)
}
