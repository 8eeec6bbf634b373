package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tldr"
)

// Ensure LoggingTransport implements tldr.Transport.
var _ tldr.Transport = (*LoggingTransport)(nil)

// LoggingTransport wraps a Transport with debug logging.
type LoggingTransport struct {
	next   tldr.Transport
	logger *slog.Logger
}

// NewLoggingTransport creates a new LoggingTransport.
func NewLoggingTransport(next tldr.Transport, logger *slog.Logger) *LoggingTransport {
	return &LoggingTransport{next: next, logger: logger}
}

// Get delegates to the wrapped transport and logs the request.
func (t *LoggingTransport) Get(ctx context.Context, url string) (resp *tldr.Response, err error) {
	defer func(begin time.Time) {
		var status, size int
		if resp != nil {
			status, size = resp.StatusCode, len(resp.Body)
		}
		t.logger.Debug("http get",
			"url", url,
			"status", status,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Get(ctx, url)
}
