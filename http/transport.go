// Package http provides a net/http implementation of tldr.Transport
// with per-host client-side rate limiting.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/tldr"
)

// DefaultTimeout is the default timeout for HTTP requests.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent is sent with every request. The GitHub API rejects
// requests without a User-Agent header.
const DefaultUserAgent = "tldr-go"

// Ensure Transport implements tldr.Transport at compile time.
var _ tldr.Transport = (*Transport)(nil)

// Transport performs GET requests using net/http.
type Transport struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	limiter   *HostLimiter
}

// Option configures a Transport.
type Option func(*Transport)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(t *Transport) {
		t.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(t *Transport) {
		t.userAgent = ua
	}
}

// WithHostLimiter rate limits requests per host.
// Without it requests are not limited.
func WithHostLimiter(l *HostLimiter) Option {
	return func(t *Transport) {
		t.limiter = l
	}
}

// NewTransport creates a new Transport.
func NewTransport(opts ...Option) *Transport {
	t := &Transport{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(t)
	}

	t.client = &http.Client{
		Timeout: t.timeout,
	}

	return t
}

// Get requests rawURL and returns the response regardless of its status code.
func (t *Transport) Get(ctx context.Context, rawURL string) (*tldr.Response, error) {
	if t.limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("parse url: %w", err)
		}
		if err := t.limiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", rawURL, err)
	}

	header := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		header[strings.ToLower(k)] = resp.Header.Get(k)
	}

	return &tldr.Response{
		StatusCode: resp.StatusCode,
		Header:     header,
		Body:       body,
	}, nil
}
