// Package github implements the tldr page index and remote fetcher on top of
// the GitHub contents, git trees and raw content endpoints of the
// tldr-pages/tldr repository.
package github

import (
	"log/slog"

	"github.com/fwojciec/tldr"
)

// Default endpoints for the tldr-pages/tldr repository.
const (
	DefaultContentsURL = "https://api.github.com/repos/tldr-pages/tldr/contents/pages/"
	DefaultTreesURL    = "https://api.github.com/repos/tldr-pages/tldr/git/trees/"
	DefaultRawURL      = "https://raw.githubusercontent.com/tldr-pages/tldr/master/pages/"
)

// RateLimitMessage is shown to the user when GitHub throttles index requests.
const RateLimitMessage = "tldr has hit GitHub rate limits"

type config struct {
	notifier    tldr.Notifier
	logger      *slog.Logger
	contentsURL string
	treesURL    string
	rawURL      string
}

// Option configures an Index or a Fetcher.
type Option func(*config)

// WithNotifier sets where user-visible warnings are sent.
// Warnings are dropped if not specified.
func WithNotifier(n tldr.Notifier) Option {
	return func(c *config) {
		c.notifier = n
	}
}

// WithLogger sets the logger. Logs are discarded if not specified.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithContentsURL overrides the directory listing endpoint.
// The URL must end with a slash.
func WithContentsURL(u string) Option {
	return func(c *config) {
		c.contentsURL = u
	}
}

// WithTreesURL overrides the git trees endpoint. The URL must end with a slash.
func WithTreesURL(u string) Option {
	return func(c *config) {
		c.treesURL = u
	}
}

// WithRawURL overrides the raw page endpoint. The URL must end with a slash.
func WithRawURL(u string) Option {
	return func(c *config) {
		c.rawURL = u
	}
}

func newConfig(opts []Option) config {
	c := config{
		contentsURL: DefaultContentsURL,
		treesURL:    DefaultTreesURL,
		rawURL:      DefaultRawURL,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.notifier == nil {
		c.notifier = discardNotifier{}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

type discardNotifier struct{}

func (discardNotifier) Warn(string) {}
