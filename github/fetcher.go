package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fwojciec/tldr"
)

// Ensure Fetcher implements tldr.Fetcher at compile time.
var _ tldr.Fetcher = (*Fetcher)(nil)

// Fetcher downloads raw page markdown from raw.githubusercontent.com.
type Fetcher struct {
	transport tldr.Transport
	config
}

// NewFetcher creates a new Fetcher.
func NewFetcher(transport tldr.Transport, opts ...Option) *Fetcher {
	return &Fetcher{
		transport: transport,
		config:    newConfig(opts),
	}
}

// URL returns the raw markdown URL of page.
func (f *Fetcher) URL(page tldr.Page) string {
	return f.rawURL + string(page.Platform) + "/" + page.Command + ".md"
}

// Fetch downloads the page. A non-200 response is reported to the user
// but its body is still returned.
func (f *Fetcher) Fetch(ctx context.Context, page tldr.Page) (string, error) {
	url := f.URL(page)
	f.logger.Debug("fetching page", "page", page.String(), "url", url)

	resp, err := f.transport.Get(ctx, url)
	if err != nil {
		return "", fmt.Errorf("%w: %w", tldr.Errorf(tldr.EFETCH, "could not fetch tldr page %s", page), err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("A problem occurred fetching tldr page. Status code: %d", resp.StatusCode)
		f.logger.Warn(msg, "page", page.String(), "status", resp.StatusCode)
		f.notifier.Warn(msg)
	}

	return resp.Text(), nil
}
