package mock

import (
	"context"

	"github.com/fwojciec/tldr"
)

var _ tldr.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of tldr.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, page tldr.Page) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, page tldr.Page) (string, error) {
	return f.FetchFn(ctx, page)
}
