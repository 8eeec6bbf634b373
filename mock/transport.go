package mock

import (
	"context"

	"github.com/fwojciec/tldr"
)

var _ tldr.Transport = (*Transport)(nil)

// Transport is a mock implementation of tldr.Transport.
type Transport struct {
	GetFn func(ctx context.Context, url string) (*tldr.Response, error)
}

func (t *Transport) Get(ctx context.Context, url string) (*tldr.Response, error) {
	return t.GetFn(ctx, url)
}
