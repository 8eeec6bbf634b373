package mock

import (
	"context"

	"github.com/fwojciec/tldr"
)

var _ tldr.PageIndex = (*PageIndex)(nil)

// PageIndex is a mock implementation of tldr.PageIndex.
type PageIndex struct {
	InitializeFn func(ctx context.Context) error
	ResolveFn    func(command string) (tldr.Page, bool)
	DoneFn       func() <-chan struct{}
}

func (i *PageIndex) Initialize(ctx context.Context) error {
	return i.InitializeFn(ctx)
}

func (i *PageIndex) Resolve(command string) (tldr.Page, bool) {
	return i.ResolveFn(command)
}

func (i *PageIndex) Done() <-chan struct{} {
	return i.DoneFn()
}
