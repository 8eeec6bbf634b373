package mock

import (
	"context"

	"github.com/fwojciec/tldr"
)

var _ tldr.Store = (*Store)(nil)

// Store is a mock implementation of tldr.Store.
type Store struct {
	GetFn    func(ctx context.Context, key string) (string, bool, error)
	UpdateFn func(ctx context.Context, key, value string) error
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	return s.GetFn(ctx, key)
}

func (s *Store) Update(ctx context.Context, key, value string) error {
	return s.UpdateFn(ctx, key, value)
}
