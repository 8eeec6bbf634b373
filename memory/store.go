// Package memory provides an in-process tldr.Store backed by go-cache.
// Entries live for the lifetime of the process.
package memory

import (
	"context"

	"github.com/fwojciec/tldr"
	"github.com/patrickmn/go-cache"
)

// Ensure Store implements tldr.Store at compile time.
var _ tldr.Store = (*Store)(nil)

// Store keeps page text in memory. Entries never expire.
type Store struct {
	c *cache.Cache
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{c: cache.New(cache.NoExpiration, 0)}
}

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return "", false, nil
	}
	text, ok := v.(string)
	return text, ok, nil
}

// Update stores value under key.
func (s *Store) Update(_ context.Context, key, value string) error {
	s.c.Set(key, value, cache.NoExpiration)
	return nil
}

// Count returns the number of entries.
func (s *Store) Count() int {
	return s.c.ItemCount()
}

// Clear removes all entries.
func (s *Store) Clear() {
	s.c.Flush()
}
