// Package bloom provides a probabilistic set of command names used to
// reject unknown commands without scanning the page index.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter over command names.
// Filter is not safe for concurrent use; callers must synchronize.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected commands
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a command to the filter.
func (f *Filter) Add(command string) {
	f.f.AddString(command)
}

// Test returns true if the command might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(command string) bool {
	return f.f.TestString(command)
}

// EstimatedCount returns the approximate number of distinct commands added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// Reset removes every command from the filter.
func (f *Filter) Reset() {
	f.f.ClearAll()
}
