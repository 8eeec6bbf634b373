package tldr

import "context"

// Fetcher retrieves the raw markdown of a single page.
type Fetcher interface {
	// Fetch returns the untransformed page text.
	// Errors are returned for transport failures only.
	Fetch(ctx context.Context, page Page) (string, error)
}

// Store is a persistent key/value store used to cache fetched pages.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key and whether it was present.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Update stores value under key, replacing any previous value.
	Update(ctx context.Context, key, value string) error
}

// Notifier surfaces warnings to a human, e.g. on a terminal.
type Notifier interface {
	Warn(msg string)
}
