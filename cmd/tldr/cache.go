package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/tldr"
	"github.com/fwojciec/tldr/cache"
)

// Run executes the cache stats command.
func (c *CacheStatsCmd) Run(deps *Dependencies) error {
	st, err := deps.Cache.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tldr.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Cached pages: %d\nTotal size: %d bytes\n", st.Entries, st.Bytes)
	return nil
}

// Run executes the cache list command.
func (c *CacheListCmd) Run(deps *Dependencies) error {
	entries, err := deps.Cache.FindEntries(deps.Ctx, c.Limit, c.Offset)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tldr.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "Cache is empty.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", e.Key, e.UpdatedAt.Format(time.RFC3339), e.ContentHash)
	}
	return nil
}

// Run executes the cache show command.
func (c *CacheShowCmd) Run(deps *Dependencies) error {
	e, err := deps.Cache.FindEntry(deps.Ctx, cache.Key(c.Command))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tldr.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Key: %s\nUpdated: %s\nHash: %s\n\n%s\n",
		e.Key, e.UpdatedAt.Format(time.RFC3339), e.ContentHash, e.Value)
	return nil
}

// Run executes the cache clear command.
func (c *CacheClearCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return tldr.Errorf(tldr.EINVALID, "use --force to confirm deletion")
	}

	n, err := deps.Cache.Clear(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tldr.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %d cached pages\n", n)
	return nil
}
