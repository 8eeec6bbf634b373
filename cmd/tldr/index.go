package main

import (
	"time"
)

// waitForIndex blocks until the page index is ready. An index left empty by
// a failed initialization, typically GitHub rate limiting, is rebuilt after
// each of deps.RebuildDelays until it holds pages.
func waitForIndex(deps *Dependencies) error {
	if err := deps.Repository.Wait(deps.Ctx); err != nil {
		return err
	}

	for _, delay := range deps.RebuildDelays {
		if deps.Index.Len() > 0 {
			return nil
		}

		select {
		case <-deps.Ctx.Done():
			return deps.Ctx.Err()
		case <-time.After(delay):
		}

		if err := deps.Index.Rebuild(deps.Ctx); err != nil {
			deps.Logger.Warn("page index rebuild failed", "err", err)
		}
	}
	return nil
}
