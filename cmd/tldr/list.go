package main

import (
	"fmt"
	"sort"

	"github.com/fwojciec/tldr"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	var platform tldr.Platform
	if c.Platform != "" {
		p, err := tldr.ParsePlatform(c.Platform)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tldr.ErrorMessage(err))
			return err
		}
		platform = p
	}

	if err := waitForIndex(deps); err != nil {
		return err
	}

	var names []string
	for _, page := range deps.Index.Pages() {
		if platform != "" && page.Platform != platform {
			continue
		}
		names = append(names, page.String())
	}

	if len(names) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages found.")
		return nil
	}

	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(deps.Stdout, name)
	}

	return nil
}
