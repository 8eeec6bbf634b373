package main

import (
	"fmt"

	"github.com/fwojciec/tldr"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	if err := waitForIndex(deps); err != nil {
		return err
	}

	var text string
	var err error
	if c.Platform == "" {
		text, err = deps.Repository.GetDocument(deps.Ctx, c.Command)
	} else {
		text, err = c.showPlatform(deps)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tldr.ErrorMessage(err))
		if tldr.ErrorCode(err) == tldr.ENOTFOUND && deps.Index.Len() == 0 {
			fmt.Fprintln(deps.Stderr, "Hint: the page index is empty; GitHub may be rate limiting requests. Try again later.")
		}
		return err
	}

	fmt.Fprintln(deps.Stdout, text)
	return nil
}

// showPlatform renders the page for an explicitly chosen platform.
func (c *ShowCmd) showPlatform(deps *Dependencies) (string, error) {
	platform, err := tldr.ParsePlatform(c.Platform)
	if err != nil {
		return "", err
	}

	page, ok := deps.Index.Lookup(platform, c.Command)
	if !ok {
		return "", tldr.Errorf(tldr.ENOTFOUND, "tldr page %s not available", page)
	}
	return deps.Repository.Render(deps.Ctx, page)
}
