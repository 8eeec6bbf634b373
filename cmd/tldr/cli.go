package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/tldr/github"
	"github.com/fwojciec/tldr/repository"
	"github.com/fwojciec/tldr/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Repository *repository.Repository
	Index      *github.Index
	Cache      *sqlite.Store
	Logger     *slog.Logger

	// RebuildDelays are the waits before each attempt to rebuild an empty
	// page index.
	RebuildDelays []time.Duration
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB        string `name:"db" env:"TLDR_DB" help:"Page cache database path"`
	Config    string `name:"config" env:"TLDR_CONFIG" help:"TOML configuration file"`
	Verbose   bool   `short:"v" help:"Enable debug logging"`
	NoCacheDB bool   `name:"no-cache-db" help:"Keep cached pages in memory only"`
	Retries   int    `default:"0" help:"Retry failed page downloads and empty index builds up to N times"`

	Show  ShowCmd  `cmd:"" help:"Show the tldr page for a command"`
	List  ListCmd  `cmd:"" help:"List pages available upstream"`
	Cache CacheCmd `cmd:"" help:"Inspect or clear the page cache"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Command  string `arg:"" help:"Command name, e.g. tar"`
	Platform string `short:"p" help:"Show the page for this platform instead of the preferred one"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Platform string `short:"p" help:"Only list pages for this platform"`
}

// CacheCmd groups the cache subcommands.
type CacheCmd struct {
	Stats CacheStatsCmd `cmd:"" help:"Show number and size of cached pages"`
	List  CacheListCmd  `cmd:"" help:"List cached page keys"`
	Show  CacheShowCmd  `cmd:"" help:"Print a cached page with its metadata"`
	Clear CacheClearCmd `cmd:"" help:"Delete all cached pages"`
}

// CacheStatsCmd is the "cache stats" subcommand.
type CacheStatsCmd struct{}

// CacheListCmd is the "cache list" subcommand.
type CacheListCmd struct {
	Limit  int `default:"0" help:"Maximum number of entries (0 for all)"`
	Offset int `default:"0" help:"Number of entries to skip"`
}

// CacheShowCmd is the "cache show" subcommand.
type CacheShowCmd struct {
	Command string `arg:"" help:"Command name whose cached page to print"`
}

// CacheClearCmd is the "cache clear" subcommand.
type CacheClearCmd struct {
	Force bool `help:"Confirm deletion"`
}
