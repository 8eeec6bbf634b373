package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/tldr"
	"github.com/fwojciec/tldr/cache"
	"github.com/fwojciec/tldr/color"
	"github.com/fwojciec/tldr/github"
	tldrhttp "github.com/fwojciec/tldr/http"
	"github.com/fwojciec/tldr/memory"
	"github.com/fwojciec/tldr/repository"
	"github.com/fwojciec/tldr/retry"
	tldrslog "github.com/fwojciec/tldr/slog"
	"github.com/fwojciec/tldr/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db and TLDR_DB are unset.
	DBPath string

	// SQLite database backing the page cache.
	DB *sqlite.DB

	// Transport overrides the HTTP transport. Used by end-to-end tests.
	Transport tldr.Transport

	// NoColor disables coloured warnings.
	NoColor bool

	// Backoff overrides the delays between retries. Used by tests.
	Backoff []time.Duration
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tldr"),
		kong.Description("Show simplified command pages from the tldr-pages project."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tldr --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg, err := resolveConfig(cli.Config)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	notifier := color.NewNotifier(stderr)
	if m.NoColor {
		notifier.NoColor()
	}

	var store tldr.Store
	if cli.NoCacheDB {
		if cmd == "cache" {
			return tldr.Errorf(tldr.EINVALID, "cache commands need the cache database; drop --no-cache-db")
		}
		store = memory.NewStore()
	} else {
		dbPath := cli.DB
		if dbPath == "" {
			dbPath = m.DBPath
		}
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set TLDR_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		defer m.Close()

		sqliteStore := sqlite.NewStore(m.DB)
		deps.Cache = sqliteStore
		store = sqliteStore
	}

	if cmd == "show" || cmd == "list" {
		transport := m.Transport
		if transport == nil {
			transport = tldrhttp.NewTransport(
				tldrhttp.WithTimeout(cfg.Timeout),
				tldrhttp.WithHostLimiter(tldrhttp.NewHostLimiter(cfg.RequestsPerSecond, cfg.Burst)),
			)
		}
		transport = tldrslog.NewLoggingTransport(transport, logger)

		githubOpts := []github.Option{
			github.WithNotifier(notifier),
			github.WithLogger(logger),
			github.WithContentsURL(cfg.ContentsURL),
			github.WithTreesURL(cfg.TreesURL),
			github.WithRawURL(cfg.RawURL),
		}
		deps.Index = github.NewIndex(transport, githubOpts...)

		delays := m.retryDelays(cli.Retries)
		deps.RebuildDelays = delays

		var fetcher tldr.Fetcher = tldrslog.NewLoggingFetcher(github.NewFetcher(transport, githubOpts...), logger)
		if cli.Retries > 0 {
			fetcher = retry.NewFetcher(fetcher, delays, logger)
		}
		fetcher = cache.NewFetcher(fetcher, tldrslog.NewLoggingStore(store, logger), cache.WithLogger(logger))

		deps.Repository = repository.New(deps.Index, fetcher, repository.WithLogger(logger))
		deps.Repository.Start(ctx)
	}

	return kongCtx.Run(deps)
}

// retryDelays returns n backoff delays, repeating the longest base delay
// once the base delays run out.
func (m *Main) retryDelays(n int) []time.Duration {
	if n <= 0 {
		return nil
	}
	defaults := m.Backoff
	if len(defaults) == 0 {
		defaults = retry.DefaultDelays()
	}
	delays := make([]time.Duration, n)
	for i := range delays {
		delays[i] = defaults[min(i, len(defaults)-1)]
	}
	return delays
}

func defaultDBPath() string {
	if path := os.Getenv("TLDR_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "tldr-cache.db"
	}
	dir := filepath.Join(home, ".tldr")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "cache.db")
}
