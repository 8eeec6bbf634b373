package github

import (
	"context"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/fwojciec/tldr"
	"github.com/fwojciec/tldr/bloom"
	"golang.org/x/sync/errgroup"
)

// Ensure Index implements tldr.PageIndex at compile time.
var _ tldr.PageIndex = (*Index)(nil)

// Sizing of the command filter. The repository holds a few thousand pages.
const (
	expectedCommands = 10000
	filterFPRate     = 0.01
)

// rateLimitHeaders are logged after a successful platform listing.
var rateLimitHeaders = []string{
	"x-ratelimit-limit",
	"x-ratelimit-remaining",
	"x-ratelimit-reset",
	"x-ratelimit-resource",
	"x-ratelimit-used",
}

// contentEntry is one item of a contents API directory listing.
type contentEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	SHA  string `json:"sha"`
	Type string `json:"type"`
}

// treeResponse is the body of a git trees API response.
type treeResponse struct {
	SHA       string      `json:"sha"`
	Tree      []treeEntry `json:"tree"`
	Truncated bool        `json:"truncated"`
}

type treeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// Index is the catalog of tldr pages available on GitHub.
//
// The catalog is append-only: Resolve may run while Initialize is still
// populating it and observes whatever platforms have landed so far.
type Index struct {
	transport tldr.Transport
	config

	// initMu serializes Initialize and Rebuild.
	initMu sync.Mutex

	mu       sync.RWMutex
	pages    []tldr.Page
	seen     map[tldr.Page]struct{}
	commands *bloom.Filter
	done     chan struct{}
}

// NewIndex creates an empty Index. Call Initialize to populate it.
func NewIndex(transport tldr.Transport, opts ...Option) *Index {
	return &Index{
		transport: transport,
		config:    newConfig(opts),
		seen:      make(map[tldr.Page]struct{}),
		commands:  bloom.NewFilter(expectedCommands, filterFPRate),
		done:      make(chan struct{}),
	}
}

// Initialize lists the platform directories and loads each platform's
// tree concurrently. Rate limiting and other listing failures are reported
// and returned as ERATELIMITED or EUNAVAILABLE; the catalog is left empty.
// Per-platform failures are logged and do not fail Initialize.
func (i *Index) Initialize(ctx context.Context) error {
	i.initMu.Lock()
	defer i.initMu.Unlock()
	return i.initialize(ctx)
}

func (i *Index) initialize(ctx context.Context) error {
	done := i.Done()
	defer i.finish(done)

	resp, err := i.transport.Get(ctx, i.contentsURL)
	if err != nil {
		i.logger.Warn("listing platforms failed", "err", err)
		return tldr.Errorf(tldr.EUNAVAILABLE, "could not list tldr platforms: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		if isRateLimited(resp) {
			i.logger.Warn("being rate limited", "status", resp.StatusCode)
			i.notifier.Warn(RateLimitMessage)
			return tldr.Errorf(tldr.ERATELIMITED, "%s (status %d)", RateLimitMessage, resp.StatusCode)
		}
		i.logger.Warn("listing platforms failed", "status", resp.StatusCode)
		return tldr.Errorf(tldr.EUNAVAILABLE, "could not list tldr platforms: status %d", resp.StatusCode)
	}

	attrs := make([]any, 0, 2*len(rateLimitHeaders))
	for _, h := range rateLimitHeaders {
		attrs = append(attrs, h, resp.Header[h])
	}
	i.logger.Debug("github rate limit", attrs...)

	var entries []contentEntry
	if err := resp.JSON(&entries); err != nil {
		i.logger.Warn("decoding platform listing failed", "err", err)
		return tldr.Errorf(tldr.EUNAVAILABLE, "could not decode tldr platform listing: %v", err)
	}

	// Goroutines never return an error so that one failing platform
	// cannot cancel the others.
	var g errgroup.Group
	for _, platform := range tldr.Platforms() {
		g.Go(func() error {
			i.loadPlatform(ctx, platform, entries)
			return nil
		})
	}
	_ = g.Wait()

	i.logger.Info("page index ready", "pages", i.Len(), "commands", i.commandCount())
	return nil
}

// Rebuild discards the catalog and initializes it again. A Rebuild issued
// while an initialization is in progress waits for it to finish first.
func (i *Index) Rebuild(ctx context.Context) error {
	i.initMu.Lock()
	defer i.initMu.Unlock()

	i.mu.Lock()
	i.pages = nil
	i.seen = make(map[tldr.Page]struct{})
	i.commands.Reset()
	select {
	case <-i.done:
		i.done = make(chan struct{})
	default:
	}
	i.mu.Unlock()

	return i.initialize(ctx)
}

// Resolve returns the page for command, preferring the common platform.
func (i *Index) Resolve(command string) (tldr.Page, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if !i.commands.Test(command) {
		return tldr.Page{}, false
	}

	var first tldr.Page
	var found bool
	for _, p := range i.pages {
		if p.Command != command {
			continue
		}
		if p.Platform == tldr.PlatformCommon {
			return p, true
		}
		if !found {
			first, found = p, true
		}
	}
	return first, found
}

// Lookup returns the page for command on a specific platform.
func (i *Index) Lookup(platform tldr.Platform, command string) (tldr.Page, bool) {
	page := tldr.Page{Platform: platform, Command: command}

	i.mu.RLock()
	defer i.mu.RUnlock()

	_, ok := i.seen[page]
	return page, ok
}

// Pages returns a snapshot of the catalog in insertion order.
func (i *Index) Pages() []tldr.Page {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return append([]tldr.Page(nil), i.pages...)
}

// Len returns the number of pages in the catalog.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.pages)
}

// commandCount estimates the number of distinct commands in the catalog.
func (i *Index) commandCount() uint {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.commands.EstimatedCount()
}

// Done is closed when the current initialization has finished.
func (i *Index) Done() <-chan struct{} {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.done
}

func (i *Index) finish(done <-chan struct{}) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.done != done {
		return
	}
	select {
	case <-i.done:
	default:
		close(i.done)
	}
}

// loadPlatform adds every page of one platform. Failures are logged only.
func (i *Index) loadPlatform(ctx context.Context, platform tldr.Platform, entries []contentEntry) {
	var entry *contentEntry
	for n := range entries {
		if entries[n].Name == string(platform) {
			entry = &entries[n]
			break
		}
	}
	if entry == nil {
		i.logger.Warn("platform missing from listing", "platform", platform)
		return
	}

	var (
		commands []string
		err      error
	)
	if entry.SHA != "" {
		commands, err = i.fetchTree(ctx, entry.SHA)
	} else {
		commands, err = i.fetchListing(ctx, platform)
	}
	if err != nil {
		i.logger.Warn("loading platform failed", "platform", platform, "err", err)
		return
	}

	added := i.add(platform, commands)
	i.logger.Debug("platform loaded", "platform", platform, "count", added)
}

// fetchTree lists a platform directory through the git trees endpoint,
// which is not capped at 1000 entries.
func (i *Index) fetchTree(ctx context.Context, sha string) ([]string, error) {
	resp, err := i.transport.Get(ctx, i.treesURL+sha)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, tldr.Errorf(tldr.EUNAVAILABLE, "tree %s: status %d", sha, resp.StatusCode)
	}

	var tree treeResponse
	if err := resp.JSON(&tree); err != nil {
		return nil, err
	}
	if tree.Truncated {
		i.logger.Warn("tree listing truncated", "sha", sha)
	}

	commands := make([]string, 0, len(tree.Tree))
	for _, e := range tree.Tree {
		if e.Type != "" && e.Type != "blob" {
			continue
		}
		commands = append(commands, commandName(e.Path))
	}
	return commands, nil
}

// fetchListing lists a platform directory through the contents endpoint.
// GitHub caps this listing at 1000 entries, so it is only used when the
// platform entry carries no tree sha.
func (i *Index) fetchListing(ctx context.Context, platform tldr.Platform) ([]string, error) {
	resp, err := i.transport.Get(ctx, i.contentsURL+string(platform))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, tldr.Errorf(tldr.EUNAVAILABLE, "listing %s: status %d", platform, resp.StatusCode)
	}

	var entries []contentEntry
	if err := resp.JSON(&entries); err != nil {
		return nil, err
	}

	commands := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type != "" && e.Type != "file" {
			continue
		}
		commands = append(commands, commandName(e.Name))
	}
	return commands, nil
}

// add appends pages for platform, skipping pairs already in the catalog.
// It returns the number of pages added.
func (i *Index) add(platform tldr.Platform, commands []string) int {
	i.mu.Lock()
	defer i.mu.Unlock()

	var added int
	for _, command := range commands {
		if command == "" {
			continue
		}
		page := tldr.Page{Platform: platform, Command: command}
		if _, ok := i.seen[page]; ok {
			continue
		}
		i.seen[page] = struct{}{}
		i.pages = append(i.pages, page)
		i.commands.Add(command)
		added++
	}
	return added
}

// commandName strips the directory and extension from a page file name.
func commandName(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}

func isRateLimited(resp *tldr.Response) bool {
	return resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests
}
