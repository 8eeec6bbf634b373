package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/tldr"
	"github.com/fwojciec/tldr/cache"
	"github.com/fwojciec/tldr/github"
	"github.com/fwojciec/tldr/memory"
	"github.com/fwojciec/tldr/mock"
	"github.com/fwojciec/tldr/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticIndex returns a mock index holding pages, already initialized.
func staticIndex(pages ...tldr.Page) *mock.PageIndex {
	done := make(chan struct{})
	close(done)
	return &mock.PageIndex{
		InitializeFn: func(ctx context.Context) error { return nil },
		ResolveFn: func(command string) (tldr.Page, bool) {
			var first tldr.Page
			var found bool
			for _, p := range pages {
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
		},
		DoneFn: func() <-chan struct{} { return done },
	}
}

func TestRepository_GetDocument(t *testing.T) {
	t.Parallel()

	t.Run("resolves fetches and normalizes", func(t *testing.T) {
		t.Parallel()

		var fetched tldr.Page
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, page tldr.Page) (string, error) {
				fetched = page
				return "# ls\n\n> List directory contents.\n\n- List: `ls`", nil
			},
		}
		repo := repository.New(staticIndex(
			tldr.Page{Platform: tldr.PlatformCommon, Command: "ls"},
			tldr.Page{Platform: tldr.PlatformLinux, Command: "ls"},
		), fetcher)

		text, err := repo.GetDocument(context.Background(), "ls")

		require.NoError(t, err)
		assert.Equal(t, "List directory contents.\n\n- List: `ls`", text)
		assert.Equal(t, tldr.Page{Platform: tldr.PlatformCommon, Command: "ls"}, fetched)
	})

	t.Run("returns not found for unknown command", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, page tldr.Page) (string, error) {
				t.Fatal("fetcher should not be called")
				return "", nil
			},
		}
		repo := repository.New(staticIndex(), fetcher)

		_, err := repo.GetDocument(context.Background(), "nope")

		require.Error(t, err)
		assert.Equal(t, tldr.ENOTFOUND, tldr.ErrorCode(err))
		assert.Equal(t, "tldr page for \"nope\" not available", tldr.ErrorMessage(err))
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		t.Parallel()

		fetchErr := tldr.Errorf(tldr.EFETCH, "could not fetch tldr page common/tar")
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, page tldr.Page) (string, error) {
				return "", fetchErr
			},
		}
		repo := repository.New(staticIndex(tldr.Page{Platform: tldr.PlatformCommon, Command: "tar"}), fetcher)

		_, err := repo.GetDocument(context.Background(), "tar")

		assert.Same(t, fetchErr, err)
	})
}

func TestRepository_Render(t *testing.T) {
	t.Parallel()

	var fetched tldr.Page
	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, page tldr.Page) (string, error) {
			fetched = page
			return "# ls\n\n> List directory contents (GNU).\n\n- List: `ls`", nil
		},
	}
	repo := repository.New(staticIndex(), fetcher)
	page := tldr.Page{Platform: tldr.PlatformLinux, Command: "ls"}

	text, err := repo.Render(context.Background(), page)

	require.NoError(t, err)
	assert.Equal(t, "List directory contents (GNU).\n\n- List: `ls`", text)
	assert.Equal(t, page, fetched)
}

func TestRepository_Start(t *testing.T) {
	t.Parallel()

	t.Run("initializes index in background", func(t *testing.T) {
		t.Parallel()

		done := make(chan struct{})
		index := &mock.PageIndex{
			InitializeFn: func(ctx context.Context) error {
				close(done)
				return nil
			},
			DoneFn: func() <-chan struct{} { return done },
		}
		repo := repository.New(index, &mock.Fetcher{})

		repo.Start(context.Background())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, repo.Wait(ctx))
	})

	t.Run("absorbs initialization errors", func(t *testing.T) {
		t.Parallel()

		done := make(chan struct{})
		index := &mock.PageIndex{
			InitializeFn: func(ctx context.Context) error {
				defer close(done)
				return tldr.Errorf(tldr.ERATELIMITED, "tldr has hit GitHub rate limits")
			},
			ResolveFn: func(command string) (tldr.Page, bool) { return tldr.Page{}, false },
			DoneFn:    func() <-chan struct{} { return done },
		}
		repo := repository.New(index, &mock.Fetcher{})

		repo.Start(context.Background())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, repo.Wait(ctx))

		_, err := repo.GetDocument(context.Background(), "tar")
		assert.Equal(t, tldr.ENOTFOUND, tldr.ErrorCode(err))
	})

	t.Run("second start is a no-op", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		done := make(chan struct{})
		index := &mock.PageIndex{
			InitializeFn: func(ctx context.Context) error {
				calls.Add(1)
				time.Sleep(10 * time.Millisecond)
				close(done)
				return nil
			},
			DoneFn: func() <-chan struct{} { return done },
		}
		repo := repository.New(index, &mock.Fetcher{})

		repo.Start(context.Background())
		repo.Start(context.Background())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, repo.Wait(ctx))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("wait returns when context ends first", func(t *testing.T) {
		t.Parallel()

		index := &mock.PageIndex{
			DoneFn: func() <-chan struct{} { return make(chan struct{}) },
		}
		repo := repository.New(index, &mock.Fetcher{})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := repo.Wait(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

// TestRepository_EndToEnd wires the GitHub index, caching fetcher and
// memory store together over a fake transport.
func TestRepository_EndToEnd(t *testing.T) {
	t.Parallel()

	const (
		contentsURL = "https://api.test/contents/"
		treesURL    = "https://api.test/trees/"
		rawURL      = "https://raw.test/pages/"
	)

	mustJSON := func(v any) []byte {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		return b
	}
	listing := mustJSON([]map[string]string{
		{"name": "common", "sha": "c1"},
		{"name": "linux", "sha": "l1"},
		{"name": "osx", "sha": "o1"},
		{"name": "sunos", "sha": "s1"},
		{"name": "windows", "sha": "w1"},
	})
	trees := map[string][]byte{
		treesURL + "c1": mustJSON(map[string]any{"tree": []map[string]string{{"path": "ls.md", "type": "blob"}}}),
		treesURL + "l1": mustJSON(map[string]any{"tree": []map[string]string{{"path": "ls.md", "type": "blob"}, {"path": "apt.md", "type": "blob"}}}),
	}

	var pageFetches atomic.Int32
	transport := &mock.Transport{
		GetFn: func(ctx context.Context, url string) (*tldr.Response, error) {
			switch {
			case url == contentsURL:
				return &tldr.Response{StatusCode: 200, Body: listing}, nil
			case trees[url] != nil:
				return &tldr.Response{StatusCode: 200, Body: trees[url]}, nil
			case url == rawURL+"common/ls.md":
				pageFetches.Add(1)
				return &tldr.Response{StatusCode: 200, Body: []byte("# ls\n\n> List directory contents.\n\n- List: `ls`")}, nil
			case url == rawURL+"linux/apt.md":
				return nil, errors.New("connection reset by peer")
			}
			return &tldr.Response{StatusCode: 404}, nil
		},
	}

	index := github.NewIndex(transport, github.WithContentsURL(contentsURL), github.WithTreesURL(treesURL))
	store := memory.NewStore()
	fetcher := cache.NewFetcher(github.NewFetcher(transport, github.WithRawURL(rawURL)), store)
	repo := repository.New(index, fetcher)

	repo.Start(context.Background())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, repo.Wait(ctx))

	first, err := repo.GetDocument(context.Background(), "ls")
	require.NoError(t, err)
	second, err := repo.GetDocument(context.Background(), "ls")
	require.NoError(t, err)

	assert.Equal(t, "List directory contents.\n\n- List: `ls`", first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), pageFetches.Load())
	assert.Equal(t, 1, store.Count())

	_, err = repo.GetDocument(context.Background(), "apt")
	assert.Equal(t, tldr.EFETCH, tldr.ErrorCode(err))
	assert.Equal(t, 1, store.Count())

	_, err = repo.GetDocument(context.Background(), "brew")
	assert.Equal(t, tldr.ENOTFOUND, tldr.ErrorCode(err))
}
