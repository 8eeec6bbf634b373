package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/tldr/mock"
	tldrslog "github.com/fwojciec/tldr/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingStore_Get(t *testing.T) {
	t.Parallel()

	t.Run("logs hit", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Store{
			GetFn: func(ctx context.Context, key string) (string, bool, error) {
				return "# tar", true, nil
			},
		}

		store := tldrslog.NewLoggingStore(inner, debugLogger(&buf))
		v, ok, err := store.Get(context.Background(), "tldrfetcher.cache.tar")

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "# tar", v)
		output := buf.String()
		assert.Contains(t, output, "store get")
		assert.Contains(t, output, "key=tldrfetcher.cache.tar")
		assert.Contains(t, output, "hit=true")
	})

	t.Run("logs miss", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Store{
			GetFn: func(ctx context.Context, key string) (string, bool, error) {
				return "", false, nil
			},
		}

		store := tldrslog.NewLoggingStore(inner, debugLogger(&buf))
		_, _, err := store.Get(context.Background(), "tldrfetcher.cache.ls")

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "hit=false")
	})

	t.Run("is silent above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Store{
			GetFn: func(ctx context.Context, key string) (string, bool, error) {
				return "", false, nil
			},
		}

		store := tldrslog.NewLoggingStore(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		_, _, _ = store.Get(context.Background(), "k")

		assert.Empty(t, buf.String())
	})
}

func TestLoggingStore_Update(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.Store{
		UpdateFn: func(ctx context.Context, key, value string) error {
			return errors.New("disk full")
		},
	}

	store := tldrslog.NewLoggingStore(inner, debugLogger(&buf))
	err := store.Update(context.Background(), "tldrfetcher.cache.tar", "# tar")

	require.Error(t, err)
	output := buf.String()
	assert.Contains(t, output, "store update")
	assert.Contains(t, output, "bytes=5")
	assert.Contains(t, output, "err=\"disk full\"")
}
