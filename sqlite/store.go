package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/tldr"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ tldr.Store = (*Store)(nil)

// Entry is a cached value with its bookkeeping columns.
type Entry struct {
	ID          string
	Key         string
	Value       string
	ContentHash string
	UpdatedAt   time.Time
}

// Stats summarizes the cache contents.
type Stats struct {
	Entries int
	Bytes   int64
}

// Store implements tldr.Store using SQLite.
type Store struct {
	db *DB
}

// NewStore creates a new Store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// hashContent computes xxHash of content and returns it as hex.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM cache_entries WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Update stores value under key, replacing any existing entry.
func (s *Store) Update(ctx context.Context, key, value string) error {
	if key == "" {
		return tldr.Errorf(tldr.EINVALID, "cache key required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cache_entries (id, key, value, content_hash, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			content_hash = excluded.content_hash,
			updated_at = excluded.updated_at
	`, uuid.New().String(), key, value, hashContent(value), formatTimestamp(time.Now()))

	return err
}

// FindEntry returns the entry stored under key.
// Returns ENOTFOUND if there is no such entry.
func (s *Store) FindEntry(ctx context.Context, key string) (*Entry, error) {
	var e Entry
	var updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, key, value, content_hash, updated_at
		FROM cache_entries
		WHERE key = ?
	`, key).Scan(&e.ID, &e.Key, &e.Value, &e.ContentHash, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, tldr.Errorf(tldr.ENOTFOUND, "cache entry %q not found", key)
	}
	if err != nil {
		return nil, err
	}

	if e.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// FindEntries returns entries ordered by key without their values.
// A limit or offset of zero is ignored.
func (s *Store) FindEntries(ctx context.Context, limit, offset int) ([]*Entry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, key, content_hash, updated_at FROM cache_entries ORDER BY key ASC")
	appendPagination(&query, &args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		var updatedAt string
		if err := rows.Scan(&e.ID, &e.Key, &e.ContentHash, &updatedAt); err != nil {
			return nil, err
		}
		if e.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// Stats returns the number of entries and their total size in bytes.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(LENGTH(CAST(value AS BLOB))), 0) FROM cache_entries`,
	).Scan(&st.Entries, &st.Bytes)
	return st, err
}

// Clear deletes every entry and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
