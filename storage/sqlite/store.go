// Package sqlite provides a SQLite-backed storage medium for the cache.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/krisalay/storefront-cache/storage"
	"github.com/krisalay/storefront-cache/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists cache items in a single SQLite table.
type Store struct {
	sqlDB *sql.DB

	// quota caps the byte size of all keys and values; zero means unlimited.
	quota int64
}

var _ storage.Backend = (*Store)(nil)

// Open opens a SQLite store at path and applies embedded migrations.
func Open(path string, quota int64) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, quota: quota}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetItem reads one item.
func (s *Store) GetItem(key string) (string, bool, error) {
	if s == nil || s.sqlDB == nil {
		return "", false, storage.ErrUnavailable
	}
	var value string
	err := s.sqlDB.QueryRow(`SELECT value FROM cache_items WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get item: %w", err)
	}
	return value, true, nil
}

// SetItem upserts one item, enforcing the byte quota.
func (s *Store) SetItem(key, value string) error {
	if s == nil || s.sqlDB == nil {
		return storage.ErrUnavailable
	}
	if s.quota > 0 {
		var used int64
		if err := s.sqlDB.QueryRow(
			`SELECT COALESCE(SUM(LENGTH(CAST(key AS BLOB)) + LENGTH(CAST(value AS BLOB))), 0)
			 FROM cache_items WHERE key != ?`,
			key,
		).Scan(&used); err != nil {
			return fmt.Errorf("measure usage: %w", err)
		}
		if used+int64(len(key)+len(value)) > s.quota {
			return storage.ErrQuotaExceeded
		}
	}

	_, err := s.sqlDB.Exec(
		`INSERT INTO cache_items (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		value,
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		if isFull(err) {
			return storage.ErrQuotaExceeded
		}
		return fmt.Errorf("set item: %w", err)
	}
	return nil
}

// RemoveItem deletes one item.
func (s *Store) RemoveItem(key string) error {
	if s == nil || s.sqlDB == nil {
		return storage.ErrUnavailable
	}
	if _, err := s.sqlDB.Exec(`DELETE FROM cache_items WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove item: %w", err)
	}
	return nil
}

// Keys lists every stored key in order.
func (s *Store) Keys() ([]string, error) {
	if s == nil || s.sqlDB == nil {
		return nil, storage.ErrUnavailable
	}
	rows, err := s.sqlDB.Query(`SELECT key FROM cache_items ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keys: %w", err)
	}
	return keys, nil
}

// Len counts stored items.
func (s *Store) Len() (int, error) {
	if s == nil || s.sqlDB == nil {
		return 0, storage.ErrUnavailable
	}
	var n int
	if err := s.sqlDB.QueryRow(`SELECT COUNT(*) FROM cache_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

func isFull(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3lib.SQLITE_FULL
	}
	return false
}
