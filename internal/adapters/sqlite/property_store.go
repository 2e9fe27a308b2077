// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/tebexd/internal/ports/secondary"
)

// PropertyStore implements secondary.PropertyStore with SQLite.
type PropertyStore struct {
	db *sql.DB
}

// NewPropertyStore creates a new SQLite property store.
func NewPropertyStore(db *sql.DB) *PropertyStore {
	return &PropertyStore{db: db}
}

// Get retrieves the value stored under key.
func (s *PropertyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM properties WHERE key = ?`,
		key,
	).Scan(&value)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get property %s: %w", key, err)
	}

	return value, true, nil
}

// Set stores value under key, replacing any prior value.
func (s *PropertyStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO properties (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key,
		value,
	)
	if err != nil {
		return fmt.Errorf("failed to set property %s: %w", key, err)
	}

	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *PropertyStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM properties WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete property %s: %w", key, err)
	}

	return nil
}

// Keys lists stored keys starting with prefix, sorted.
func (s *PropertyStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM properties WHERE substr(key, 1, ?) = ? ORDER BY key`,
		len(prefix),
		prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan property key: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

// Ensure PropertyStore implements the interface
var _ secondary.PropertyStore = (*PropertyStore)(nil)
