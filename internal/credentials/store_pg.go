package credentials

import (
	"context"
	"database/sql"
	"errors"
)

// PGStore reads secrets from the credentials table.
type PGStore struct {
	DB *sql.DB
}

// Lookup returns the value stored for key.
func (s *PGStore) Lookup(ctx context.Context, key string) (string, error) {
	const query = `
SELECT value
FROM credentials
WHERE key = $1
LIMIT 1`
	var value string
	if err := s.DB.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	if value == "" {
		return "", ErrNotFound
	}
	return value, nil
}

// Put inserts or replaces the value for key.
func (s *PGStore) Put(ctx context.Context, key, value string) error {
	const query = `
INSERT INTO credentials (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	_, err := s.DB.ExecContext(ctx, query, key, value)
	return err
}

var _ Store = (*PGStore)(nil)
