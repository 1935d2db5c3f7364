package storage

import (
	"context"
	"database/sql"
	"errors"

	"foodcheq-companion/internal/domain"
)

type sqliteRepo struct {
	db *sql.DB
}

// NewSQLite wraps an opened store database as a Repository. The kv schema
// is managed by internal/migrate.
func NewSQLite(db *sql.DB) Repository {
	return &sqliteRepo{db: db}
}

func (r *sqliteRepo) Get(ctx context.Context, key string) (string, error) {
	const q = `SELECT value FROM kv WHERE key = ?`

	var value string
	if err := r.db.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (r *sqliteRepo) Set(ctx context.Context, key, value string) error {
	const q = `
INSERT INTO kv (key, value, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET
	value = excluded.value,
	updated_at = CURRENT_TIMESTAMP
`
	_, err := r.db.ExecContext(ctx, q, key, value)
	return err
}

func (r *sqliteRepo) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM kv WHERE key = ?`

	_, err := r.db.ExecContext(ctx, q, key)
	return err
}
