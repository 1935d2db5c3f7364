package storage

import "context"

// Repository is raw string access to the durable per-profile key-value
// store. Implementations return domain.ErrNotFound for missing keys and
// make no guarantees about concurrent writers beyond last-write-wins.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
