package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"foodcheq-companion/internal/domain"
	"foodcheq-companion/internal/notify"
)

// Adapter is the typed face of the store: JSON-encoded values under string
// keys. Reads are total functions (any failure yields the caller-supplied
// default); writes surface failure as domain.ErrPersist so callers can
// decide whether to retry, warn or ignore. Successful writes publish the
// changed key on the bus.
type Adapter struct {
	repo Repository
	bus  *notify.Bus
}

// New builds an Adapter. bus may be nil when change notifications are not
// needed (tests, one-shot tools).
func New(repo Repository, bus *notify.Bus) *Adapter {
	return &Adapter{repo: repo, bus: bus}
}

// Get decodes the value at key into T. A missing key, malformed JSON, a
// shape mismatch or any store error all yield def; Get never fails.
func Get[T any](ctx context.Context, a *Adapter, key string, def T) T {
	raw, err := a.repo.Get(ctx, key)
	if err != nil {
		return def
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return def
	}
	return v
}

// Set JSON-encodes value and writes it under key.
func (a *Adapter) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %q: %v", domain.ErrPersist, key, err)
	}
	if err := a.repo.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("%w: write %q: %v", domain.ErrPersist, key, err)
	}
	a.publish(key)
	return nil
}

// Remove deletes key. Removing an absent key is a no-op, not an error.
func (a *Adapter) Remove(ctx context.Context, key string) error {
	if err := a.repo.Delete(ctx, key); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: delete %q: %v", domain.ErrPersist, key, err)
	}
	a.publish(key)
	return nil
}

func (a *Adapter) publish(key string) {
	if a.bus != nil {
		a.bus.Publish(key)
	}
}
