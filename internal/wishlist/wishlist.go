// Package wishlist keeps the saved-for-later id set: locally for guests,
// reconciled against the server-held list once a user is signed in. The
// server copy wins on reconcile; the local set is a cache of it.
package wishlist

import (
	"context"

	"foodcheq-companion/internal/storage"
)

// DefaultKey is the storage key the storefront has always used.
const DefaultKey = "wishlist"

// remoteList is the slice of the API client the manager needs.
type remoteList interface {
	WishlistIDs(ctx context.Context) ([]string, error)
	AddWishlist(ctx context.Context, productID string) error
	RemoveWishlist(ctx context.Context, productID string) error
}

// authState reports whether a signed-in user session exists; guests stay
// fully local.
type authState interface {
	Token(ctx context.Context) string
}

type Manager struct {
	store  *storage.Adapter
	key    string
	remote remoteList
	auth   authState
}

func New(store *storage.Adapter, key string, remote remoteList, auth authState) *Manager {
	return &Manager{store: store, key: key, remote: remote, auth: auth}
}

// IDs returns the locally known id set, insertion-ordered. Total: any
// storage failure reads as empty.
func (m *Manager) IDs(ctx context.Context) []string {
	return dedupe(storage.Get(ctx, m.store, m.key, []string(nil)))
}

func (m *Manager) Has(ctx context.Context, productID string) bool {
	for _, id := range m.IDs(ctx) {
		if id == productID {
			return true
		}
	}
	return false
}

func (m *Manager) Count(ctx context.Context) int {
	return len(m.IDs(ctx))
}

// Add saves productID locally and, for a signed-in user, on the server.
// The server write happens first so a rejected save is not cached.
func (m *Manager) Add(ctx context.Context, productID string) ([]string, error) {
	ids := m.IDs(ctx)
	if productID == "" {
		return ids, nil
	}

	if m.signedIn(ctx) {
		if err := m.remote.AddWishlist(ctx, productID); err != nil {
			return ids, err
		}
	}

	for _, id := range ids {
		if id == productID {
			return ids, nil
		}
	}
	ids = append(ids, productID)
	return ids, m.store.Set(ctx, m.key, ids)
}

// Remove drops productID locally and, for a signed-in user, on the server.
func (m *Manager) Remove(ctx context.Context, productID string) ([]string, error) {
	ids := m.IDs(ctx)

	if m.signedIn(ctx) {
		if err := m.remote.RemoveWishlist(ctx, productID); err != nil {
			return ids, err
		}
	}

	kept := ids[:0]
	for _, id := range ids {
		if id != productID {
			kept = append(kept, id)
		}
	}
	return kept, m.store.Set(ctx, m.key, kept)
}

// Reconcile refreshes the local set from the server for signed-in users
// so badge counts match the server. Guests just get the local set.
func (m *Manager) Reconcile(ctx context.Context) ([]string, error) {
	if !m.signedIn(ctx) {
		return m.IDs(ctx), nil
	}
	ids, err := m.remote.WishlistIDs(ctx)
	if err != nil {
		return m.IDs(ctx), err
	}
	ids = dedupe(ids)
	if err := m.store.Set(ctx, m.key, ids); err != nil {
		return ids, err
	}
	return ids, nil
}

func (m *Manager) signedIn(ctx context.Context) bool {
	return m.remote != nil && m.auth != nil && m.auth.Token(ctx) != ""
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
