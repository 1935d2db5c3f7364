// Package cart owns the canonical, normalized cart for one profile,
// including the one-time migration from the legacy storage format. All
// operations are synchronous and total over malformed stored content: a
// corrupted value reads as an empty cart, never as an error.
package cart

import (
	"context"

	"foodcheq-companion/internal/domain"
	"foodcheq-companion/internal/storage"
)

// StoreConfig names the storage keys the manager owns. Tests pass distinct
// keys per run instead of sharing the deployment namespace.
type StoreConfig struct {
	CanonicalKey string
	LegacyKey    string
}

// DefaultStoreConfig matches the keys the storefront has shipped with.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		CanonicalKey: "foodcheq_cart_v1",
		LegacyKey:    "cart",
	}
}

type Manager struct {
	store *storage.Adapter
	cfg   StoreConfig
}

func New(store *storage.Adapter, cfg StoreConfig) *Manager {
	return &Manager{store: store, cfg: cfg}
}

// Items returns the normalized canonical cart, running the legacy
// migration check first. It never fails; any storage problem reads as an
// empty cart.
func (m *Manager) Items(ctx context.Context) []domain.CartItem {
	m.migrateLegacy(ctx)
	raw := storage.Get(ctx, m.store, m.cfg.CanonicalKey, []domain.RawCartInput(nil))
	return normalizeList(raw)
}

// Replace normalizes items and persists them as the whole cart. Entries
// without resolvable identity are dropped.
func (m *Manager) Replace(ctx context.Context, items []domain.RawCartInput) ([]domain.CartItem, error) {
	return m.persist(ctx, normalizeList(items))
}

// Add merges product into the cart. When the id already exists the
// quantities accumulate and a non-zero incoming price or non-empty
// incoming name refreshes the stored line; an add without them leaves the
// line's price and name alone. Identity here is strict (productId or id
// only): an add is a fresh product payload, not legacy data, so the
// slug/name fallbacks do not apply.
func (m *Manager) Add(ctx context.Context, product domain.RawCartInput, qty int) ([]domain.CartItem, error) {
	items := m.Items(ctx)

	id := firstIdentity(product.ProductID, product.ID)
	if id == "" {
		return items, domain.ErrInvalidItem
	}
	if qty < 1 {
		qty = 1
	}

	priceKobo := coercePriceKobo(product)
	name := stringOf(product.Name)

	found := false
	for i := range items {
		if items[i].ProductID != id {
			continue
		}
		items[i].Quantity += qty
		if priceKobo > 0 {
			items[i].PriceKobo = priceKobo
		}
		if name != "" {
			items[i].Name = name
		}
		found = true
		break
	}

	if !found {
		if name == "" {
			name = domain.DefaultItemName
		}
		items = append(items, domain.CartItem{
			ProductID: id,
			Name:      name,
			PriceKobo: priceKobo,
			Currency:  domain.DefaultCurrency,
			Quantity:  qty,
		})
	}

	return m.persist(ctx, items)
}

// SetQuantity sets the quantity for productID, clamped to at least one.
// An unknown id leaves the cart unchanged.
func (m *Manager) SetQuantity(ctx context.Context, productID string, qty int) ([]domain.CartItem, error) {
	items := m.Items(ctx)
	if qty < 1 {
		qty = 1
	}
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = qty
			break
		}
	}
	return m.persist(ctx, items)
}

// Remove deletes the line for productID, preserving the order of the rest.
func (m *Manager) Remove(ctx context.Context, productID string) ([]domain.CartItem, error) {
	items := m.Items(ctx)
	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	return m.persist(ctx, kept)
}

// Clear deletes the canonical key entirely. The legacy key is untouched;
// in the normal flow it is already gone, and a clear must not resurrect it.
func (m *Manager) Clear(ctx context.Context) error {
	return m.store.Remove(ctx, m.cfg.CanonicalKey)
}

// TotalKobo is the sum of price times quantity over the cart, in kobo.
func (m *Manager) TotalKobo(ctx context.Context) int64 {
	var total int64
	for _, item := range m.Items(ctx) {
		total += item.PriceKobo * int64(item.Quantity)
	}
	return total
}

// Count is the total number of units across all lines.
func (m *Manager) Count(ctx context.Context) int {
	var count int
	for _, item := range m.Items(ctx) {
		count += item.Quantity
	}
	return count
}

// migrateLegacy moves a legacy-format cart onto the canonical key, at most
// meaningfully once. A populated canonical cart always wins and is never
// merged with legacy data. Safe to invoke repeatedly: the second call
// finds either a populated canonical cart or no legacy key. If the write
// fails the legacy key is kept so a later read can retry.
func (m *Manager) migrateLegacy(ctx context.Context) {
	current := storage.Get(ctx, m.store, m.cfg.CanonicalKey, []domain.RawCartInput(nil))
	if len(current) > 0 {
		return
	}

	legacy := storage.Get(ctx, m.store, m.cfg.LegacyKey, []domain.RawCartInput(nil))
	if len(legacy) == 0 {
		return
	}

	if err := m.store.Set(ctx, m.cfg.CanonicalKey, normalizeList(legacy)); err != nil {
		return
	}
	_ = m.store.Remove(ctx, m.cfg.LegacyKey)
}

func (m *Manager) persist(ctx context.Context, items []domain.CartItem) ([]domain.CartItem, error) {
	if err := m.store.Set(ctx, m.cfg.CanonicalKey, items); err != nil {
		return items, err
	}
	return items, nil
}
