package cart

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"foodcheq-companion/internal/domain"
	"foodcheq-companion/internal/storage"
)

type memRepo struct {
	mu     sync.Mutex
	data   map[string]string
	setErr error
}

func newMemRepo() *memRepo {
	return &memRepo{data: make(map[string]string)}
}

func (r *memRepo) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.data[key]; ok {
		return v, nil
	}
	return "", domain.ErrNotFound
}

func (r *memRepo) Set(_ context.Context, key, value string) error {
	if r.setErr != nil {
		return r.setErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = value
	return nil
}

func (r *memRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

func (r *memRepo) has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.data[key]
	return ok
}

func (r *memRepo) seed(key, raw string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = raw
}

var testCfg = StoreConfig{CanonicalKey: "test_cart_v1", LegacyKey: "test_cart_legacy"}

func newTestManager() (*Manager, *memRepo) {
	repo := newMemRepo()
	return New(storage.New(repo, nil), testCfg), repo
}

func TestItems_NormalizationIdempotent(t *testing.T) {
	ctx := context.Background()
	m, repo := newTestManager()
	repo.seed(testCfg.CanonicalKey, `[
		{"id":"p1","qty":"2","price":4.5},
		{"slug":"green-tea","quantity":-3},
		{"name":""}
	]`)

	first := m.Items(ctx)
	second := m.Items(ctx)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("normalization not idempotent: %+v vs %+v", first, second)
	}

	if len(first) != 2 {
		t.Fatalf("expected 2 items, got %+v", first)
	}
	if first[0].ProductID != "p1" || first[0].Quantity != 2 || first[0].PriceKobo != 450 {
		t.Fatalf("legacy fields not coerced: %+v", first[0])
	}
	if first[1].ProductID != "green-tea" || first[1].Quantity != 1 || first[1].Name != "Item" {
		t.Fatalf("slug identity not resolved: %+v", first[1])
	}
	if first[0].Currency != "NGN" || first[1].Currency != "NGN" {
		t.Fatalf("currency not pinned: %+v", first)
	}
}

func TestItems_CorruptCanonicalReadsEmpty(t *testing.T) {
	ctx := context.Background()
	m, repo := newTestManager()
	repo.seed(testCfg.CanonicalKey, `{"not":"a list"}`)

	if items := m.Items(ctx); len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
}

func TestMigration_LegacyOnlyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m, repo := newTestManager()
	repo.seed(testCfg.LegacyKey, `[{"id":"p1","name":"Rice","price":25.0,"qty":2}]`)

	first := m.Items(ctx)
	if repo.has(testCfg.LegacyKey) {
		t.Fatalf("legacy key should be deleted after first read")
	}

	second := m.Items(ctx)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("migration not idempotent: %+v vs %+v", first, second)
	}
	if len(first) != 1 || first[0].ProductID != "p1" || first[0].PriceKobo != 2500 || first[0].Quantity != 2 {
		t.Fatalf("legacy item not migrated: %+v", first)
	}
}

func TestMigration_CanonicalWinsOverLegacy(t *testing.T) {
	ctx := context.Background()
	m, repo := newTestManager()
	repo.seed(testCfg.CanonicalKey, `[{"productId":"modern","priceKobo":100,"quantity":1,"name":"M","currency":"NGN"}]`)
	repo.seed(testCfg.LegacyKey, `[{"id":"old","price":1}]`)

	items := m.Items(ctx)
	if len(items) != 1 || items[0].ProductID != "modern" {
		t.Fatalf("canonical data must win, got %+v", items)
	}
	// Migration is skipped entirely, never merged; the legacy key stays.
	if !repo.has(testCfg.LegacyKey) {
		t.Fatalf("legacy key should be untouched when canonical is populated")
	}
}

func TestAdd_MergesOnExistingID(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	if _, err := m.Add(ctx, domain.RawCartInput{ID: "p1", Name: "A", PriceKobo: float64(500)}, 2); err != nil {
		t.Fatalf("first add: %v", err)
	}
	items, err := m.Add(ctx, domain.RawCartInput{ID: "p1"}, 3)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected a single merged line, got %+v", items)
	}
	got := items[0]
	if got.ProductID != "p1" || got.Quantity != 5 || got.PriceKobo != 500 || got.Name != "A" {
		t.Fatalf("merge result wrong: %+v", got)
	}
}

func TestAdd_NonEmptyIncomingValuesWin(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	if _, err := m.Add(ctx, domain.RawCartInput{ID: "p1", Name: "Old", PriceKobo: float64(500)}, 1); err != nil {
		t.Fatalf("first add: %v", err)
	}
	items, err := m.Add(ctx, domain.RawCartInput{ID: "p1", Name: "New", PriceKobo: float64(700)}, 1)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if items[0].PriceKobo != 700 || items[0].Name != "New" {
		t.Fatalf("incoming values should refresh the line: %+v", items[0])
	}

	// A later add without price or name must not clobber what is known.
	items, err = m.Add(ctx, domain.RawCartInput{ID: "p1"}, 1)
	if err != nil {
		t.Fatalf("third add: %v", err)
	}
	if items[0].PriceKobo != 700 || items[0].Name != "New" {
		t.Fatalf("empty incoming values must not clobber: %+v", items[0])
	}
}

func TestAdd_MissingIdentityIsRejected(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	items, err := m.Add(ctx, domain.RawCartInput{Name: "no id"}, 1)
	if !errors.Is(err, domain.ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cart must be unchanged, got %+v", items)
	}
}

func TestSetQuantity_ClampsToOne(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()
	if _, err := m.Add(ctx, domain.RawCartInput{ID: "p1", PriceKobo: float64(100)}, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	for _, qty := range []int{0, -5} {
		items, err := m.SetQuantity(ctx, "p1", qty)
		if err != nil {
			t.Fatalf("SetQuantity(%d): %v", qty, err)
		}
		if items[0].Quantity != 1 {
			t.Fatalf("SetQuantity(%d): quantity = %d, want 1", qty, items[0].Quantity)
		}
	}
}

func TestSetQuantity_UnknownIDLeavesCartAlone(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()
	if _, err := m.Add(ctx, domain.RawCartInput{ID: "p1", PriceKobo: float64(100)}, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	items, err := m.SetQuantity(ctx, "ghost", 7)
	if err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("unexpected cart %+v", items)
	}
}

func TestTotals(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()
	if _, err := m.Add(ctx, domain.RawCartInput{ID: "a", PriceKobo: float64(1000)}, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := m.Add(ctx, domain.RawCartInput{ID: "b", PriceKobo: float64(2500)}, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	if total := m.TotalKobo(ctx); total != 4500 {
		t.Fatalf("TotalKobo = %d, want 4500", total)
	}
	if count := m.Count(ctx); count != 3 {
		t.Fatalf("Count = %d, want 3", count)
	}
}

func TestReplace_DropsIdentitylessItems(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	items, err := m.Replace(ctx, []domain.RawCartInput{
		{Name: ""},
		{ID: "p2", PriceKobo: float64(100)},
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if len(items) != 1 || items[0].ProductID != "p2" {
		t.Fatalf("identity-less item not dropped: %+v", items)
	}

	stored := m.Items(ctx)
	if len(stored) != 1 || stored[0].ProductID != "p2" {
		t.Fatalf("stored cart wrong: %+v", stored)
	}
}

func TestRemove_PreservesOrder(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()
	for _, id := range []string{"a", "b", "c"} {
		if _, err := m.Add(ctx, domain.RawCartInput{ID: id, PriceKobo: float64(100)}, 1); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	items, err := m.Remove(ctx, "b")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(items) != 2 || items[0].ProductID != "a" || items[1].ProductID != "c" {
		t.Fatalf("order not preserved: %+v", items)
	}
}

func TestClear_DoesNotResurrectLegacy(t *testing.T) {
	ctx := context.Background()
	m, repo := newTestManager()
	repo.seed(testCfg.LegacyKey, `[{"id":"old","price":1,"qty":1}]`)

	// Migration runs, legacy is consumed.
	if items := m.Items(ctx); len(items) != 1 {
		t.Fatalf("migration expected, got %+v", items)
	}

	if err := m.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if items := m.Items(ctx); len(items) != 0 {
		t.Fatalf("cart not empty after clear: %+v", items)
	}
}

func TestMutations_SurfacePersistFailures(t *testing.T) {
	ctx := context.Background()
	m, repo := newTestManager()
	repo.setErr = errors.New("quota exceeded")

	if _, err := m.Add(ctx, domain.RawCartInput{ID: "p1"}, 1); !errors.Is(err, domain.ErrPersist) {
		t.Fatalf("Add: expected ErrPersist, got %v", err)
	}
	if _, err := m.Replace(ctx, nil); !errors.Is(err, domain.ErrPersist) {
		t.Fatalf("Replace: expected ErrPersist, got %v", err)
	}
	// Reads stay total even while writes fail.
	if items := m.Items(ctx); items == nil && len(items) != 0 {
		t.Fatalf("Items must not fail: %+v", items)
	}
}
