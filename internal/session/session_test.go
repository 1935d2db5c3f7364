package session

import (
	"context"
	"sync"
	"testing"

	"foodcheq-companion/internal/domain"
	"foodcheq-companion/internal/storage"
)

type memRepo struct {
	mu   sync.Mutex
	data map[string]string
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

func newTestManager() (*Manager, *memRepo) {
	repo := newMemRepo()
	return New(storage.New(repo, nil)), repo
}

func TestActiveToken_FollowsAuthType(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	if err := m.SetToken(ctx, "user-tok"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if err := m.SetVendorToken(ctx, "vendor-tok"); err != nil {
		t.Fatalf("SetVendorToken: %v", err)
	}

	// Default auth type is user.
	if got := m.ActiveToken(ctx); got != "user-tok" {
		t.Fatalf("ActiveToken = %q, want user token", got)
	}

	if err := m.SetAuthType(ctx, AuthTypeVendor); err != nil {
		t.Fatalf("SetAuthType: %v", err)
	}
	if got := m.ActiveToken(ctx); got != "vendor-tok" {
		t.Fatalf("ActiveToken = %q, want vendor token", got)
	}
}

func TestSetAuthType_RejectsUnknown(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	if err := m.SetAuthType(ctx, "admin"); err == nil {
		t.Fatalf("expected error for unknown auth type")
	}
}

func TestAuthType_GarbageReadsAsUser(t *testing.T) {
	ctx := context.Background()
	m, repo := newTestManager()
	repo.data["authType"] = `"superuser"`

	if got := m.AuthType(ctx); got != AuthTypeUser {
		t.Fatalf("AuthType = %q, want user", got)
	}
}

func TestIsAuthenticated(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	if m.IsAuthenticated(ctx) {
		t.Fatalf("fresh profile must not be authenticated")
	}
	if err := m.SetToken(ctx, "tok"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if !m.IsAuthenticated(ctx) {
		t.Fatalf("expected authenticated after SetToken")
	}
}

func TestLogout_SweepsEverySessionKey(t *testing.T) {
	ctx := context.Background()
	m, repo := newTestManager()

	if err := m.SetToken(ctx, "tok"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if err := m.SetVendorToken(ctx, "vtok"); err != nil {
		t.Fatalf("SetVendorToken: %v", err)
	}
	if err := m.SetAuthType(ctx, AuthTypeVendor); err != nil {
		t.Fatalf("SetAuthType: %v", err)
	}
	// Keys older storefront builds wrote.
	repo.data["accessToken"] = `"legacy"`
	repo.data["refreshToken"] = `"legacy"`
	repo.data["user"] = `{}`
	repo.data["vendor"] = `{}`

	if err := m.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	for _, key := range []string{"token", "vendor_token", "authType", "accessToken", "refreshToken", "user", "vendor"} {
		if _, ok := repo.data[key]; ok {
			t.Fatalf("key %q survived logout", key)
		}
	}
	if m.IsAuthenticated(ctx) {
		t.Fatalf("still authenticated after logout")
	}
}

func TestClearToken_LeavesOtherTokenAlone(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	if err := m.SetToken(ctx, "tok"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if err := m.SetVendorToken(ctx, "vtok"); err != nil {
		t.Fatalf("SetVendorToken: %v", err)
	}

	if err := m.ClearToken(ctx); err != nil {
		t.Fatalf("ClearToken: %v", err)
	}
	if got := m.Token(ctx); got != "" {
		t.Fatalf("user token survived: %q", got)
	}
	if got := m.VendorToken(ctx); got != "vtok" {
		t.Fatalf("vendor token lost: %q", got)
	}

	if err := m.ClearVendorToken(ctx); err != nil {
		t.Fatalf("ClearVendorToken: %v", err)
	}
	if got := m.VendorToken(ctx); got != "" {
		t.Fatalf("vendor token survived: %q", got)
	}
}

func TestClientID_StableAcrossCalls(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager()

	first, err := m.ClientID(ctx)
	if err != nil {
		t.Fatalf("ClientID: %v", err)
	}
	if first == "" {
		t.Fatalf("expected generated id")
	}

	second, err := m.ClientID(ctx)
	if err != nil {
		t.Fatalf("ClientID: %v", err)
	}
	if second != first {
		t.Fatalf("client id changed: %q then %q", first, second)
	}
}
