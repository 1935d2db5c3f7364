// Package session persists the opaque bearer tokens and the auth-type
// flag for the current profile. Tokens are issued and validated by the
// remote backend; nothing here inspects them.
package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"foodcheq-companion/internal/storage"
)

const (
	AuthTypeUser   = "user"
	AuthTypeVendor = "vendor"
)

// Storage keys. The legacy* keys were written by older storefront builds
// and are only ever swept on logout.
const (
	keyUserToken   = "token"
	keyVendorToken = "vendor_token"
	keyAuthType    = "authType"
	keyClientID    = "client_id"

	legacyKeyAccessToken  = "accessToken"
	legacyKeyRefreshToken = "refreshToken"
	legacyKeyUserProfile  = "user"
	legacyKeyVendorRecord = "vendor"
)

type Manager struct {
	store *storage.Adapter
}

func New(store *storage.Adapter) *Manager {
	return &Manager{store: store}
}

func (m *Manager) Token(ctx context.Context) string {
	return storage.Get(ctx, m.store, keyUserToken, "")
}

func (m *Manager) SetToken(ctx context.Context, token string) error {
	return m.store.Set(ctx, keyUserToken, token)
}

func (m *Manager) ClearToken(ctx context.Context) error {
	return m.store.Remove(ctx, keyUserToken)
}

func (m *Manager) VendorToken(ctx context.Context) string {
	return storage.Get(ctx, m.store, keyVendorToken, "")
}

func (m *Manager) SetVendorToken(ctx context.Context, token string) error {
	return m.store.Set(ctx, keyVendorToken, token)
}

func (m *Manager) ClearVendorToken(ctx context.Context) error {
	return m.store.Remove(ctx, keyVendorToken)
}

// AuthType reports which kind of session is active, defaulting to user.
func (m *Manager) AuthType(ctx context.Context) string {
	t := storage.Get(ctx, m.store, keyAuthType, AuthTypeUser)
	if t != AuthTypeVendor {
		return AuthTypeUser
	}
	return AuthTypeVendor
}

func (m *Manager) SetAuthType(ctx context.Context, authType string) error {
	if authType != AuthTypeUser && authType != AuthTypeVendor {
		return fmt.Errorf("unknown auth type %q", authType)
	}
	return m.store.Set(ctx, keyAuthType, authType)
}

// ActiveToken resolves the bearer for the active session: the vendor
// token when the auth-type flag says vendor, the user token otherwise.
func (m *Manager) ActiveToken(ctx context.Context) string {
	if m.AuthType(ctx) == AuthTypeVendor {
		return m.VendorToken(ctx)
	}
	return m.Token(ctx)
}

func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	return m.ActiveToken(ctx) != ""
}

// Logout sweeps every session key this project has ever written,
// including the legacy ones, so a fresh login starts clean. The first
// failed removal aborts the sweep so the caller can retry.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.ClearToken(ctx); err != nil {
		return err
	}
	if err := m.ClearVendorToken(ctx); err != nil {
		return err
	}
	keys := []string{
		keyAuthType,
		legacyKeyAccessToken,
		legacyKeyRefreshToken,
		legacyKeyUserProfile,
		legacyKeyVendorRecord,
	}
	for _, key := range keys {
		if err := m.store.Remove(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// ClientID returns the stable anonymous id for this profile, generating
// and persisting one on first use.
func (m *Manager) ClientID(ctx context.Context) (string, error) {
	if id := storage.Get(ctx, m.store, keyClientID, ""); id != "" {
		return id, nil
	}
	id := uuid.NewString()
	if err := m.store.Set(ctx, keyClientID, id); err != nil {
		return "", err
	}
	return id, nil
}
