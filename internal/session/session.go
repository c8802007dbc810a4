// Package session holds the console's authenticated session: the bearer
// token issued by the platform and the role derived from it.
//
// The role is decoded client-side from an unverified JWT claim. That is a
// routing convenience only, never an authorization boundary: the platform
// API re-validates the token on every privileged call.
package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dhriti-ai/console-gateway/internal/models"
)

// Session is the persisted state for one signed-in console user.
type Session struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Role derives the role from the stored token. A missing, malformed or
// expired token yields no role, never an error.
func (s Session) Role() (models.Role, bool) {
	return RoleFromToken(s.Token)
}

// RoleFromToken decodes the token's claims and extracts the role field.
// The signature is not verified here; expiry is still honoured so a stale
// token behaves like an absent one.
func RoleFromToken(token string) (models.Role, bool) {
	if token == "" {
		return "", false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", false
	}

	if exp, err := claims.GetExpirationTime(); err != nil {
		return "", false
	} else if exp != nil && time.Now().After(exp.Time) {
		return "", false
	}

	raw, ok := claims["role"].(string)
	if !ok || raw == "" {
		return "", false
	}
	return models.Role(raw), true
}

// Manager issues, loads and clears sessions against a Store.
type Manager struct {
	store Store
	ttl   time.Duration
}

// NewManager constructs a session manager.
func NewManager(store Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{store: store, ttl: ttl}
}

// SetToken persists a new session for the token and returns its ID.
// Any previous session under a reused ID is overwritten by Put semantics;
// login always mints a fresh ID.
func (m *Manager) SetToken(ctx context.Context, token string) (string, Session, error) {
	id := uuid.NewString()
	sess := Session{Token: token, CreatedAt: time.Now().UTC()}
	if err := m.store.Put(ctx, id, sess, m.ttl); err != nil {
		return "", Session{}, err
	}
	return id, sess, nil
}

// Session loads the session for an ID. A missing or expired session is
// reported as absent, not as an error.
func (m *Manager) Session(ctx context.Context, id string) (Session, bool) {
	if id == "" {
		return Session{}, false
	}
	sess, ok, err := m.store.Get(ctx, id)
	if err != nil || !ok {
		return Session{}, false
	}
	return sess, true
}

// ClearToken removes the persisted session (logout).
func (m *Manager) ClearToken(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return m.store.Delete(ctx, id)
}
