// Package auth issues and validates the session tokens handed to the
// frontend after it presents the access password.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"
)

var (
	// ErrSessionNotFound indicates the token does not map to an active session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates the session outlived its TTL.
	ErrSessionExpired = errors.New("session expired")
)

// DefaultSessionTTL applies when NewManager is given a non-positive TTL.
const DefaultSessionTTL = 24 * time.Hour

// Session is an issued bearer token.
type Session struct {
	Token     string    `json:"token"`
	Subject   string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionStore persists issued sessions.
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	Find(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
}

// Manager issues, validates and revokes sessions.
type Manager struct {
	ttl   time.Duration
	store SessionStore
	now   func() time.Time
}

// NewManager returns a Manager backed by store. A nil store selects the
// in-memory implementation.
func NewManager(ttl time.Duration, store SessionStore) *Manager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if store == nil {
		store = NewMemorySessionStore()
	}
	return &Manager{ttl: ttl, store: store, now: time.Now}
}

// Issue creates a session for subject.
func (m *Manager) Issue(ctx context.Context, subject string) (Session, error) {
	if subject == "" {
		return Session{}, errors.New("subject must be provided")
	}

	token, err := randomToken()
	if err != nil {
		return Session{}, err
	}

	session := Session{
		Token:     token,
		Subject:   subject,
		ExpiresAt: m.now().UTC().Add(m.ttl),
	}
	if err := m.store.Save(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Validate returns the live session for token. Expired sessions are removed.
func (m *Manager) Validate(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrSessionNotFound
	}

	session, err := m.store.Find(ctx, token)
	if err != nil {
		return Session{}, err
	}

	if !m.now().UTC().Before(session.ExpiresAt) {
		_ = m.store.Delete(ctx, token)
		return Session{}, ErrSessionExpired
	}
	return session, nil
}

// Revoke removes token from the store.
func (m *Manager) Revoke(ctx context.Context, token string) {
	if token == "" {
		return
	}
	_ = m.store.Delete(ctx, token)
}

func randomToken() (string, error) {
	const size = 32
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
