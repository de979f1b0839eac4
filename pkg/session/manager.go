package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Manager ties a Transport to a Store. Every call extends the session by
// the idle timeout, capped at CreatedAt plus the max lifetime.
type Manager struct {
	store     Store
	transport Transport
	config    Config
	ownsStore bool
}

// New creates a manager. Without WithStore it uses a MemoryStore that the
// manager closes on Close; without WithTransport a CookieTransport named
// after the config.
func New(opts ...Option) *Manager {
	m := &Manager{config: DefaultConfig()}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
		m.ownsStore = true
	}
	if m.transport == nil {
		m.transport = NewCookieTransport(m.config.CookieName, m.config.SecureCookies)
	}
	return m
}

// Store returns the underlying store.
func (m *Manager) Store() Store {
	return m.store
}

// Ensure returns the request's live session or creates a new one and sets
// its token on w.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	s, err := m.Get(ctx, r)
	switch {
	case err == nil:
		return s, nil
	case errors.Is(err, ErrStoreUnavailable):
		return nil, err
	}

	s = NewSession(uuid.NewString(), 0)
	s.ExpiresAt = m.expiry(s.CreatedAt, s.CreatedAt)
	if err := m.store.Create(ctx, s); err != nil {
		return nil, err
	}
	if err := m.transport.SetToken(w, s.Token, m.config.IdleTimeout); err != nil {
		_ = m.store.Delete(ctx, s.Token)
		return nil, err
	}
	return s, nil
}

// Get returns the request's live session.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}
	s, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if s.IsExpired() {
		return nil, ErrSessionExpired
	}
	return s, nil
}

// Save writes s back to the store and slides its expiry. Pass w to refresh
// the cookie as well; nil skips it, as SSE responses have already sent
// their headers.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if s == nil {
		return ErrInvalidSession
	}
	now := time.Now()
	s.ExpiresAt = m.expiry(s.CreatedAt, now)
	s.LastActivityAt = now
	if err := m.store.Update(ctx, s); err != nil {
		return err
	}
	if w != nil {
		return m.transport.SetToken(w, s.Token, m.config.IdleTimeout)
	}
	return nil
}

// Destroy deletes the request's session and clears its token.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.transport.GetToken(r); err == nil {
		_ = m.store.Delete(ctx, token)
	}
	return m.transport.ClearToken(w)
}

// Close releases the store the manager created itself.
func (m *Manager) Close() error {
	if c, ok := m.store.(interface{ Close() error }); ok && m.ownsStore {
		return c.Close()
	}
	return nil
}

func (m *Manager) expiry(createdAt, now time.Time) time.Time {
	idle := now.Add(m.config.IdleTimeout)
	if hard := createdAt.Add(m.config.MaxLifetime); hard.Before(idle) {
		return hard
	}
	return idle
}
