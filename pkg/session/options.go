package session

import "time"

// Option configures the Manager.
type Option func(*Manager)

func WithStore(store Store) Option {
	return func(m *Manager) { m.store = store }
}

func WithTransport(t Transport) Option {
	return func(m *Manager) { m.transport = t }
}

func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.config = cfg }
}

func WithCookieName(name string) Option {
	return func(m *Manager) { m.config.CookieName = name }
}

// WithTimeouts sets the sliding idle timeout and the absolute lifetime.
func WithTimeouts(idle, maxLifetime time.Duration) Option {
	if idle <= 0 || maxLifetime <= 0 {
		panic("session: timeouts must be > 0")
	}
	return func(m *Manager) {
		m.config.IdleTimeout = idle
		m.config.MaxLifetime = maxLifetime
	}
}

func WithCleanupInterval(interval time.Duration) Option {
	return func(m *Manager) { m.config.CleanupInterval = interval }
}
