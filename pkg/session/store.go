package session

import "context"

// Store persists sessions by token.
type Store interface {
	Create(ctx context.Context, s *Session) error
	// Get returns ErrSessionNotFound or ErrSessionExpired when the token
	// does not resolve to a live session.
	Get(ctx context.Context, token string) (*Session, error)
	// Update replaces an existing session; ErrSessionNotFound otherwise.
	Update(ctx context.Context, s *Session) error
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
