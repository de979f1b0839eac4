package session

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/calcdesk/pkg/logger"
)

type sessionContextKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(*Session)
	return s, ok && s != nil
}

// LoggerExtractor adds session_id (the session's public ID, never its
// token) to records logged with a request context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if s, ok := FromContext(ctx); ok {
			return logger.SessionID(s.ID.String()), true
		}
		return slog.Attr{}, false
	}
}
