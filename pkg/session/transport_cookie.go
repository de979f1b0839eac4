package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieTransport keeps the token in an HttpOnly, SameSite=Lax cookie.
// Tokens are random UUIDs; anything else in the cookie is rejected.
type CookieTransport struct {
	name   string
	secure bool
}

var _ Transport = (*CookieTransport)(nil)

func NewCookieTransport(name string, secure bool) *CookieTransport {
	if name == "" {
		panic("session: empty cookie name")
	}
	return &CookieTransport{name: name, secure: secure}
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	c, err := r.Cookie(t.name)
	if err != nil || c.Value == "" {
		return "", ErrSessionNotFound
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return "", ErrInvalidSession
	}
	return c.Value, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
