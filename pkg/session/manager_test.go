package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/calcdesk/pkg/session"
)

func newManager(t *testing.T, opts ...session.Option) *session.Manager {
	t.Helper()
	m := session.New(append([]session.Option{
		session.WithCookieName("test-sid"),
		session.WithCleanupInterval(0),
	}, opts...)...)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func withCookies(r *http.Request, rec *httptest.ResponseRecorder) *http.Request {
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestManager_Ensure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates a session and sets the cookie", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		rec := httptest.NewRecorder()

		s, err := m.Ensure(ctx, rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.NotEmpty(t, s.Token)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "test-sid", cookies[0].Name)
		assert.Equal(t, s.Token, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	})

	t.Run("returns the existing session", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		rec := httptest.NewRecorder()
		first, err := m.Ensure(ctx, rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)

		second, err := m.Ensure(ctx, httptest.NewRecorder(), withCookies(httptest.NewRequest(http.MethodGet, "/", nil), rec))
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("replaces a forged token", func(t *testing.T) {
		t.Parallel()
		m := newManager(t)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "test-sid", Value: "not-a-uuid"})

		s, err := m.Ensure(ctx, httptest.NewRecorder(), r)
		require.NoError(t, err)
		assert.NotEqual(t, "not-a-uuid", s.Token)
	})
}

func TestManager_Save(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := newManager(t, session.WithTimeouts(time.Minute, time.Hour))

	rec := httptest.NewRecorder()
	s, err := m.Ensure(ctx, rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	require.NoError(t, s.Encode("current", "42"))
	require.NoError(t, m.Save(ctx, nil, s))

	got, err := m.Get(ctx, withCookies(httptest.NewRequest(http.MethodGet, "/", nil), rec))
	require.NoError(t, err)
	var current string
	found, err := got.Decode("current", &current)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "42", current)
	assert.WithinDuration(t, time.Now().Add(time.Minute), got.ExpiresAt, 5*time.Second)

	refresh := httptest.NewRecorder()
	require.NoError(t, m.Save(ctx, refresh, got))
	assert.Len(t, refresh.Result().Cookies(), 1)

	assert.ErrorIs(t, m.Save(ctx, nil, nil), session.ErrInvalidSession)
}

func TestManager_MaxLifetime(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := newManager(t, session.WithTimeouts(time.Hour, time.Minute))

	s, err := m.Ensure(ctx, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.WithinDuration(t, s.CreatedAt.Add(time.Minute), s.ExpiresAt, time.Second)
}

func TestManager_Destroy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := newManager(t)

	rec := httptest.NewRecorder()
	_, err := m.Ensure(ctx, rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	out := httptest.NewRecorder()
	require.NoError(t, m.Destroy(ctx, out, withCookies(httptest.NewRequest(http.MethodPost, "/", nil), rec)))
	cookies := out.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Negative(t, cookies[0].MaxAge)

	_, err = m.Get(ctx, withCookies(httptest.NewRequest(http.MethodGet, "/", nil), rec))
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestManager_Middleware(t *testing.T) {
	t.Parallel()
	m := newManager(t)

	var seen *session.Session
	h := m.EnsureSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = session.FromContext(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotNil(t, seen)
	first := seen.ID

	seen = nil
	plain := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = session.FromContext(r.Context())
	}))
	plain.ServeHTTP(httptest.NewRecorder(), withCookies(httptest.NewRequest(http.MethodGet, "/", nil), rec))
	require.NotNil(t, seen)
	assert.Equal(t, first, seen.ID)

	seen = nil
	plain.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, seen)
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()
	s := session.NewSession("token", time.Hour)
	attr, ok := session.LoggerExtractor()(session.WithSession(context.Background(), s))
	require.True(t, ok)
	assert.Equal(t, "session_id", attr.Key)
	assert.Equal(t, s.ID.String(), attr.Value.String())

	_, ok = session.LoggerExtractor()(context.Background())
	assert.False(t, ok)
}
