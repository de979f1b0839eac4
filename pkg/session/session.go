package session

import (
	"encoding/json"
	"errors"
	"maps"
	"time"

	"github.com/google/uuid"
)

// Session is an anonymous browser session. Values are stored as JSON so
// every Store keeps the same representation.
type Session struct {
	ID             uuid.UUID                  `json:"id"`
	Token          string                     `json:"token"`
	Data           map[string]json.RawMessage `json:"data,omitempty"`
	ExpiresAt      time.Time                  `json:"expires_at"`
	LastActivityAt time.Time                  `json:"last_activity_at"`
	CreatedAt      time.Time                  `json:"created_at"`
}

// NewSession creates a session that expires after ttl.
func NewSession(token string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:             uuid.New(),
		Token:          token,
		Data:           make(map[string]json.RawMessage),
		ExpiresAt:      now.Add(ttl),
		LastActivityAt: now,
		CreatedAt:      now,
	}
}

func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

// Encode stores v under key.
func (s *Session) Encode(key string, v any) error {
	if s == nil {
		return ErrInvalidSession
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Join(ErrEncodeValue, err)
	}
	if s.Data == nil {
		s.Data = make(map[string]json.RawMessage)
	}
	s.Data[key] = raw
	return nil
}

// Decode loads the value under key into v. It reports false when the key
// is absent.
func (s *Session) Decode(key string, v any) (bool, error) {
	if s == nil {
		return false, nil
	}
	raw, ok := s.Data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, errors.Join(ErrDecodeValue, err)
	}
	return true, nil
}

func (s *Session) Delete(key string) {
	if s != nil {
		delete(s.Data, key)
	}
}

func (s *Session) Touch() {
	if s != nil {
		s.LastActivityAt = time.Now()
	}
}

// clone copies s so stores never share the Data map with callers.
func (s *Session) clone() *Session {
	c := *s
	c.Data = maps.Clone(s.Data)
	return &c
}
