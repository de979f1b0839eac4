package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/calcdesk/pkg/calculator"
	"github.com/dmitrymomot/calcdesk/pkg/session"
)

func TestSession_EncodeDecode(t *testing.T) {
	t.Parallel()

	s := session.NewSession("token", time.Hour)
	assert.False(t, s.IsExpired())

	state := calculator.State{Previous: "1,234", Current: "5", Operation: calculator.Add}
	require.NoError(t, s.Encode("calculator", state))

	var got calculator.State
	found, err := s.Decode("calculator", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, state, got)

	found, err = s.Decode("missing", &got)
	require.NoError(t, err)
	assert.False(t, found)

	s.Data["broken"] = []byte("{")
	_, err = s.Decode("broken", &got)
	assert.ErrorIs(t, err, session.ErrDecodeValue)

	err = s.Encode("func", func() {})
	assert.ErrorIs(t, err, session.ErrEncodeValue)

	s.Delete("calculator")
	found, _ = s.Decode("calculator", &got)
	assert.False(t, found)
}

func TestSession_Expiry(t *testing.T) {
	t.Parallel()

	s := session.NewSession("token", -time.Second)
	assert.True(t, s.IsExpired())

	before := s.LastActivityAt
	time.Sleep(time.Millisecond)
	s.Touch()
	assert.True(t, s.LastActivityAt.After(before))

	var nilSession *session.Session
	assert.False(t, nilSession.IsExpired())
	assert.ErrorIs(t, nilSession.Encode("k", 1), session.ErrInvalidSession)
}
