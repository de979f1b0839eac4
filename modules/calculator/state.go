package calculator

import (
	"context"
	"errors"
	"net/http"

	calc "github.com/dmitrymomot/calcdesk/pkg/calculator"
	"github.com/dmitrymomot/calcdesk/pkg/session"
)

// SessionKey is the session data key holding the calculator snapshot.
const SessionKey = "calculator"

// sessionState stores the desk snapshot in the request's session. Load
// re-reads the session from the store so an event always starts from the
// state the previous event saved, even across tabs.
type sessionState struct {
	mgr  *session.Manager
	sess *session.Session
	w    http.ResponseWriter
}

func (s *sessionState) Load(ctx context.Context) (calc.State, bool, error) {
	fresh, err := s.mgr.Store().Get(ctx, s.sess.Token)
	switch {
	case err == nil:
		s.sess = fresh
	case errors.Is(err, session.ErrStoreUnavailable):
		return calc.State{}, false, err
	}

	var st calc.State
	ok, err := s.sess.Decode(SessionKey, &st)
	if err != nil || !ok {
		return calc.State{}, false, nil
	}
	return st, true, nil
}

func (s *sessionState) Save(ctx context.Context, st calc.State) error {
	if err := s.sess.Encode(SessionKey, st); err != nil {
		return err
	}
	return s.mgr.Save(ctx, s.w, s.sess)
}
