package calculator_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/calcdesk/modules/calculator"
	calc "github.com/dmitrymomot/calcdesk/pkg/calculator"
	"github.com/dmitrymomot/calcdesk/pkg/display"
	"github.com/dmitrymomot/calcdesk/pkg/keypad"
)

// memState is an in-memory StateStore.
type memState struct {
	mu      sync.Mutex
	state   calc.State
	ok      bool
	saves   int
	loadErr error
}

func (m *memState) Load(context.Context) (calc.State, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.ok, m.loadErr
}

func (m *memState) Save(_ context.Context, s calc.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state, m.ok = s, true
	m.saves++
	return nil
}

func newRegistry(t *testing.T, mutate ...func(*calculator.Config)) *calculator.Registry {
	t.Helper()
	cfg := calculator.DefaultConfig()
	for _, fn := range mutate {
		fn(&cfg)
	}
	r, err := calculator.NewRegistry(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func pressAll(t *testing.T, d *calculator.Desk, st calculator.StateStore, actions ...keypad.Action) display.Frame {
	t.Helper()
	var f display.Frame
	for _, a := range actions {
		var err error
		f, err = d.Press(context.Background(), a, st)
		require.NoError(t, err)
	}
	return f
}

func TestDesk_Press(t *testing.T) {
	t.Parallel()

	t.Run("chains and saves every event", func(t *testing.T) {
		t.Parallel()
		desk, err := newRegistry(t).Desk("a")
		require.NoError(t, err)
		st := &memState{}

		f := pressAll(t, desk, st, keypad.Digit1, keypad.Digit2, keypad.Add, keypad.Digit3, keypad.Add)
		assert.Equal(t, "15 +", f.Previous)
		assert.Equal(t, "", f.Current)
		assert.Equal(t, 5, st.saves)
		assert.Equal(t, calc.State{Previous: "15", Operation: calc.Add, ResetScreen: true}, st.state)
	})

	t.Run("divide by zero shows the error frame", func(t *testing.T) {
		t.Parallel()
		desk, err := newRegistry(t).Desk("a")
		require.NoError(t, err)
		st := &memState{}

		f := pressAll(t, desk, st, keypad.Digit5, keypad.Divide, keypad.Digit0, keypad.Equals)
		assert.Equal(t, display.Error, f.Mode)
		assert.Equal(t, calc.DivideByZeroMessage, f.Current)
		assert.Equal(t, "5 ÷", f.Previous)
		assert.Equal(t, calc.State{Previous: "5", Current: "0", Operation: calc.Divide}, st.state)
	})

	t.Run("error reverts after the configured duration", func(t *testing.T) {
		t.Parallel()
		desk, err := newRegistry(t, func(c *calculator.Config) { c.ErrorDuration = 20 * time.Millisecond }).Desk("a")
		require.NoError(t, err)

		pressAll(t, desk, nil, keypad.Digit5, keypad.Divide, keypad.Digit0, keypad.Equals)
		require.Eventually(t, func() bool {
			f, _, err := desk.Snapshot(context.Background(), nil)
			return err == nil && f.Mode == display.Steady && f.Current == "0"
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("restores stored state first", func(t *testing.T) {
		t.Parallel()
		desk, err := newRegistry(t).Desk("a")
		require.NoError(t, err)
		st := &memState{state: calc.State{Previous: "7", Current: "3", Operation: calc.Multiply}, ok: true}

		f := pressAll(t, desk, st, keypad.Equals)
		assert.Equal(t, "21", f.Current)
		assert.Equal(t, "", f.Previous)
	})

	t.Run("invalid stored state is ignored", func(t *testing.T) {
		t.Parallel()
		desk, err := newRegistry(t).Desk("a")
		require.NoError(t, err)
		st := &memState{state: calc.State{Current: "1.2.3"}, ok: true}

		f := pressAll(t, desk, st, keypad.Digit4)
		assert.Equal(t, "4", f.Current)
	})

	t.Run("load errors abort the event", func(t *testing.T) {
		t.Parallel()
		desk, err := newRegistry(t).Desk("a")
		require.NoError(t, err)
		boom := errors.New("store down")

		_, err = desk.Press(context.Background(), keypad.Digit1, &memState{loadErr: boom})
		require.ErrorIs(t, err, boom)

		f, _, err := desk.Snapshot(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, "0", f.Current)
	})
}

func TestDesk_Subscribe(t *testing.T) {
	t.Parallel()

	desk, err := newRegistry(t).Desk("a")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := desk.Subscribe(ctx)

	pressAll(t, desk, nil, keypad.Digit9)

	select {
	case msg := <-sub.Receive(ctx):
		assert.Equal(t, "9", msg.Data.Current)
		assert.Equal(t, keypad.Digit9, msg.Data.Pressed)
	case <-time.After(time.Second):
		t.Fatal("no frame")
	}

	// A late subscriber gets the latest frame.
	late := desk.Subscribe(ctx)
	select {
	case msg := <-late.Receive(ctx):
		assert.Equal(t, "9", msg.Data.Current)
	case <-time.After(time.Second):
		t.Fatal("no replay")
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("one desk per id", func(t *testing.T) {
		t.Parallel()
		r := newRegistry(t)
		a1, err := r.Desk("a")
		require.NoError(t, err)
		a2, err := r.Desk("a")
		require.NoError(t, err)
		b, err := r.Desk("b")
		require.NoError(t, err)

		assert.Same(t, a1, a2)
		assert.NotSame(t, a1, b)
		assert.Equal(t, 2, r.Len())

		r.Remove("a")
		assert.Equal(t, 1, r.Len())
	})

	t.Run("sweep keeps desks with streams", func(t *testing.T) {
		t.Parallel()
		r := newRegistry(t, func(c *calculator.Config) { c.DeskIdleTimeout = time.Minute })
		busy, err := r.Desk("busy")
		require.NoError(t, err)
		_, err = r.Desk("idle")
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		busy.Subscribe(ctx)

		assert.Zero(t, r.Sweep(time.Now()))
		assert.Equal(t, 1, r.Sweep(time.Now().Add(2*time.Minute)))
		assert.Equal(t, 1, r.Len())
	})

	t.Run("removed desk reports closed", func(t *testing.T) {
		t.Parallel()
		r := newRegistry(t)
		st := &memState{}
		d, err := r.Desk("a")
		require.NoError(t, err)
		pressAll(t, d, st, keypad.Digit7)

		r.Remove("a")
		_, err = d.Press(context.Background(), keypad.Digit8, st)
		assert.ErrorIs(t, err, calculator.ErrDeskClosed)
		_, _, err = d.Snapshot(context.Background(), st)
		assert.ErrorIs(t, err, calculator.ErrDeskClosed)
		_, err = d.Open(context.Background(), st)
		assert.ErrorIs(t, err, calculator.ErrDeskClosed)
		assert.Equal(t, 1, st.saves)

		fresh, err := r.Desk("a")
		require.NoError(t, err)
		assert.NotSame(t, d, fresh)
		f, _, err := fresh.Snapshot(context.Background(), st)
		require.NoError(t, err)
		assert.Equal(t, "7", f.Current)
	})

	t.Run("closed registry", func(t *testing.T) {
		t.Parallel()
		r := newRegistry(t)
		d, err := r.Desk("a")
		require.NoError(t, err)
		sub := d.Subscribe(context.Background())

		require.NoError(t, r.Close())
		require.NoError(t, r.Close())

		_, ok := <-sub.Receive(context.Background())
		assert.False(t, ok)
		_, err = r.Desk("a")
		assert.ErrorIs(t, err, calculator.ErrDeskClosed)
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()
		tests := map[string]func(*calculator.Config){
			"bad tag":            func(c *calculator.Config) { c.Language = "not a tag!" },
			"dot grouping":       func(c *calculator.Config) { c.Language = "de" },
			"zero error display": func(c *calculator.Config) { c.ErrorDuration = 0 },
		}
		for name, mutate := range tests {
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				cfg := calculator.DefaultConfig()
				mutate(&cfg)
				_, err := calculator.NewRegistry(cfg, nil)
				assert.ErrorIs(t, err, calculator.ErrInvalidConfig)
			})
		}
	})
}

func TestPressRequest_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  calculator.PressRequest
		want keypad.Action
		ok   bool
	}{
		{"digit button", calculator.PressRequest{Number: "7"}, keypad.Digit7, true},
		{"decimal button", calculator.PressRequest{Number: "."}, keypad.Decimal, true},
		{"action button", calculator.PressRequest{Action: "divide"}, keypad.Divide, true},
		{"keyboard enter", calculator.PressRequest{Key: "Enter"}, keypad.Equals, true},
		{"keyboard star", calculator.PressRequest{Key: "*"}, keypad.Multiply, true},
		{"button wins over key", calculator.PressRequest{Key: "1", Number: "2"}, keypad.Digit2, true},
		{"unmapped key", calculator.PressRequest{Key: "Shift"}, "", false},
		{"unknown action", calculator.PressRequest{Action: "sqrt"}, "", false},
		{"empty", calculator.PressRequest{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := tt.req.Resolve()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
