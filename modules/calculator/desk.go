package calculator

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/calcdesk/pkg/broadcast"
	calc "github.com/dmitrymomot/calcdesk/pkg/calculator"
	"github.com/dmitrymomot/calcdesk/pkg/display"
	"github.com/dmitrymomot/calcdesk/pkg/keypad"
	"github.com/dmitrymomot/calcdesk/pkg/logger"
)

// StateStore loads and saves the calculator snapshot behind a desk.
type StateStore interface {
	// Load returns the stored snapshot; ok is false when none exists yet.
	Load(ctx context.Context) (s calc.State, ok bool, err error)
	Save(ctx context.Context, s calc.State) error
}

// Desk is one browser session's calculator: the state machine, its renderer
// and the frame broadcaster feeding every open stream. Input events are
// serialized by the desk mutex.
type Desk struct {
	mu       sync.Mutex
	calc     *calc.Calculator
	renderer *display.Renderer
	frames   *broadcast.MemoryBroadcaster[display.Frame]
	log      *slog.Logger
	closed   bool

	lastUsed atomic.Int64
}

func newDesk(cfg Config, tag language.Tag, log *slog.Logger) *Desk {
	d := &Desk{
		frames: broadcast.NewMemoryBroadcaster[display.Frame](cfg.StreamBuffer),
		log:    log,
	}
	d.renderer = display.New(d.publish, display.WithLogger(log))
	d.calc = calc.New(
		calc.WithLanguage(tag),
		calc.WithErrorDuration(cfg.ErrorDuration),
		calc.WithErrorHandler(d.renderer.Fail),
		calc.WithResultHandler(func(string) { d.renderer.Pulse() }),
	)
	d.touch()
	return d
}

// Open syncs the desk with the store and publishes the current frame.
func (d *Desk) Open(ctx context.Context, store StateStore) (display.Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return display.Frame{}, ErrDeskClosed
	}
	d.touch()

	if err := d.sync(ctx, store); err != nil {
		return display.Frame{}, err
	}
	d.renderer.Show(d.calc.Display())
	return d.renderer.Frame(), nil
}

// Press runs one input event to completion: cancel pending effects, make
// exactly one calculator call, publish the new frame and store the state.
func (d *Desk) Press(ctx context.Context, a keypad.Action, store StateStore) (display.Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return display.Frame{}, ErrDeskClosed
	}
	d.touch()

	if err := d.sync(ctx, store); err != nil {
		return display.Frame{}, err
	}

	d.renderer.Begin(a)
	keypad.Dispatch(d.calc, a)
	d.renderer.Show(d.calc.Display())

	d.log.DebugContext(ctx, "input event",
		logger.Component("desk"),
		logger.Action(string(a)),
		logger.Phase(string(d.calc.Phase())),
		logger.Error(d.calc.LastError()),
	)

	if store != nil {
		if err := store.Save(ctx, d.calc.State()); err != nil {
			return d.renderer.Frame(), err
		}
	}
	return d.renderer.Frame(), nil
}

// Snapshot syncs the desk with the store and returns the current frame and
// calculator phase without publishing anything.
func (d *Desk) Snapshot(ctx context.Context, store StateStore) (display.Frame, calc.Phase, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return display.Frame{}, "", ErrDeskClosed
	}

	if err := d.sync(ctx, store); err != nil {
		return display.Frame{}, "", err
	}
	f := d.renderer.Frame()
	if f.Mode != display.Error {
		v := d.calc.Display()
		f.Previous, f.Current = v.Previous, v.Current
	}
	return f, d.calc.Phase(), nil
}

// Subscribe streams frames until ctx is done. The latest frame is replayed
// first.
func (d *Desk) Subscribe(ctx context.Context) broadcast.Subscriber[display.Frame] {
	d.touch()
	return d.frames.Subscribe(ctx)
}

// Close stops the renderer timers and ends every stream. Later calls to
// Open, Press and Snapshot return ErrDeskClosed.
func (d *Desk) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	d.renderer.Close()
	_ = d.frames.Close()
}

// sync must be called with d.mu held.
func (d *Desk) sync(ctx context.Context, store StateStore) error {
	if store == nil {
		return nil
	}
	s, ok, err := store.Load(ctx)
	if err != nil || !ok || s == d.calc.State() {
		return err
	}
	if err := d.calc.Restore(s); err != nil {
		d.log.WarnContext(ctx, "ignoring stored calculator state",
			logger.Component("desk"),
			logger.Error(err),
		)
	}
	return nil
}

// publish runs under the renderer lock; Broadcast never blocks.
func (d *Desk) publish(f display.Frame) {
	_ = d.frames.Broadcast(context.Background(), broadcast.Message[display.Frame]{Data: f})
}

func (d *Desk) touch() {
	d.lastUsed.Store(time.Now().UnixNano())
}

func (d *Desk) idle(now time.Time, timeout time.Duration) bool {
	return d.frames.Len() == 0 && now.Sub(time.Unix(0, d.lastUsed.Load())) > timeout
}
