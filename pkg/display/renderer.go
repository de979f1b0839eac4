package display

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/calcdesk/pkg/calculator"
	"github.com/dmitrymomot/calcdesk/pkg/keypad"
	"github.com/dmitrymomot/calcdesk/pkg/logger"
	"github.com/dmitrymomot/calcdesk/pkg/statemachine"
)

// Mode is the visual mode of the display.
type Mode string

const (
	// Steady shows the projection without effects.
	Steady Mode = "steady"
	// Updated pulses the display after a successful computation.
	Updated Mode = "updated"
	// Error shows a transient message in place of the current row.
	Error Mode = "error"
)

type trigger string

const (
	triggerInput   trigger = "input"
	triggerCompute trigger = "compute"
	triggerFail    trigger = "fail"
	triggerSettle  trigger = "settle"
)

// Frame is what a view paints: the two display rows plus cosmetic flags.
type Frame struct {
	Previous string        `json:"previous"`
	Current  string        `json:"current"`
	Mode     Mode          `json:"mode"`
	Pressed  keypad.Action `json:"pressed,omitempty"`
	Seq      uint64        `json:"seq"`
}

// Publisher receives every frame the renderer produces. It must not block.
type Publisher func(Frame)

// Renderer owns the transient visual effects of one display. Effects are
// timers that revert automatically and are cancelled by the next input event.
// Renderer never touches calculator state.
type Renderer struct {
	mu      sync.Mutex
	mode    *statemachine.Machine[Mode, trigger]
	publish Publisher
	log     *slog.Logger

	pressDuration time.Duration
	pulseDuration time.Duration

	view    calculator.Display
	message string
	pressed keypad.Action
	seq     uint64
	closed  bool

	// gen invalidates mode timers that were cancelled after they fired.
	gen        uint64
	modeTimer  *time.Timer
	pressGen   uint64
	pressTimer *time.Timer
}

// New creates a renderer showing the initial calculator display.
func New(publish Publisher, opts ...Option) *Renderer {
	r := &Renderer{
		publish:       publish,
		log:           slog.New(slog.DiscardHandler),
		pressDuration: DefaultPressDuration,
		pulseDuration: DefaultPulseDuration,
		view:          calculator.Display{Current: "0"},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.publish == nil {
		r.publish = func(Frame) {}
	}

	all := []Mode{Steady, Updated, Error}
	r.mode = statemachine.MustNew(Steady,
		statemachine.WithTransitionFrom[Mode, trigger](all, Steady, triggerInput),
		statemachine.WithTransitionFrom[Mode, trigger](all, Updated, triggerCompute),
		statemachine.WithTransitionFrom[Mode, trigger](all, Error, triggerFail),
		statemachine.WithTransitionFrom([]Mode{Updated, Error}, Steady, triggerSettle,
			statemachine.WithGuard(r.currentGeneration),
		),
		statemachine.WithHook(func(from, to Mode, t trigger) {
			r.log.Debug("display mode changed",
				logger.Component("display"),
				slog.String("from", string(from)),
				slog.String("to", string(to)),
				logger.Event(string(t)),
			)
		}),
	)
	return r
}

// Begin marks the start of an input event: pending mode effects are
// cancelled and the pressed button is highlighted for a short time.
func (r *Renderer) Begin(a keypad.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	r.cancelMode()
	_ = r.mode.Fire(context.Background(), triggerInput, nil)
	r.message = ""

	r.pressGen++
	if r.pressTimer != nil {
		r.pressTimer.Stop()
	}
	r.pressed = a
	gen := r.pressGen
	r.pressTimer = time.AfterFunc(r.pressDuration, func() { r.release(gen) })
}

// Fail shows message in place of the current row for d, then reverts.
func (r *Renderer) Fail(message string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	r.cancelMode()
	_ = r.mode.Fire(context.Background(), triggerFail, nil)
	r.message = message
	r.scheduleSettle(d)
}

// Pulse flags the display as updated for the pulse duration.
func (r *Renderer) Pulse() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	r.cancelMode()
	_ = r.mode.Fire(context.Background(), triggerCompute, nil)
	r.scheduleSettle(r.pulseDuration)
}

// Show replaces the projected rows and publishes a frame.
func (r *Renderer) Show(d calculator.Display) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	r.view = d
	r.emit()
}

// Frame returns the most recently published frame state without publishing it.
func (r *Renderer) Frame() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame()
}

// Mode returns the current visual mode.
func (r *Renderer) Mode() Mode {
	return r.mode.Current()
}

// Close stops all pending effects. Later calls are no-ops.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	r.cancelMode()
	if r.pressTimer != nil {
		r.pressTimer.Stop()
	}
}

// emit must be called with r.mu held.
func (r *Renderer) emit() {
	r.seq++
	r.publish(r.frame())
}

// frame must be called with r.mu held.
func (r *Renderer) frame() Frame {
	f := Frame{
		Previous: r.view.Previous,
		Current:  r.view.Current,
		Mode:     r.mode.Current(),
		Pressed:  r.pressed,
		Seq:      r.seq,
	}
	if f.Mode == Error {
		f.Current = r.message
	}
	return f
}

// cancelMode must be called with r.mu held.
func (r *Renderer) cancelMode() {
	r.gen++
	if r.modeTimer != nil {
		r.modeTimer.Stop()
		r.modeTimer = nil
	}
}

// scheduleSettle must be called with r.mu held.
func (r *Renderer) scheduleSettle(d time.Duration) {
	gen := r.gen
	r.modeTimer = time.AfterFunc(d, func() { r.settle(gen) })
}

func (r *Renderer) settle(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	// A stale generation is rejected by the guard.
	if err := r.mode.Fire(context.Background(), triggerSettle, gen); err != nil {
		return
	}
	r.message = ""
	r.modeTimer = nil
	r.emit()
}

func (r *Renderer) release(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || gen != r.pressGen {
		return
	}

	r.pressed = ""
	r.emit()
}

// currentGeneration is a settle guard; it runs inside Fire with r.mu held.
func (r *Renderer) currentGeneration(_ context.Context, _ Mode, _ trigger, data any) bool {
	gen, ok := data.(uint64)
	return ok && gen == r.gen
}
