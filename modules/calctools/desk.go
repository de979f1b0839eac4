package calctools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"

	calc "github.com/dmitrymomot/calcdesk/pkg/calculator"
	"github.com/dmitrymomot/calcdesk/pkg/display"
	"github.com/dmitrymomot/calcdesk/pkg/keypad"
	"github.com/dmitrymomot/calcdesk/pkg/logger"
)

// Desk is the calculator shared by all tool calls of one server process.
type Desk struct {
	mu       sync.Mutex
	calc     *calc.Calculator
	renderer *display.Renderer
	log      *slog.Logger

	lang          language.Tag
	errorDuration time.Duration
}

// NewDesk creates a desk showing "0".
func NewDesk(opts ...Option) *Desk {
	d := &Desk{
		log:           slog.New(slog.DiscardHandler),
		lang:          language.English,
		errorDuration: calc.DefaultErrorDuration,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.renderer = display.New(nil, display.WithLogger(d.log))
	d.calc = calc.New(
		calc.WithLanguage(d.lang),
		calc.WithErrorDuration(d.errorDuration),
		calc.WithErrorHandler(d.renderer.Fail),
		calc.WithResultHandler(func(string) { d.renderer.Pulse() }),
	)
	return d
}

// Press parses keys and applies them in order. Keys are keyboard names
// ("7", "+", "Enter", "Escape") or action identifiers ("digit-7", "add").
// Nothing is applied when any key is unknown.
func (d *Desk) Press(ctx context.Context, keys string) (display.Frame, error) {
	f, _, err := d.press(ctx, keys)
	return f, err
}

// press is Press that also returns the calculator rows read under the
// same lock, since an error frame replaces the current operand.
func (d *Desk) press(ctx context.Context, keys string) (display.Frame, calc.Display, error) {
	actions, err := parseKeys(keys)
	if err != nil {
		return display.Frame{}, calc.Display{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, a := range actions {
		d.renderer.Begin(a)
		keypad.Dispatch(d.calc, a)
		d.renderer.Show(d.calc.Display())
	}
	d.log.DebugContext(ctx, "keys pressed",
		logger.Component("calctools"),
		slog.Int("count", len(actions)),
		logger.Phase(string(d.calc.Phase())),
		logger.Error(d.calc.LastError()),
	)
	return d.renderer.Frame(), d.calc.Display(), nil
}

// Frame returns what the display shows right now.
func (d *Desk) Frame() display.Frame {
	f, _ := d.snapshot()
	return f
}

func (d *Desk) snapshot() (display.Frame, calc.Display) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.renderer.Frame(), d.calc.Display()
}

// Close stops the renderer timers.
func (d *Desk) Close() {
	d.renderer.Close()
}

func parseKeys(keys string) ([]keypad.Action, error) {
	fields := strings.Fields(keys)
	if len(fields) == 0 {
		return nil, ErrNoKeys
	}
	actions := make([]keypad.Action, 0, len(fields))
	for _, f := range fields {
		a, ok := keypad.Parse(f)
		if !ok {
			return nil, errors.Join(ErrUnknownKey, fmt.Errorf("%q", f))
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// formatFrame renders the display rows as tool output. While f shows an
// error the current row still reports the operand the calculator holds.
func formatFrame(f display.Frame, v calc.Display) string {
	current := f.Current
	if f.Mode == display.Error {
		current = v.Current
	}

	var b strings.Builder
	fmt.Fprintf(&b, "previous: %s\ncurrent: %s", f.Previous, current)
	if f.Mode == display.Error {
		fmt.Fprintf(&b, "\nerror: %s", f.Current)
	}
	return b.String()
}
