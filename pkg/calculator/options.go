package calculator

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

const (
	// DivideByZeroMessage is shown to the user when a division by zero is attempted.
	DivideByZeroMessage = "Cannot divide by zero"

	// DefaultErrorDuration is how long the error message stays on the display.
	DefaultErrorDuration = 1500 * time.Millisecond
)

// ErrorHandler receives a user-facing error message and how long to show it.
type ErrorHandler func(message string, duration time.Duration)

// ResultHandler receives the formatted result of a successful computation.
type ResultHandler func(result string)

// Option configures a Calculator.
type Option func(*Calculator)

// WithErrorHandler registers the receiver of the divide-by-zero signal.
// Nil handlers are ignored.
func WithErrorHandler(h ErrorHandler) Option {
	return func(c *Calculator) {
		if h != nil {
			c.onError = h
		}
	}
}

// WithResultHandler registers the receiver of successful computation results.
// Nil handlers are ignored.
func WithResultHandler(h ResultHandler) Option {
	return func(c *Calculator) {
		if h != nil {
			c.onResult = h
		}
	}
}

// WithErrorDuration overrides DefaultErrorDuration.
func WithErrorDuration(d time.Duration) Option {
	if d <= 0 {
		panic("WithErrorDuration: duration must be > 0")
	}
	return func(c *Calculator) { c.errorDuration = d }
}

// WithLanguage selects the locale used for thousands grouping.
// Panics for locales that group with '.', since the decimal point is fixed.
func WithLanguage(tag language.Tag) Option {
	f, err := newFormatter(tag)
	if err != nil {
		panic(fmt.Errorf("WithLanguage %q: %w", tag, err))
	}
	return func(c *Calculator) { c.numfmt = f }
}

// CheckLanguage reports whether tag can be passed to WithLanguage.
func CheckLanguage(tag language.Tag) error {
	_, err := newFormatter(tag)
	return err
}

// WithState starts the calculator from a previously captured snapshot.
// Invalid snapshots are ignored and the calculator starts cleared.
func WithState(s State) Option {
	return func(c *Calculator) {
		_ = c.Restore(s)
	}
}
