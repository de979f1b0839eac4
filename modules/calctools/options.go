package calctools

import (
	"log/slog"
	"time"

	"golang.org/x/text/language"

	calc "github.com/dmitrymomot/calcdesk/pkg/calculator"
)

// Option configures a Desk.
type Option func(*Desk)

// WithLogger sets the logger for tool calls.
func WithLogger(log *slog.Logger) Option {
	return func(d *Desk) {
		if log != nil {
			d.log = log
		}
	}
}

// WithLanguage sets the number formatting locale.
// Panics for locales the calculator cannot format.
func WithLanguage(tag language.Tag) Option {
	return func(d *Desk) {
		if err := calc.CheckLanguage(tag); err != nil {
			panic(err)
		}
		d.lang = tag
	}
}

// WithErrorDuration sets how long an error stays on the display.
func WithErrorDuration(dur time.Duration) Option {
	return func(d *Desk) {
		if dur <= 0 {
			panic("calctools: error duration must be positive")
		}
		d.errorDuration = dur
	}
}
