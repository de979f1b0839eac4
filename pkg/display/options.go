package display

import (
	"log/slog"
	"time"
)

const (
	// DefaultPressDuration is how long a pressed button stays highlighted.
	DefaultPressDuration = 200 * time.Millisecond
	// DefaultPulseDuration is how long the display stays in Updated mode.
	DefaultPulseDuration = 300 * time.Millisecond
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for mode transitions. Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// WithPressDuration overrides DefaultPressDuration.
func WithPressDuration(d time.Duration) Option {
	if d <= 0 {
		panic("WithPressDuration: duration must be > 0")
	}
	return func(r *Renderer) { r.pressDuration = d }
}

// WithPulseDuration overrides DefaultPulseDuration.
func WithPulseDuration(d time.Duration) Option {
	if d <= 0 {
		panic("WithPulseDuration: duration must be > 0")
	}
	return func(r *Renderer) { r.pulseDuration = d }
}
