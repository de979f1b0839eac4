package ratelimiter

import (
	"net/http"
	"strconv"
	"time"
)

// Config defines the token bucket. A zero Capacity disables limiting in
// callers that check Enabled.
type Config struct {
	// Capacity is the burst size.
	Capacity int `env:"PRESS_RATE_CAPACITY" envDefault:"30"`
	// RefillRate tokens are added every RefillInterval.
	RefillRate     int           `env:"PRESS_RATE_REFILL" envDefault:"15"`
	RefillInterval time.Duration `env:"PRESS_RATE_INTERVAL" envDefault:"1s"`
}

// Enabled reports whether c asks for limiting at all.
func (c Config) Enabled() bool {
	return c.Capacity > 0
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return ErrInvalidConfig
	case c.RefillRate <= 0:
		return ErrInvalidConfig
	case c.RefillInterval <= 0:
		return ErrInvalidConfig
	}
	return nil
}

// Result is the outcome of one check.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allowed reports whether the tokens were available.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before the next attempt, or 0 when
// the request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(time.Until(r.ResetAt), 0)
}

// SetHeaders writes the X-RateLimit-* headers, plus Retry-After when the
// request was denied.
func SetHeaders(h http.Header, r *Result) {
	h.Set("X-RateLimit-Limit", strconv.Itoa(r.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, r.Remaining)))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(r.ResetAt.Unix(), 10))
	if !r.Allowed() {
		// Round up so clients never retry early.
		secs := int((r.RetryAfter() + time.Second - 1) / time.Second)
		h.Set("Retry-After", strconv.Itoa(max(secs, 1)))
	}
}
