package calculator

import (
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// Calculator holds the state of one two-operand calculation.
// It is not safe for concurrent use; callers serialize input events.
type Calculator struct {
	state         State
	numfmt        formatter
	onError       ErrorHandler
	onResult      ResultHandler
	errorDuration time.Duration
	lastErr       error
}

// New creates a calculator in its initial state.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		state:         InitialState(),
		numfmt:        defaultFormatter,
		errorDuration: DefaultErrorDuration,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AppendDigit adds a digit or decimal point to the current operand.
// The first digit after a result replaces the result, a second decimal point
// is ignored and a lone "0" is replaced rather than prefixed.
func (c *Calculator) AppendDigit(d rune) {
	if d != '.' && (d < '0' || d > '9') {
		c.lastErr = ErrInvalidOperand
		return
	}
	c.lastErr = nil

	if c.state.ResetScreen {
		c.state.Current = ""
		c.state.ResetScreen = false
	}

	if d == '.' && strings.Contains(c.state.Current, ".") {
		c.lastErr = ErrInvalidOperand
		return
	}

	if c.state.Current == "0" && d != '.' {
		c.state.Current = string(d)
		return
	}
	c.state.Current += string(d)
}

// ChooseOperation selects the pending operator. A pending calculation is
// computed first, so "3 + 4 ×" continues from 7.
func (c *Calculator) ChooseOperation(op Operation) {
	if !op.Valid() {
		c.lastErr = ErrInvalidOperation
		return
	}
	if c.state.Current == "" {
		c.lastErr = ErrInvalidOperand
		return
	}

	var err error
	if c.state.Previous != "" {
		err = c.compute()
	}

	c.state.Operation = op
	c.state.Previous = c.state.Current
	c.state.Current = ""
	c.lastErr = err
}

// Compute applies the pending operator to the previous and current operands.
// Dividing by zero emits the error signal and leaves the state untouched.
func (c *Calculator) Compute() {
	c.lastErr = c.compute()
}

func (c *Calculator) compute() error {
	if c.state.Operation == None {
		return ErrNoPendingOperator
	}

	prev, err := c.numfmt.parse(c.state.Previous)
	if err != nil {
		return err
	}
	cur, err := c.numfmt.parse(c.state.Current)
	if err != nil {
		return err
	}

	result, err := c.state.Operation.apply(prev, cur)
	if errors.Is(err, ErrDivideByZero) {
		if c.onError != nil {
			c.onError(DivideByZeroMessage, c.errorDuration)
		}
		return err
	}
	if err != nil {
		return err
	}

	if math.IsInf(result, 0) || math.IsNaN(result) {
		return ErrOverflow
	}
	formatted := c.numfmt.format(plain(result))

	c.state.Current = formatted
	c.state.Operation = None
	c.state.Previous = ""
	c.state.ResetScreen = true

	if c.onResult != nil {
		c.onResult(formatted)
	}
	return nil
}

// Clear resets the calculator to its initial state.
func (c *Calculator) Clear() {
	c.state = InitialState()
	c.lastErr = nil
}

// Backspace removes the last character of the current operand.
// A single remaining character becomes "0" rather than an empty operand.
func (c *Calculator) Backspace() {
	switch n := utf8.RuneCountInString(c.state.Current); {
	case n == 0:
		c.lastErr = ErrInvalidOperand
	case n == 1:
		c.state.Current = "0"
		c.lastErr = nil
	default:
		_, size := utf8.DecodeLastRuneInString(c.state.Current)
		c.state.Current = c.state.Current[:len(c.state.Current)-size]
		c.lastErr = nil
	}
}

// Percentage divides the current operand by 100 and stores the plain decimal result.
func (c *Calculator) Percentage() {
	v, err := c.numfmt.parse(c.state.Current)
	if err != nil {
		c.lastErr = err
		return
	}
	c.state.Current = plain(v / 100)
	c.lastErr = nil
}

// FormatNumber groups the integer part of raw for display and keeps the
// fractional part as typed: "1234.5" becomes "1,234.5" and "1234." becomes "1,234.".
// An unparsable integer part renders as an empty string.
func (c *Calculator) FormatNumber(raw string) string {
	return c.numfmt.format(raw)
}

// LastError returns the error recorded by the most recent input call, or nil.
// Ignored input leaves the state unchanged and records one of the package sentinels.
func (c *Calculator) LastError() error {
	return c.lastErr
}

// Phase returns the conceptual state of the calculator.
func (c *Calculator) Phase() Phase {
	return c.state.phase()
}

// State returns a snapshot of the calculator fields.
func (c *Calculator) State() State {
	return c.state
}

// Restore replaces the calculator fields with s after validating it.
func (c *Calculator) Restore(s State) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.state = s
	c.lastErr = nil
	return nil
}

// FormatNumber formats raw with the default English grouping.
func FormatNumber(raw string) string {
	return defaultFormatter.format(raw)
}

var defaultFormatter, _ = newFormatter(language.English)
