package keypad

import (
	"strings"

	"github.com/dmitrymomot/calcdesk/pkg/calculator"
)

// Action identifies one calculator input event.
type Action string

const (
	Digit0     Action = "digit-0"
	Digit1     Action = "digit-1"
	Digit2     Action = "digit-2"
	Digit3     Action = "digit-3"
	Digit4     Action = "digit-4"
	Digit5     Action = "digit-5"
	Digit6     Action = "digit-6"
	Digit7     Action = "digit-7"
	Digit8     Action = "digit-8"
	Digit9     Action = "digit-9"
	Decimal    Action = "decimal"
	Add        Action = "add"
	Subtract   Action = "subtract"
	Multiply   Action = "multiply"
	Divide     Action = "divide"
	Equals     Action = "equals"
	Clear      Action = "clear"
	Backspace  Action = "backspace"
	Percentage Action = "percentage"
)

// Target is the set of calculator input methods an action can drive.
type Target interface {
	AppendDigit(d rune)
	ChooseOperation(op calculator.Operation)
	Compute()
	Clear()
	Backspace()
	Percentage()
}

var _ Target = (*calculator.Calculator)(nil)

// keys maps keyboard key names to actions.
var keys = map[string]Action{
	"0":         Digit0,
	"1":         Digit1,
	"2":         Digit2,
	"3":         Digit3,
	"4":         Digit4,
	"5":         Digit5,
	"6":         Digit6,
	"7":         Digit7,
	"8":         Digit8,
	"9":         Digit9,
	".":         Decimal,
	"+":         Add,
	"-":         Subtract,
	"*":         Multiply,
	"/":         Divide,
	"Enter":     Equals,
	"=":         Equals,
	"Escape":    Clear,
	"Backspace": Backspace,
	"%":         Percentage,
}

// FromKey maps a keyboard key name (as reported by KeyboardEvent.key) to an action.
func FromKey(key string) (Action, bool) {
	a, ok := keys[key]
	return a, ok
}

// FromButton maps button attributes to an action. A non-empty number wins
// over action, mirroring the data-number and data-action attributes.
func FromButton(number, action string) (Action, bool) {
	if number != "" {
		if number == "." {
			return Decimal, true
		}
		if len(number) == 1 && number[0] >= '0' && number[0] <= '9' {
			return Action("digit-" + number), true
		}
		return "", false
	}

	a := Action(action)
	if !a.Valid() {
		return "", false
	}
	return a, true
}

// Parse resolves an action identifier or a keyboard key name.
func Parse(s string) (Action, bool) {
	if a := Action(s); a.Valid() {
		return a, true
	}
	return FromKey(s)
}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	if _, ok := a.digit(); ok {
		return true
	}
	switch a {
	case Decimal, Add, Subtract, Multiply, Divide, Equals, Clear, Backspace, Percentage:
		return true
	default:
		return false
	}
}

func (a Action) digit() (rune, bool) {
	d, ok := strings.CutPrefix(string(a), "digit-")
	if !ok || len(d) != 1 || d[0] < '0' || d[0] > '9' {
		return 0, false
	}
	return rune(d[0]), true
}

// Dispatch performs exactly one calculator call for a.
// It reports false for unknown actions, which leave t untouched.
func Dispatch(t Target, a Action) bool {
	if d, ok := a.digit(); ok {
		t.AppendDigit(d)
		return true
	}

	switch a {
	case Decimal:
		t.AppendDigit('.')
	case Add, Subtract, Multiply, Divide:
		t.ChooseOperation(calculator.Operation(a))
	case Equals:
		t.Compute()
	case Clear:
		t.Clear()
	case Backspace:
		t.Backspace()
	case Percentage:
		t.Percentage()
	default:
		return false
	}
	return true
}
