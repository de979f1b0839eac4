// Package keypad translates raw input events into calculator calls.
//
// Keyboard keys (KeyboardEvent.key names) and on-screen button attributes
// are mapped to an Action, and Dispatch turns an Action into exactly one
// call on a Target, the input surface of calculator.Calculator:
//
//	a, ok := keypad.FromKey("*")      // keypad.Multiply
//	keypad.Dispatch(calc, a)          // calc.ChooseOperation(calculator.Multiply)
//
// Key mapping: digits and "." append, "+ - * /" select an operator,
// "Enter" and "=" compute, "Escape" clears, "Backspace" deletes and "%"
// takes a percentage. Unknown keys map to nothing and are ignored.
//
// Layout describes the on-screen button grid used by the web views.
package keypad
