// Package calculator implements the state machine behind a two-operand
// arithmetic calculator: operand entry, operator selection, computation and
// the projection of that state onto a two-row display.
//
// The machine keeps four fields: the previous operand, the pending operation,
// the current operand and a reset-screen flag raised after a result is shown.
// Operands are stored as strings so that in-progress entry such as "12." is
// displayed exactly as typed; they are parsed to float64 only when a
// computation or percentage needs their value.
//
// # Architecture
//
// Calculator is a plain owned value. It holds no timers, performs no I/O and
// is not synchronized: callers serialize input events per instance. External
// effects leave the machine through two callbacks configured with options:
//
//   - WithErrorHandler receives the user-facing message and display duration
//     when a division by zero is attempted.
//   - WithResultHandler receives the formatted result of every successful
//     computation, which renderers use to trigger an update animation.
//
// Input methods never fail loudly. Malformed or out-of-context input is
// ignored and recorded in LastError using the sentinels in errors.go so that
// adapters and tests can tell a no-op from a state change.
//
// Numbers are formatted with golang.org/x/text: the integer part gets the
// locale's thousands grouping (English by default) and the fractional part
// is reattached verbatim after a literal decimal point.
//
// # Usage
//
//	calc := calculator.New(
//		calculator.WithErrorHandler(func(msg string, d time.Duration) {
//			renderer.Fail(msg, d)
//		}),
//	)
//
//	calc.AppendDigit('3')
//	calc.ChooseOperation(calculator.Add)
//	calc.AppendDigit('4')
//	calc.ChooseOperation(calculator.Multiply) // computes 3+4 first
//	calc.AppendDigit('2')
//	calc.Compute()
//
//	d := calc.Display() // d.Current == "14"
//
// # State storage
//
// State and Restore convert the machine to and from a JSON-friendly snapshot,
// which lets web adapters keep one calculator per browser session in any
// session store.
package calculator
