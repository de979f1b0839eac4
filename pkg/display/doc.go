// Package display renders calculator state into frames and owns the
// transient visual effects around it.
//
// A Renderer keeps the latest calculator.Display projection and three
// cosmetic effects:
//
//   - the pressed button highlight (DefaultPressDuration),
//   - the update pulse after a successful computation (DefaultPulseDuration),
//   - the error message shown in place of the current row.
//
// Every effect is a timer that reverts on its own. Begin, called at the start
// of each input event, cancels pending pulse and error effects so the next
// frame shows fresh state. The display mode (Steady, Updated, Error) is a
// statemachine.Machine; a generation guard on the settle transition discards
// timers that were cancelled after they already fired.
//
// Frames go to a Publisher, typically a broadcaster feeding SSE streams:
//
//	r := display.New(func(f display.Frame) {
//		_ = hub.Broadcast(ctx, broadcast.Message[display.Frame]{Data: f})
//	})
//	calc := calculator.New(
//		calculator.WithErrorHandler(r.Fail),
//		calculator.WithResultHandler(func(string) { r.Pulse() }),
//	)
//
//	r.Begin(keypad.Digit7)
//	keypad.Dispatch(calc, keypad.Digit7)
//	r.Show(calc.Display())
//
// Renderer methods are safe for concurrent use; timers never touch
// calculator state.
package display
