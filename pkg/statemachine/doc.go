// Package statemachine provides a small, generic finite-state-machine.
//
// States and events are any comparable types, typically string-based
// constants. The machine handles:
//  1. Transition lookup by current state and event
//  2. Optional Guard evaluation to accept or reject transitions
//  3. Execution of side-effect Actions before the state changes
//  4. Hooks observing every completed transition
//
// # Architecture
//
// Machine stores transitions in a nested map [from][event][]Transition and
// guards all access with a RWMutex. Several transitions may share a from/event
// pair; the first one whose guards pass is taken, which gives guard-based
// branching with priority by registration order. Configuration uses
// functional options.
//
// # Usage
//
//	type Mode string
//	type Trigger string
//
//	m := statemachine.MustNew[Mode, Trigger]("steady",
//		statemachine.WithTransition[Mode, Trigger]("steady", "updated", "compute"),
//		statemachine.WithTransitionFrom[Mode, Trigger]([]Mode{"steady", "updated"}, "error", "fail"),
//	)
//
//	_ = m.Fire(ctx, "compute", nil)
//
// # Guards and Actions
//
// Guards veto a transition based on runtime data passed to Fire:
//
//	current := func(ctx context.Context, from Mode, evt Trigger, data any) bool {
//		gen, ok := data.(uint64)
//		return ok && gen == latest
//	}
//
// Actions run after all guards pass and before the state is updated; an
// action error aborts the transition.
//
// # Error Handling
//
//	if statemachine.IsNoTransitionAvailableError(err) { /* ... */ }
//	if statemachine.IsTransitionRejectedError(err)   { /* ... */ }
package statemachine
