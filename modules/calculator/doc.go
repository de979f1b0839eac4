// Package calculator is the web module of calcdesk: a server-driven
// calculator page built on templ views and datastar.
//
// Every browser session owns a Desk holding the calculator state machine, a
// display renderer and a frame broadcaster. The Registry keeps desks in
// memory and evicts idle ones; the calculator snapshot itself lives in the
// session (memory or Redis store), so an evicted desk resumes where it left
// off.
//
// Routes:
//
//	GET  /        full page; the keypad and keyboard post to /press
//	GET  /stream  datastar SSE stream patching #display on every frame
//	POST /press   one input event from datastar signals {key, action, number}
//	GET  /state   current frame as JSON
//	GET  /healthz liveness
//	GET  /readyz  readiness checks
//
// Wiring:
//
//	desks, err := calculator.NewRegistry(cfg.Calc, log)
//	if err != nil {
//	    return err
//	}
//	svc := calculator.NewService(cfg.Calc, sessions, desks, nil, nil, log,
//	    calculator.WithPressLimiter(bucket), // optional, see pkg/ratelimiter
//	)
//	r.Mount("/", calculator.Router(calculator.RouterOptions{Desk: svc}))
package calculator
