// Package handler adapts typed handler functions to net/http.
//
// A HandlerFunc receives a Context and a decoded request value and returns a
// Response. Wrap turns it into an http.HandlerFunc, running binders, the
// handler, its decorators and the error handler in order:
//
//	type PressRequest struct {
//		Key    string `json:"key"`
//		Action string `json:"action"`
//	}
//
//	r.Post("/press", handler.Wrap(svc.press,
//		handler.WithBinders[handler.Context, PressRequest](handler.Signals()),
//		handler.WithErrorHandler[handler.Context, PressRequest](errHandler),
//	))
//
// # Responses
//
// Templ and TemplPartial render a templ component as HTML for regular
// requests and as a datastar element patch for datastar requests. SSE keeps
// the connection open and hands a StreamContext to a long-running function
// that pushes patches. JSON and Empty cover the rest.
//
// # Errors
//
// HTTPError carries a status code and a stable key. NewErrorHandler logs
// failures with the request ID and answers with an error page, a toast
// patch or a plain http.Error.
package handler
