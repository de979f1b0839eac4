package handler

import "errors"

var (
	// ErrNilResponse indicates a handler returned nil instead of a Response
	ErrNilResponse = errors.New("handler returned nil response")
	// ErrSSENotInitialized indicates SSE was accessed before being set up for the request
	ErrSSENotInitialized = errors.New("SSE not initialized for this request")
	// ErrBinderNotApplicable is returned by a binder that does not handle this kind of request.
	// Wrap skips such binders.
	ErrBinderNotApplicable = errors.New("binder not applicable")
	// ErrInvalidSignals indicates the datastar signals payload could not be decoded
	ErrInvalidSignals = errors.New("invalid datastar signals")
)
