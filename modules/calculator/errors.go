package calculator

import "errors"

var (
	// ErrInvalidConfig indicates a configuration value the module cannot use.
	ErrInvalidConfig = errors.New("calculator module: invalid config")
	// ErrNoSession indicates a request reached a desk route without a session.
	ErrNoSession = errors.New("calculator module: no session")
	// ErrDeskClosed indicates the registry or the desk was closed.
	ErrDeskClosed = errors.New("calculator module: desk closed")
)
