package calctools

import "errors"

var (
	ErrNoKeys     = errors.New("calctools: no keys given")
	ErrUnknownKey = errors.New("calctools: unknown key")
)
