package session

import "errors"

var (
	ErrInvalidSession   = errors.New("session.invalid")
	ErrSessionExpired   = errors.New("session.expired")
	ErrSessionNotFound  = errors.New("session.not_found")
	ErrEncodeValue      = errors.New("session.encode_failed")
	ErrDecodeValue      = errors.New("session.decode_failed")
	ErrStoreUnavailable = errors.New("session.store_unavailable")
	ErrUnknownStore     = errors.New("session.unknown_store")
)
