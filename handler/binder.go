package handler

import (
	"errors"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// DefaultMaxSignalsSize caps the signals payload a binder will read (64KB).
const DefaultMaxSignalsSize = 64 << 10

// Signals creates a binder that decodes datastar signals into the request
// struct. Signals travel in the "datastar" query parameter for GET requests
// and as a JSON body otherwise. Non-datastar requests are skipped.
//
// Example:
//
//	type PressRequest struct {
//		Key    string `json:"key"`
//		Action string `json:"action"`
//	}
//
//	r.Post("/press", handler.Wrap(press,
//		handler.WithBinders[handler.Context, PressRequest](handler.Signals()),
//	))
func Signals() Bind {
	return func(r *http.Request, v any) error {
		if !IsDataStar(r) {
			return ErrBinderNotApplicable
		}
		if r.Method == http.MethodGet && !r.URL.Query().Has(DataStarQueryParam) {
			return ErrBinderNotApplicable
		}
		if r.Body != nil {
			r.Body = http.MaxBytesReader(nil, r.Body, DefaultMaxSignalsSize)
		}
		if err := datastar.ReadSignals(r, v); err != nil {
			return errors.Join(ErrBadRequest, ErrInvalidSignals, err)
		}
		return nil
	}
}
