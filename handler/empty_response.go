package handler

import "net/http"

type emptyResponse struct {
	status int
}

// Render writes the status code without any body content
func (e emptyResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty creates an empty response with status 204 (No Content).
// Datastar leaves the page untouched on a 204, which suits input events
// that change nothing.
func Empty() Response {
	return emptyResponse{status: http.StatusNoContent}
}

// EmptyWithStatus creates an empty response with a custom status code.
func EmptyWithStatus(status int) Response {
	return emptyResponse{status: status}
}

type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Fail hands err to the wrapped handler's ErrorHandler.
//
//	if !ok {
//		return handler.Fail(handler.ErrBadRequest)
//	}
func Fail(err error) Response {
	return errorResponse{err: err}
}
