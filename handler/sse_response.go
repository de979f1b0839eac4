package handler

import (
	"net/http"
)

// SSEHandler is a function that handles Server-Sent Events streaming.
// It receives a StreamContext with methods for sending components and signals.
//
// The handler should run for the lifetime of the SSE connection. The
// connection is closed when the handler returns or the client disconnects.
//
//	handler.SSE(func(stream handler.StreamContext) error {
//		sub := frames.Subscribe(stream)
//		defer sub.Close()
//		for msg := range sub.Receive(stream) {
//			if err := stream.SendComponent(views.Display(msg.Data)); err != nil {
//				return err
//			}
//		}
//		return nil
//	})
type SSEHandler func(ctx StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

// Render validates DataStar connection and executes the SSE handler.
func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, "SSE endpoint requires DataStar connection")
	}

	base := NewContext(w, r)
	sse := base.SSE()
	if sse == nil {
		return ErrSSENotInitialized
	}

	return s.handler(&streamContext{Context: base, sse: sse})
}

// SSE creates a new SSE response that runs the given handler.
// A client-side disconnect is not an error: the handler observes it through
// the stream's Done channel and returns.
func SSE(handler SSEHandler) Response {
	return sseResponse{handler: handler}
}
