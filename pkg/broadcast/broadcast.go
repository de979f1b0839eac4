package broadcast

import (
	"context"
	"sync"
)

// Message wraps data of type T.
type Message[T any] struct {
	Data T
}

// Subscriber receives messages from a Broadcaster.
type Subscriber[T any] interface {
	// Receive returns the delivery channel. It is closed when the
	// subscription ends.
	Receive(ctx context.Context) <-chan Message[T]
	// Close ends the subscription. It is idempotent.
	Close() error
}

// Broadcaster fans messages out to every subscriber without blocking the
// sender.
type Broadcaster[T any] interface {
	// Subscribe registers a subscriber for the lifetime of ctx.
	Subscribe(ctx context.Context) Subscriber[T]
	// Broadcast delivers msg to all current subscribers.
	Broadcast(ctx context.Context, msg Message[T]) error
	// Close ends every subscription.
	Close() error
}

type subscriber[T any] struct {
	mu     sync.Mutex
	ch     chan Message[T]
	closed bool
}

func newSubscriber[T any](bufferSize int) *subscriber[T] {
	return &subscriber[T]{ch: make(chan Message[T], bufferSize)}
}

func (s *subscriber[T]) Receive(context.Context) <-chan Message[T] {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
	return nil
}

// send never blocks. When the buffer is full the oldest queued message is
// discarded so a slow reader always ends up with the newest one. It reports
// whether a message was dropped.
func (s *subscriber[T]) send(msg Message[T]) (dropped bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	for {
		select {
		case s.ch <- msg:
			return dropped
		default:
		}
		select {
		case <-s.ch:
			dropped = true
		default:
		}
	}
}
