// Package broadcast fans typed messages out to many subscribers.
//
// The web module gives every calculator desk a MemoryBroadcaster of display
// frames; each open SSE stream is one subscriber:
//
//	frames := broadcast.NewMemoryBroadcaster[display.Frame](8)
//	sub := frames.Subscribe(r.Context())
//	for msg := range sub.Receive(r.Context()) {
//	    // patch the display with msg.Data
//	}
//
// Broadcast never blocks. A subscriber whose buffer is full loses its oldest
// queued message, so a slow reader skips intermediate frames but always
// receives the latest one. New subscribers are primed with the last
// broadcast message.
//
// Subscriptions end when their context is done, when Close is called on the
// subscriber, or when the broadcaster is closed.
package broadcast
