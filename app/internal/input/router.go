// SPDX-License-Identifier: Unlicense OR MIT

// Package input tracks translated input events. A Router keeps two
// independent read models over the same events: the level State, updated
// the moment an event arrives, and the Queue of edge events, consumed
// once per poll.
package input

import (
	"kanvas.io/io/event"
	"kanvas.io/io/key"
	"kanvas.io/io/pointer"
)

// Router records events in both the State and the Queue.
type Router struct {
	state State
	queue Queue
}

// Add records e in the level state and appends it to the queue.
func (r *Router) Add(e event.Event) {
	r.state.Record(e)
	r.queue.Push(e)
}

// Drain returns and clears the queued events. The level state is
// unaffected.
func (r *Router) Drain() []event.Event {
	return r.queue.Drain()
}

// Pending returns the number of queued events.
func (r *Router) Pending() int {
	return r.queue.Len()
}

func (r *Router) Key(k key.Key) event.Action {
	return r.state.Key(k)
}

func (r *Router) Button(b pointer.Button) event.Action {
	return r.state.Button(b)
}
