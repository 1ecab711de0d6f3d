// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"golang.org/x/exp/slices"

	"kanvas.io/io/event"
)

// Queue is an ordered buffer of events accumulated between two drains.
// It is unbounded; no event is ever dropped.
//
// A Queue is not safe for concurrent use. Producers and the consumer
// must take turns, and a producer must not drain.
type Queue struct {
	events []event.Event
}

// Push appends e to the queue.
func (q *Queue) Push(e event.Event) {
	q.events = append(q.events, e)
}

// Len returns the number of events waiting to be drained.
func (q *Queue) Len() int {
	return len(q.events)
}

// Drain returns every event pushed since the previous Drain, in arrival
// order, and empties the queue. It returns nil if no event is pending.
func (q *Queue) Drain() []event.Event {
	if len(q.events) == 0 {
		return nil
	}
	evs := slices.Clone(q.events)
	// Clear references so drained events can be collected while the
	// backing array is reused.
	for i := range q.events {
		q.events[i] = nil
	}
	q.events = q.events[:0]
	return evs
}
