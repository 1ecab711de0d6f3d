// SPDX-License-Identifier: Unlicense OR MIT

package app

import "kanvas.io/io/event"

// Sink receives the events drained by Canvas.PollEvents, in arrival
// order. Event is called on the goroutine running Canvas.Run.
type Sink interface {
	Event(e event.Event)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(e event.Event)

func (f SinkFunc) Event(e event.Event) {
	f(e)
}

// ChanSink delivers events to a channel. Sends block, so the channel must
// be buffered or drained by another goroutine.
type ChanSink chan<- event.Event

func (c ChanSink) Event(e event.Event) {
	c <- e
}
