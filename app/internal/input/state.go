// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"kanvas.io/io/event"
	"kanvas.io/io/key"
	"kanvas.io/io/pointer"
)

// State holds the last known level of every key and mouse button. The
// zero State has every input released.
type State struct {
	keys    [key.Count]event.Action
	buttons [pointer.ButtonCount]event.Action
}

// Record updates the level state from a translated event. Events that
// don't name a key or button leave the state unchanged.
func (s *State) Record(e event.Event) {
	switch e := e.(type) {
	case key.Event:
		if e.Key.Valid() {
			s.keys[e.Key] = e.Action.Level()
		}
	case pointer.ButtonEvent:
		if e.Button.Valid() {
			s.buttons[e.Button] = e.Action.Level()
		}
	}
}

// Key returns the level of k. Keys outside the key set are reported
// released.
func (s *State) Key(k key.Key) event.Action {
	if !k.Valid() {
		return event.Release
	}
	return s.keys[k]
}

// Button returns the level of b.
func (s *State) Button(b pointer.Button) event.Action {
	if !b.Valid() {
		return event.Release
	}
	return s.buttons[b]
}
