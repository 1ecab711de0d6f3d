// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains types for event handling.
//
// Every event delivered by a canvas is a value type implementing Event.
// The concrete types live in the key, pointer and system packages.
package event

// Event is the marker interface for events.
type Event interface {
	ImplementsEvent()
}

// Action is the transition reported by a key or mouse button event.
type Action uint8

const (
	// Release is the state of an input that is not held down. It is the
	// zero value, and the initial state of every key and button.
	Release Action = iota
	// Press is the state of an input that is held down.
	Press
	// Repeat is reported by hosts that generate auto-repeat events for
	// a key that is held down.
	Repeat
)

// Level returns the level state implied by a. Repeat is a Press for
// state purposes.
func (a Action) Level() Action {
	if a == Repeat {
		return Press
	}
	return a
}

func (a Action) String() string {
	switch a {
	case Release:
		return "Release"
	case Press:
		return "Press"
	case Repeat:
		return "Repeat"
	default:
		panic("invalid Action")
	}
}
