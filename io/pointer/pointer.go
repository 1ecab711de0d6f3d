// SPDX-License-Identifier: Unlicense OR MIT

// Package pointer implements mouse events and the closed set of
// mouse buttons a canvas can report.
package pointer

import (
	"fmt"

	"kanvas.io/io/event"
	"kanvas.io/io/key"
)

// ButtonEvent is generated when a mouse button changes state.
type ButtonEvent struct {
	Button    Button
	Action    event.Action
	Modifiers key.Modifiers
}

// CursorEvent reports the cursor position in client coordinates of
// the canvas. The coordinates are not scaled by the HiDPI factor.
type CursorEvent struct {
	X, Y      float64
	Modifiers key.Modifiers
}

// ScrollEvent reports a scroll amount in host units.
type ScrollEvent struct {
	DX, DY    float64
	Modifiers key.Modifiers
}

// Button identifies a mouse button.
type Button uint8

const (
	// Button1 is the primary button, usually the left button.
	Button1 Button = iota
	// Button2 is the secondary button, usually the right button.
	Button2
	// Button3 is the tertiary button, usually the middle button or wheel.
	Button3
	Button4
	Button5
	Button6
	Button7
	// Button8 is the last button and bounds the button set.
	Button8
)

// ButtonCount is the number of buttons, and the length of any table
// indexed by Button.
const ButtonCount = int(Button8) + 1

// Aliases matching the usual role of the first three buttons.
const (
	ButtonLeft   = Button1
	ButtonRight  = Button2
	ButtonMiddle = Button3
)

// Valid reports whether b is a member of the button set.
func (b Button) Valid() bool {
	return int(b) < ButtonCount
}

func (b Button) String() string {
	if !b.Valid() {
		panic("invalid Button")
	}
	return fmt.Sprintf("Button%d", int(b)+1)
}

func (ButtonEvent) ImplementsEvent() {}
func (CursorEvent) ImplementsEvent() {}
func (ScrollEvent) ImplementsEvent() {}
