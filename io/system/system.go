// SPDX-License-Identifier: Unlicense OR MIT

// Package system contains events usually handled at the top-level
// program level.
package system

// SizeEvent is generated when the window or canvas changes size.
type SizeEvent struct {
	Width, Height uint32
}

// FramebufferSizeEvent is generated when the drawable surface changes
// size, in device pixels.
type FramebufferSizeEvent struct {
	Width, Height uint32
}

// CloseEvent is generated when the user or window manager asks for
// the window to close. It is a request; the window stays usable until
// the program closes it.
type CloseEvent struct{}

func (SizeEvent) ImplementsEvent()            {}
func (FramebufferSizeEvent) ImplementsEvent() {}
func (CloseEvent) ImplementsEvent()           {}
