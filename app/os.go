// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"context"
	"errors"
	"time"

	"kanvas.io/io/event"
	"kanvas.io/io/system"
)

var (
	// ErrNoDrawable is returned by Open when the backend has no surface
	// to draw on.
	ErrNoDrawable = errors.New("app: no drawable surface")
	// ErrClosed is returned by Run on a closed canvas.
	ErrClosed = errors.New("app: canvas closed")
)

// driver is the interface for the backend implementation of a canvas.
// Operations a backend cannot perform are no-ops.
type driver interface {
	// SwapBuffers presents the drawable.
	SwapBuffers()
	// ShouldClose reports whether the user asked to close the window.
	ShouldClose() bool
	// Size returns the window or element size.
	Size() (w, h uint32)
	SetTitle(title string)
	Show()
	Hide()
	// Close destroys the window. It reports false if the backend
	// cannot close.
	Close() bool
	// RequestFrame schedules cb for the next frame.
	RequestFrame(cb func(t time.Duration))
	// Run delivers events and frames until ctx is done or the window
	// goes away.
	Run(ctx context.Context) error
	// Release removes every event subscription. The driver delivers
	// no events after Release.
	Release()
}

// newDriverFunc opens a backend. It must set cnf.HiDPIFactor.
type newDriverFunc func(ctx context.Context, c *callbacks, cnf *Config) (driver, error)

// drivers holds the backends available on the platform, registered by
// the os_*.go files.
var drivers = make(map[Backend]newDriverFunc)

// callbacks is the handle backends hold on their canvas.
type callbacks struct {
	c *Canvas
}

// Event records a translated event in the input state and the queue. It
// is the only way a backend changes canvas state.
func (c *callbacks) Event(e event.Event) {
	cv := c.c
	if cv.stage == StageClosed {
		return
	}
	cv.router.Add(e)
	if _, ok := e.(system.CloseEvent); ok && cv.stage == StageOpen {
		cv.stage = StageClosing
	}
}

// Stage is the lifecycle stage of a Canvas.
type Stage uint8

const (
	StageUnopened Stage = iota
	StageOpen
	// StageClosing is entered when closing was requested, by the user
	// or by Close, and the window is not yet torn down.
	StageClosing
	StageClosed
)

func (s Stage) String() string {
	switch s {
	case StageUnopened:
		return "StageUnopened"
	case StageOpen:
		return "StageOpen"
	case StageClosing:
		return "StageClosing"
	case StageClosed:
		return "StageClosed"
	default:
		panic("invalid Stage")
	}
}
