// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"context"
	"fmt"
	"runtime"

	"kanvas.io/app/internal/input"
	"kanvas.io/io/event"
	"kanvas.io/io/key"
	"kanvas.io/io/pointer"
)

// Canvas is a window, or a canvas element in a browser, that reports
// input events.
//
// Events are queued as the backend delivers them and forwarded to the
// sink by PollEvents. The level state of keys and mouse buttons is
// updated as events arrive and is readable at any time through Key and
// MouseButton, independent of polling.
//
// A Canvas is not safe for concurrent use. Its methods must be called
// before Run, or from the goroutine running Run, typically from a
// RenderLoop frame.
type Canvas struct {
	cnf    Config
	sink   Sink
	d      driver
	router input.Router
	stage  Stage
}

// Open opens a canvas of the given title, visibility and size, delivering
// polled events to sink. Options override the positional parameters.
func Open(title string, hidden bool, width, height uint32, sink Sink, options ...Option) (*Canvas, error) {
	return OpenContext(context.Background(), title, hidden, width, height, sink, options...)
}

// OpenContext is like Open, with a context bounding backends that wait
// for their surface, such as the remote backend waiting for a browser.
func OpenContext(ctx context.Context, title string, hidden bool, width, height uint32, sink Sink, options ...Option) (*Canvas, error) {
	if sink == nil {
		panic("app: nil Sink")
	}
	cnf := Config{
		Title:      title,
		Hidden:     hidden,
		Width:      width,
		Height:     height,
		RemoteAddr: "localhost:8080",
		FrameRate:  60,
	}
	for _, o := range options {
		o(&cnf)
	}
	if cnf.LogLevel != "" {
		setLogLevel(cnf.LogLevel)
	}
	cnf.Backend = cnf.Backend.resolve()
	newDriver, ok := drivers[cnf.Backend]
	if !ok {
		return nil, fmt.Errorf("app: backend %v not available on %s/%s", cnf.Backend, runtime.GOOS, runtime.GOARCH)
	}
	c := &Canvas{sink: sink}
	d, err := newDriver(ctx, &callbacks{c: c}, &cnf)
	if err != nil {
		return nil, fmt.Errorf("app: open %v canvas: %w", cnf.Backend, err)
	}
	if cnf.HiDPIFactor <= 0 {
		cnf.HiDPIFactor = 1
	}
	c.cnf, c.d, c.stage = cnf, d, StageOpen
	logger.Infof("opened %v canvas %q, %dx%d, HiDPI factor %g", cnf.Backend, cnf.Title, cnf.Width, cnf.Height, cnf.HiDPIFactor)
	return c, nil
}

// MustOpen is like Open but panics if the canvas cannot be opened.
func MustOpen(title string, hidden bool, width, height uint32, sink Sink, options ...Option) *Canvas {
	c, err := Open(title, hidden, width, height, sink, options...)
	if err != nil {
		panic(err)
	}
	return c
}

// PollEvents forwards every event queued since the previous call to the
// sink, in arrival order.
func (c *Canvas) PollEvents() {
	for _, e := range c.router.Drain() {
		c.sink.Event(e)
	}
}

// Pending returns the number of events PollEvents would forward.
func (c *Canvas) Pending() int {
	return c.router.Pending()
}

// SwapBuffers presents the drawable. The canvas owns no graphics
// resources, so on every current backend SwapBuffers is a no-op.
func (c *Canvas) SwapBuffers() {
	if c.stage == StageClosed {
		return
	}
	c.d.SwapBuffers()
}

// ShouldClose reports whether the user asked to close the window. A
// closed canvas always should. Browser canvases never do.
func (c *Canvas) ShouldClose() bool {
	if c.stage == StageClosed {
		return true
	}
	return c.d.ShouldClose()
}

// Size returns the window size. For browser canvases it is the element
// size in CSS pixels.
func (c *Canvas) Size() (w, h uint32) {
	return c.d.Size()
}

// SetTitle sets the window title. Browser canvases ignore it.
func (c *Canvas) SetTitle(title string) {
	if c.stage == StageClosed {
		return
	}
	c.cnf.Title = title
	c.d.SetTitle(title)
}

// Show shows the window. Browser canvases ignore it.
func (c *Canvas) Show() {
	if c.stage == StageClosed {
		return
	}
	c.d.Show()
}

// Hide hides the window. Browser canvases ignore it.
func (c *Canvas) Hide() {
	if c.stage == StageClosed {
		return
	}
	c.d.Hide()
}

// Close destroys the window and makes Run return. Browser canvases can't
// be closed and stay open.
func (c *Canvas) Close() {
	if c.stage == StageClosed {
		return
	}
	if !c.d.Close() {
		return
	}
	c.stage = StageClosing
	c.teardown()
}

// Key returns the last known state of k. Repeats are reported as Press.
func (c *Canvas) Key(k key.Key) event.Action {
	return c.router.Key(k)
}

// MouseButton returns the last known state of b.
func (c *Canvas) MouseButton(b pointer.Button) event.Action {
	return c.router.Button(b)
}

// HiDPIFactor returns the ratio of device pixels to logical pixels
// resolved when the canvas opened. It never changes.
func (c *Canvas) HiDPIFactor() float64 {
	return c.cnf.HiDPIFactor
}

// Stage returns the lifecycle stage of the canvas.
func (c *Canvas) Stage() Stage {
	return c.stage
}

// Config returns the configuration the canvas opened with.
func (c *Canvas) Config() Config {
	return c.cnf
}

// Run delivers backend events and frames until ctx is done, the window
// is closed or the backend goes away. The canvas is closed when Run
// returns.
func (c *Canvas) Run(ctx context.Context) error {
	if c.stage == StageClosed {
		return ErrClosed
	}
	err := c.d.Run(ctx)
	if c.stage != StageClosed {
		c.teardown()
	}
	return err
}

func (c *Canvas) teardown() {
	c.d.Release()
	c.stage = StageClosed
	logger.Infof("closed %v canvas %q", c.cnf.Backend, c.cnf.Title)
}
