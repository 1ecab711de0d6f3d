// SPDX-License-Identifier: Unlicense OR MIT

// Command kanvas opens a canvas and logs its events and input state.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/kataras/golog"

	"kanvas.io/app"
	"kanvas.io/io/event"
	"kanvas.io/io/key"
	"kanvas.io/io/pointer"
	"kanvas.io/io/system"
)

var (
	backend  = flag.String("backend", "auto", "canvas backend: auto, browser, remote, x11 or windows")
	addr     = flag.String("addr", "localhost:8080", "listen address of the remote backend")
	title    = flag.String("title", "kanvas", "window title")
	width    = flag.Uint("width", 800, "window width")
	height   = flag.Uint("height", 600, "window height")
	hidden   = flag.Bool("hidden", false, "open the window hidden")
	logLevel = flag.String("log", "info", "log level: debug, info, warn, error or disable")
)

func main() {
	flag.Parse()
	b, err := app.ParseBackend(*backend)
	if err != nil {
		golog.Fatal(err)
	}
	golog.SetLevel(*logLevel)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	c, err := app.OpenContext(ctx, *title, *hidden, uint32(*width), uint32(*height), app.SinkFunc(logEvent),
		app.WithBackend(b),
		app.RemoteAddr(*addr),
		app.LogLevel(*logLevel),
	)
	if err != nil {
		golog.Fatal(err)
	}
	d := &demo{c: c}
	c.RenderLoop(d.frame)
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		golog.Fatal(err)
	}
}

// canvas is the part of app.Canvas the demo drives.
type canvas interface {
	PollEvents()
	ShouldClose() bool
	Key(k key.Key) event.Action
	MouseButton(b pointer.Button) event.Action
	SwapBuffers()
	Close()
	Stage() app.Stage
}

type demo struct {
	c    canvas
	last time.Duration
}

// frame polls events and logs the input state every second. Escape
// closes the window; browser canvases stay open and keep polling.
func (d *demo) frame(t time.Duration) app.Control {
	d.c.PollEvents()
	if d.c.ShouldClose() || d.c.Key(key.Escape) == event.Press {
		d.c.Close()
		if d.c.Stage() == app.StageClosed {
			return app.Stop
		}
	}
	if t-d.last >= time.Second {
		d.last = t
		logState(d.c)
	}
	d.c.SwapBuffers()
	return app.Continue
}

func logEvent(e event.Event) {
	switch e := e.(type) {
	case key.Event:
		golog.Infof("key %v %v %v", e.Key, e.Action, e.Modifiers)
	case pointer.ButtonEvent:
		golog.Infof("button %v %v %v", e.Button, e.Action, e.Modifiers)
	case pointer.CursorEvent:
		golog.Debugf("cursor %g,%g %v", e.X, e.Y, e.Modifiers)
	case pointer.ScrollEvent:
		golog.Infof("scroll %g,%g %v", e.DX, e.DY, e.Modifiers)
	case system.SizeEvent:
		golog.Infof("size %dx%d", e.Width, e.Height)
	case system.FramebufferSizeEvent:
		golog.Infof("framebuffer %dx%d", e.Width, e.Height)
	case system.CloseEvent:
		golog.Info("close requested")
	}
}

// logState logs the held keys and buttons.
func logState(c canvas) {
	var held []interface{}
	for k := key.Key(0); int(k) < key.Count; k++ {
		if c.Key(k) == event.Press {
			held = append(held, k)
		}
	}
	for b := pointer.Button(0); int(b) < pointer.ButtonCount; b++ {
		if c.MouseButton(b) == event.Press {
			held = append(held, b)
		}
	}
	if len(held) > 0 {
		golog.Debugf("held %v", held)
	}
}
