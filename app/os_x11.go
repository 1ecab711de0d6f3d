// SPDX-License-Identifier: Unlicense OR MIT

//go:build (linux && !android) || freebsd || openbsd || netbsd
// +build linux,!android freebsd openbsd netbsd

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"kanvas.io/app/internal/sched"
	"kanvas.io/io/event"
	"kanvas.io/io/key"
	"kanvas.io/io/pointer"
	"kanvas.io/io/system"
)

// x11Window is the driver of an X11 window. A reader goroutine receives
// events from the connection and posts them to the loop, where they are
// translated.
type x11Window struct {
	x      *xgb.Conn
	xw     xproto.Window
	w      *callbacks
	loop   *sched.Loop
	keymap x11Keymap
	atoms  struct {
		wmProtocols xproto.Atom
		wmDelete    xproto.Atom
		netWMName   xproto.Atom
		utf8String  xproto.Atom
	}
	interval time.Duration

	width, height uint32
	shouldClose   bool
	destroyed     bool
}

// x11Keymap maps keycodes to keysyms.
type x11Keymap struct {
	min     xproto.Keycode
	perCode int
	syms    []xproto.Keysym
}

// x11Repeat is a key press X11 reported as a release immediately
// followed by a press.
type x11Repeat struct {
	xproto.KeyPressEvent
}

func init() {
	drivers[BackendX11] = newX11Window
}

func newX11Window(ctx context.Context, w *callbacks, cnf *Config) (driver, error) {
	x, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDrawable, err)
	}
	win := &x11Window{
		x:        x,
		w:        w,
		loop:     sched.New(),
		interval: time.Second / time.Duration(cnf.FrameRate),
		width:    cnf.Width,
		height:   cnf.Height,
	}
	if err := win.create(cnf); err != nil {
		x.Close()
		return nil, err
	}
	go win.readEvents()
	return win, nil
}

func (w *x11Window) create(cnf *Config) error {
	setup := xproto.Setup(w.x)
	screen := setup.DefaultScreen(w.x)
	xw, err := xproto.NewWindowId(w.x)
	if err != nil {
		return err
	}
	w.xw = xw
	mask := uint32(xproto.EventMaskKeyPress | xproto.EventMaskKeyRelease |
		xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease |
		xproto.EventMaskPointerMotion | xproto.EventMaskStructureNotify)
	err = xproto.CreateWindowChecked(w.x, screen.RootDepth, xw, screen.Root,
		0, 0, uint16(cnf.Width), uint16(cnf.Height), 0,
		xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{screen.BlackPixel, mask}).Check()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoDrawable, err)
	}
	for _, a := range []struct {
		name string
		atom *xproto.Atom
	}{
		{"WM_PROTOCOLS", &w.atoms.wmProtocols},
		{"WM_DELETE_WINDOW", &w.atoms.wmDelete},
		{"_NET_WM_NAME", &w.atoms.netWMName},
		{"UTF8_STRING", &w.atoms.utf8String},
	} {
		r, err := xproto.InternAtom(w.x, false, uint16(len(a.name)), a.name).Reply()
		if err != nil {
			return fmt.Errorf("x11: intern %s: %v", a.name, err)
		}
		*a.atom = r.Atom
	}
	data := make([]byte, 4)
	xgb.Put32(data, uint32(w.atoms.wmDelete))
	xproto.ChangeProperty(w.x, xproto.PropModeReplace, xw, w.atoms.wmProtocols, xproto.AtomAtom, 32, 1, data)

	count := int(setup.MaxKeycode) - int(setup.MinKeycode) + 1
	km, err := xproto.GetKeyboardMapping(w.x, setup.MinKeycode, byte(count)).Reply()
	if err != nil {
		return fmt.Errorf("x11: keyboard mapping: %v", err)
	}
	w.keymap = x11Keymap{min: setup.MinKeycode, perCode: int(km.KeysymsPerKeycode), syms: km.Keysyms}

	cnf.HiDPIFactor = x11Scale(screen)
	w.SetTitle(cnf.Title)
	if !cnf.Hidden {
		w.Show()
	}
	return nil
}

// x11Scale derives the HiDPI factor from the physical screen size,
// relative to 96 DPI.
func x11Scale(s *xproto.ScreenInfo) float64 {
	if s.WidthInMillimeters == 0 {
		return 1
	}
	dpi := float64(s.WidthInPixels) * 25.4 / float64(s.WidthInMillimeters)
	if dpi < 96 {
		return 1
	}
	return dpi / 96
}

// readEvents posts every event of the connection to the loop until the
// connection closes.
func (w *x11Window) readEvents() {
	var next xgb.Event
	for {
		ev := next
		next = nil
		if ev == nil {
			var err xgb.Error
			ev, err = w.x.WaitForEvent()
			if err != nil {
				logger.Debugf("x11: %v", err)
				continue
			}
			if ev == nil {
				w.loop.Stop()
				return
			}
		}
		if rel, ok := ev.(xproto.KeyReleaseEvent); ok {
			ev, next = x11Autorepeat(rel, w.x.PollForEvent)
		}
		w.loop.Post(func() {
			w.handle(ev)
		})
	}
}

// x11Autorepeat pairs rel with the event queued after it. Auto-repeat
// arrives as a release and a press of the same key with the same
// timestamp, reported as a single x11Repeat. Otherwise rel is returned
// with the polled event, if any, to be handled next.
func x11Autorepeat(rel xproto.KeyReleaseEvent, poll func() (xgb.Event, xgb.Error)) (ev, next xgb.Event) {
	peek, err := poll()
	if err != nil {
		logger.Debugf("x11: %v", err)
	}
	if press, ok := peek.(xproto.KeyPressEvent); ok && press.Time == rel.Time && press.Detail == rel.Detail {
		return x11Repeat{press}, nil
	}
	return rel, peek
}

// handle runs on the loop.
func (w *x11Window) handle(ev xgb.Event) {
	if w.destroyed {
		return
	}
	switch ev := ev.(type) {
	case xproto.ConfigureNotifyEvent:
		width, height := uint32(ev.Width), uint32(ev.Height)
		if width == w.width && height == w.height {
			return
		}
		w.width, w.height = width, height
		w.w.Event(system.FramebufferSizeEvent{Width: width, Height: height})
		w.w.Event(system.SizeEvent{Width: width, Height: height})
	case xproto.ClientMessageEvent:
		if ev.Type != w.atoms.wmProtocols || ev.Format != 32 || len(ev.Data.Data32) == 0 {
			return
		}
		if xproto.Atom(ev.Data.Data32[0]) == w.atoms.wmDelete {
			w.shouldClose = true
			w.w.Event(system.CloseEvent{})
		}
	case xproto.DestroyNotifyEvent:
		w.destroyed = true
		w.loop.Stop()
	default:
		e, ok := x11Translate(ev, w.keymap.lookup)
		if !ok {
			logger.Debugf("x11: dropped %v", ev)
			return
		}
		w.w.Event(e)
	}
}

// x11Buttons maps X11 button numbers to canvas buttons. Buttons 4 to 7
// are scroll wheel steps.
var x11Buttons = map[xproto.Button]pointer.Button{
	1: pointer.Button1,
	2: pointer.Button3,
	3: pointer.Button2,
	8: pointer.Button4,
	9: pointer.Button5,
}

// x11Translate converts input events. lookup returns the keysyms of a
// keycode, most preferred first.
func x11Translate(ev xgb.Event, lookup func(xproto.Keycode) []xproto.Keysym) (event.Event, bool) {
	switch ev := ev.(type) {
	case xproto.KeyPressEvent:
		return x11Key(ev.Detail, ev.State, event.Press, lookup)
	case x11Repeat:
		return x11Key(ev.Detail, ev.State, event.Repeat, lookup)
	case xproto.KeyReleaseEvent:
		return x11Key(ev.Detail, ev.State, event.Release, lookup)
	case xproto.ButtonPressEvent:
		mods := x11Modifiers(ev.State)
		switch ev.Detail {
		case 4:
			return pointer.ScrollEvent{DY: -1, Modifiers: mods}, true
		case 5:
			return pointer.ScrollEvent{DY: 1, Modifiers: mods}, true
		case 6:
			return pointer.ScrollEvent{DX: -1, Modifiers: mods}, true
		case 7:
			return pointer.ScrollEvent{DX: 1, Modifiers: mods}, true
		}
		b, ok := x11Buttons[ev.Detail]
		if !ok {
			return nil, false
		}
		return pointer.ButtonEvent{Button: b, Action: event.Press, Modifiers: mods}, true
	case xproto.ButtonReleaseEvent:
		b, ok := x11Buttons[ev.Detail]
		if !ok {
			return nil, false
		}
		return pointer.ButtonEvent{Button: b, Action: event.Release, Modifiers: x11Modifiers(ev.State)}, true
	case xproto.MotionNotifyEvent:
		return pointer.CursorEvent{X: float64(ev.EventX), Y: float64(ev.EventY), Modifiers: x11Modifiers(ev.State)}, true
	}
	return nil, false
}

func x11Key(code xproto.Keycode, state uint16, act event.Action, lookup func(xproto.Keycode) []xproto.Keysym) (event.Event, bool) {
	for _, sym := range lookup(code) {
		if k, ok := x11Keysyms[sym]; ok {
			return key.Event{Key: k, Action: act, Modifiers: x11Modifiers(state)}, true
		}
	}
	return nil, false
}

func x11Modifiers(state uint16) key.Modifiers {
	var mods key.Modifiers
	if state&xproto.ModMaskShift != 0 {
		mods |= key.ModShift
	}
	if state&xproto.ModMaskControl != 0 {
		mods |= key.ModControl
	}
	if state&xproto.ModMask1 != 0 {
		mods |= key.ModAlt
	}
	if state&xproto.ModMask4 != 0 {
		mods |= key.ModSuper
	}
	return mods
}

func (m *x11Keymap) lookup(code xproto.Keycode) []xproto.Keysym {
	if m.perCode == 0 || code < m.min {
		return nil
	}
	i := int(code-m.min) * m.perCode
	if i+m.perCode > len(m.syms) {
		return nil
	}
	return m.syms[i : i+m.perCode]
}

func (w *x11Window) Size() (uint32, uint32) {
	return w.width, w.height
}

func (w *x11Window) ShouldClose() bool {
	return w.shouldClose
}

func (w *x11Window) SetTitle(title string) {
	if w.destroyed {
		return
	}
	xproto.ChangeProperty(w.x, xproto.PropModeReplace, w.xw, xproto.AtomWmName, xproto.AtomString, 8, uint32(len(title)), []byte(title))
	xproto.ChangeProperty(w.x, xproto.PropModeReplace, w.xw, w.atoms.netWMName, w.atoms.utf8String, 8, uint32(len(title)), []byte(title))
}

func (w *x11Window) Show() {
	if !w.destroyed {
		xproto.MapWindow(w.x, w.xw)
	}
}

func (w *x11Window) Hide() {
	if !w.destroyed {
		xproto.UnmapWindow(w.x, w.xw)
	}
}

func (w *x11Window) Close() bool {
	if !w.destroyed {
		w.destroyed = true
		xproto.DestroyWindow(w.x, w.xw)
	}
	w.loop.Stop()
	return true
}

// SwapBuffers is a no-op; the window has no graphics context.
func (w *x11Window) SwapBuffers() {}

func (w *x11Window) RequestFrame(cb func(t time.Duration)) {
	w.loop.RequestFrame(cb)
}

func (w *x11Window) Run(ctx context.Context) error {
	go w.loop.Pace(ctx, w.interval)
	return w.loop.Run(ctx)
}

// Release closes the connection, which ends the reader goroutine.
func (w *x11Window) Release() {
	w.destroyed = true
	w.loop.Stop()
	w.x.Close()
}

// x11Keysyms maps keysyms to keys. Letters map from their lower case
// keysyms, the first level of a letter keycode.
var x11Keysyms = map[xproto.Keysym]key.Key{
	0x0020: key.Space,
	0x0027: key.Apostrophe,
	0x002c: key.Comma,
	0x002d: key.Minus,
	0x002e: key.Period,
	0x002f: key.Slash,
	0x0030: key.Digit0,
	0x0031: key.Digit1,
	0x0032: key.Digit2,
	0x0033: key.Digit3,
	0x0034: key.Digit4,
	0x0035: key.Digit5,
	0x0036: key.Digit6,
	0x0037: key.Digit7,
	0x0038: key.Digit8,
	0x0039: key.Digit9,
	0x003b: key.Semicolon,
	0x003d: key.Equal,
	0x005b: key.LeftBracket,
	0x005c: key.Backslash,
	0x005d: key.RightBracket,
	0x0060: key.GraveAccent,
	0xff1b: key.Escape,
	0xff0d: key.Enter,
	0xff09: key.Tab,
	0xff08: key.Backspace,
	0xff63: key.Insert,
	0xffff: key.Delete,
	0xff53: key.Right,
	0xff51: key.Left,
	0xff54: key.Down,
	0xff52: key.Up,
	0xff55: key.PageUp,
	0xff56: key.PageDown,
	0xff50: key.Home,
	0xff57: key.End,
	0xffe5: key.CapsLock,
	0xff14: key.ScrollLock,
	0xff7f: key.NumLock,
	0xff61: key.PrintScreen,
	0xff13: key.Pause,
	0xffb0: key.Numpad0,
	0xffb1: key.Numpad1,
	0xffb2: key.Numpad2,
	0xffb3: key.Numpad3,
	0xffb4: key.Numpad4,
	0xffb5: key.Numpad5,
	0xffb6: key.Numpad6,
	0xffb7: key.Numpad7,
	0xffb8: key.Numpad8,
	0xffb9: key.Numpad9,
	0xffae: key.NumpadDecimal,
	0xffaf: key.NumpadDivide,
	0xffaa: key.NumpadMultiply,
	0xffad: key.NumpadSubtract,
	0xffab: key.NumpadAdd,
	0xff8d: key.NumpadEnter,
	0xffbd: key.NumpadEqual,
	0xffe1: key.LeftShift,
	0xffe3: key.LeftControl,
	0xffe9: key.LeftAlt,
	0xffeb: key.LeftSuper,
	0xffe2: key.RightShift,
	0xffe4: key.RightControl,
	0xffea: key.RightAlt,
	0xfe03: key.RightAlt,
	0xffec: key.RightSuper,
	0xff67: key.Menu,
}

func init() {
	for i := 0; i < 26; i++ {
		x11Keysyms[xproto.Keysym('a'+i)] = key.A + key.Key(i)
	}
	for i := 0; i < 12; i++ {
		x11Keysyms[xproto.Keysym(0xffbe+i)] = key.F1 + key.Key(i)
	}
}
