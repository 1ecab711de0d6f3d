// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"
	"unsafe"

	syscall "golang.org/x/sys/windows"

	"kanvas.io/app/internal/sched"
	"kanvas.io/app/internal/windows"
	"kanvas.io/io/event"
	"kanvas.io/io/key"
	"kanvas.io/io/pointer"
	"kanvas.io/io/system"
)

// window is the driver of a Win32 window. Window messages are handled on
// a locked message thread, which translates input and posts the events
// to the loop.
type window struct {
	hwnd     syscall.Handle
	w        *callbacks
	loop     *sched.Loop
	interval time.Duration

	// Accessed only from the loop.
	width, height uint32
	shouldClose   bool
	destroyed     bool
}

// _WM_DESTROY_WINDOW asks the message thread to destroy the window.
const _WM_DESTROY_WINDOW = windows.WM_USER + iota

// winMap maps win32 HWNDs to *windows.
var winMap sync.Map

var resources struct {
	once sync.Once
	// handle is the module handle from GetModuleHandle.
	handle syscall.Handle
	// class is the window class from RegisterClassEx.
	class uint16
}

func init() {
	drivers[BackendWindows] = newWindow
}

func newWindow(ctx context.Context, w *callbacks, cnf *Config) (driver, error) {
	win := &window{
		w:        w,
		loop:     sched.New(),
		interval: time.Second / time.Duration(cnf.FrameRate),
		width:    cnf.Width,
		height:   cnf.Height,
	}
	cerr := make(chan error)
	go func() {
		// GetMessage and PeekMessage can filter on a window HWND, but
		// then thread-specific messages such as WM_QUIT are ignored.
		// Instead lock the thread so window messages arrive through
		// unfiltered GetMessage calls.
		runtime.LockOSThread()
		if err := win.create(cnf); err != nil {
			cerr <- err
			return
		}
		winMap.Store(win.hwnd, win)
		defer winMap.Delete(win.hwnd)
		cerr <- nil
		if err := pump(); err != nil {
			logger.Errorf("windows: %v", err)
		}
		win.loop.Stop()
	}()
	if err := <-cerr; err != nil {
		return nil, err
	}
	return win, nil
}

// initResources initializes the resources global.
func initResources() error {
	windows.SetProcessDPIAware()
	hInst, err := windows.GetModuleHandle()
	if err != nil {
		return err
	}
	resources.handle = hInst
	cursor, err := windows.LoadCursor(windows.IDC_ARROW)
	if err != nil {
		return err
	}
	wcls := windows.WndClassEx{
		CbSize:        uint32(unsafe.Sizeof(windows.WndClassEx{})),
		Style:         windows.CS_HREDRAW | windows.CS_VREDRAW | windows.CS_OWNDC,
		LpfnWndProc:   syscall.NewCallback(windowProc),
		HInstance:     hInst,
		HCursor:       cursor,
		LpszClassName: syscall.StringToUTF16Ptr("KanvasWindow"),
	}
	cls, err := windows.RegisterClassEx(&wcls)
	if err != nil {
		return err
	}
	resources.class = cls
	return nil
}

func (w *window) create(cnf *Config) error {
	var resErr error
	resources.once.Do(func() {
		resErr = initResources()
	})
	if resErr != nil {
		return resErr
	}
	dwStyle := uint32(windows.WS_OVERLAPPEDWINDOW | windows.WS_CLIPSIBLINGS | windows.WS_CLIPCHILDREN)
	dwExStyle := uint32(windows.WS_EX_APPWINDOW | windows.WS_EX_WINDOWEDGE)
	// Size the frame so the client area has the requested size.
	r := windows.Rect{Right: int32(cnf.Width), Bottom: int32(cnf.Height)}
	windows.AdjustWindowRectEx(&r, dwStyle, 0, dwExStyle)
	hwnd, err := windows.CreateWindowEx(dwExStyle,
		resources.class,
		cnf.Title,
		dwStyle,
		windows.CW_USEDEFAULT, windows.CW_USEDEFAULT,
		r.Right-r.Left, r.Bottom-r.Top,
		0,
		0,
		resources.handle,
		0)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoDrawable, err)
	}
	w.hwnd = hwnd
	cnf.HiDPIFactor = float64(windows.GetDpiForWindow(hwnd)) / 96
	if !cnf.Hidden {
		windows.ShowWindow(hwnd, windows.SW_SHOW)
	}
	return nil
}

// pump dispatches messages until WM_QUIT.
func pump() error {
	msg := new(windows.Msg)
	for {
		switch ret := windows.GetMessage(msg, 0, 0, 0); ret {
		case -1:
			return errors.New("GetMessage failed")
		case 0:
			// WM_QUIT received.
			return nil
		}
		windows.TranslateMessage(msg)
		windows.DispatchMessage(msg)
	}
}

func windowProc(hwnd syscall.Handle, msg uint32, wParam, lParam uintptr) uintptr {
	win, exists := winMap.Load(hwnd)
	if !exists {
		return windows.DefWindowProc(hwnd, msg, wParam, lParam)
	}
	w := win.(*window)

	switch msg {
	case windows.WM_CLOSE:
		// Report the request and leave the window alone until the
		// program closes it.
		w.loop.Post(func() {
			w.shouldClose = true
			w.w.Event(system.CloseEvent{})
		})
		return 0
	case _WM_DESTROY_WINDOW:
		windows.DestroyWindow(hwnd)
		return 0
	case windows.WM_DESTROY:
		windows.PostQuitMessage(0)
		return 0
	case windows.WM_SIZE:
		width, height := uint32(lParam&0xffff), uint32((lParam>>16)&0xffff)
		w.loop.Post(func() {
			w.resize(width, height)
		})
	default:
		e, ok := win32Translate(msg, wParam, lParam, getModifiers())
		if !ok {
			break
		}
		w.loop.Post(func() {
			w.w.Event(e)
		})
		if wParam == windows.VK_F10 && (msg == windows.WM_SYSKEYDOWN || msg == windows.WM_SYSKEYUP) {
			// Reserve F10 for ourselves, and don't let it open the system menu.
			return 0
		}
	}
	return windows.DefWindowProc(hwnd, msg, wParam, lParam)
}

func (w *window) resize(width, height uint32) {
	// Minimizing reports an empty client area.
	if width == 0 && height == 0 || width == w.width && height == w.height {
		return
	}
	w.width, w.height = width, height
	w.w.Event(system.FramebufferSizeEvent{Width: width, Height: height})
	w.w.Event(system.SizeEvent{Width: width, Height: height})
}

func getModifiers() key.Modifiers {
	var kmods key.Modifiers
	if windows.GetKeyState(windows.VK_LWIN)&0x8000 != 0 || windows.GetKeyState(windows.VK_RWIN)&0x8000 != 0 {
		kmods |= key.ModSuper
	}
	if windows.GetKeyState(windows.VK_MENU)&0x8000 != 0 {
		kmods |= key.ModAlt
	}
	if windows.GetKeyState(windows.VK_CONTROL)&0x8000 != 0 {
		kmods |= key.ModControl
	}
	if windows.GetKeyState(windows.VK_SHIFT)&0x8000 != 0 {
		kmods |= key.ModShift
	}
	return kmods
}

// win32Translate converts an input message. mods is the modifier state
// when the message was generated.
func win32Translate(msg uint32, wParam, lParam uintptr, mods key.Modifiers) (event.Event, bool) {
	button := func(b pointer.Button, act event.Action) (event.Event, bool) {
		return pointer.ButtonEvent{Button: b, Action: act, Modifiers: mods}, true
	}
	switch msg {
	case windows.WM_KEYDOWN, windows.WM_SYSKEYDOWN, windows.WM_KEYUP, windows.WM_SYSKEYUP:
		k, ok := convertKeyCode(wParam, lParam)
		if !ok {
			return nil, false
		}
		act := event.Press
		switch {
		case msg == windows.WM_KEYUP || msg == windows.WM_SYSKEYUP:
			act = event.Release
		case lParam&(1<<30) != 0:
			// The key was down before the message.
			act = event.Repeat
		}
		return key.Event{Key: k, Action: act, Modifiers: mods}, true
	case windows.WM_LBUTTONDOWN:
		return button(pointer.Button1, event.Press)
	case windows.WM_LBUTTONUP:
		return button(pointer.Button1, event.Release)
	case windows.WM_RBUTTONDOWN:
		return button(pointer.Button2, event.Press)
	case windows.WM_RBUTTONUP:
		return button(pointer.Button2, event.Release)
	case windows.WM_MBUTTONDOWN:
		return button(pointer.Button3, event.Press)
	case windows.WM_MBUTTONUP:
		return button(pointer.Button3, event.Release)
	case windows.WM_XBUTTONDOWN, windows.WM_XBUTTONUP:
		act := event.Press
		if msg == windows.WM_XBUTTONUP {
			act = event.Release
		}
		switch (wParam >> 16) & 0xffff {
		case windows.XBUTTON1:
			return button(pointer.Button4, act)
		case windows.XBUTTON2:
			return button(pointer.Button5, act)
		}
		return nil, false
	case windows.WM_MOUSEMOVE:
		x, y := coordsFromlParam(lParam)
		return pointer.CursorEvent{X: float64(x), Y: float64(y), Modifiers: mods}, true
	case windows.WM_MOUSEWHEEL, windows.WM_MOUSEHWHEEL:
		dist := float64(int16(wParam>>16)) / windows.WHEEL_DELTA
		if msg == windows.WM_MOUSEHWHEEL {
			return pointer.ScrollEvent{DX: dist, Modifiers: mods}, true
		}
		// Positive wheel distances point away from the user.
		return pointer.ScrollEvent{DY: -dist, Modifiers: mods}, true
	}
	return nil, false
}

func coordsFromlParam(lParam uintptr) (int, int) {
	x := int(int16(lParam & 0xffff))
	y := int(int16((lParam >> 16) & 0xffff))
	return x, y
}

// convertKeyCode maps a virtual key code to a key. Generic modifier
// codes are resolved to a side from the scan code and extended key flag
// in lParam.
func convertKeyCode(code, lParam uintptr) (key.Key, bool) {
	scan := (lParam >> 16) & 0xff
	extended := lParam&(1<<24) != 0
	switch {
	case '0' <= code && code <= '9':
		return key.Digit0 + key.Key(code-'0'), true
	case 'A' <= code && code <= 'Z':
		return key.A + key.Key(code-'A'), true
	case windows.VK_F1 <= code && code < windows.VK_F1+12:
		return key.F1 + key.Key(code-windows.VK_F1), true
	case windows.VK_NUMPAD0 <= code && code < windows.VK_NUMPAD0+10:
		return key.Numpad0 + key.Key(code-windows.VK_NUMPAD0), true
	}
	switch code {
	case windows.VK_SHIFT:
		// 0x36 is the scan code of the right shift key.
		if scan == 0x36 {
			return key.RightShift, true
		}
		return key.LeftShift, true
	case windows.VK_CONTROL:
		if extended {
			return key.RightControl, true
		}
		return key.LeftControl, true
	case windows.VK_MENU:
		if extended {
			return key.RightAlt, true
		}
		return key.LeftAlt, true
	case windows.VK_RETURN:
		if extended {
			return key.NumpadEnter, true
		}
		return key.Enter, true
	}
	k, ok := win32Keys[code]
	return k, ok
}

var win32Keys = map[uintptr]key.Key{
	windows.VK_SPACE:         key.Space,
	windows.VK_OEM_7:         key.Apostrophe,
	windows.VK_OEM_COMMA:     key.Comma,
	windows.VK_OEM_MINUS:     key.Minus,
	windows.VK_OEM_PERIOD:    key.Period,
	windows.VK_OEM_2:         key.Slash,
	windows.VK_OEM_1:         key.Semicolon,
	windows.VK_OEM_PLUS:      key.Equal,
	windows.VK_OEM_4:         key.LeftBracket,
	windows.VK_OEM_5:         key.Backslash,
	windows.VK_OEM_102:       key.Backslash,
	windows.VK_OEM_6:         key.RightBracket,
	windows.VK_OEM_3:         key.GraveAccent,
	windows.VK_ESCAPE:        key.Escape,
	windows.VK_TAB:           key.Tab,
	windows.VK_BACK:          key.Backspace,
	windows.VK_INSERT:        key.Insert,
	windows.VK_DELETE:        key.Delete,
	windows.VK_RIGHT:         key.Right,
	windows.VK_LEFT:          key.Left,
	windows.VK_DOWN:          key.Down,
	windows.VK_UP:            key.Up,
	windows.VK_PRIOR:         key.PageUp,
	windows.VK_NEXT:          key.PageDown,
	windows.VK_HOME:          key.Home,
	windows.VK_END:           key.End,
	windows.VK_CAPITAL:       key.CapsLock,
	windows.VK_SCROLL:        key.ScrollLock,
	windows.VK_NUMLOCK:       key.NumLock,
	windows.VK_SNAPSHOT:      key.PrintScreen,
	windows.VK_PAUSE:         key.Pause,
	windows.VK_DECIMAL:       key.NumpadDecimal,
	windows.VK_DIVIDE:        key.NumpadDivide,
	windows.VK_MULTIPLY:      key.NumpadMultiply,
	windows.VK_SUBTRACT:      key.NumpadSubtract,
	windows.VK_ADD:           key.NumpadAdd,
	windows.VK_OEM_NEC_EQUAL: key.NumpadEqual,
	windows.VK_LSHIFT:        key.LeftShift,
	windows.VK_RSHIFT:        key.RightShift,
	windows.VK_LCONTROL:      key.LeftControl,
	windows.VK_RCONTROL:      key.RightControl,
	windows.VK_LMENU:         key.LeftAlt,
	windows.VK_RMENU:         key.RightAlt,
	windows.VK_LWIN:          key.LeftSuper,
	windows.VK_RWIN:          key.RightSuper,
	windows.VK_APPS:          key.Menu,
}

func (w *window) Size() (uint32, uint32) {
	return w.width, w.height
}

func (w *window) ShouldClose() bool {
	return w.shouldClose
}

func (w *window) SetTitle(title string) {
	if !w.destroyed {
		windows.SetWindowText(w.hwnd, title)
	}
}

func (w *window) Show() {
	if !w.destroyed {
		windows.ShowWindow(w.hwnd, windows.SW_SHOW)
	}
}

func (w *window) Hide() {
	if !w.destroyed {
		windows.ShowWindow(w.hwnd, windows.SW_HIDE)
	}
}

func (w *window) Close() bool {
	w.destroy()
	return true
}

func (w *window) destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	if err := windows.PostMessage(w.hwnd, _WM_DESTROY_WINDOW, 0, 0); err != nil {
		logger.Warnf("windows: %v", err)
	}
}

// SwapBuffers is a no-op; the window has no graphics context.
func (w *window) SwapBuffers() {}

func (w *window) RequestFrame(cb func(t time.Duration)) {
	w.loop.RequestFrame(cb)
}

func (w *window) Run(ctx context.Context) error {
	go w.loop.Pace(ctx, w.interval)
	return w.loop.Run(ctx)
}

func (w *window) Release() {
	w.destroy()
	w.loop.Stop()
}
