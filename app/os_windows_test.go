// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"reflect"
	"testing"

	"kanvas.io/app/internal/windows"
	"kanvas.io/io/event"
	"kanvas.io/io/key"
	"kanvas.io/io/pointer"
)

func TestWin32Translate(t *testing.T) {
	lparam := func(x, y int16) uintptr {
		return uintptr(uint16(x)) | uintptr(uint16(y))<<16
	}
	tests := []struct {
		name   string
		msg    uint32
		wParam uintptr
		lParam uintptr
		mods   key.Modifiers
		want   event.Event
	}{
		{"key down", windows.WM_KEYDOWN, 'Q', 0, key.ModShift,
			key.Event{Key: key.Q, Action: event.Press, Modifiers: key.ModShift}},
		{"key repeat", windows.WM_KEYDOWN, 'Q', 1 << 30, 0,
			key.Event{Key: key.Q, Action: event.Repeat}},
		{"sys key up", windows.WM_SYSKEYUP, windows.VK_F10, 1<<30 | 1<<31, key.ModAlt,
			key.Event{Key: key.F10, Action: event.Release, Modifiers: key.ModAlt}},
		{"right shift", windows.WM_KEYDOWN, windows.VK_SHIFT, 0x36 << 16, 0,
			key.Event{Key: key.RightShift, Action: event.Press}},
		{"right control", windows.WM_KEYDOWN, windows.VK_CONTROL, 1 << 24, 0,
			key.Event{Key: key.RightControl, Action: event.Press}},
		{"numpad enter", windows.WM_KEYUP, windows.VK_RETURN, 1 << 24, 0,
			key.Event{Key: key.NumpadEnter, Action: event.Release}},
		{"numpad digit", windows.WM_KEYDOWN, windows.VK_NUMPAD0 + 4, 0, 0,
			key.Event{Key: key.Numpad4, Action: event.Press}},
		{"left down", windows.WM_LBUTTONDOWN, 0, lparam(3, 4), 0,
			pointer.ButtonEvent{Button: pointer.Button1, Action: event.Press}},
		{"right up", windows.WM_RBUTTONUP, 0, 0, key.ModControl,
			pointer.ButtonEvent{Button: pointer.Button2, Action: event.Release, Modifiers: key.ModControl}},
		{"middle down", windows.WM_MBUTTONDOWN, 0, 0, 0,
			pointer.ButtonEvent{Button: pointer.Button3, Action: event.Press}},
		{"x2 up", windows.WM_XBUTTONUP, windows.XBUTTON2 << 16, 0, 0,
			pointer.ButtonEvent{Button: pointer.Button5, Action: event.Release}},
		{"move", windows.WM_MOUSEMOVE, 0, lparam(-2, 700), 0,
			pointer.CursorEvent{X: -2, Y: 700}},
		{"wheel", windows.WM_MOUSEWHEEL, uintptr(uint16(windows.WHEEL_DELTA)) << 16, 0, 0,
			pointer.ScrollEvent{DY: -1}},
		{"horizontal wheel", windows.WM_MOUSEHWHEEL, uintptr(uint16(2*windows.WHEEL_DELTA)) << 16, 0, 0,
			pointer.ScrollEvent{DX: 2}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := win32Translate(tc.msg, tc.wParam, tc.lParam, tc.mods)
			if !ok {
				t.Fatal("message dropped")
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestWin32TranslateDrops(t *testing.T) {
	for _, tc := range []struct {
		msg    uint32
		wParam uintptr
	}{
		{windows.WM_KEYDOWN, 0xFF},
		{windows.WM_XBUTTONDOWN, 3 << 16},
		{windows.WM_SIZE, 0},
	} {
		if e, ok := win32Translate(tc.msg, tc.wParam, 0, 0); ok {
			t.Errorf("message %#x translated to %v, want dropped", tc.msg, e)
		}
	}
}
