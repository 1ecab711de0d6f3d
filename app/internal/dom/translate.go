// SPDX-License-Identifier: Unlicense OR MIT

package dom

import (
	"strconv"

	"kanvas.io/io/event"
	"kanvas.io/io/key"
	"kanvas.io/io/pointer"
)

// buttons maps MouseEvent.button to canvas buttons. The DOM numbers the
// wheel button 1 and the secondary button 2.
var buttons = [...]pointer.Button{
	0: pointer.Button1,
	1: pointer.Button3,
	2: pointer.Button2,
	3: pointer.Button4,
	4: pointer.Button5,
}

// codes maps KeyboardEvent.code to keys. Letters, digits and function
// keys are added by init.
var codes = map[string]key.Key{
	"Space":          key.Space,
	"Quote":          key.Apostrophe,
	"Comma":          key.Comma,
	"Minus":          key.Minus,
	"Period":         key.Period,
	"Slash":          key.Slash,
	"Semicolon":      key.Semicolon,
	"Equal":          key.Equal,
	"BracketLeft":    key.LeftBracket,
	"Backslash":      key.Backslash,
	"BracketRight":   key.RightBracket,
	"Backquote":      key.GraveAccent,
	"Escape":         key.Escape,
	"Enter":          key.Enter,
	"Tab":            key.Tab,
	"Backspace":      key.Backspace,
	"Insert":         key.Insert,
	"Delete":         key.Delete,
	"ArrowRight":     key.Right,
	"ArrowLeft":      key.Left,
	"ArrowDown":      key.Down,
	"ArrowUp":        key.Up,
	"PageUp":         key.PageUp,
	"PageDown":       key.PageDown,
	"Home":           key.Home,
	"End":            key.End,
	"CapsLock":       key.CapsLock,
	"ScrollLock":     key.ScrollLock,
	"NumLock":        key.NumLock,
	"PrintScreen":    key.PrintScreen,
	"Pause":          key.Pause,
	"NumpadDecimal":  key.NumpadDecimal,
	"NumpadDivide":   key.NumpadDivide,
	"NumpadMultiply": key.NumpadMultiply,
	"NumpadSubtract": key.NumpadSubtract,
	"NumpadAdd":      key.NumpadAdd,
	"NumpadEnter":    key.NumpadEnter,
	"NumpadEqual":    key.NumpadEqual,
	"ShiftLeft":      key.LeftShift,
	"ControlLeft":    key.LeftControl,
	"AltLeft":        key.LeftAlt,
	"MetaLeft":       key.LeftSuper,
	"ShiftRight":     key.RightShift,
	"ControlRight":   key.RightControl,
	"AltRight":       key.RightAlt,
	"MetaRight":      key.RightSuper,
	"ContextMenu":    key.Menu,
	"Unidentified":   key.Unknown,
}

func init() {
	for i := 0; i < 26; i++ {
		codes["Key"+string(rune('A'+i))] = key.A + key.Key(i)
	}
	for i := 0; i < 10; i++ {
		d := string(rune('0' + i))
		codes["Digit"+d] = key.Digit0 + key.Key(i)
		codes["Numpad"+d] = key.Numpad0 + key.Key(i)
	}
	for i := 1; i <= 12; i++ {
		codes["F"+strconv.Itoa(i)] = key.F1 + key.Key(i-1)
	}
}

// Translate converts a raw DOM event to a canvas event. It reports false
// for events without a canvas equivalent: buttons and key codes missing
// from the tables, and kinds the canvas handles itself, such as Resize.
func Translate(e Event) (event.Event, bool) {
	switch e.Type {
	case MouseDown, MouseUp:
		b, ok := Button(e.Button)
		if !ok {
			return nil, false
		}
		act := event.Press
		if e.Type == MouseUp {
			act = event.Release
		}
		return pointer.ButtonEvent{Button: b, Action: act, Modifiers: e.Modifiers()}, true
	case MouseMove:
		return pointer.CursorEvent{X: e.ClientX, Y: e.ClientY, Modifiers: e.Modifiers()}, true
	case Wheel:
		return pointer.ScrollEvent{DX: e.DeltaX, DY: e.DeltaY, Modifiers: e.Modifiers()}, true
	case KeyDown, KeyUp:
		k, ok := Code(e.Code)
		if !ok {
			return nil, false
		}
		act := event.Release
		if e.Type == KeyDown {
			act = event.Press
			if e.Repeat {
				act = event.Repeat
			}
		}
		return key.Event{Key: k, Action: act, Modifiers: e.Modifiers()}, true
	}
	return nil, false
}

// Button maps a MouseEvent.button value to a canvas button.
func Button(b int) (pointer.Button, bool) {
	if b < 0 || b >= len(buttons) {
		return 0, false
	}
	return buttons[b], true
}

// Code maps a KeyboardEvent.code value to a key.
func Code(c string) (key.Key, bool) {
	k, ok := codes[c]
	return k, ok
}

// Modifiers returns the modifier set held during e.
func (e Event) Modifiers() key.Modifiers {
	var m key.Modifiers
	if e.ShiftKey {
		m |= key.ModShift
	}
	if e.CtrlKey {
		m |= key.ModControl
	}
	if e.AltKey {
		m |= key.ModAlt
	}
	if e.MetaKey {
		m |= key.ModSuper
	}
	return m
}
