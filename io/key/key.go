// SPDX-License-Identifier: Unlicense OR MIT

// Package key implements keyboard events and the closed set of
// keys a canvas can report.
package key

import (
	"strings"

	"kanvas.io/io/event"
)

// An Event is generated when a key changes state.
type Event struct {
	// Key is the physical key.
	Key Key
	// Action is the transition of the key.
	Action event.Action
	// Modifiers is the set of active modifiers when the event was fired.
	Modifiers Modifiers
}

// Key identifies a physical keyboard key, independent of the keyboard
// layout. The set is closed: hosts translate their native codes into Key
// and drop codes without a mapping.
type Key uint8

const (
	Space Key = iota
	Apostrophe
	Comma
	Minus
	Period
	Slash
	Digit0
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	Semicolon
	Equal
	A
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z
	LeftBracket
	Backslash
	RightBracket
	GraveAccent
	Escape
	Enter
	Tab
	Backspace
	Insert
	Delete
	Right
	Left
	Down
	Up
	PageUp
	PageDown
	Home
	End
	CapsLock
	ScrollLock
	NumLock
	PrintScreen
	Pause
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	Numpad0
	Numpad1
	Numpad2
	Numpad3
	Numpad4
	Numpad5
	Numpad6
	Numpad7
	Numpad8
	Numpad9
	NumpadDecimal
	NumpadDivide
	NumpadMultiply
	NumpadSubtract
	NumpadAdd
	NumpadEnter
	NumpadEqual
	LeftShift
	LeftControl
	LeftAlt
	LeftSuper
	RightShift
	RightControl
	RightAlt
	RightSuper
	Menu
	// Unknown is the last key. It is reserved for hosts that report a key
	// they cannot identify, and bounds the key set.
	Unknown
)

// Count is the number of keys, and the length of any table indexed
// by Key.
const Count = int(Unknown) + 1

// Modifiers is a set of modifier keys.
type Modifiers uint8

const (
	// ModShift is the shift modifier key.
	ModShift Modifiers = 1 << iota
	// ModControl is the ctrl modifier key.
	ModControl
	// ModAlt is the alt modifier key, or the option
	// key on Apple keyboards.
	ModAlt
	// ModSuper is the "logo" modifier key, often
	// represented by a Windows logo or the command key.
	ModSuper
)

var names = [Count]string{
	Space: "Space", Apostrophe: "'", Comma: ",", Minus: "-", Period: ".", Slash: "/",
	Digit0: "0", Digit1: "1", Digit2: "2", Digit3: "3", Digit4: "4",
	Digit5: "5", Digit6: "6", Digit7: "7", Digit8: "8", Digit9: "9",
	Semicolon: ";", Equal: "=",
	A: "A", B: "B", C: "C", D: "D", E: "E", F: "F", G: "G", H: "H", I: "I",
	J: "J", K: "K", L: "L", M: "M", N: "N", O: "O", P: "P", Q: "Q", R: "R",
	S: "S", T: "T", U: "U", V: "V", W: "W", X: "X", Y: "Y", Z: "Z",
	LeftBracket: "[", Backslash: "\\", RightBracket: "]", GraveAccent: "`",
	Escape: "Escape", Enter: "Enter", Tab: "Tab", Backspace: "Backspace",
	Insert: "Insert", Delete: "Delete",
	Right: "Right", Left: "Left", Down: "Down", Up: "Up",
	PageUp: "PageUp", PageDown: "PageDown", Home: "Home", End: "End",
	CapsLock: "CapsLock", ScrollLock: "ScrollLock", NumLock: "NumLock",
	PrintScreen: "PrintScreen", Pause: "Pause",
	F1: "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6",
	F7: "F7", F8: "F8", F9: "F9", F10: "F10", F11: "F11", F12: "F12",
	Numpad0: "Numpad0", Numpad1: "Numpad1", Numpad2: "Numpad2", Numpad3: "Numpad3",
	Numpad4: "Numpad4", Numpad5: "Numpad5", Numpad6: "Numpad6", Numpad7: "Numpad7",
	Numpad8: "Numpad8", Numpad9: "Numpad9",
	NumpadDecimal: "NumpadDecimal", NumpadDivide: "NumpadDivide",
	NumpadMultiply: "NumpadMultiply", NumpadSubtract: "NumpadSubtract",
	NumpadAdd: "NumpadAdd", NumpadEnter: "NumpadEnter", NumpadEqual: "NumpadEqual",
	LeftShift: "LeftShift", LeftControl: "LeftControl", LeftAlt: "LeftAlt", LeftSuper: "LeftSuper",
	RightShift: "RightShift", RightControl: "RightControl", RightAlt: "RightAlt", RightSuper: "RightSuper",
	Menu:    "Menu",
	Unknown: "Unknown",
}

// Valid reports whether k is a member of the key set.
func (k Key) Valid() bool {
	return int(k) < Count
}

func (k Key) String() string {
	if !k.Valid() {
		panic("invalid Key")
	}
	return names[k]
}

// Contain reports whether m contains all modifiers
// in m2.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

func (m Modifiers) String() string {
	var strs []string
	if m.Contain(ModShift) {
		strs = append(strs, "Shift")
	}
	if m.Contain(ModControl) {
		strs = append(strs, "Ctrl")
	}
	if m.Contain(ModAlt) {
		strs = append(strs, "Alt")
	}
	if m.Contain(ModSuper) {
		strs = append(strs, "Super")
	}
	return strings.Join(strs, "-")
}

func (Event) ImplementsEvent() {}
