// SPDX-License-Identifier: Unlicense OR MIT

//go:build js && wasm

package dom

import "syscall/js"

// FromValue copies the fields of a DOM event object. Properties the
// object lacks are left zero.
func FromValue(v js.Value) Event {
	e := Event{Type: Kind(v.Get("type").String())}
	num := func(name string) float64 {
		if p := v.Get(name); p.Type() == js.TypeNumber {
			return p.Float()
		}
		return 0
	}
	str := func(name string) string {
		if p := v.Get(name); p.Type() == js.TypeString {
			return p.String()
		}
		return ""
	}
	flag := func(name string) bool {
		return v.Get(name).Truthy()
	}
	e.Button = int(num("button"))
	e.ClientX, e.ClientY = num("clientX"), num("clientY")
	e.DeltaX, e.DeltaY = num("deltaX"), num("deltaY")
	e.Key, e.Code = str("key"), str("code")
	e.Repeat = flag("repeat")
	e.ShiftKey, e.CtrlKey = flag("shiftKey"), flag("ctrlKey")
	e.AltKey, e.MetaKey = flag("altKey"), flag("metaKey")
	e.TimeStamp = num("timeStamp")
	return e
}
