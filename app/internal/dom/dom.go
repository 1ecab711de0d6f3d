// SPDX-License-Identifier: Unlicense OR MIT

// Package dom describes a canvas element living in a browser document:
// the raw DOM events it delivers, their translation to canvas events, and
// the Host that subscribes to them.
//
// Two hosts exist. The in-browser host calls the DOM directly through
// syscall/js. The remote host drives a page in an external browser over a
// websocket. Both deliver the same raw Event values.
package dom

import (
	"context"
	"errors"
	"time"
)

// Kind is the DOM event type name, as found in Event.type.
type Kind string

const (
	Resize    Kind = "resize"
	MouseDown Kind = "mousedown"
	MouseUp   Kind = "mouseup"
	MouseMove Kind = "mousemove"
	Wheel     Kind = "wheel"
	KeyDown   Kind = "keydown"
	KeyUp     Kind = "keyup"
)

// Kinds lists the event kinds a canvas subscribes to, in subscription
// order.
var Kinds = []Kind{Resize, MouseDown, MouseMove, MouseUp, Wheel, KeyDown, KeyUp}

// Event is the subset of a DOM event a canvas reads. Field names follow
// the DOM properties they are copied from. Width and Height are set for
// Resize and hold the offset size of the canvas element in CSS pixels.
type Event struct {
	Type      Kind    `json:"type"`
	Button    int     `json:"button"`
	ClientX   float64 `json:"clientX"`
	ClientY   float64 `json:"clientY"`
	DeltaX    float64 `json:"deltaX"`
	DeltaY    float64 `json:"deltaY"`
	Key       string  `json:"key"`
	Code      string  `json:"code"`
	Repeat    bool    `json:"repeat"`
	ShiftKey  bool    `json:"shiftKey"`
	CtrlKey   bool    `json:"ctrlKey"`
	AltKey    bool    `json:"altKey"`
	MetaKey   bool    `json:"metaKey"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	TimeStamp float64 `json:"timeStamp"`
}

// ErrNoCanvas is returned by Host.Attach when the document has no canvas
// element.
var ErrNoCanvas = errors.New("dom: no canvas element")

// Handle identifies a subscription.
type Handle uint32

// Host is a source of DOM events for one canvas element.
//
// Handlers and frame callbacks run one at a time on the goroutine running
// Run. Subscribe, Unsubscribe and the size accessors must be called from
// that goroutine, or before Run starts.
type Host interface {
	// Attach locates the canvas element. It fails with ErrNoCanvas if
	// there is none.
	Attach(ctx context.Context) error
	// Subscribe registers h for events of kind k and returns a handle
	// for Unsubscribe.
	Subscribe(k Kind, h func(e Event)) Handle
	// Unsubscribe removes a subscription. Unknown handles are ignored.
	Unsubscribe(id Handle)
	// ElementSize returns the offset size of the canvas element in
	// CSS pixels.
	ElementSize() (w, h float64)
	// DevicePixelRatio returns the ratio of device pixels to CSS pixels.
	DevicePixelRatio() float64
	// SetDrawableSize sets the size of the canvas backing store in
	// device pixels.
	SetDrawableSize(w, h uint32)
	// RequestFrame schedules cb for the next animation frame.
	RequestFrame(cb func(t time.Duration))
	// Run dispatches events and frames until ctx is done or the host
	// goes away.
	Run(ctx context.Context) error
	// Stop makes Run return.
	Stop()
}
