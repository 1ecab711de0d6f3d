// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"context"
	"syscall/js"
	"time"

	"kanvas.io/app/internal/dom"
	"kanvas.io/app/internal/sched"
)

// jsHost is the dom.Host of the page running the program. DOM callbacks
// post to the loop and return at once.
type jsHost struct {
	loop   *sched.Loop
	reg    dom.Registry
	window js.Value
	cnv    js.Value

	requestAnimationFrame js.Value
	cancelAnimationFrame  js.Value
	redraw                js.Func
	// raf is the id of the pending animation frame request, or undefined.
	raf js.Value
	// stopped is set by cleanup. No frames are requested after it.
	stopped bool
	// listeners removes the DOM listener of each subscribed kind.
	listeners  map[dom.Kind]func()
	cleanfuncs []func()
}

func init() {
	drivers[BackendBrowser] = func(ctx context.Context, w *callbacks, cnf *Config) (driver, error) {
		return newDOMCanvas(ctx, newJSHost(), w, cnf)
	}
}

func newJSHost() *jsHost {
	h := &jsHost{
		loop:      sched.New(),
		window:    js.Global().Get("window"),
		listeners: make(map[dom.Kind]func()),
	}
	h.requestAnimationFrame = h.window.Get("requestAnimationFrame")
	h.cancelAnimationFrame = h.window.Get("cancelAnimationFrame")
	h.redraw = h.funcOf(func(this js.Value, args []js.Value) interface{} {
		h.raf = js.Undefined()
		ms := args[0].Float()
		h.loop.Tick(time.Duration(ms * float64(time.Millisecond)))
		return nil
	})
	return h
}

func (h *jsHost) Attach(ctx context.Context) error {
	cnv := js.Global().Get("document").Call("querySelector", "#canvas")
	if cnv.IsNull() || cnv.IsUndefined() {
		return dom.ErrNoCanvas
	}
	h.cnv = cnv
	return nil
}

func (h *jsHost) Subscribe(k dom.Kind, f func(e dom.Event)) dom.Handle {
	id := h.reg.Add(k, f)
	if _, ok := h.listeners[k]; !ok {
		h.listeners[k] = h.addEventListener(h.window, k, func(this js.Value, args []js.Value) interface{} {
			e := dom.FromValue(args[0])
			if e.Type == dom.Resize {
				e.Width, e.Height = h.ElementSize()
			}
			h.loop.Post(func() {
				h.reg.Dispatch(e)
			})
			return nil
		})
	}
	return id
}

func (h *jsHost) Unsubscribe(id dom.Handle) {
	k, ok := h.reg.Remove(id)
	if !ok || h.reg.Has(k) {
		return
	}
	if remove, ok := h.listeners[k]; ok {
		remove()
		delete(h.listeners, k)
	}
}

func (h *jsHost) ElementSize() (float64, float64) {
	return h.cnv.Get("offsetWidth").Float(), h.cnv.Get("offsetHeight").Float()
}

func (h *jsHost) DevicePixelRatio() float64 {
	return h.window.Get("devicePixelRatio").Float()
}

func (h *jsHost) SetDrawableSize(w, ht uint32) {
	h.cnv.Set("width", w)
	h.cnv.Set("height", ht)
}

func (h *jsHost) RequestFrame(cb func(t time.Duration)) {
	if h.stopped {
		return
	}
	if h.loop.RequestFrame(cb) {
		h.raf = h.requestAnimationFrame.Invoke(h.redraw)
	}
}

func (h *jsHost) Run(ctx context.Context) error {
	defer h.cleanup()
	return h.loop.Run(ctx)
}

func (h *jsHost) Stop() {
	h.loop.Stop()
}

// addEventListener registers f for events of kind k on this and returns
// a function removing it.
func (h *jsHost) addEventListener(this js.Value, k dom.Kind, f func(this js.Value, args []js.Value) interface{}) func() {
	jsf := js.FuncOf(f)
	this.Call("addEventListener", string(k), jsf)
	return func() {
		this.Call("removeEventListener", string(k), jsf)
		jsf.Release()
	}
}

// funcOf is like js.FuncOf but adds the js.Func to a list of
// functions to be released up.
func (h *jsHost) funcOf(f func(this js.Value, args []js.Value) interface{}) js.Func {
	jsf := js.FuncOf(f)
	h.cleanfuncs = append(h.cleanfuncs, jsf.Release)
	return jsf
}

func (h *jsHost) cleanup() {
	h.stopped = true
	if !h.raf.IsUndefined() {
		h.cancelAnimationFrame.Invoke(h.raf)
		h.raf = js.Undefined()
	}
	for _, id := range h.reg.Handles() {
		h.Unsubscribe(id)
	}
	h.listeners = nil
	// Run cleanup in reverse order of registration.
	for i := len(h.cleanfuncs) - 1; i >= 0; i-- {
		h.cleanfuncs[i]()
	}
	h.cleanfuncs = nil
}
