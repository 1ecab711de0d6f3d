// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kanvas.io/app/internal/dom"
	"kanvas.io/io/system"
)

// domCanvas is the driver for a canvas element in a browser document. The
// element has no title, visibility or lifetime of its own, so those
// operations are no-ops.
type domCanvas struct {
	host dom.Host
	w    *callbacks
	dpr  float64
	subs []dom.Handle
}

func newDOMCanvas(ctx context.Context, host dom.Host, w *callbacks, cnf *Config) (*domCanvas, error) {
	if err := host.Attach(ctx); err != nil {
		if errors.Is(err, dom.ErrNoCanvas) {
			return nil, fmt.Errorf("%w: %v", ErrNoDrawable, err)
		}
		return nil, err
	}
	d := &domCanvas{
		host: host,
		w:    w,
		dpr:  host.DevicePixelRatio(),
	}
	if d.dpr <= 0 {
		d.dpr = 1
	}
	cnf.HiDPIFactor = d.dpr
	d.host.SetDrawableSize(d.drawableSize())
	for _, k := range dom.Kinds {
		h := d.input
		if k == dom.Resize {
			h = d.resize
		}
		d.subs = append(d.subs, host.Subscribe(k, h))
	}
	return d, nil
}

// drawableSize returns the element size in device pixels.
func (d *domCanvas) drawableSize() (uint32, uint32) {
	w, h := d.host.ElementSize()
	return uint32(w * d.dpr), uint32(h * d.dpr)
}

// resize sizes the drawable from the element size carried by raw, so
// that resizes queued back to back each keep their own size.
func (d *domCanvas) resize(raw dom.Event) {
	w, h := uint32(raw.Width*d.dpr), uint32(raw.Height*d.dpr)
	d.host.SetDrawableSize(w, h)
	d.w.Event(system.FramebufferSizeEvent{Width: w, Height: h})
	d.w.Event(system.SizeEvent{Width: w, Height: h})
}

func (d *domCanvas) input(raw dom.Event) {
	e, ok := dom.Translate(raw)
	if !ok {
		logger.Debugf("dropped %s event: button %d, code %q", raw.Type, raw.Button, raw.Code)
		return
	}
	d.w.Event(e)
}

func (d *domCanvas) Size() (uint32, uint32) {
	w, h := d.host.ElementSize()
	return uint32(w), uint32(h)
}

func (d *domCanvas) RequestFrame(cb func(t time.Duration)) {
	d.host.RequestFrame(cb)
}

func (d *domCanvas) Run(ctx context.Context) error {
	return d.host.Run(ctx)
}

// Release unsubscribes in reverse order of subscription.
func (d *domCanvas) Release() {
	for i := len(d.subs) - 1; i >= 0; i-- {
		d.host.Unsubscribe(d.subs[i])
	}
	d.subs = nil
	d.host.Stop()
}

func (d *domCanvas) SwapBuffers()      {}
func (d *domCanvas) ShouldClose() bool { return false }
func (d *domCanvas) SetTitle(string)   {}
func (d *domCanvas) Show()             {}
func (d *domCanvas) Hide()             {}
func (d *domCanvas) Close() bool       { return false }
