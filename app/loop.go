// SPDX-License-Identifier: Unlicense OR MIT

package app

import "time"

// Control is returned by a Frame to continue or end a render loop.
type Control uint8

const (
	// Continue schedules the next frame.
	Continue Control = iota
	// Stop ends the render loop.
	Stop
)

// Frame draws a frame. t is the frame timestamp from an origin chosen by
// the backend; successive timestamps never decrease.
type Frame func(t time.Duration) Control

// RenderLoop calls f once per frame for as long as it returns Continue.
// Exactly one frame is requested at a time, and frames of one loop never
// overlap. The loop ends without calling f when the canvas closes.
func (c *Canvas) RenderLoop(f Frame) {
	if c.stage == StageClosed {
		return
	}
	var frame func(t time.Duration)
	frame = func(t time.Duration) {
		if c.stage == StageClosed {
			return
		}
		if f(t) == Continue && c.stage != StageClosed {
			c.d.RequestFrame(frame)
		}
	}
	c.d.RequestFrame(frame)
}
