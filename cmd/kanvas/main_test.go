// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"testing"
	"time"

	"kanvas.io/app"
	"kanvas.io/io/event"
	"kanvas.io/io/key"
	"kanvas.io/io/pointer"
)

type fakeCanvas struct {
	closable bool
	escape   bool
	stage    app.Stage
	polls    int
	closes   int
}

func (c *fakeCanvas) PollEvents()                             { c.polls++ }
func (c *fakeCanvas) ShouldClose() bool                       { return false }
func (c *fakeCanvas) MouseButton(pointer.Button) event.Action { return event.Release }
func (c *fakeCanvas) SwapBuffers()                            {}
func (c *fakeCanvas) Stage() app.Stage                        { return c.stage }

func (c *fakeCanvas) Key(k key.Key) event.Action {
	if k == key.Escape && c.escape {
		return event.Press
	}
	return event.Release
}

func (c *fakeCanvas) Close() {
	c.closes++
	if c.closable {
		c.stage = app.StageClosed
	}
}

func TestEscape(t *testing.T) {
	for _, tc := range []struct {
		name     string
		closable bool
		want     app.Control
	}{
		{"window", true, app.Stop},
		{"browser", false, app.Continue},
	} {
		c := &fakeCanvas{closable: tc.closable, escape: true, stage: app.StageOpen}
		d := &demo{c: c}
		if got := d.frame(time.Millisecond); got != tc.want {
			t.Errorf("%s: frame = %v, want %v", tc.name, got, tc.want)
		}
		if c.closes != 1 {
			t.Errorf("%s: Close called %d times, want 1", tc.name, c.closes)
		}
	}
}

func TestFramePolls(t *testing.T) {
	c := &fakeCanvas{stage: app.StageOpen}
	d := &demo{c: c}
	for i := 1; i <= 3; i++ {
		if got := d.frame(time.Duration(i) * time.Second); got != app.Continue {
			t.Fatalf("frame %d = %v, want Continue", i, got)
		}
	}
	if c.polls != 3 || c.closes != 0 {
		t.Errorf("polled %d times, closed %d times, want 3 and 0", c.polls, c.closes)
	}
	if d.last != 3*time.Second {
		t.Errorf("state last logged at %v, want 3s", d.last)
	}
}
