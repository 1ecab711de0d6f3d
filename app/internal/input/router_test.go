// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"reflect"
	"testing"

	"kanvas.io/io/event"
	"kanvas.io/io/key"
	"kanvas.io/io/pointer"
	"kanvas.io/io/system"
)

func TestQueueOrder(t *testing.T) {
	var q Queue
	var want []event.Event
	for i := 0; i < 100; i++ {
		e := pointer.CursorEvent{X: float64(i), Y: float64(-i)}
		q.Push(e)
		want = append(want, e)
	}
	if n := q.Len(); n != len(want) {
		t.Fatalf("Len() = %d, want %d", n, len(want))
	}
	assertEvents(t, q.Drain(), want...)
}

func TestQueueDrainEmpties(t *testing.T) {
	var q Queue
	q.Push(system.CloseEvent{})
	assertEvents(t, q.Drain(), system.CloseEvent{})
	if evs := q.Drain(); len(evs) != 0 {
		t.Errorf("second drain returned %v, want nothing", evs)
	}
	if evs := q.Drain(); len(evs) != 0 {
		t.Errorf("third drain returned %v, want nothing", evs)
	}
}

func TestQueueNoDuplicates(t *testing.T) {
	var q Queue
	q.Push(system.SizeEvent{Width: 1, Height: 1})
	q.Push(system.SizeEvent{Width: 2, Height: 2})
	first := q.Drain()
	q.Push(system.SizeEvent{Width: 3, Height: 3})
	second := q.Drain()
	assertEvents(t, first, system.SizeEvent{Width: 1, Height: 1}, system.SizeEvent{Width: 2, Height: 2})
	assertEvents(t, second, system.SizeEvent{Width: 3, Height: 3})
	// The first drain result must not be affected by reuse of the
	// queue's buffer.
	assertEvents(t, first, system.SizeEvent{Width: 1, Height: 1}, system.SizeEvent{Width: 2, Height: 2})
}

func TestStateDefaults(t *testing.T) {
	var s State
	for k := key.Key(0); int(k) < key.Count; k++ {
		if got := s.Key(k); got != event.Release {
			t.Errorf("key %v: got %v, want Release", k, got)
		}
	}
	for b := pointer.Button(0); int(b) < pointer.ButtonCount; b++ {
		if got := s.Button(b); got != event.Release {
			t.Errorf("button %v: got %v, want Release", b, got)
		}
	}
}

func TestStateRecord(t *testing.T) {
	var s State
	s.Record(key.Event{Key: key.W, Action: event.Press})
	if got := s.Key(key.W); got != event.Press {
		t.Errorf("W after press: got %v", got)
	}
	s.Record(key.Event{Key: key.W, Action: event.Repeat})
	if got := s.Key(key.W); got != event.Press {
		t.Errorf("W after repeat: got %v, want Press", got)
	}
	s.Record(key.Event{Key: key.W, Action: event.Release})
	if got := s.Key(key.W); got != event.Release {
		t.Errorf("W after release: got %v", got)
	}
	s.Record(pointer.ButtonEvent{Button: pointer.Button8, Action: event.Press})
	if got := s.Button(pointer.Button8); got != event.Press {
		t.Errorf("Button8 after press: got %v", got)
	}
	// Events naming nothing leave the state alone.
	s.Record(pointer.CursorEvent{X: 1, Y: 2})
	s.Record(system.CloseEvent{})
	if got := s.Button(pointer.Button8); got != event.Press {
		t.Errorf("Button8 changed by unrelated events: got %v", got)
	}
}

func TestStateOutOfRange(t *testing.T) {
	var s State
	s.Record(key.Event{Key: key.Key(key.Count), Action: event.Press})
	s.Record(pointer.ButtonEvent{Button: pointer.Button(pointer.ButtonCount + 3), Action: event.Press})
	if got := s.Key(key.Key(key.Count)); got != event.Release {
		t.Errorf("out of range key: got %v", got)
	}
	if got := s.Button(pointer.Button(pointer.ButtonCount + 3)); got != event.Release {
		t.Errorf("out of range button: got %v", got)
	}
}

func TestRouterStateBeforeDrain(t *testing.T) {
	var r Router
	r.Add(key.Event{Key: key.Space, Action: event.Press})
	if got := r.Key(key.Space); got != event.Press {
		t.Fatalf("Space before drain: got %v, want Press", got)
	}
	if n := r.Pending(); n != 1 {
		t.Fatalf("Pending() = %d, want 1", n)
	}
	r.Add(key.Event{Key: key.Space, Action: event.Release})
	if got := r.Key(key.Space); got != event.Release {
		t.Fatalf("Space after release, undrained: got %v", got)
	}
	assertEvents(t, r.Drain(),
		key.Event{Key: key.Space, Action: event.Press},
		key.Event{Key: key.Space, Action: event.Release},
	)
	if got := r.Key(key.Space); got != event.Release {
		t.Errorf("Space after drain: got %v", got)
	}
}

func assertEvents(t *testing.T, got []event.Event, want ...event.Event) {
	t.Helper()
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got events %v, want %v", got, want)
	}
}
