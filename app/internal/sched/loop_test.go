// SPDX-License-Identifier: Unlicense OR MIT

package sched

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

func TestPostOrder(t *testing.T) {
	l := New()
	var got []int
	for i := 0; i < 10; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}
	l.Post(l.Stop)
	if err := l.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	want := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestPostFromGoroutines(t *testing.T) {
	l := New()
	const n = 50
	var wg sync.WaitGroup
	count := 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Post(func() { count++ })
		}()
	}
	go func() {
		wg.Wait()
		l.Post(l.Stop)
	}()
	if err := l.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if count != n {
		t.Errorf("ran %d tasks, want %d", count, n)
	}
}

func TestTickMonotonic(t *testing.T) {
	l := New()
	ticks := []time.Duration{10 * time.Millisecond, 30 * time.Millisecond}
	var got []time.Duration
	var frame func(t time.Duration)
	frame = func(ts time.Duration) {
		got = append(got, ts)
		if len(ticks) == 0 {
			l.Stop()
			return
		}
		l.RequestFrame(frame)
		next := ticks[0]
		ticks = ticks[1:]
		l.Tick(next)
	}
	if !l.RequestFrame(frame) {
		t.Fatal("first frame request not reported as first")
	}
	l.Tick(20 * time.Millisecond)
	if err := l.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	want := []time.Duration{20 * time.Millisecond, 20 * time.Millisecond, 30 * time.Millisecond}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got timestamps %v, want %v", got, want)
	}
}

func TestFrameRequestedDuringTickWaits(t *testing.T) {
	l := New()
	var calls []string
	l.RequestFrame(func(time.Duration) {
		calls = append(calls, "first")
		if l.RequestFrame(func(time.Duration) { calls = append(calls, "second") }) != true {
			t.Error("request after a tick should be the first of the next tick")
		}
		l.Post(l.Stop)
	})
	if l.RequestFrame(func(time.Duration) { calls = append(calls, "sibling") }) {
		t.Error("second request before a tick reported as first")
	}
	l.Tick(0)
	if err := l.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	want := []string{"first", "sibling"}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("got %v, want %v", calls, want)
	}
}

func TestRunContext(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	l.Post(cancel)
	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
}

func TestPace(t *testing.T) {
	l := New()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go l.Pace(ctx, time.Millisecond)
	n := 0
	var frame func(time.Duration)
	frame = func(time.Duration) {
		n++
		if n == 3 {
			l.Stop()
			return
		}
		l.RequestFrame(frame)
	}
	l.RequestFrame(frame)
	if err := l.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("got %d frames, want 3", n)
	}
}
