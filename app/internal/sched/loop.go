// SPDX-License-Identifier: Unlicense OR MIT

// Package sched implements the cooperative event loop shared by all
// canvas backends.
//
// A Loop runs tasks one at a time on the goroutine that calls Run, in
// the order they were posted. Backends deliver host callbacks and frame
// ticks as tasks, so everything they touch is confined to a single
// goroutine, the way a browser confines DOM callbacks to its event loop.
package sched

import (
	"context"
	"sync"
	"time"
)

// Loop is a serial task executor with a frame scheduler.
type Loop struct {
	// wakeup is signalled when tasks are posted.
	wakeup chan struct{}
	// frameWanted is signalled when the first frame callback
	// after a tick is requested. Pace waits on it.
	frameWanted chan struct{}
	stop        chan struct{}
	stopOnce    sync.Once

	mu     sync.Mutex
	tasks  []func()
	frames []func(t time.Duration)
	// ticking is set while a tick is queued but not yet run.
	ticking bool

	// last is the most recent tick timestamp, accessed only by Run.
	last time.Duration
}

// New returns a Loop ready to accept tasks.
func New() *Loop {
	return &Loop{
		wakeup:      make(chan struct{}, 1),
		frameWanted: make(chan struct{}, 1),
		stop:        make(chan struct{}),
	}
}

// Post schedules f to run on the loop. Post never blocks and is safe to
// call from any goroutine, including from a running task.
func (l *Loop) Post(f func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, f)
	l.mu.Unlock()
	select {
	case l.wakeup <- struct{}{}:
	default:
	}
}

// RequestFrame schedules cb to run once, on the next tick delivered
// after the call. It reports whether cb is the first callback waiting for
// that tick, in which case the caller is responsible for asking its frame
// source for a tick.
func (l *Loop) RequestFrame(cb func(t time.Duration)) bool {
	l.mu.Lock()
	first := len(l.frames) == 0
	l.frames = append(l.frames, cb)
	l.mu.Unlock()
	if first {
		select {
		case l.frameWanted <- struct{}{}:
		default:
		}
	}
	return first
}

// Tick posts a frame tick with timestamp t, measured from an arbitrary
// origin. The callbacks requested before the tick runs are invoked in
// request order. Timestamps are clamped so that callbacks never observe
// time going backwards.
func (l *Loop) Tick(t time.Duration) {
	l.mu.Lock()
	if l.ticking {
		l.mu.Unlock()
		return
	}
	l.ticking = true
	l.mu.Unlock()
	l.Post(func() {
		l.mu.Lock()
		frames := l.frames
		l.frames = nil
		l.ticking = false
		l.mu.Unlock()
		if t < l.last {
			t = l.last
		}
		l.last = t
		for _, cb := range frames {
			cb(t)
		}
	})
}

// Stop makes Run return after the task in progress.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stop)
	})
}

// Done returns a channel closed by Stop.
func (l *Loop) Done() <-chan struct{} {
	return l.stop
}

// Run executes tasks until ctx is done or Stop is called. It returns
// ctx.Err() in the first case and nil in the second. Tasks still queued
// when Run returns are discarded.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return nil
		case <-l.wakeup:
		}
		for {
			f, ok := l.next()
			if !ok {
				break
			}
			f()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-l.stop:
				return nil
			default:
			}
		}
	}
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.tasks) == 0 {
		return nil, false
	}
	f := l.tasks[0]
	l.tasks[0] = nil
	l.tasks = l.tasks[1:]
	return f, true
}

// Pace delivers ticks to l at the given interval for as long as frames
// are requested, aligning them to multiples of the interval since start.
// It returns when ctx is done or the loop is stopped. Pace stands in for
// a display refresh signal on hosts that lack one.
func (l *Loop) Pace(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second / 60
	}
	start := time.Now()
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.stop:
			return
		case <-l.frameWanted:
		}
		now := time.Since(start)
		next := (now/interval + 1) * interval
		timer.Reset(next - now)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-l.stop:
			timer.Stop()
			return
		case <-timer.C:
		}
		l.Tick(time.Since(start))
	}
}
