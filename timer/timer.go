// Package timer schedules closures on a tick.Source.
package timer

import (
	"sync"
	"time"

	"github.com/miruken-go/lambdakit"
	"github.com/miruken-go/lambdakit/tick"
)

type (
	// Handler is called each time the Timer fires.
	Handler func(timer *Timer)

	// Timer fires a Handler once, or on every tick if it repeats.
	Timer struct {
		src     tick.Source
		repeats bool
		lock    sync.Mutex
		handler Handler
		fires   int
	}
)

// Schedule starts a Timer firing handler on each tick of src.
// A timer that does not repeat is invalidated by its first fire.
func Schedule(src tick.Source, repeats bool, handler Handler) *Timer {
	if src == nil {
		panic("src cannot be nil")
	}
	if handler == nil {
		panic("handler cannot be nil")
	}
	t := &Timer{src: src, repeats: repeats, handler: handler}
	src.Start(t.fire)
	return t
}

// After schedules handler every interval using a real ticker.
func After(interval time.Duration, repeats bool, handler Handler) *Timer {
	return Schedule(tick.NewTicker(interval), repeats, handler)
}

func (t *Timer) Repeats() bool {
	return t.repeats
}

// Valid reports whether the timer will fire again.
func (t *Timer) Valid() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.handler != nil
}

// Fires returns how many times the timer fired.
func (t *Timer) Fires() int {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.fires
}

// Invalidate stops the timer.  Safe to call from the handler.
func (t *Timer) Invalidate() {
	t.lock.Lock()
	valid := t.handler != nil
	t.handler = nil
	t.lock.Unlock()
	if valid {
		t.src.Stop()
	}
}

func (t *Timer) Dispose() {
	t.Invalidate()
}

func (t *Timer) fire(time.Duration) {
	t.lock.Lock()
	handler := t.handler
	if handler == nil {
		t.lock.Unlock()
		return
	}
	t.fires++
	if !t.repeats {
		t.handler = nil
	}
	t.lock.Unlock()
	if !t.repeats {
		t.src.Stop()
	}
	handler(t)
}

var _ lambdakit.Disposable = (*Timer)(nil)
