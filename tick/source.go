// Package tick provides the tick sources driving display links
// and timers: a wall clock Ticker and a Manual source fired by
// hand in tests.
package tick

import (
	"sync"
	"time"

	"github.com/miruken-go/lambdakit"
)

type (
	// Source delivers timestamped ticks to a single callback.
	// Timestamps are monotonic offsets from an epoch chosen by
	// the Source.  A Source may deliver one tick already in
	// flight after Stop returns.
	Source interface {
		Start(fn func(ts time.Duration))
		Stop()
	}

	// Ticker is a Source driven by a time.Ticker.
	Ticker struct {
		interval time.Duration
		lock     sync.Mutex
		stop     chan struct{}
		stopped  bool
	}

	// Manual is a Source whose ticks are fired by its owner,
	// typically a host frame loop or a test.
	Manual struct {
		lock    sync.Mutex
		fn      func(time.Duration)
		started bool
		stopped bool
		fires   int
	}
)


// Ticker

// NewTicker creates a Ticker firing every interval.
// A non-positive interval uses the configured FrameInterval.
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = lambdakit.CurrentOptions().FrameInterval
	}
	return &Ticker{interval: interval}
}

func (t *Ticker) Interval() time.Duration {
	return t.interval
}

func (t *Ticker) Start(fn func(ts time.Duration)) {
	if fn == nil {
		panic("fn cannot be nil")
	}
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.stop != nil {
		panic("ticker already started")
	}
	stop := make(chan struct{})
	t.stop = stop
	epoch := time.Now()
	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				fn(now.Sub(epoch))
			}
		}
	}()
}

// Stop ends ticking.  It does not wait for a tick in progress
// so it is safe to call from the tick callback.
func (t *Ticker) Stop() {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.stop != nil && !t.stopped {
		t.stopped = true
		close(t.stop)
	}
}


// Manual

func (m *Manual) Start(fn func(ts time.Duration)) {
	if fn == nil {
		panic("fn cannot be nil")
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	if m.started {
		panic("source already started")
	}
	m.fn, m.started = fn, true
}

func (m *Manual) Stop() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.stopped = true
}

// Fire delivers a tick if the source is running and
// reports whether it was delivered.
func (m *Manual) Fire(ts time.Duration) bool {
	m.lock.Lock()
	fn := m.fn
	running := m.started && !m.stopped
	if running {
		m.fires++
	}
	m.lock.Unlock()
	if running {
		fn(ts)
	}
	return running
}

// Late delivers a tick even after Stop, like a frame that was
// already in flight when the source was stopped.
func (m *Manual) Late(ts time.Duration) {
	m.lock.Lock()
	fn := m.fn
	m.lock.Unlock()
	if fn != nil {
		fn(ts)
	}
}

func (m *Manual) Started() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.started
}

func (m *Manual) Stopped() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.stopped
}

// Fires returns the number of ticks delivered by Fire.
func (m *Manual) Fires() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.fires
}
