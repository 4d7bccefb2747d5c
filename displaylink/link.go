// Package displaylink runs a progress callback on every frame
// of a tick.Source until a duration has elapsed.
package displaylink

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/miruken-go/lambdakit"
	"github.com/miruken-go/lambdakit/internal"
	"github.com/miruken-go/lambdakit/tick"
)

type (
	// Handler receives the elapsed fraction of the duration in [0,1).
	Handler func(progress float64)

	// State of a Link.
	State uint8

	// Link drives a Handler from a tick.Source.
	Link struct {
		src   tick.Source
		lock  sync.Mutex
		box   *box
		state State
	}

	box struct {
		handler  Handler
		duration time.Duration
		start    time.Duration
		started  bool
	}
)

const (
	StateScheduled State = iota
	StateTicking
	StateCompleted
	StateInvalidated
)

// ErrInvalidDuration is returned for a non-positive duration.
var ErrInvalidDuration = errors.New("displaylink: duration must be positive")

// RunFor starts handler on src for the given duration.
// The first tick only records the start time so the delay
// before the first frame is not counted as elapsed.
func RunFor(
	src      tick.Source,
	duration time.Duration,
	handler  Handler,
) (*Link, error) {
	if src == nil {
		panic("src cannot be nil")
	}
	if handler == nil {
		panic("handler cannot be nil")
	}
	if err := internal.ValidateVar(duration, "gt=0"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, err)
	}
	link := &Link{
		src: src,
		box: &box{handler: handler, duration: duration},
	}
	src.Start(link.tick)
	return link, nil
}

// Run is RunFor on a real frame source ticking at the
// configured FrameInterval.
func Run(duration time.Duration, handler Handler) (*Link, error) {
	return RunFor(tick.NewTicker(0), duration, handler)
}

func (l *Link) State() State {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.state
}

// Invalidate stops the link.  Safe to call at any time,
// including after completion.
func (l *Link) Invalidate() {
	if l.detach(StateInvalidated) {
		l.src.Stop()
	}
}

func (l *Link) Dispose() {
	l.Invalidate()
}

func (l *Link) tick(ts time.Duration) {
	l.lock.Lock()
	b := l.box
	if b == nil {
		l.lock.Unlock()
		return
	}
	if !b.started {
		b.start, b.started = ts, true
		l.state = StateTicking
		l.lock.Unlock()
		return
	}
	elapsed := ts - b.start
	if elapsed >= b.duration {
		l.box = nil
		l.state = StateCompleted
		l.lock.Unlock()
		l.src.Stop()
		lambdakit.Trace().Info("display link completed", "duration", b.duration)
		return
	}
	l.lock.Unlock()
	b.handler(float64(elapsed) / float64(b.duration))
}

func (l *Link) detach(state State) bool {
	l.lock.Lock()
	defer l.lock.Unlock()
	if l.box == nil {
		return false
	}
	l.box = nil
	l.state = state
	return true
}

func (s State) String() string {
	switch s {
	case StateScheduled:
		return "scheduled"
	case StateTicking:
		return "ticking"
	case StateCompleted:
		return "completed"
	case StateInvalidated:
		return "invalidated"
	}
	return "unknown"
}

var _ lambdakit.Disposable = (*Link)(nil)
