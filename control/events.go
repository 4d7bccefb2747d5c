// Package control adds closure handlers to controls, bar button
// items and gesture recognizers.
package control

import (
	"sync"

	"github.com/miruken-go/lambdakit"
	"github.com/miruken-go/lambdakit/internal/slices"
)

type (
	// Events is a mask of control events.
	Events uint32

	// Control is a target-action control of the host framework.
	// The host calls Fire on every target registered for an
	// event it sends.
	Control interface {
		AddTarget(target Target, events Events)
		RemoveTarget(target Target, events Events)
	}

	Target interface {
		Fire(sender Control)
	}

	// Handler is called with the control sending the event.
	Handler func(sender Control)

	// eventTarget keeps its handlers alive for as long as the
	// control keeps the target.
	eventTarget struct {
		handler Handler
		owner   *handlers
	}

	// handlers holds the targets added to one control keyed
	// by the events they were added for.
	handlers struct {
		lock   sync.Mutex
		events map[Events]*slices.Safe[*eventTarget]
	}
)

const (
	TouchDown Events = 1 << iota
	TouchDownRepeat
	TouchDragInside
	TouchDragOutside
	TouchDragEnter
	TouchDragExit
	TouchUpInside
	TouchUpOutside
	TouchCancel
	ValueChanged
	PrimaryActionTriggered
	EditingDidBegin
	EditingChanged
	EditingDidEnd
	EditingDidEndOnExit

	AllTouchEvents = TouchDown | TouchDownRepeat | TouchDragInside | TouchDragOutside |
		TouchDragEnter | TouchDragExit | TouchUpInside | TouchUpOutside | TouchCancel
	AllEditingEvents = EditingDidBegin | EditingChanged | EditingDidEnd | EditingDidEndOnExit
	AllEvents        = ^Events(0)
)

var controls lambdakit.Associations[Control, handlers]

// AddEventHandler adds handler for events to control.
// Any number of handlers may be added for the same events.
// Disposing the result removes only this handler.
func AddEventHandler(control Control, events Events, handler Handler) lambdakit.Disposable {
	if handler == nil {
		panic("handler cannot be nil")
	}
	target := &eventTarget{handler: handler}
	h := attach(control)
	list, ok := h.events[events]
	if !ok {
		list = slices.NewSafe[*eventTarget]()
		h.events[events] = list
	}
	list.Append(target)
	h.lock.Unlock()
	control.AddTarget(target, events)
	return lambdakit.DisposeOnce(func() {
		removeHandler(control, events, target)
	})
}

// RemoveEventHandlers removes the handlers added for events
// containing every event in mask.  Without a mask all handlers
// are removed.
func RemoveEventHandlers(control Control, mask ...Events) {
	var all Events
	for _, m := range mask {
		all |= m
	}
	h, ok := controls.Load(control)
	if !ok {
		return
	}
	type removed struct {
		target *eventTarget
		events Events
	}
	var targets []removed
	h.lock.Lock()
	for events, list := range h.events {
		if events&all != all {
			continue
		}
		for _, target := range list.Drain() {
			targets = append(targets, removed{target, events})
		}
		delete(h.events, events)
	}
	h.release(control)
	for _, r := range targets {
		control.RemoveTarget(r.target, r.events)
	}
}

// EventHandlers returns the number of handlers added to control
// for exactly events.
func EventHandlers(control Control, events Events) int {
	if h, ok := controls.Load(control); ok {
		h.lock.Lock()
		defer h.lock.Unlock()
		if list, ok := h.events[events]; ok {
			return list.Len()
		}
	}
	return 0
}

func removeHandler(control Control, events Events, target *eventTarget) {
	h, ok := controls.Load(control)
	if !ok {
		return
	}
	h.lock.Lock()
	list, ok := h.events[events]
	if ok {
		_, ok = list.DeleteFirst(func(t *eventTarget) bool { return t == target })
		if list.Len() == 0 {
			delete(h.events, events)
		}
	}
	h.release(control)
	if ok {
		control.RemoveTarget(target, events)
	}
}

// attach returns the locked handlers of control.
func attach(control Control) *handlers {
	for {
		h, _ := controls.LoadOrCreate(control, newHandlers)
		h.lock.Lock()
		if cur, ok := controls.Load(control); ok && cur == h {
			return h
		}
		h.lock.Unlock()
	}
}

// release unlocks h, detaching it from control when empty.
func (h *handlers) release(control Control) {
	if len(h.events) == 0 {
		controls.Delete(control)
	}
	h.lock.Unlock()
}

func newHandlers() *handlers {
	return &handlers{events: make(map[Events]*slices.Safe[*eventTarget])}
}

func (t *eventTarget) Fire(sender Control) {
	t.handler(sender)
}
