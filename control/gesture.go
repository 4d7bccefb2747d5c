package control

import "github.com/miruken-go/lambdakit"

type (
	GestureState uint8

	// Recognizer is a gesture recognizer of the host framework.
	// It notifies each added target as its state changes.
	Recognizer interface {
		AddTarget(target GestureTarget)
		RemoveTarget(target GestureTarget)
		State() GestureState
	}

	GestureTarget interface {
		HandleGesture(sender Recognizer)
	}

	// GestureHandler receives the recognizer and its state.
	GestureHandler func(sender Recognizer, state GestureState)

	gestureTarget struct {
		handler lambdakit.Slot[GestureHandler]
	}
)

const (
	GesturePossible GestureState = iota
	GestureBegan
	GestureChanged
	GestureEnded
	GestureCancelled
	GestureFailed

	GestureRecognized = GestureEnded
)

var gestures lambdakit.Associations[Recognizer, gestureTarget]

func (s GestureState) String() string {
	switch s {
	case GesturePossible:
		return "possible"
	case GestureBegan:
		return "began"
	case GestureChanged:
		return "changed"
	case GestureEnded:
		return "ended"
	case GestureCancelled:
		return "cancelled"
	case GestureFailed:
		return "failed"
	}
	return "unknown"
}

// OnGesture makes handler the closure of recognizer, replacing
// a closure set before.  A nil handler removes it.
func OnGesture(recognizer Recognizer, handler GestureHandler) {
	if handler == nil {
		RemoveGesture(recognizer)
		return
	}
	target, created := gestures.LoadOrCreate(recognizer, func() *gestureTarget {
		return new(gestureTarget)
	})
	target.handler.Set(handler)
	if created {
		recognizer.AddTarget(target)
	}
}

func GestureOf(recognizer Recognizer) (GestureHandler, bool) {
	if target, ok := gestures.Load(recognizer); ok {
		return target.handler.Get()
	}
	return nil, false
}

// RemoveGesture removes the closure of recognizer and its target.
// Targets added by other means are unaffected.
func RemoveGesture(recognizer Recognizer) {
	if target, ok := gestures.Delete(recognizer); ok {
		target.handler.Clear()
		recognizer.RemoveTarget(target)
	}
}

func (t *gestureTarget) HandleGesture(sender Recognizer) {
	if fn, ok := t.handler.Get(); ok {
		fn(sender, sender.State())
	}
}
