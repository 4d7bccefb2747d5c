package control

import (
	"runtime"
	"testing"
	"time"

	"github.com/miruken-go/lambdakit"
	"github.com/stretchr/testify/suite"
)

type (
	registration struct {
		target Target
		events Events
	}

	fakeControl struct {
		targets []registration
	}

	fakeItem struct {
		target ActionTarget
	}

	fakeRecognizer struct {
		state   GestureState
		targets []GestureTarget
	}

	conventionalTarget struct {
		taps int
	}
)

func (c *fakeControl) AddTarget(target Target, events Events) {
	c.targets = append(c.targets, registration{target, events})
}

func (c *fakeControl) RemoveTarget(target Target, events Events) {
	for i, r := range c.targets {
		if r.target == target && r.events == events {
			c.targets = append(c.targets[:i], c.targets[i+1:]...)
			return
		}
	}
}

func (c *fakeControl) send(events Events) {
	for _, r := range append([]registration(nil), c.targets...) {
		if r.events&events != 0 {
			r.target.Fire(c)
		}
	}
}

func (i *fakeItem) Target() ActionTarget     { return i.target }
func (i *fakeItem) SetTarget(t ActionTarget) { i.target = t }

func (i *fakeItem) tap() {
	if t := i.target; t != nil {
		t.Action(i)
	}
}

func (t *conventionalTarget) Action(BarButtonItem) { t.taps++ }

func (r *fakeRecognizer) AddTarget(t GestureTarget) { r.targets = append(r.targets, t) }
func (r *fakeRecognizer) State() GestureState       { return r.state }

func (r *fakeRecognizer) RemoveTarget(t GestureTarget) {
	for i, cur := range r.targets {
		if cur == t {
			r.targets = append(r.targets[:i], r.targets[i+1:]...)
			return
		}
	}
}

func (r *fakeRecognizer) move(state GestureState) {
	r.state = state
	for _, t := range r.targets {
		t.HandleGesture(r)
	}
}

type ControlTestSuite struct {
	suite.Suite
}

func (suite *ControlTestSuite) TestEvents() {
	suite.Run("AddEventHandler", func() {
		c := &fakeControl{}
		var got []string
		AddEventHandler(c, TouchUpInside, func(sender Control) {
			suite.Same(c, sender)
			got = append(got, "first")
		})
		AddEventHandler(c, TouchUpInside, func(Control) { got = append(got, "second") })
		AddEventHandler(c, ValueChanged, func(Control) { got = append(got, "changed") })
		suite.Equal(2, EventHandlers(c, TouchUpInside))
		c.send(TouchUpInside)
		suite.Equal([]string{"first", "second"}, got)
		c.send(ValueChanged)
		suite.Equal([]string{"first", "second", "changed"}, got)
	})

	suite.Run("Dispose", func() {
		c := &fakeControl{}
		first, second := 0, 0
		d := AddEventHandler(c, TouchDown, func(Control) { first++ })
		AddEventHandler(c, TouchDown, func(Control) { second++ })
		d.Dispose()
		d.Dispose()
		c.send(TouchDown)
		suite.Zero(first)
		suite.Equal(1, second)
		suite.Len(c.targets, 1)
		suite.Equal(1, EventHandlers(c, TouchDown))
	})

	suite.Run("DisposeLastDetaches", func() {
		c := &fakeControl{}
		AddEventHandler(c, TouchDown, func(Control) {}).Dispose()
		suite.Empty(c.targets)
		_, ok := controls.Load(c)
		suite.False(ok)
	})

	suite.Run("RemoveByMask", func() {
		c := &fakeControl{}
		calls := map[string]int{}
		AddEventHandler(c, TouchUpInside, func(Control) { calls["up"]++ })
		AddEventHandler(c, TouchUpInside|TouchUpOutside, func(Control) { calls["both"]++ })
		AddEventHandler(c, EditingChanged, func(Control) { calls["edit"]++ })
		RemoveEventHandlers(c, TouchUpInside)
		c.send(AllEvents)
		suite.Equal(map[string]int{"edit": 1}, calls)
		suite.Len(c.targets, 1)
	})

	suite.Run("RemoveAll", func() {
		c := &fakeControl{}
		AddEventHandler(c, TouchDown, func(Control) {})
		AddEventHandler(c, AllEditingEvents, func(Control) {})
		RemoveEventHandlers(c)
		suite.Empty(c.targets)
		suite.Zero(EventHandlers(c, TouchDown))
		suite.NotPanics(func() { RemoveEventHandlers(c) })
	})

	suite.Run("NilHandlerPanics", func() {
		suite.Panics(func() { AddEventHandler(&fakeControl{}, TouchDown, nil) })
	})
}

func (suite *ControlTestSuite) TestBarButtonItem() {
	suite.Run("OnAction", func() {
		item := &fakeItem{}
		taps := 0
		OnAction(item, func(sender BarButtonItem) {
			suite.Same(item, sender)
			taps++
		})
		item.tap()
		item.tap()
		suite.Equal(2, taps)
		suite.Equal(lambdakit.ModeClosures, ItemMode(item))
	})

	suite.Run("ReplacesTarget", func() {
		conventional := &conventionalTarget{}
		item := &fakeItem{target: conventional}
		suite.Equal(lambdakit.ModeDelegate, ItemMode(item))
		OnAction(item, func(BarButtonItem) {})
		item.tap()
		suite.Zero(conventional.taps)
		item.target = conventional
		item.tap()
		suite.Equal(1, conventional.taps)
		suite.Equal(lambdakit.ModeDelegate, ItemMode(item))
		ClearAction(item)
		suite.Same(conventional, item.target)
	})

	suite.Run("Single", func() {
		item := &fakeItem{}
		calls := ""
		OnAction(item, func(BarButtonItem) { calls += "a" })
		OnAction(item, func(BarButtonItem) { calls += "b" })
		item.tap()
		suite.Equal("b", calls)
		_, ok := ActionOf(item)
		suite.True(ok)
		ClearAction(item)
		_, ok = ActionOf(item)
		suite.False(ok)
		suite.Nil(item.target)
	})
}

func (suite *ControlTestSuite) TestGesture() {
	suite.Run("OnGesture", func() {
		r := &fakeRecognizer{}
		var states []GestureState
		OnGesture(r, func(sender Recognizer, state GestureState) {
			suite.Same(r, sender)
			states = append(states, state)
		})
		r.move(GestureBegan)
		r.move(GestureChanged)
		r.move(GestureRecognized)
		suite.Equal([]GestureState{GestureBegan, GestureChanged, GestureEnded}, states)
		suite.Equal("ended", states[2].String())
	})

	suite.Run("Replace", func() {
		r := &fakeRecognizer{}
		calls := ""
		OnGesture(r, func(Recognizer, GestureState) { calls += "a" })
		OnGesture(r, func(Recognizer, GestureState) { calls += "b" })
		suite.Len(r.targets, 1)
		r.move(GestureEnded)
		suite.Equal("b", calls)
	})

	suite.Run("Remove", func() {
		r := &fakeRecognizer{}
		OnGesture(r, func(Recognizer, GestureState) {})
		_, ok := GestureOf(r)
		suite.True(ok)
		OnGesture(r, nil)
		suite.Empty(r.targets)
		_, ok = GestureOf(r)
		suite.False(ok)
		suite.NotPanics(func() { RemoveGesture(r) })
	})
}

func (suite *ControlTestSuite) TestLifetime() {
	suite.Run("Control", func() {
		done := make(chan struct{})
		func() {
			c := &fakeControl{}
			runtime.SetFinalizer(c, func(*fakeControl) { close(done) })
			AddEventHandler(c, TouchUpInside, func(Control) {})
			suite.Equal(1, EventHandlers(c, TouchUpInside))
		}()
		suite.Eventually(finalized(done), time.Second, 10*time.Millisecond)
	})

	suite.Run("Recognizer", func() {
		done := make(chan struct{})
		func() {
			r := &fakeRecognizer{}
			runtime.SetFinalizer(r, func(*fakeRecognizer) { close(done) })
			OnGesture(r, func(Recognizer, GestureState) {})
		}()
		suite.Eventually(finalized(done), time.Second, 10*time.Millisecond)
	})

	suite.Run("HandlersFollowControl", func() {
		c := &fakeControl{}
		AddEventHandler(c, TouchDown, func(Control) {})
		runtime.GC()
		suite.Equal(1, EventHandlers(c, TouchDown))
		runtime.KeepAlive(c)
	})
}

func finalized(done <-chan struct{}) func() bool {
	return func() bool {
		runtime.GC()
		select {
		case <-done:
			return true
		default:
			return false
		}
	}
}

func TestControlTestSuite(t *testing.T) {
	suite.Run(t, new(ControlTestSuite))
}
