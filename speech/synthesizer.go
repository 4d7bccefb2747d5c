// Package speech adds closure callbacks to speech synthesizers.
package speech

import "github.com/miruken-go/lambdakit"

type (
	// Utterance is a chunk of text to be spoken.
	Utterance struct {
		Text  string
		Voice string
		Rate  float32
	}

	// Range locates characters within Utterance.Text.
	Range struct {
		Location int
		Length   int
	}

	// Synthesizer is the speech synthesizer of the host framework.
	Synthesizer interface {
		Delegate() Delegate
		SetDelegate(delegate Delegate)
		Speak(utterance *Utterance)
	}

	// Delegate receives speech progress events from a Synthesizer.
	Delegate interface {
		DidStart(synthesizer Synthesizer, utterance *Utterance)
		DidFinish(synthesizer Synthesizer, utterance *Utterance)
		DidPause(synthesizer Synthesizer, utterance *Utterance)
		DidContinue(synthesizer Synthesizer, utterance *Utterance)
		DidCancel(synthesizer Synthesizer, utterance *Utterance)
		WillSpeakRange(synthesizer Synthesizer, characters Range, utterance *Utterance)
	}

	// Handler observes one stage of speaking an utterance.
	Handler func(synthesizer Synthesizer, utterance *Utterance)

	// RangeHandler is called before the characters in a range are spoken.
	RangeHandler func(synthesizer Synthesizer, characters Range, utterance *Utterance)

	trampoline struct {
		lambdakit.Trampoline
	}
)

const (
	didStart       = "didStart"
	didFinish      = "didFinish"
	didPause       = "didPause"
	didContinue    = "didContinue"
	didCancel      = "didCancel"
	willSpeakRange = "willSpeakRange"
)

var closures = lambdakit.NewTable[Synthesizer](lambdakit.DelegateBinding[Synthesizer, Delegate]{
	Delegate:    Synthesizer.Delegate,
	SetDelegate: Synthesizer.SetDelegate,
	Trampoline: func(_ Synthesizer, reg *lambdakit.Registry) Delegate {
		return &trampoline{lambdakit.NewTrampoline(reg)}
	},
})

func SetDidStart(s Synthesizer, fn Handler)    { lambdakit.Set(closures, s, didStart, fn) }
func SetDidFinish(s Synthesizer, fn Handler)   { lambdakit.Set(closures, s, didFinish, fn) }
func SetDidPause(s Synthesizer, fn Handler)    { lambdakit.Set(closures, s, didPause, fn) }
func SetDidContinue(s Synthesizer, fn Handler) { lambdakit.Set(closures, s, didContinue, fn) }
func SetDidCancel(s Synthesizer, fn Handler)   { lambdakit.Set(closures, s, didCancel, fn) }

func SetWillSpeakRange(s Synthesizer, fn RangeHandler) {
	lambdakit.Set(closures, s, willSpeakRange, fn)
}

func DidStartOf(s Synthesizer) (Handler, bool)    { return handler(s, didStart) }
func DidFinishOf(s Synthesizer) (Handler, bool)   { return handler(s, didFinish) }
func DidPauseOf(s Synthesizer) (Handler, bool)    { return handler(s, didPause) }
func DidContinueOf(s Synthesizer) (Handler, bool) { return handler(s, didContinue) }
func DidCancelOf(s Synthesizer) (Handler, bool)   { return handler(s, didCancel) }

func WillSpeakRangeOf(s Synthesizer) (RangeHandler, bool) {
	return lambdakit.Get[Synthesizer, RangeHandler](closures, s, willSpeakRange)
}

// Speak enqueues utterance and calls didFinish once it has been spoken.
func Speak(s Synthesizer, utterance *Utterance, didFinish Handler) {
	SetDidFinish(s, didFinish)
	s.Speak(utterance)
}

// Mode reports whether the synthesizer events reach the closures.
func Mode(s Synthesizer) lambdakit.Mode {
	return closures.Mode(s)
}

// Clear removes the closures of s and its trampoline delegate.
func Clear(s Synthesizer) {
	closures.Clear(s)
}

func handler(s Synthesizer, name string) (Handler, bool) {
	return lambdakit.Get[Synthesizer, Handler](closures, s, name)
}

func (t *trampoline) fire(name string, s Synthesizer, u *Utterance) {
	if fn, ok := lambdakit.Lookup[Handler](t.Registry(), name); ok {
		fn(s, u)
	}
}

func (t *trampoline) DidStart(s Synthesizer, u *Utterance)    { t.fire(didStart, s, u) }
func (t *trampoline) DidFinish(s Synthesizer, u *Utterance)   { t.fire(didFinish, s, u) }
func (t *trampoline) DidPause(s Synthesizer, u *Utterance)    { t.fire(didPause, s, u) }
func (t *trampoline) DidContinue(s Synthesizer, u *Utterance) { t.fire(didContinue, s, u) }
func (t *trampoline) DidCancel(s Synthesizer, u *Utterance)   { t.fire(didCancel, s, u) }

func (t *trampoline) WillSpeakRange(s Synthesizer, characters Range, u *Utterance) {
	if fn, ok := lambdakit.Lookup[RangeHandler](t.Registry(), willSpeakRange); ok {
		fn(s, characters, u)
	}
}
