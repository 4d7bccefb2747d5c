package speech

import (
	"testing"

	"github.com/miruken-go/lambdakit"
	"github.com/stretchr/testify/suite"
)

type fakeSynthesizer struct {
	delegate Delegate
	queue    []*Utterance
}

func (s *fakeSynthesizer) Delegate() Delegate     { return s.delegate }
func (s *fakeSynthesizer) SetDelegate(d Delegate) { s.delegate = d }
func (s *fakeSynthesizer) Speak(u *Utterance)     { s.queue = append(s.queue, u) }

// speakAll plays every queued utterance reporting each word.
func (s *fakeSynthesizer) speakAll() {
	queue := s.queue
	s.queue = nil
	for _, u := range queue {
		if d := s.delegate; d != nil {
			d.DidStart(s, u)
			d.WillSpeakRange(s, Range{0, len(u.Text)}, u)
			d.DidFinish(s, u)
		}
	}
}

type SynthesizerTestSuite struct {
	suite.Suite
}

func (suite *SynthesizerTestSuite) TestSynthesizer() {
	suite.Run("Speak", func() {
		synth := &fakeSynthesizer{}
		hello := &Utterance{Text: "hello"}
		var events []string
		SetDidStart(synth, func(_ Synthesizer, u *Utterance) {
			events = append(events, "start:"+u.Text)
		})
		SetWillSpeakRange(synth, func(_ Synthesizer, r Range, u *Utterance) {
			suite.Equal(Range{0, 5}, r)
			events = append(events, "range")
		})
		Speak(synth, hello, func(s Synthesizer, u *Utterance) {
			suite.Same(synth, s)
			suite.Same(hello, u)
			events = append(events, "finish")
		})
		suite.Len(synth.queue, 1)
		synth.speakAll()
		suite.Equal([]string{"start:hello", "range", "finish"}, events)
	})

	suite.Run("PauseContinueCancel", func() {
		synth := &fakeSynthesizer{}
		u := &Utterance{Text: "long"}
		var events []string
		SetDidPause(synth, func(Synthesizer, *Utterance) { events = append(events, "pause") })
		SetDidContinue(synth, func(Synthesizer, *Utterance) { events = append(events, "continue") })
		SetDidCancel(synth, func(Synthesizer, *Utterance) { events = append(events, "cancel") })
		synth.delegate.DidPause(synth, u)
		synth.delegate.DidContinue(synth, u)
		synth.delegate.DidCancel(synth, u)
		synth.delegate.DidFinish(synth, u)
		suite.Equal([]string{"pause", "continue", "cancel"}, events)
	})

	suite.Run("Getters", func() {
		synth := &fakeSynthesizer{}
		for _, get := range []func(Synthesizer) (Handler, bool){
			DidStartOf, DidFinishOf, DidPauseOf, DidContinueOf, DidCancelOf,
		} {
			_, ok := get(synth)
			suite.False(ok)
		}
		_, ok := WillSpeakRangeOf(synth)
		suite.False(ok)
		SetDidPause(synth, func(Synthesizer, *Utterance) {})
		_, ok = DidPauseOf(synth)
		suite.True(ok)
		_, ok = DidStartOf(synth)
		suite.False(ok)
	})

	suite.Run("DelegateSilencesClosures", func() {
		synth := &fakeSynthesizer{}
		called := false
		SetDidStart(synth, func(Synthesizer, *Utterance) { called = true })
		synth.delegate = nil
		suite.Equal(lambdakit.ModeNone, Mode(synth))
		SetDidFinish(synth, func(Synthesizer, *Utterance) {})
		suite.Equal(lambdakit.ModeClosures, Mode(synth))
		synth.Speak(&Utterance{Text: "again"})
		synth.speakAll()
		suite.True(called)
		Clear(synth)
		suite.Equal(lambdakit.ModeNone, Mode(synth))
	})
}

func TestSynthesizerTestSuite(t *testing.T) {
	suite.Run(t, new(SynthesizerTestSuite))
}
