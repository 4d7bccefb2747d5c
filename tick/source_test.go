package tick

import (
	"testing"
	"time"

	"github.com/miruken-go/lambdakit"
	"github.com/stretchr/testify/suite"
)

type SourceTestSuite struct {
	suite.Suite
}

func (suite *SourceTestSuite) TestManual() {
	suite.Run("FiresWhileRunning", func() {
		var m Manual
		var got []time.Duration
		suite.False(m.Fire(time.Second))
		m.Start(func(ts time.Duration) { got = append(got, ts) })
		suite.True(m.Started())
		suite.True(m.Fire(time.Second))
		m.Stop()
		suite.True(m.Stopped())
		suite.False(m.Fire(2 * time.Second))
		suite.Equal([]time.Duration{time.Second}, got)
		suite.Equal(1, m.Fires())
	})

	suite.Run("Late", func() {
		var m Manual
		count := 0
		m.Start(func(time.Duration) { count++ })
		m.Stop()
		m.Late(time.Second)
		suite.Equal(1, count)
	})

	suite.Run("StartTwicePanics", func() {
		var m Manual
		m.Start(func(time.Duration) {})
		suite.Panics(func() { m.Start(func(time.Duration) {}) })
	})
}

func (suite *SourceTestSuite) TestTicker() {
	suite.Run("DefaultInterval", func() {
		t := NewTicker(0)
		suite.Equal(lambdakit.CurrentOptions().FrameInterval, t.Interval())
	})

	suite.Run("Ticks", func() {
		t := NewTicker(time.Millisecond)
		ticks := make(chan time.Duration, 16)
		t.Start(func(ts time.Duration) {
			select {
			case ticks <- ts:
			default:
			}
		})
		defer t.Stop()
		select {
		case ts := <-ticks:
			suite.True(ts > 0)
		case <-time.After(5 * time.Second):
			suite.Fail("no tick received")
		}
	})

	suite.Run("StopFromCallback", func() {
		t := NewTicker(time.Millisecond)
		done := make(chan struct{})
		t.Start(func(time.Duration) {
			t.Stop()
			select {
			case <-done:
			default:
				close(done)
			}
		})
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			suite.Fail("no tick received")
		}
		suite.NotPanics(t.Stop)
	})
}

func TestSourceTestSuite(t *testing.T) {
	suite.Run(t, new(SourceTestSuite))
}
