package activity

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ProviderTestSuite struct {
	suite.Suite
}

func (suite *ProviderTestSuite) TestItem() {
	suite.Run("PerActivity", func() {
		p := NewStringProvider(func(_ Controller, t Type) (string, bool) {
			if t == PostToTwitter {
				return "short", true
			}
			return "a much longer text", true
		}, nil)
		item, ok := p.Item(nil, PostToTwitter)
		suite.True(ok)
		suite.Equal("short", item)
		item, _ = p.Item(nil, Mail)
		suite.Equal("a much longer text", item)
	})

	suite.Run("NoActivity", func() {
		called := false
		p := NewItemProvider(42, func(Controller, Type) (int, bool) {
			called = true
			return 7, true
		}, nil)
		item, ok := p.Item("controller", "")
		suite.False(ok)
		suite.Zero(item)
		suite.False(called)
		suite.Equal(42, p.Placeholder())
	})

	suite.Run("Excluded", func() {
		p := NewStringProvider(func(_ Controller, t Type) (string, bool) {
			return "", t != Print
		}, nil)
		_, ok := p.Item(nil, Print)
		suite.False(ok)
	})

	suite.Run("URL", func() {
		link, _ := url.Parse("https://miruken.com/share")
		p := NewURLProvider(func(Controller, Type) (*url.URL, bool) { return link, true }, nil)
		suite.Equal("https://www.example.com/", p.Placeholder().String())
		item, ok := p.Item(nil, CopyToPasteboard)
		suite.True(ok)
		suite.Same(link, item)
	})

	suite.Run("PlaceholderNotShared", func() {
		link := func(Controller, Type) (*url.URL, bool) { return nil, false }
		p1, p2 := NewURLProvider(link, nil), NewURLProvider(link, nil)
		suite.NotSame(p1.Placeholder(), p2.Placeholder())
		p1.Placeholder().Host = "changed.example.com"
		suite.Equal("https://www.example.com/", p2.Placeholder().String())
		suite.Equal("https://www.example.com/", NewURLProvider(link, nil).Placeholder().String())
	})

	suite.Run("NilItemPanics", func() {
		suite.Panics(func() { NewStringProvider(nil, nil) })
	})
}

func (suite *ProviderTestSuite) TestSubject() {
	suite.Run("Unset", func() {
		p := NewStringProvider(func(Controller, Type) (string, bool) { return "x", true }, nil)
		suite.Equal("", p.Subject(nil, Mail))
	})

	suite.Run("Set", func() {
		var seen Controller
		p := NewStringProvider(
			func(Controller, Type) (string, bool) { return "x", true },
			func(c Controller, t Type) string {
				seen = c
				return "Subject for " + string(t)
			})
		suite.Equal("Subject for mail", p.Subject("sheet", Mail))
		suite.Equal("sheet", seen)
	})
}

func TestProviderTestSuite(t *testing.T) {
	suite.Run(t, new(ProviderTestSuite))
}
