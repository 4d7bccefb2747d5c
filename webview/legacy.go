package webview

import (
	"net/http"

	"github.com/miruken-go/lambdakit"
)

type (
	// NavigationType is the user action that triggered a navigation.
	NavigationType uint8

	// LegacyView is the older web view of the host framework.
	LegacyView interface {
		Delegate() LegacyDelegate
		SetDelegate(delegate LegacyDelegate)
	}

	LegacyDelegate interface {
		ShouldStartLoad(view LegacyView, request *http.Request, navigation NavigationType) bool
		DidStartLoad(view LegacyView)
		DidFinishLoad(view LegacyView)
		DidFailLoad(view LegacyView, err error)
	}

	// ShouldStartLoad decides if view should load request.
	// Without one every request is loaded.
	ShouldStartLoad func(view LegacyView, request *http.Request, navigation NavigationType) bool

	// LoadHandler observes a stage of loading a frame.
	LoadHandler func(view LegacyView)

	// LoadFailed receives the error of a failed load.
	LoadFailed func(view LegacyView, err error)

	legacyTrampoline struct {
		lambdakit.Trampoline
	}
)

const (
	NavigationLinkClicked NavigationType = iota
	NavigationFormSubmitted
	NavigationBackForward
	NavigationReload
	NavigationFormResubmitted
	NavigationOther
)

const (
	shouldStartLoad = "shouldStartLoad"
	didStartLoad    = "didStartLoad"
	didFinishLoad   = "didFinishLoad"
	didFailLoad     = "didFailLoad"
)

var legacy = lambdakit.NewTable[LegacyView](lambdakit.DelegateBinding[LegacyView, LegacyDelegate]{
	Delegate:    LegacyView.Delegate,
	SetDelegate: LegacyView.SetDelegate,
	Trampoline: func(_ LegacyView, reg *lambdakit.Registry) LegacyDelegate {
		return &legacyTrampoline{lambdakit.NewTrampoline(reg)}
	},
})

func SetShouldStartLoad(view LegacyView, fn ShouldStartLoad) {
	lambdakit.Set(legacy, view, shouldStartLoad, fn)
}

func ShouldStartLoadOf(view LegacyView) (ShouldStartLoad, bool) {
	return lambdakit.Get[LegacyView, ShouldStartLoad](legacy, view, shouldStartLoad)
}

func SetDidStartLoad(view LegacyView, fn LoadHandler) {
	lambdakit.Set(legacy, view, didStartLoad, fn)
}

func DidStartLoadOf(view LegacyView) (LoadHandler, bool) {
	return lambdakit.Get[LegacyView, LoadHandler](legacy, view, didStartLoad)
}

func SetDidFinishLoad(view LegacyView, fn LoadHandler) {
	lambdakit.Set(legacy, view, didFinishLoad, fn)
}

func DidFinishLoadOf(view LegacyView) (LoadHandler, bool) {
	return lambdakit.Get[LegacyView, LoadHandler](legacy, view, didFinishLoad)
}

func SetDidFailLoad(view LegacyView, fn LoadFailed) {
	lambdakit.Set(legacy, view, didFailLoad, fn)
}

func DidFailLoadOf(view LegacyView) (LoadFailed, bool) {
	return lambdakit.Get[LegacyView, LoadFailed](legacy, view, didFailLoad)
}

func LegacyMode(view LegacyView) lambdakit.Mode {
	return legacy.Mode(view)
}

// ClearLegacy removes the closures of view and its trampoline delegate.
func ClearLegacy(view LegacyView) {
	legacy.Clear(view)
}

func (t *legacyTrampoline) ShouldStartLoad(
	view       LegacyView,
	request    *http.Request,
	navigation NavigationType,
) bool {
	if fn, ok := lambdakit.Lookup[ShouldStartLoad](t.Registry(), shouldStartLoad); ok {
		return fn(view, request, navigation)
	}
	return true
}

func (t *legacyTrampoline) DidStartLoad(view LegacyView) {
	if fn, ok := lambdakit.Lookup[LoadHandler](t.Registry(), didStartLoad); ok {
		fn(view)
	}
}

func (t *legacyTrampoline) DidFinishLoad(view LegacyView) {
	if fn, ok := lambdakit.Lookup[LoadHandler](t.Registry(), didFinishLoad); ok {
		fn(view)
	}
}

func (t *legacyTrampoline) DidFailLoad(view LegacyView, err error) {
	if fn, ok := lambdakit.Lookup[LoadFailed](t.Registry(), didFailLoad); ok {
		fn(view, err)
	}
}
