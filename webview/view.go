// Package webview adds closure callbacks to web views.
//
// The current View reports through two delegates, one for navigation
// and one for UI.  Setting any closure installs a trampoline as both.
// Queries without a closure answer with the defaults a web view uses
// when it has no delegate: navigation is allowed, credentials are
// offered as is, panels complete without input and previews are shown.
package webview

import (
	"net/http"
	"net/url"

	"github.com/miruken-go/lambdakit"
)

type (
	ActionPolicy   uint8
	ResponsePolicy uint8

	// Disposition tells a View how to answer an authentication challenge.
	Disposition uint8

	// Navigation identifies one navigation of a View.
	Navigation struct {
		ID  uint64
		URL *url.URL
	}

	NavigationAction struct {
		Request     *http.Request
		Type        NavigationType
		SourceFrame *FrameInfo
		TargetFrame *FrameInfo
	}

	NavigationResponse struct {
		Response     *http.Response
		ForMainFrame bool
		CanShowMIME  bool
	}

	FrameInfo struct {
		MainFrame bool
		Request   *http.Request
	}

	// Challenge is an authentication challenge raised by a server.
	Challenge struct {
		Host   string
		Realm  string
		Method string
	}

	Credential struct {
		User     string
		Password string
	}

	Configuration struct {
		UserAgent string
	}

	WindowFeatures struct {
		Width, Height *float64
		Resizable     *bool
	}

	PreviewElementInfo struct {
		LinkURL *url.URL
	}

	PreviewAction struct {
		Title string
	}

	// ViewController is an opaque controller of the host framework.
	ViewController any

	// View is the current web view of the host framework.
	View interface {
		NavigationDelegate() NavigationDelegate
		SetNavigationDelegate(delegate NavigationDelegate)
		UIDelegate() UIDelegate
		SetUIDelegate(delegate UIDelegate)
	}

	NavigationDelegate interface {
		DecidePolicyForAction(view View, action *NavigationAction, decide func(ActionPolicy))
		DecidePolicyForResponse(view View, response *NavigationResponse, decide func(ResponsePolicy))
		DidStartProvisionalNavigation(view View, navigation *Navigation)
		DidReceiveServerRedirect(view View, navigation *Navigation)
		DidFailProvisionalNavigation(view View, navigation *Navigation, err error)
		DidCommit(view View, navigation *Navigation)
		DidFinish(view View, navigation *Navigation)
		DidFail(view View, navigation *Navigation, err error)
		DidReceiveChallenge(view View, challenge *Challenge, complete func(Disposition, *Credential))
		ContentProcessDidTerminate(view View)
	}

	UIDelegate interface {
		CreateWebView(view View, config *Configuration, action *NavigationAction, features *WindowFeatures) View
		DidClose(view View)
		RunAlertPanel(view View, message string, frame *FrameInfo, complete func())
		RunConfirmPanel(view View, message string, frame *FrameInfo, complete func(bool))
		RunTextInputPanel(view View, prompt, defaultText string, frame *FrameInfo, complete func(text string, ok bool))
		ShouldPreviewElement(view View, info *PreviewElementInfo) bool
		PreviewingViewController(view View, info *PreviewElementInfo, actions []PreviewAction) ViewController
		CommitPreviewingViewController(view View, controller ViewController)
	}

	DecideActionPolicy   func(view View, action *NavigationAction, decide func(ActionPolicy))
	DecideResponsePolicy func(view View, response *NavigationResponse, decide func(ResponsePolicy))
	NavigationHandler    func(view View, navigation *Navigation)
	NavigationFailed     func(view View, navigation *Navigation, err error)
	ReceiveChallenge     func(view View, challenge *Challenge, complete func(Disposition, *Credential))
	ViewHandler          func(view View)
	CreateWebView        func(view View, config *Configuration, action *NavigationAction, features *WindowFeatures) View
	RunAlertPanel        func(view View, message string, frame *FrameInfo, complete func())
	RunConfirmPanel      func(view View, message string, frame *FrameInfo, complete func(bool))
	RunTextInputPanel    func(view View, prompt, defaultText string, frame *FrameInfo, complete func(text string, ok bool))
	ShouldPreviewElement func(view View, info *PreviewElementInfo) bool
	PreviewingController func(view View, info *PreviewElementInfo, actions []PreviewAction) ViewController
	CommitPreviewing     func(view View, controller ViewController)

	trampoline struct {
		lambdakit.Trampoline
	}

	// binding installs one trampoline as both delegates.
	binding struct{}
)

const (
	ActionCancel ActionPolicy = iota
	ActionAllow
)

const (
	ResponseCancel ResponsePolicy = iota
	ResponseAllow
)

const (
	UseCredential Disposition = iota
	PerformDefaultHandling
	CancelChallenge
	RejectProtectionSpace
)

const (
	decidePolicyForAction      = "decidePolicyForAction"
	decidePolicyForResponse    = "decidePolicyForResponse"
	didStartProvisional        = "didStartProvisional"
	didReceiveServerRedirect   = "didReceiveServerRedirect"
	didFailProvisional         = "didFailProvisional"
	didCommit                  = "didCommit"
	didFinish                  = "didFinish"
	didFail                    = "didFail"
	didReceiveChallenge        = "didReceiveChallenge"
	contentProcessDidTerminate = "contentProcessDidTerminate"
	createWebView              = "createWebView"
	didClose                   = "didClose"
	runAlertPanel              = "runAlertPanel"
	runConfirmPanel            = "runConfirmPanel"
	runTextInputPanel          = "runTextInputPanel"
	shouldPreviewElement       = "shouldPreviewElement"
	previewingController       = "previewingController"
	commitPreviewing           = "commitPreviewing"
)

var views = lambdakit.NewTable[View](binding{})

func (binding) Bind(view View, reg *lambdakit.Registry) {
	t := &trampoline{lambdakit.NewTrampoline(reg)}
	view.SetNavigationDelegate(t)
	view.SetUIDelegate(t)
}

func (binding) Unbind(view View) {
	if lambdakit.ModeOf(view.NavigationDelegate()) == lambdakit.ModeClosures {
		view.SetNavigationDelegate(nil)
	}
	if lambdakit.ModeOf(view.UIDelegate()) == lambdakit.ModeClosures {
		view.SetUIDelegate(nil)
	}
}

// Registry recovers the closures from whichever delegate
// still holds the trampoline.
func (binding) Registry(view View) *lambdakit.Registry {
	if reg := lambdakit.RegistryOf(view.NavigationDelegate()); reg != nil {
		return reg
	}
	return lambdakit.RegistryOf(view.UIDelegate())
}

// Mode is ModeClosures only while the trampoline holds both
// delegates.  Any conventional delegate makes it ModeDelegate.
func (binding) Mode(view View) lambdakit.Mode {
	nav := lambdakit.ModeOf(view.NavigationDelegate())
	ui := lambdakit.ModeOf(view.UIDelegate())
	switch {
	case nav == lambdakit.ModeClosures && ui == lambdakit.ModeClosures:
		return lambdakit.ModeClosures
	case nav == lambdakit.ModeDelegate || ui == lambdakit.ModeDelegate:
		return lambdakit.ModeDelegate
	}
	return lambdakit.ModeNone
}

func Mode(view View) lambdakit.Mode {
	return views.Mode(view)
}

// Clear removes the closures of view and its trampoline delegates.
func Clear(view View) {
	views.Clear(view)
}

// Navigation

func SetDecidePolicyForAction(view View, fn DecideActionPolicy) {
	lambdakit.Set(views, view, decidePolicyForAction, fn)
}

func DecidePolicyForActionOf(view View) (DecideActionPolicy, bool) {
	return lambdakit.Get[View, DecideActionPolicy](views, view, decidePolicyForAction)
}

func SetDecidePolicyForResponse(view View, fn DecideResponsePolicy) {
	lambdakit.Set(views, view, decidePolicyForResponse, fn)
}

func DecidePolicyForResponseOf(view View) (DecideResponsePolicy, bool) {
	return lambdakit.Get[View, DecideResponsePolicy](views, view, decidePolicyForResponse)
}

func SetDidStartProvisional(view View, fn NavigationHandler) {
	lambdakit.Set(views, view, didStartProvisional, fn)
}

func DidStartProvisionalOf(view View) (NavigationHandler, bool) {
	return lambdakit.Get[View, NavigationHandler](views, view, didStartProvisional)
}

func SetDidReceiveServerRedirect(view View, fn NavigationHandler) {
	lambdakit.Set(views, view, didReceiveServerRedirect, fn)
}

func DidReceiveServerRedirectOf(view View) (NavigationHandler, bool) {
	return lambdakit.Get[View, NavigationHandler](views, view, didReceiveServerRedirect)
}

func SetDidFailProvisional(view View, fn NavigationFailed) {
	lambdakit.Set(views, view, didFailProvisional, fn)
}

func DidFailProvisionalOf(view View) (NavigationFailed, bool) {
	return lambdakit.Get[View, NavigationFailed](views, view, didFailProvisional)
}

func SetDidCommit(view View, fn NavigationHandler) {
	lambdakit.Set(views, view, didCommit, fn)
}

func DidCommitOf(view View) (NavigationHandler, bool) {
	return lambdakit.Get[View, NavigationHandler](views, view, didCommit)
}

func SetDidFinish(view View, fn NavigationHandler) {
	lambdakit.Set(views, view, didFinish, fn)
}

func DidFinishOf(view View) (NavigationHandler, bool) {
	return lambdakit.Get[View, NavigationHandler](views, view, didFinish)
}

func SetDidFail(view View, fn NavigationFailed) {
	lambdakit.Set(views, view, didFail, fn)
}

func DidFailOf(view View) (NavigationFailed, bool) {
	return lambdakit.Get[View, NavigationFailed](views, view, didFail)
}

func SetDidReceiveChallenge(view View, fn ReceiveChallenge) {
	lambdakit.Set(views, view, didReceiveChallenge, fn)
}

func DidReceiveChallengeOf(view View) (ReceiveChallenge, bool) {
	return lambdakit.Get[View, ReceiveChallenge](views, view, didReceiveChallenge)
}

func SetContentProcessDidTerminate(view View, fn ViewHandler) {
	lambdakit.Set(views, view, contentProcessDidTerminate, fn)
}

func ContentProcessDidTerminateOf(view View) (ViewHandler, bool) {
	return lambdakit.Get[View, ViewHandler](views, view, contentProcessDidTerminate)
}

// UI

func SetCreateWebView(view View, fn CreateWebView) {
	lambdakit.Set(views, view, createWebView, fn)
}

func CreateWebViewOf(view View) (CreateWebView, bool) {
	return lambdakit.Get[View, CreateWebView](views, view, createWebView)
}

func SetDidClose(view View, fn ViewHandler) {
	lambdakit.Set(views, view, didClose, fn)
}

func DidCloseOf(view View) (ViewHandler, bool) {
	return lambdakit.Get[View, ViewHandler](views, view, didClose)
}

func SetRunAlertPanel(view View, fn RunAlertPanel) {
	lambdakit.Set(views, view, runAlertPanel, fn)
}

func RunAlertPanelOf(view View) (RunAlertPanel, bool) {
	return lambdakit.Get[View, RunAlertPanel](views, view, runAlertPanel)
}

func SetRunConfirmPanel(view View, fn RunConfirmPanel) {
	lambdakit.Set(views, view, runConfirmPanel, fn)
}

func RunConfirmPanelOf(view View) (RunConfirmPanel, bool) {
	return lambdakit.Get[View, RunConfirmPanel](views, view, runConfirmPanel)
}

func SetRunTextInputPanel(view View, fn RunTextInputPanel) {
	lambdakit.Set(views, view, runTextInputPanel, fn)
}

func RunTextInputPanelOf(view View) (RunTextInputPanel, bool) {
	return lambdakit.Get[View, RunTextInputPanel](views, view, runTextInputPanel)
}

func SetShouldPreviewElement(view View, fn ShouldPreviewElement) {
	lambdakit.Set(views, view, shouldPreviewElement, fn)
}

func ShouldPreviewElementOf(view View) (ShouldPreviewElement, bool) {
	return lambdakit.Get[View, ShouldPreviewElement](views, view, shouldPreviewElement)
}

func SetPreviewingController(view View, fn PreviewingController) {
	lambdakit.Set(views, view, previewingController, fn)
}

func PreviewingControllerOf(view View) (PreviewingController, bool) {
	return lambdakit.Get[View, PreviewingController](views, view, previewingController)
}

func SetCommitPreviewing(view View, fn CommitPreviewing) {
	lambdakit.Set(views, view, commitPreviewing, fn)
}

func CommitPreviewingOf(view View) (CommitPreviewing, bool) {
	return lambdakit.Get[View, CommitPreviewing](views, view, commitPreviewing)
}


// trampoline

func (t *trampoline) DecidePolicyForAction(
	view   View,
	action *NavigationAction,
	decide func(ActionPolicy),
) {
	if fn, ok := lambdakit.Lookup[DecideActionPolicy](t.Registry(), decidePolicyForAction); ok {
		fn(view, action, decide)
	} else {
		decide(ActionAllow)
	}
}

func (t *trampoline) DecidePolicyForResponse(
	view     View,
	response *NavigationResponse,
	decide   func(ResponsePolicy),
) {
	if fn, ok := lambdakit.Lookup[DecideResponsePolicy](t.Registry(), decidePolicyForResponse); ok {
		fn(view, response, decide)
	} else {
		decide(ResponseAllow)
	}
}

func (t *trampoline) DidStartProvisionalNavigation(view View, navigation *Navigation) {
	t.navigated(didStartProvisional, view, navigation)
}

func (t *trampoline) DidReceiveServerRedirect(view View, navigation *Navigation) {
	t.navigated(didReceiveServerRedirect, view, navigation)
}

func (t *trampoline) DidFailProvisionalNavigation(view View, navigation *Navigation, err error) {
	t.failed(didFailProvisional, view, navigation, err)
}

func (t *trampoline) DidCommit(view View, navigation *Navigation) {
	t.navigated(didCommit, view, navigation)
}

func (t *trampoline) DidFinish(view View, navigation *Navigation) {
	t.navigated(didFinish, view, navigation)
}

func (t *trampoline) DidFail(view View, navigation *Navigation, err error) {
	t.failed(didFail, view, navigation, err)
}

func (t *trampoline) DidReceiveChallenge(
	view      View,
	challenge *Challenge,
	complete  func(Disposition, *Credential),
) {
	if fn, ok := lambdakit.Lookup[ReceiveChallenge](t.Registry(), didReceiveChallenge); ok {
		fn(view, challenge, complete)
	} else {
		complete(UseCredential, nil)
	}
}

func (t *trampoline) ContentProcessDidTerminate(view View) {
	if fn, ok := lambdakit.Lookup[ViewHandler](t.Registry(), contentProcessDidTerminate); ok {
		fn(view)
	}
}

func (t *trampoline) CreateWebView(
	view     View,
	config   *Configuration,
	action   *NavigationAction,
	features *WindowFeatures,
) View {
	if fn, ok := lambdakit.Lookup[CreateWebView](t.Registry(), createWebView); ok {
		return fn(view, config, action, features)
	}
	return nil
}

func (t *trampoline) DidClose(view View) {
	if fn, ok := lambdakit.Lookup[ViewHandler](t.Registry(), didClose); ok {
		fn(view)
	}
}

func (t *trampoline) RunAlertPanel(
	view     View,
	message  string,
	frame    *FrameInfo,
	complete func(),
) {
	if fn, ok := lambdakit.Lookup[RunAlertPanel](t.Registry(), runAlertPanel); ok {
		fn(view, message, frame, complete)
	} else {
		complete()
	}
}

func (t *trampoline) RunConfirmPanel(
	view     View,
	message  string,
	frame    *FrameInfo,
	complete func(bool),
) {
	if fn, ok := lambdakit.Lookup[RunConfirmPanel](t.Registry(), runConfirmPanel); ok {
		fn(view, message, frame, complete)
	} else {
		complete(true)
	}
}

func (t *trampoline) RunTextInputPanel(
	view        View,
	prompt      string,
	defaultText string,
	frame       *FrameInfo,
	complete    func(text string, ok bool),
) {
	if fn, ok := lambdakit.Lookup[RunTextInputPanel](t.Registry(), runTextInputPanel); ok {
		fn(view, prompt, defaultText, frame, complete)
	} else {
		complete("", false)
	}
}

func (t *trampoline) ShouldPreviewElement(view View, info *PreviewElementInfo) bool {
	if fn, ok := lambdakit.Lookup[ShouldPreviewElement](t.Registry(), shouldPreviewElement); ok {
		return fn(view, info)
	}
	return true
}

func (t *trampoline) PreviewingViewController(
	view    View,
	info    *PreviewElementInfo,
	actions []PreviewAction,
) ViewController {
	if fn, ok := lambdakit.Lookup[PreviewingController](t.Registry(), previewingController); ok {
		return fn(view, info, actions)
	}
	return nil
}

func (t *trampoline) CommitPreviewingViewController(view View, controller ViewController) {
	if fn, ok := lambdakit.Lookup[CommitPreviewing](t.Registry(), commitPreviewing); ok {
		fn(view, controller)
	}
}

func (t *trampoline) navigated(name string, view View, navigation *Navigation) {
	if fn, ok := lambdakit.Lookup[NavigationHandler](t.Registry(), name); ok {
		fn(view, navigation)
	}
}

func (t *trampoline) failed(name string, view View, navigation *Navigation, err error) {
	if fn, ok := lambdakit.Lookup[NavigationFailed](t.Registry(), name); ok {
		fn(view, navigation, err)
	}
}
