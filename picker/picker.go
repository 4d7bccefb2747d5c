// Package picker adds one-shot closures to image pickers.
//
// The closures of a picker are detached by the first finish or
// cancel event, whichever arrives first.
package picker

import "github.com/miruken-go/lambdakit"

type (
	// InfoKey names an entry of the media info reported by a picker.
	InfoKey string

	// MediaInfo describes the picked media.
	MediaInfo map[InfoKey]any

	// ImagePicker is the image picker controller of the host framework.
	ImagePicker interface {
		Delegate() Delegate
		SetDelegate(delegate Delegate)
	}

	Delegate interface {
		DidFinishPickingMedia(picker ImagePicker, info MediaInfo)
		DidCancel(picker ImagePicker)
	}

	// FinishHandler receives the picked media.
	FinishHandler func(picker ImagePicker, info MediaInfo)

	// CancelHandler is called when the user cancels the pick.
	CancelHandler func(picker ImagePicker)

	trampoline struct {
		lambdakit.Trampoline
	}
)

const (
	MediaType     InfoKey = "mediaType"
	OriginalImage InfoKey = "originalImage"
	EditedImage   InfoKey = "editedImage"
	CropRect      InfoKey = "cropRect"
	MediaURL      InfoKey = "mediaURL"
	ImageURL      InfoKey = "imageURL"
)

const (
	didFinishPickingMedia = "didFinishPickingMedia"
	didCancel             = "didCancel"
)

var closures = lambdakit.NewTable[ImagePicker](lambdakit.DelegateBinding[ImagePicker, Delegate]{
	Delegate:    ImagePicker.Delegate,
	SetDelegate: ImagePicker.SetDelegate,
	Trampoline: func(_ ImagePicker, reg *lambdakit.Registry) Delegate {
		return &trampoline{lambdakit.NewTrampoline(reg)}
	},
})

func SetDidFinishPickingMedia(picker ImagePicker, fn FinishHandler) {
	lambdakit.Set(closures, picker, didFinishPickingMedia, fn)
}

func DidFinishPickingMediaOf(picker ImagePicker) (FinishHandler, bool) {
	return lambdakit.Get[ImagePicker, FinishHandler](closures, picker, didFinishPickingMedia)
}

func SetDidCancel(picker ImagePicker, fn CancelHandler) {
	lambdakit.Set(closures, picker, didCancel, fn)
}

func DidCancelOf(picker ImagePicker) (CancelHandler, bool) {
	return lambdakit.Get[ImagePicker, CancelHandler](closures, picker, didCancel)
}

// Pick sets both closures of picker.  Either may be nil.
func Pick(picker ImagePicker, finish FinishHandler, cancel CancelHandler) {
	SetDidFinishPickingMedia(picker, finish)
	SetDidCancel(picker, cancel)
}

func Mode(picker ImagePicker) lambdakit.Mode {
	return closures.Mode(picker)
}

func (t *trampoline) DidFinishPickingMedia(picker ImagePicker, info MediaInfo) {
	if reg := closures.Take(picker); reg != nil {
		defer reg.Reset()
		if fn, ok := lambdakit.Lookup[FinishHandler](reg, didFinishPickingMedia); ok {
			fn(picker, info)
		}
	}
}

func (t *trampoline) DidCancel(picker ImagePicker) {
	if reg := closures.Take(picker); reg != nil {
		defer reg.Reset()
		if fn, ok := lambdakit.Lookup[CancelHandler](reg, didCancel); ok {
			fn(picker)
		}
	}
}
