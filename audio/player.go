// Package audio adds closure callbacks to audio players.
//
// Setting a closure installs the closure trampoline as the player
// delegate, replacing any delegate assigned before.  Assigning a
// delegate afterwards silences the closures until one is set again.
package audio

import "github.com/miruken-go/lambdakit"

type (
	// Player is the audio player of the host framework.
	Player interface {
		Delegate() Delegate
		SetDelegate(delegate Delegate)
		Play() bool
	}

	// Delegate receives playback events from a Player.
	Delegate interface {
		DidFinishPlaying(player Player, successfully bool)
		DecodeErrorDidOccur(player Player, err error)
	}

	// DidFinishPlaying is called when a sound has finished playing.
	// It is not called if playback stopped due to an interruption.
	DidFinishPlaying func(player Player, successfully bool)

	// DecodeErrorDidOccur is called with the decoding error reported
	// by the player.
	DecodeErrorDidOccur func(player Player, err error)

	trampoline struct {
		lambdakit.Trampoline
	}
)

const (
	didFinishPlaying    = "didFinishPlaying"
	decodeErrorDidOccur = "decodeErrorDidOccur"
)

var closures = lambdakit.NewTable[Player](lambdakit.DelegateBinding[Player, Delegate]{
	Delegate:    Player.Delegate,
	SetDelegate: Player.SetDelegate,
	Trampoline: func(_ Player, reg *lambdakit.Registry) Delegate {
		return &trampoline{lambdakit.NewTrampoline(reg)}
	},
})

func SetDidFinishPlaying(player Player, fn DidFinishPlaying) {
	lambdakit.Set(closures, player, didFinishPlaying, fn)
}

func DidFinishPlayingOf(player Player) (DidFinishPlaying, bool) {
	return lambdakit.Get[Player, DidFinishPlaying](closures, player, didFinishPlaying)
}

func SetDecodeErrorDidOccur(player Player, fn DecodeErrorDidOccur) {
	lambdakit.Set(closures, player, decodeErrorDidOccur, fn)
}

func DecodeErrorDidOccurOf(player Player) (DecodeErrorDidOccur, bool) {
	return lambdakit.Get[Player, DecodeErrorDidOccur](closures, player, decodeErrorDidOccur)
}

// Play starts playback asynchronously and calls didFinish when done.
// Returns the result of Player.Play.
func Play(player Player, didFinish DidFinishPlaying) bool {
	SetDidFinishPlaying(player, didFinish)
	return player.Play()
}

// Mode reports whether the player events reach the closures.
func Mode(player Player) lambdakit.Mode {
	return closures.Mode(player)
}

// Clear removes the closures of player and its trampoline delegate.
func Clear(player Player) {
	closures.Clear(player)
}

func (t *trampoline) DidFinishPlaying(player Player, successfully bool) {
	if fn, ok := lambdakit.Lookup[DidFinishPlaying](t.Registry(), didFinishPlaying); ok {
		fn(player, successfully)
	}
}

func (t *trampoline) DecodeErrorDidOccur(player Player, err error) {
	if fn, ok := lambdakit.Lookup[DecodeErrorDidOccur](t.Registry(), decodeErrorDidOccur); ok {
		fn(player, err)
	}
}
