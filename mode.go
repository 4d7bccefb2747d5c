package lambdakit

// Mode identifies which callback mechanism a host instance uses.
// A host is in exactly one mode at a time.
type Mode uint8

const (
	// ModeNone means the host has neither a delegate nor closures.
	ModeNone Mode = iota

	// ModeDelegate means the owner assigned a conventional delegate.
	// Registered closures, if any, do not fire in this mode.
	ModeDelegate

	// ModeClosures means the closure trampoline is the host delegate.
	ModeClosures
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeDelegate:
		return "delegate"
	case ModeClosures:
		return "closures"
	}
	return "unknown"
}
