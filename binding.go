package lambdakit

import "github.com/miruken-go/lambdakit/internal"

type (
	// Binding connects a Registry to the delegate slot of a host type.
	Binding[H comparable] interface {
		// Bind installs a trampoline forwarding to reg as the host delegate.
		Bind(host H, reg *Registry)

		// Unbind clears the host delegate if it is a trampoline.
		// A conventional delegate is left alone.
		Unbind(host H)

		// Registry returns the Registry of the trampoline installed
		// as the host delegate, or nil if there is none.
		Registry(host H) *Registry

		// Mode reports the mechanism currently receiving host events.
		Mode(host H) Mode
	}

	// DelegateBinding is a Binding for hosts exposing a single
	// delegate property of type D.
	DelegateBinding[H comparable, D any] struct {
		Delegate    func(H) D
		SetDelegate func(H, D)
		Trampoline  func(H, *Registry) D
	}

	// Trampoline is embedded by delegate implementations that
	// forward host events to the closures of a Registry.
	// The host owns the Registry through its trampoline so the
	// closures live exactly as long as the host keeps it.
	Trampoline struct {
		reg *Registry
	}
)


// DelegateBinding

func (b DelegateBinding[H, D]) Bind(host H, reg *Registry) {
	b.SetDelegate(host, b.Trampoline(host, reg))
}

func (b DelegateBinding[H, D]) Unbind(host H) {
	if ModeOf(b.Delegate(host)) == ModeClosures {
		var none D
		b.SetDelegate(host, none)
	}
}

func (b DelegateBinding[H, D]) Registry(host H) *Registry {
	return RegistryOf(b.Delegate(host))
}

func (b DelegateBinding[H, D]) Mode(host H) Mode {
	return ModeOf(b.Delegate(host))
}


// Trampoline

// NewTrampoline creates a Trampoline forwarding to reg.
func NewTrampoline(reg *Registry) Trampoline {
	return Trampoline{reg}
}

// Registry returns the closures the trampoline forwards to.
func (t Trampoline) Registry() *Registry {
	return t.reg
}

// RegistryOf returns the Registry of delegate if it is a
// trampoline, or nil otherwise.
func RegistryOf(delegate any) *Registry {
	if internal.IsNil(delegate) {
		return nil
	}
	if t, ok := delegate.(interface{ Registry() *Registry }); ok {
		return t.Registry()
	}
	return nil
}

// ModeOf classifies a delegate value.
func ModeOf(delegate any) Mode {
	if internal.IsNil(delegate) {
		return ModeNone
	}
	if RegistryOf(delegate) != nil {
		return ModeClosures
	}
	return ModeDelegate
}
