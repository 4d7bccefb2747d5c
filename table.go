package lambdakit

import (
	"fmt"
	"sync"

	"github.com/miruken-go/lambdakit/internal"
)

// Table keeps the closure Registry of every host of type H
// and keeps each host delegate in sync with it.
// The Registry is held only by the trampoline installed as the
// host delegate so it is released together with the host.
// Changes to the hosts of a Table are serialized.
type Table[H comparable] struct {
	binding Binding[H]
	lock    sync.Mutex
}

// NewTable creates a Table using binding to install trampolines.
func NewTable[H comparable](binding Binding[H]) *Table[H] {
	if binding == nil {
		panic("binding cannot be nil")
	}
	return &Table[H]{binding: binding}
}

// Registry returns the Registry for host, creating it and
// installing its trampoline as the host delegate if needed.
func (t *Table[H]) Registry(host H) *Registry {
	internal.CheckIdentity(host)
	t.lock.Lock()
	defer t.lock.Unlock()
	reg := t.registry(host)
	t.bind(host, reg)
	return reg
}

// Lookup returns the Registry for host without creating one.
func (t *Table[H]) Lookup(host H) (*Registry, bool) {
	internal.CheckIdentity(host)
	t.lock.Lock()
	defer t.lock.Unlock()
	reg := t.binding.Registry(host)
	return reg, reg != nil
}

// Mode reports the mechanism currently receiving the events of host.
func (t *Table[H]) Mode(host H) Mode {
	internal.CheckIdentity(host)
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.binding.Mode(host)
}

// Clear detaches the Registry of host and, if the host delegate
// is still its trampoline, clears the delegate too.
// A conventional delegate assigned by the owner is left alone.
func (t *Table[H]) Clear(host H) {
	internal.CheckIdentity(host)
	t.lock.Lock()
	defer t.lock.Unlock()
	if reg := t.detach(host); reg != nil {
		reg.Reset()
	}
}

// Take detaches the Registry of host like Clear but returns it
// intact so a one-shot trampoline can still fire its callback.
// Returns nil if host has no Registry.
func (t *Table[H]) Take(host H) *Registry {
	internal.CheckIdentity(host)
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.detach(host)
}

// registry must be called with the lock held.
func (t *Table[H]) registry(host H) *Registry {
	reg := t.binding.Registry(host)
	if reg == nil {
		reg = NewRegistry()
		logger().V(verbosity()).Info("closure registry attached", "host", hostName(host))
	}
	return reg
}

// bind must be called with the lock held.
func (t *Table[H]) bind(host H, reg *Registry) {
	switch t.binding.Mode(host) {
	case ModeClosures:
		return
	case ModeDelegate:
		logger().Info("delegate replaced by closures", "host", hostName(host))
	}
	t.binding.Bind(host, reg)
}

// detach must be called with the lock held.
func (t *Table[H]) detach(host H) *Registry {
	reg := t.binding.Registry(host)
	if reg == nil {
		return nil
	}
	t.binding.Unbind(host)
	logger().V(verbosity()).Info("closure registry detached", "host", hostName(host))
	return reg
}

// Set stores fn in the slot name of host.  The host delegate is
// (re)installed as the trampoline, overwriting any delegate
// assigned conventionally.
func Set[H comparable, F any](t *Table[H], host H, name string, fn F) {
	internal.CheckIdentity(host)
	t.lock.Lock()
	defer t.lock.Unlock()
	reg := t.registry(host)
	SlotOf[F](reg, name).Set(fn)
	t.bind(host, reg)
}

// Get returns the callback in slot name of host.
// It never creates a Registry.
func Get[H comparable, F any](t *Table[H], host H, name string) (F, bool) {
	reg, _ := t.Lookup(host)
	return Lookup[F](reg, name)
}

func hostName(host any) string {
	return fmt.Sprintf("%T@%p", host, host)
}
