package lambdakit

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is the closure box attached to a single host instance.
// It maps slot names to typed Slots.
type Registry struct {
	lock  sync.Mutex
	slots map[string]any
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{slots: make(map[string]any)}
}

// Names returns the names of the slots currently holding a callback.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	var names []string
	for name, slot := range r.slots {
		if p, ok := slot.(interface{ Present() bool }); ok && p.Present() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Len returns the number of slots holding a callback.
func (r *Registry) Len() int {
	return len(r.Names())
}

// Reset empties every slot.  Trampolines still referencing
// the Registry will find nothing to call.
func (r *Registry) Reset() {
	if r == nil {
		return
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, slot := range r.slots {
		if c, ok := slot.(interface{ Clear() }); ok {
			c.Clear()
		}
	}
}

// SlotOf returns the slot named name, creating it on first use.
// Every use of a name must agree on F.
func SlotOf[F any](r *Registry, name string) *Slot[F] {
	if r == nil {
		panic("registry cannot be nil")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if slot, ok := r.slots[name]; ok {
		if typed, ok := slot.(*Slot[F]); ok {
			return typed
		}
		var fn F
		panic(fmt.Sprintf("slot %q holds %T, not %T", name, slot, fn))
	}
	slot := new(Slot[F])
	r.slots[name] = slot
	return slot
}

// Lookup returns the callback stored under name.
// A nil Registry is valid and never has callbacks.
func Lookup[F any](r *Registry, name string) (F, bool) {
	var zero F
	if r == nil {
		return zero, false
	}
	r.lock.Lock()
	slot, ok := r.slots[name]
	r.lock.Unlock()
	if !ok {
		return zero, false
	}
	if typed, ok := slot.(*Slot[F]); ok {
		return typed.Get()
	}
	return zero, false
}
