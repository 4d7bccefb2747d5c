package lambdakit

import (
	"sync"

	"github.com/miruken-go/lambdakit/internal"
)

// Slot holds at most one callback of function type F.
// The zero Slot is empty and ready to use.
type Slot[F any] struct {
	lock sync.RWMutex
	fn   F
	set  bool
}

// Set stores fn, replacing any previous callback.
// Setting a nil func empties the slot.
func (s *Slot[F]) Set(fn F) {
	if internal.IsNil(fn) {
		s.Clear()
		return
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.fn, s.set = fn, true
}

func (s *Slot[F]) Clear() {
	s.lock.Lock()
	defer s.lock.Unlock()
	var zero F
	s.fn, s.set = zero, false
}

// Get returns the callback and true, or the zero F and false.
func (s *Slot[F]) Get() (F, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.fn, s.set
}

func (s *Slot[F]) Present() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.set
}
