package slices

import (
	"sync"
	"sync/atomic"
)

// Safe is a copy-on-write slice for handler lists.
// Readers take a snapshot with Items and may iterate it while
// writers append or delete concurrently.
type Safe[T any] struct {
	items atomic.Pointer[[]T]
	lock  sync.Mutex
}

// NewSafe creates a Safe slice with initial items.
func NewSafe[T any](initial ...T) *Safe[T] {
	return (&Safe[T]{}).Reset(initial...)
}

// Items returns the current snapshot.  It must not be modified.
func (s *Safe[T]) Items() []T {
	if items := s.items.Load(); items != nil {
		return *items
	}
	return nil
}

func (s *Safe[T]) Len() int {
	return len(s.Items())
}

func (s *Safe[T]) Reset(items ...T) *Safe[T] {
	c := append([]T(nil), items...)
	s.items.Store(&c)
	return s
}

func (s *Safe[T]) Append(items ...T) *Safe[T] {
	if len(items) > 0 {
		s.lock.Lock()
		defer s.lock.Unlock()
		s1 := s.Items()
		s2 := make([]T, len(s1), len(s1)+len(items))
		copy(s2, s1)
		s2 = append(s2, items...)
		s.items.Store(&s2)
	}
	return s
}

// DeleteFirst removes the first item matching eq and
// reports whether one was removed.
func (s *Safe[T]) DeleteFirst(eq func(T) bool) (T, bool) {
	if eq == nil {
		panic("eq func cannot be nil")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s1 := s.Items()
	for i, item := range s1 {
		if eq(item) {
			s2 := make([]T, 0, len(s1)-1)
			s2 = append(s2, s1[:i]...)
			s2 = append(s2, s1[i+1:]...)
			s.items.Store(&s2)
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Drain empties the slice and returns what it held.
func (s *Safe[T]) Drain() []T {
	s.lock.Lock()
	defer s.lock.Unlock()
	var empty []T
	if old := s.items.Swap(&empty); old != nil {
		return *old
	}
	return nil
}
