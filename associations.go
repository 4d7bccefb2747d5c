package lambdakit

import (
	"reflect"
	"sync"
	"unsafe"
	"weak"

	"github.com/miruken-go/lambdakit/internal"
)

// Associations attaches values to hosts by identity without
// keeping either of them alive.  The host must keep its value
// reachable, usually by holding it as a delegate, observer or
// target.  Once the host or the value is collected the
// association is gone.
// Hosts must be pointers (or interfaces holding pointers) to
// heap allocated values so two distinct instances never share
// a value.
// The zero Associations is ready to use.
type Associations[H comparable, V any] struct {
	lock   sync.Mutex
	values map[weak.Pointer[byte]]association[V]
	sweep  int
}

type association[V any] struct {
	host  reflect.Type
	value weak.Pointer[V]
}

const minSweep = 16

func (a *Associations[H, V]) Load(host H) (*V, bool) {
	key := keyOf(host)
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.load(key)
}

// LoadOrCreate returns the value attached to host, attaching
// the result of create if there is none.  The bool reports
// whether create was called.
func (a *Associations[H, V]) LoadOrCreate(host H, create func() *V) (*V, bool) {
	key := keyOf(host)
	a.lock.Lock()
	defer a.lock.Unlock()
	if v, ok := a.load(key); ok {
		return v, false
	}
	if a.values == nil {
		a.values = make(map[weak.Pointer[byte]]association[V])
	}
	a.collect()
	v := create()
	if v == nil {
		panic("created value cannot be nil")
	}
	a.values[key] = association[V]{reflect.TypeOf(host), weak.Make(v)}
	return v, true
}

// Delete detaches and returns the value attached to host.
func (a *Associations[H, V]) Delete(host H) (*V, bool) {
	key := keyOf(host)
	a.lock.Lock()
	defer a.lock.Unlock()
	v, ok := a.load(key)
	if ok {
		delete(a.values, key)
	}
	return v, ok
}

// Len returns the number of live associations.
func (a *Associations[H, V]) Len() int {
	a.lock.Lock()
	defer a.lock.Unlock()
	count := 0
	for key, assoc := range a.values {
		if key.Value() != nil && assoc.value.Value() != nil {
			count++
		}
	}
	return count
}

// Range calls fn for each live association until fn returns false.
// fn runs on a snapshot so it may modify the Associations.
func (a *Associations[H, V]) Range(fn func(H, *V) bool) {
	a.lock.Lock()
	hosts := make([]H, 0, len(a.values))
	values := make([]*V, 0, len(a.values))
	for key, assoc := range a.values {
		ptr, v := key.Value(), assoc.value.Value()
		if ptr == nil || v == nil {
			continue
		}
		host := reflect.NewAt(assoc.host.Elem(), unsafe.Pointer(ptr))
		hosts = append(hosts, host.Interface().(H))
		values = append(values, v)
	}
	a.lock.Unlock()
	for i, h := range hosts {
		if !fn(h, values[i]) {
			return
		}
	}
}

// load must be called with the lock held.
func (a *Associations[H, V]) load(key weak.Pointer[byte]) (*V, bool) {
	if assoc, ok := a.values[key]; ok {
		if v := assoc.value.Value(); v != nil {
			return v, true
		}
		delete(a.values, key)
	}
	return nil, false
}

// collect drops the associations of collected hosts or values
// whenever the table doubles in size.
// It must be called with the lock held.
func (a *Associations[H, V]) collect() {
	if len(a.values) < a.sweep {
		return
	}
	for key, assoc := range a.values {
		if key.Value() == nil || assoc.value.Value() == nil {
			delete(a.values, key)
		}
	}
	a.sweep = max(2*len(a.values), minSweep)
}

// keyOf returns the weak identity of host.  Two keys are equal
// only if made from the same live host.
func keyOf(host any) weak.Pointer[byte] {
	internal.CheckIdentity(host)
	return weak.Make((*byte)(reflect.ValueOf(host).UnsafePointer()))
}
