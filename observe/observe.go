// Package observe attaches any number of closure observers to
// the named properties of a host with change notifications.
//
// Each property gets a single real subscription on the host no
// matter how many closures observe it.  Closures are removed
// individually by the token returned when they were added.
package observe

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/miruken-go/lambdakit"
	"github.com/miruken-go/lambdakit/internal/slices"
)

type (
	// Options select the values included in a Change.
	Options uint8

	// Change carries the values reported by the host.
	// Either may be nil if the host did not supply it.
	Change struct {
		New any
		Old any
	}

	// Handler receives the new and old values verbatim.
	Handler func(newValue, oldValue any)

	// Observer receives change notifications from a Notifier.
	Observer interface {
		ObserveValue(property string, change Change)
	}

	// Notifier is a host able to report property changes.
	Notifier interface {
		AddObserver(observer Observer, property string, options Options) error
		RemoveObserver(observer Observer, property string) error
	}

	// observer is the single Observer registered with a host.
	// lock serializes subscription changes while dispatch reads
	// a copy-on-write snapshot of properties, so a host may notify
	// from within AddObserver.
	observer struct {
		lock       sync.Mutex
		properties map[string]*slices.Safe[entry]
		dispatch   atomic.Pointer[map[string]*slices.Safe[entry]]
	}

	entry struct {
		token   string
		handler Handler
	}
)

const (
	New Options = 1 << iota
	Old
	Initial
	Prior
)

// observers is kept alive by the hosts they are registered with.
var observers lambdakit.Associations[Notifier, observer]

// KeyPath adds handler as an observer of property on host.
// options default to New.  An empty token is replaced by a
// generated unique one.  Returns the token for Remove.
// The host is subscribed without holding any lock so handlers
// notified from within AddObserver may add or remove handlers.
// Handlers added to a property while its subscription is pending
// are dropped with it if the host refuses the subscription.
func KeyPath(
	host     Notifier,
	property string,
	options  Options,
	token    string,
	handler  Handler,
) (string, error) {
	if handler == nil {
		panic("handler cannot be nil")
	}
	if options == 0 {
		options = New
	}
	if token == "" {
		token = uuid.NewString()
	}
	obs := attach(host)
	if handlers, ok := obs.properties[property]; ok {
		handlers.Append(entry{token, handler})
		obs.lock.Unlock()
		return token, nil
	}
	handlers := slices.NewSafe(entry{token, handler})
	obs.properties[property] = handlers
	obs.publish()
	obs.lock.Unlock()

	// The host may notify, and handlers may re-enter, from here on.
	if err := host.AddObserver(obs, property, options); err != nil {
		obs.lock.Lock()
		if obs.properties[property] == handlers {
			delete(obs.properties, property)
			obs.publish()
			obs.release(host)
		}
		obs.lock.Unlock()
		return "", fmt.Errorf("observe %q: %w", property, err)
	}
	lambdakit.Trace().Info("property observed", "property", property)
	return token, nil
}

// Remove removes the handler added with token.
// An unknown token is ignored.
func Remove(host Notifier, token string) error {
	obs, ok := observers.Load(host)
	if !ok {
		return nil
	}
	obs.lock.Lock()
	defer obs.lock.Unlock()
	for property, handlers := range obs.properties {
		if _, removed := handlers.DeleteFirst(func(e entry) bool {
			return e.token == token
		}); removed {
			if handlers.Len() == 0 {
				return obs.unobserve(host, property)
			}
			return nil
		}
	}
	return nil
}

// RemoveAll removes every handler of the given properties,
// or of all properties when none are given.
func RemoveAll(host Notifier, properties ...string) error {
	obs, ok := observers.Load(host)
	if !ok {
		return nil
	}
	obs.lock.Lock()
	defer obs.lock.Unlock()
	if len(properties) == 0 {
		for property := range obs.properties {
			properties = append(properties, property)
		}
	}
	var errs *multierror.Error
	for _, property := range properties {
		if handlers, ok := obs.properties[property]; ok {
			handlers.Drain()
			if err := obs.unobserve(host, property); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
	}
	return errs.ErrorOrNil()
}

// Handlers returns the number of handlers observing property.
func Handlers(host Notifier, property string) int {
	obs, ok := observers.Load(host)
	if !ok {
		return 0
	}
	obs.lock.Lock()
	defer obs.lock.Unlock()
	if handlers, ok := obs.properties[property]; ok {
		return handlers.Len()
	}
	return 0
}

// Properties returns the number of properties observed on host.
func Properties(host Notifier) int {
	obs, ok := observers.Load(host)
	if !ok {
		return 0
	}
	obs.lock.Lock()
	defer obs.lock.Unlock()
	return len(obs.properties)
}

// attach returns the locked observer of host.  An observer
// detached while waiting for its lock is replaced.
func attach(host Notifier) *observer {
	for {
		obs, _ := observers.LoadOrCreate(host, newObserver)
		obs.lock.Lock()
		if cur, ok := observers.Load(host); ok && cur == obs {
			return obs
		}
		obs.lock.Unlock()
	}
}

func newObserver() *observer {
	return &observer{properties: make(map[string]*slices.Safe[entry])}
}

// ObserveValue calls every handler of property in the order added.
func (o *observer) ObserveValue(property string, change Change) {
	properties := o.dispatch.Load()
	if properties == nil {
		return
	}
	handlers, ok := (*properties)[property]
	if !ok {
		return
	}
	for _, e := range handlers.Items() {
		e.handler(change.New, change.Old)
	}
}

// unobserve must be called with the lock held.
func (o *observer) unobserve(host Notifier, property string) error {
	delete(o.properties, property)
	o.publish()
	o.release(host)
	lambdakit.Trace().Info("property unobserved", "property", property)
	if err := host.RemoveObserver(o, property); err != nil {
		return fmt.Errorf("unobserve %q: %w", property, err)
	}
	return nil
}

// release detaches o from host once nothing is observed.
// It must be called with the lock held.
func (o *observer) release(host Notifier) {
	if len(o.properties) == 0 {
		if cur, ok := observers.Load(host); ok && cur == o {
			observers.Delete(host)
		}
	}
}

// publish must be called with the lock held.
func (o *observer) publish() {
	properties := make(map[string]*slices.Safe[entry], len(o.properties))
	for property, handlers := range o.properties {
		properties[property] = handlers
	}
	o.dispatch.Store(&properties)
}
