// Package location adds closure callbacks to location managers.
package location

import (
	"time"

	"github.com/miruken-go/lambdakit"
)

type (
	// Location is a geographic fix reported by a Manager.
	Location struct {
		Latitude  float64
		Longitude float64
		Accuracy  float64
		Timestamp time.Time
	}

	// Manager is the location manager of the host framework.
	// Location returns nil until a fix is known.
	Manager interface {
		Delegate() Delegate
		SetDelegate(delegate Delegate)
		Location() *Location
		StartUpdatingLocation()
		StopUpdatingLocation()
		StartMonitoringSignificantLocationChanges()
		StopMonitoringSignificantLocationChanges()
	}

	// Delegate receives location updates from a Manager.
	Delegate interface {
		DidUpdateLocations(manager Manager, locations []Location)
	}

	// Handler receives the current location of the manager.
	Handler func(location Location)

	trampoline struct {
		lambdakit.Trampoline
	}
)

const didUpdateLocation = "didUpdateLocation"

var closures = lambdakit.NewTable[Manager](lambdakit.DelegateBinding[Manager, Delegate]{
	Delegate:    Manager.Delegate,
	SetDelegate: Manager.SetDelegate,
	Trampoline: func(_ Manager, reg *lambdakit.Registry) Delegate {
		return &trampoline{lambdakit.NewTrampoline(reg)}
	},
})

// StartUpdating starts standard location updates sending each
// new location to handler.  If the manager already knows its
// location handler receives it immediately.
func StartUpdating(m Manager, handler Handler) {
	SetDidUpdateLocation(m, handler)
	m.StartUpdatingLocation()
	reportKnown(m, handler)
}

// StopUpdating stops standard updates and removes the closures.
func StopUpdating(m Manager) {
	m.StopUpdatingLocation()
	closures.Clear(m)
}

// StartMonitoringSignificantChanges starts significant-change
// updates sending each new location to handler.
func StartMonitoringSignificantChanges(m Manager, handler Handler) {
	SetDidUpdateLocation(m, handler)
	m.StartMonitoringSignificantLocationChanges()
	reportKnown(m, handler)
}

// StopMonitoringSignificantChanges stops significant-change updates
// and removes the closures.
func StopMonitoringSignificantChanges(m Manager) {
	m.StopMonitoringSignificantLocationChanges()
	closures.Clear(m)
}

func SetDidUpdateLocation(m Manager, handler Handler) {
	lambdakit.Set(closures, m, didUpdateLocation, handler)
}

func DidUpdateLocationOf(m Manager) (Handler, bool) {
	return lambdakit.Get[Manager, Handler](closures, m, didUpdateLocation)
}

// Mode reports whether the manager events reach the closures.
func Mode(m Manager) lambdakit.Mode {
	return closures.Mode(m)
}

func reportKnown(m Manager, handler Handler) {
	if handler == nil {
		return
	}
	if loc := m.Location(); loc != nil {
		handler(*loc)
	}
}

// DidUpdateLocations reports the manager's current location,
// falling back to the most recent of locations.
func (t *trampoline) DidUpdateLocations(m Manager, locations []Location) {
	fn, ok := lambdakit.Lookup[Handler](t.Registry(), didUpdateLocation)
	if !ok {
		return
	}
	if loc := m.Location(); loc != nil {
		fn(*loc)
	} else if n := len(locations); n > 0 {
		fn(locations[n-1])
	}
}
