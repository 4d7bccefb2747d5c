package config

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/miruken-go/lambdakit"
	"github.com/miruken-go/lambdakit/internal"
)

type (
	// Factory of lambdakit.Options using assigned Provider.
	// Options are cached per path so repeated loads are cheap.
	Factory struct {
		Provider
		lock  sync.Mutex
		cache atomic.Pointer[map[loadKey]lambdakit.Options]
	}

	loadKey struct {
		path string
		flat bool
	}
)

// NewFactory creates a Factory reading from provider.
func NewFactory(provider Provider) *Factory {
	if provider == nil {
		panic("provider cannot be nil")
	}
	return &Factory{Provider: provider}
}

// Options returns the validated options found under path.
func (f *Factory) Options(path string, flat bool) (lambdakit.Options, error) {
	key := loadKey{path: path, flat: flat}
	if cache := f.cache.Load(); cache != nil {
		if o, ok := (*cache)[key]; ok {
			return o, nil
		}
	}

	// Use copy-on-write idiom since reads should be more frequent than writes.
	f.lock.Lock()
	defer f.lock.Unlock()

	var cc map[loadKey]lambdakit.Options
	if cache := f.cache.Load(); cache != nil {
		if o, ok := (*cache)[key]; ok {
			return o, nil
		}
		cc = make(map[loadKey]lambdakit.Options, len(*cache)+1)
		for k, v := range *cache {
			cc[k] = v
		}
	} else {
		cc = make(map[loadKey]lambdakit.Options, 1)
	}

	options, err := load(f.Provider, path, flat)
	if err != nil {
		return options, err
	}
	cc[key] = options
	f.cache.Store(&cc)
	return options, nil
}

// Invalidate drops every cached Options so the next
// load reads the Provider again.
func (f *Factory) Invalidate() {
	f.cache.Store(nil)
}

// Load reads and validates the options found under path.
// Unset fields are left zero and take their defaults at Setup.
func Load(provider Provider, path string) (lambdakit.Options, error) {
	if provider == nil {
		panic("provider cannot be nil")
	}
	return load(provider, path, false)
}

func load(provider Provider, path string, flat bool) (lambdakit.Options, error) {
	var options lambdakit.Options
	if err := provider.Unmarshal(path, flat, &options); err != nil {
		return options, fmt.Errorf("config: %w", err)
	}
	if err := internal.ValidateStruct(options); err != nil {
		return options, fmt.Errorf("config: %w", err)
	}
	return options, nil
}
