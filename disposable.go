package lambdakit

import "sync"

type (
	// Disposable releases a registration.
	Disposable interface {
		Dispose()
	}

	// DisposableFunc adapts a func to Disposable.
	DisposableFunc func()
)

func (f DisposableFunc) Dispose() {
	f()
}

// DisposeOnce returns a Disposable running f on the first Dispose only.
func DisposeOnce(f func()) Disposable {
	var once sync.Once
	return DisposableFunc(func() {
		once.Do(f)
	})
}
