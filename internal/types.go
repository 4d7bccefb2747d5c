package internal

import (
	"fmt"
	"reflect"
)

// IsNil reports whether v is nil or a typed nil
// (pointer, func, map, slice, chan or interface).
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	switch val := reflect.ValueOf(v); val.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return val.IsNil()
	}
	return false
}

// CheckIdentity panics unless host can serve as an identity key.
// Only pointers to sized values qualify since equal values of any
// other kind would collapse distinct instances onto one key.
func CheckIdentity(host any) {
	if IsNil(host) {
		panic("host cannot be nil")
	}
	typ := reflect.TypeOf(host)
	if typ.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("host %T must be a pointer", host))
	}
	if typ.Elem().Size() == 0 {
		panic(fmt.Sprintf("host %T must not point to a zero-size value", host))
	}
}
