package csync

import (
	"fmt"
	"reflect"
	"sync"
)

// Value is a concurrency-safe holder for a single value.
//
// Only value types are accepted: storing a pointer, slice or map would let
// callers mutate shared state behind the lock, so NewValue panics on them.
type Value[T any] struct {
	mu sync.RWMutex
	v  T
}

// NewValue creates a new [Value] holding v.
func NewValue[T any](v T) *Value[T] {
	switch k := reflect.ValueOf(&v).Elem().Kind(); k {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		panic(fmt.Sprintf("csync: Value does not support %s types", k))
	}
	return &Value[T]{v: v}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.v
}

// Set replaces the current value.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.v = val
}
