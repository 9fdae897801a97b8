package models

import (
	"bytes"
	"encoding/json"
)

// Optional holds a value that may be absent. Absent is a distinct state:
// Some("") is an explicitly empty string, None[string]() was never given.
type Optional[T any] struct {
	value T
	set   bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns the absent marker.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// FromPtr maps nil to None and anything else to Some.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Or returns the value, or fallback when absent.
func (o Optional[T]) Or(fallback T) T {
	if !o.set {
		return fallback
	}
	return o.value
}

// Ptr returns nil when absent.
func (o Optional[T]) Ptr() *T {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
