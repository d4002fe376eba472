// Package optional provides a presence-tracking wrapper for partial updates.
//
// A Value decoded from JSON is Set whenever its key appears in the document,
// including an explicit null, which lets a patch tell "absent" from "cleared".
package optional

import (
	"bytes"
	"encoding/json"
)

// Value holds a T together with whether it was supplied.
type Value[T any] struct {
	value T
	set   bool
}

// Of returns a Value that is set to v.
func Of[T any](v T) Value[T] {
	return Value[T]{value: v, set: true}
}

// IsSet reports whether the value was supplied.
func (v Value[T]) IsSet() bool {
	return v.set
}

// Get returns the value and its presence flag.
func (v Value[T]) Get() (T, bool) {
	return v.value, v.set
}

// OrElse returns the value when set and fallback otherwise.
func (v Value[T]) OrElse(fallback T) T {
	if v.set {
		return v.value
	}
	return fallback
}

// ApplyTo overwrites *dst only when the value is set.
func (v Value[T]) ApplyTo(dst *T) {
	if v.set {
		*dst = v.value
	}
}

func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		v.value = zero
		return nil
	}
	return json.Unmarshal(data, &v.value)
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}
