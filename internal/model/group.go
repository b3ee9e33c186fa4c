package model

import (
	"encoding/json"
	"errors"
)

// ErrNotSampled marks a zero-value Group that was never filled in.
var ErrNotSampled = errors.New("not sampled")

// Group holds one metric category of a snapshot. It is either present with a
// value or absent with the reason it could not be read.
type Group[T any] struct {
	value   T
	reason  error
	present bool
}

// Present wraps a successfully read value.
func Present[T any](v T) Group[T] { return Group[T]{value: v, present: true} }

// Absent records why a group could not be read.
func Absent[T any](reason error) Group[T] {
	if reason == nil {
		reason = ErrNotSampled
	}
	return Group[T]{reason: reason}
}

// Get returns the value and whether it is present.
func (g Group[T]) Get() (T, bool) { return g.value, g.present }

// OK reports whether the group is present.
func (g Group[T]) OK() bool { return g.present }

// Reason is nil for present groups.
func (g Group[T]) Reason() error {
	if g.present {
		return nil
	}
	if g.reason == nil {
		return ErrNotSampled
	}
	return g.reason
}

// MarshalJSON encodes an absent group as null.
func (g Group[T]) MarshalJSON() ([]byte, error) {
	if !g.present {
		return []byte("null"), nil
	}
	return json.Marshal(g.value)
}
