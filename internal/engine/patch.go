package engine

import "encoding/json"

// Field is an optional update value distinguishing "not supplied" from
// "set to null" from "set to a value". The zero value leaves the target
// field unchanged.
type Field[T any] struct {
	Valid bool // the field was supplied
	Ptr   *T   // nil clears a nullable field
}

// Set returns a Field carrying a value.
func Set[T any](v T) Field[T] {
	return Field[T]{Valid: true, Ptr: &v}
}

// Clear returns a Field that clears a nullable field.
func Clear[T any]() Field[T] {
	return Field[T]{Valid: true}
}

// UnmarshalJSON is only invoked for keys present in the payload, so
// presence maps to Valid and a JSON null maps to a nil Ptr.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Valid = true
	if string(data) == "null" {
		f.Ptr = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Ptr = &v
	return nil
}
