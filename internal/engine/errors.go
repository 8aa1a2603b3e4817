package engine

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates an operation referenced a task or progress entry
// id absent from the store.
var ErrNotFound = errors.New("not found")

// ErrContainerProgress indicates an attempt to record progress against a
// container task. Only leaf tasks accept progress entries.
var ErrContainerProgress = errors.New("container tasks cannot hold progress entries")

// ValidationError rejects malformed input before it reaches the store:
// empty titles, non-positive targets, negative progress values.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
