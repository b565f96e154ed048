package promptstore

import (
	errs "errors"
	"fmt"
)

// ErrNotFound means a mutation targeted an id that no longer exists,
// typically a stale row after a concurrent delete.
var ErrNotFound = errs.New("prompt not found")

// ValidationError names a required field that arrived empty. The form layer
// validates before calling the store; the store re-checks on every write.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}

// StorageError wraps a failure at the persistence layer. The in-flight
// mutation is considered not applied.
type StorageError struct {
	Op  string
	Err error
}

func (e StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e StorageError) Unwrap() error {
	return e.Err
}
