package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record referenced by id or name does not exist
	ErrNotFound = errors.New("not found")
	// ErrValidation matches every *ValidationError via errors.Is
	ErrValidation = errors.New("validation failed")
)

// ValidationError rejects a mutation before any state changes
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StorageError wraps a failure of the underlying store. The ledger keeps its
// previous in-memory state when one is returned.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
