// ABOUTME: Storage error type for local persistence failures
// ABOUTME: Wraps underlying driver errors so callers can match with errors.As
package sqlite

import "fmt"

// StorageError indicates a local persistence I/O or corruption failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// storageErr wraps err in a StorageError unless it is nil or already one.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*StorageError); ok {
		return se
	}
	return &StorageError{Op: op, Err: err}
}
