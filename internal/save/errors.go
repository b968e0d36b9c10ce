package save

import (
	"errors"
	"fmt"
)

var (
	// ErrSaveNotFound means the slot holds no save yet.
	ErrSaveNotFound = errors.New("save not found")
	// ErrSaveCorrupt means the blob exists but cannot be decoded or applied.
	ErrSaveCorrupt = errors.New("save corrupt")
	// ErrSaveFailed means the snapshot could not be encoded or written.
	ErrSaveFailed = errors.New("save failed")
)

// Error is the single error type crossing the persistence boundary.
// Err carries one of the sentinels above followed by the underlying cause.
type Error struct {
	Op   string
	Slot string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Slot, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op, slot string, kind, cause error) *Error {
	if cause == nil {
		return &Error{Op: op, Slot: slot, Err: kind}
	}
	return &Error{Op: op, Slot: slot, Err: fmt.Errorf("%w: %w", kind, cause)}
}
