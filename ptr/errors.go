// Package ptr - Error types for pointer handle operations.
//
// This file defines error handling for operations whose preconditions can
// fail at runtime. Errors carry the failing operation, a rendering of the
// handle state at the time of the failure, and a suggestion for recovery.
//
// Example output:
//
//	ptr: Read: handle is null: UniquePointer0000000000000000[refs=1][alloc=false][written=false][is_copy=false]
//
//	Suggestion: call Write before reading, or use TryRead to probe the handle
package ptr

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by handle operations. Callers match them with
// errors.Is; the concrete error returned is always a *PreconditionError
// wrapping one of these.
var (
	// ErrNullPointer reports an operation that requires an allocation on a
	// handle whose pointer is null.
	ErrNullPointer = errors.New("handle is null")

	// ErrNotWritten reports a read from a handle that is allocated but has
	// never been written.
	ErrNotWritten = errors.New("handle has not been written")
)

// PreconditionError represents a handle operation rejected because the
// handle was not in the state the operation requires.
//
// Fields:
//   - Op: Name of the failing operation ("Read", "IntoOwned", ...)
//   - Handle: String rendering of the handle at the time of the failure
//   - Suggestion: Optional hint for resolving the error (empty if none)
//   - Err: The wrapped sentinel (ErrNullPointer or ErrNotWritten)
//
// Example:
//
//	var p ptr.UniquePointer[int]
//	if _, err := p.Read(); err != nil {
//	    var pe *ptr.PreconditionError
//	    if errors.As(err, &pe) {
//	        fmt.Println(pe.Handle) // state of p when Read failed
//	    }
//	}
type PreconditionError struct {
	Op         string // Failing operation name
	Handle     string // Handle state rendering
	Suggestion string // Optional recovery hint (empty if none)
	Err        error  // Wrapped sentinel
}

// Error implements the error interface.
//
// Format: ptr: op: sentinel: handle
//
// If Suggestion is non-empty, it's appended on a new line with
// "Suggestion: " prefix.
func (e *PreconditionError) Error() string {
	result := fmt.Sprintf("ptr: %s: %v: %s", e.Op, e.Err, e.Handle)
	if e.Suggestion != "" {
		result += fmt.Sprintf("\n\nSuggestion: %s", e.Suggestion)
	}
	return result
}

// Unwrap returns the wrapped sentinel so that errors.Is(err, ErrNullPointer)
// and errors.Is(err, ErrNotWritten) work through the chain.
func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// newPreconditionError builds a *PreconditionError for op against the given
// handle rendering.
func newPreconditionError(op, handle, suggestion string, sentinel error) *PreconditionError {
	return &PreconditionError{
		Op:         op,
		Handle:     handle,
		Suggestion: suggestion,
		Err:        sentinel,
	}
}
