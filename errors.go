// errors.go
package initio

import (
	"errors"
	"fmt"
)

var (
	// ErrItemNotFound indicates no tracked item has the given id
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidItem indicates the item specification is invalid
	ErrInvalidItem = errors.New("invalid item")

	// ErrToolNotAvailable indicates winget or the scripting shell is missing
	ErrToolNotAvailable = errors.New("tool not available")

	// ErrNothingToDo indicates a run was requested with no targets
	ErrNothingToDo = errors.New("nothing to do")
)

// Error wraps an error with additional context
type Error struct {
	Op      string // Operation that failed
	Package string // Package id if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
