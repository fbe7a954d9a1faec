package formstore

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPath is returned for empty paths or empty segments.
	ErrMalformedPath = errors.New("malformed path")
	// ErrNotFound is returned when a path segment names an absent field.
	ErrNotFound = errors.New("field not found")
	// ErrNotDocument is returned when a path steps into a scalar or a list.
	ErrNotDocument = errors.New("not a document")
	// ErrNotList is returned by list operations on a non-list value.
	ErrNotList = errors.New("not a list")
	// ErrKindMismatch is returned when a list item has the wrong kind.
	ErrKindMismatch = errors.New("kind mismatch")
	// ErrUnsupportedValue is returned for values a document cannot hold.
	ErrUnsupportedValue = errors.New("unsupported value")
)

// PathError reports an operation that could not resolve or write a path.
// Segment is the index of the offending segment, or -1 when the path as a
// whole is at fault.
type PathError struct {
	Op      string
	Path    Path
	Segment int
	Err     error
}

func (e *PathError) Error() string {
	if e.Segment >= 0 && e.Segment < len(e.Path) {
		return fmt.Sprintf("%s %q: %v at %q", e.Op, e.Path.String(), e.Err, e.Path[e.Segment])
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path.String(), e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// IndexError reports a list index outside [0, Len).
type IndexError struct {
	Op    string
	Path  Path
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s %q: index %d out of range [0, %d)", e.Op, e.Path.String(), e.Index, e.Len)
}
