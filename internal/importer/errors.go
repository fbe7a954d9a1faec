package importer

import (
	"errors"
	"fmt"
)

// ErrNoPosting is returned when a page carries neither structured posting
// data nor a recognizable title.
var ErrNoPosting = errors.New("no job posting found on page")

// Error represents an error fetching a job page.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("import error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("import error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
