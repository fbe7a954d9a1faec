package jobapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error represents a request that never produced a usable response.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("job service error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("job service error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// StatusError is a non-2xx answer from the job service. Body is kept
// verbatim so callers can surface it unchanged.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d - %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Detail returns the "detail" message of an error body, or the whole body
// when it has none.
func (e *StatusError) Detail() string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal([]byte(e.Body), &payload); err != nil || len(payload.Detail) == 0 {
		return strings.TrimSpace(e.Body)
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return s
	}
	// validation failures carry a list of problems
	return string(payload.Detail)
}
