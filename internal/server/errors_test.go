package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/jobboard/internal/formstore"
	"github.com/jonathan/jobboard/internal/jobapi"
	"github.com/jonathan/jobboard/internal/jobform"
	"github.com/jonathan/jobboard/internal/schemas"
	"github.com/jonathan/jobboard/internal/types"
)

func TestErrSessionNotFound(t *testing.T) {
	err := &ErrSessionNotFound{ID: "abc"}
	assert.Equal(t, "form session not found: abc", err.Error())
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "index", Message: "must be an integer"}
	assert.Equal(t, "validation error: index - must be an integer", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	path := formstore.MustParsePath("job_description.requirements.skills")

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil", err: nil, expected: http.StatusOK},
		{name: "IndexError", err: &formstore.IndexError{Op: "set", Path: path, Index: 9, Len: 2}, expected: http.StatusBadRequest},
		{name: "PathError", err: &formstore.PathError{Op: "set", Path: path, Err: formstore.ErrNotDocument}, expected: http.StatusBadRequest},
		{name: "UnknownFieldError", err: &jobform.UnknownFieldError{Path: "salary.bonus"}, expected: http.StatusBadRequest},
		{name: "FieldKindError", err: &jobform.FieldKindError{Field: jobform.Company, Op: jobform.OpAddItem}, expected: http.StatusBadRequest},
		{name: "unknown edit", err: fmt.Errorf("%w %q", jobform.ErrUnknownEdit, "rename"), expected: http.StatusBadRequest},
		{name: "wrapped edit failure", err: fmt.Errorf("edit 2: %w", &jobform.UnknownFieldError{Path: "x"}), expected: http.StatusBadRequest},
		{name: "ProjectionError", err: &jobform.ProjectionError{Field: jobform.SalaryMin, Value: "x"}, expected: http.StatusUnprocessableEntity},
		{name: "ValidationErrors", err: validator.ValidationErrors{}, expected: http.StatusUnprocessableEntity},
		{name: "schema", err: &schemas.ValidationError{}, expected: http.StatusUnprocessableEntity},
		{name: "missing deadline", err: types.ErrMissingDeadline, expected: http.StatusUnprocessableEntity},
		{name: "StatusError", err: &jobapi.StatusError{StatusCode: 500, Body: "x"}, expected: http.StatusBadGateway},
		{name: "transport", err: &jobapi.Error{Message: "HTTP request failed", Cause: context.DeadlineExceeded}, expected: http.StatusBadGateway},
		{name: "session", err: &ErrSessionNotFound{ID: "x"}, expected: http.StatusNotFound},
		{name: "other", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
