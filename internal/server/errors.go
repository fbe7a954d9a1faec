package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/jobboard/internal/formstore"
	"github.com/jonathan/jobboard/internal/jobapi"
	"github.com/jonathan/jobboard/internal/jobform"
	"github.com/jonathan/jobboard/internal/schemas"
	"github.com/jonathan/jobboard/internal/types"
)

// ErrSessionNotFound indicates no form session has the requested ID
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("form session not found: %s", e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound   *ErrSessionNotFound
		invalid    *ErrValidation
		indexErr   *formstore.IndexError
		pathErr    *formstore.PathError
		unknown    *jobform.UnknownFieldError
		kindErr    *jobform.FieldKindError
		projErr    *jobform.ProjectionError
		fieldErrs  validator.ValidationErrors
		schemaErr  *schemas.ValidationError
		statusErr  *jobapi.StatusError
		serviceErr *jobapi.Error
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalid),
		errors.As(err, &indexErr),
		errors.As(err, &pathErr),
		errors.As(err, &unknown),
		errors.As(err, &kindErr),
		errors.Is(err, jobform.ErrUnknownEdit):
		return http.StatusBadRequest
	case errors.As(err, &projErr),
		errors.As(err, &fieldErrs),
		errors.As(err, &schemaErr),
		errors.Is(err, types.ErrMissingDeadline):
		return http.StatusUnprocessableEntity
	case errors.As(err, &statusErr), errors.As(err, &serviceErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err to a status and writes it. Upstream failures carry
// the job service's status and body so the client sees what it rejected.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)

	var statusErr *jobapi.StatusError
	if errors.As(err, &statusErr) {
		s.jsonResponse(w, status, map[string]any{
			"error":           statusErr.Detail(),
			"upstream_status": statusErr.StatusCode,
			"upstream_body":   statusErr.Body,
		})
		return
	}

	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	}
	s.errorResponse(w, status, err.Error())
}
