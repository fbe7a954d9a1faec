package jobform

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEdit is returned by Apply for an operation it does not know.
var ErrUnknownEdit = errors.New("unknown edit operation")

// UnknownFieldError is returned when a dotted path names no schema field.
type UnknownFieldError struct {
	Path string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Path)
}

// FieldKindError is returned when an edit does not fit the field, such as
// a list operation on a text field.
type FieldKindError struct {
	Field Field
	Op    EditOp
}

func (e *FieldKindError) Error() string {
	return fmt.Sprintf("cannot %s on %s field %q", e.Op, e.Field.Kind(), e.Field.Name())
}

// ProjectionError reports a field that could not be converted for submission.
type ProjectionError struct {
	Field Field
	Value string
	Cause error
}

func (e *ProjectionError) Error() string {
	msg := fmt.Sprintf("invalid %s %q", e.Field.Name(), e.Value)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ProjectionError) Unwrap() error {
	return e.Cause
}

// TemplateError reports a template file that could not be loaded.
type TemplateError struct {
	Path    string
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	var b strings.Builder
	b.WriteString("template")
	if e.Path != "" {
		b.WriteString(" " + e.Path)
	}
	b.WriteString(": " + e.Message)
	if e.Cause != nil {
		b.WriteString(": " + e.Cause.Error())
	}
	return b.String()
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
