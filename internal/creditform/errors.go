package creditform

import (
	"errors"
	"fmt"
	"strings"
)

var ErrSubmissionInFlight = errors.New("submission_in_flight")

const fallbackErrorMessage = "Failed to submit"

// FieldError holds the messages reported against one field.
type FieldError struct {
	Field    string
	Messages []string
}

// FieldErrors is a structured rejection from the scoring endpoint, kept in
// the order the server listed the fields.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+strings.Join(fe.Messages, ", "))
	}
	return strings.Join(parts, " | ")
}

// ServerError is a non-2xx response whose body was not a field mapping.
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
	}
	return e.Body
}

// TransportError is a failure to get any response from the scoring endpoint.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// ConstraintError lists the required/type constraints an application breaks.
type ConstraintError struct {
	Violations []Violation
}

func (e *ConstraintError) Error() string {
	return e.FieldErrors().Error()
}

func (e *ConstraintError) FieldErrors() FieldErrors {
	out := make(FieldErrors, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, FieldError{Field: v.Field, Messages: []string{v.Message}})
	}
	return out
}

// ErrorMessage renders err the way the status banner shows it, without the
// "Error: " prefix.
func ErrorMessage(err error) string {
	var (
		fieldErrs     FieldErrors
		constraintErr *ConstraintError
		serverErr     *ServerError
		transportErr  *TransportError
		msg           string
	)
	switch {
	case err == nil:
	case errors.As(err, &fieldErrs):
		msg = fieldErrs.Error()
	case errors.As(err, &constraintErr):
		msg = constraintErr.Error()
	case errors.As(err, &serverErr):
		msg = serverErr.Error()
	case errors.As(err, &transportErr):
		msg = transportErr.Error()
	default:
		msg = err.Error()
	}
	if strings.TrimSpace(msg) == "" {
		return fallbackErrorMessage
	}
	return msg
}
