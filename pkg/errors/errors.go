package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration, catalog, and scenario validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NotFoundError reports a lookup by identifier that matched nothing, such as
// an unknown category or product SKU.
type NotFoundError struct {
	Kind string
	ID   string
}

// NewNotFoundError constructs a NotFoundError.
func NewNotFoundError(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// ExpectationError reports a scenario assertion that did not hold.
type ExpectationError struct {
	Step    int
	Subject string
	Want    interface{}
	Got     interface{}
}

// NewExpectationError constructs an ExpectationError for the given step index.
func NewExpectationError(step int, subject string, want, got interface{}) error {
	return &ExpectationError{Step: step, Subject: subject, Want: want, Got: got}
}

func (e *ExpectationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("expectation failed at step %d: %s: want %v, got %v", e.Step, e.Subject, e.Want, e.Got)
}
