package model

import "fmt"

// ErrorKind classifies document-fatal extraction failures.
type ErrorKind string

const (
	KindNamespaceNotFound ErrorKind = "namespace_not_found"
	KindMalformedXML      ErrorKind = "malformed_xml"
	KindMissingStamp      ErrorKind = "missing_fiscal_stamp"
	KindInvalidDate       ErrorKind = "invalid_date_format"
	KindUnexpected        ErrorKind = "unexpected"
)

// ParseError represents a document-fatal extraction failure. One ParseError
// fails exactly one document; batch processing continues past it.
type ParseError struct {
	Kind    ErrorKind
	Field   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Kind, e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Field, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error
func NewParseError(kind ErrorKind, field, message string, cause error) *ParseError {
	return &ParseError{
		Kind:    kind,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// ValidationError represents validation failures on records headed for the
// store (duplicate folio, malformed amounts, and the like).
type ValidationError struct {
	Field   string
	Value   interface{}
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed on %s: %s (value=%v, rule=%s)", e.Field, e.Message, e.Value, e.Rule)
	}
	return fmt.Sprintf("validation failed on %s: %s (rule=%s)", e.Field, e.Message, e.Rule)
}

// NewValidationError creates a new validation error
func NewValidationError(field string, value interface{}, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}
