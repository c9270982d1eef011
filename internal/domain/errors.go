package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrValidation      = errors.New("validation error")
	ErrUnknownPhoneme  = errors.New("unknown phoneme")
	ErrInvalidCodeUnit = errors.New("invalid code unit")
	ErrMalformedEntry  = errors.New("malformed dictionary entry")
	ErrInvalidPattern  = errors.New("invalid phonetic pattern")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// UnknownPhonemeError reports a token that does not name a known phoneme
// after stress digits are stripped.
type UnknownPhonemeError struct {
	Symbol string
}

func (e *UnknownPhonemeError) Error() string {
	return fmt.Sprintf("unknown phoneme %q", e.Symbol)
}

func (e *UnknownPhonemeError) Unwrap() error { return ErrUnknownPhoneme }

// InvalidCodeUnitError reports a rune outside the phoneme code range.
// It means the encoded data was corrupted or produced by something else.
type InvalidCodeUnitError struct {
	Unit rune
}

func (e *InvalidCodeUnitError) Error() string {
	return fmt.Sprintf("invalid code unit %U", e.Unit)
}

func (e *InvalidCodeUnitError) Unwrap() error { return ErrInvalidCodeUnit }

// MalformedEntryError reports a dictionary line that could not be parsed.
// Source and Line locate the line; Err holds the underlying cause.
type MalformedEntryError struct {
	Source string
	Line   int
	Text   string
	Err    error
}

func (e *MalformedEntryError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s:%d: malformed entry %q", e.Source, e.Line, e.Text)
	}
	return fmt.Sprintf("%s:%d: malformed entry %q: %v", e.Source, e.Line, e.Text, e.Err)
}

// Unwrap exposes both the sentinel and the cause, so errors.Is works for
// ErrMalformedEntry as well as for ErrUnknownPhoneme or ErrInvalidCodeUnit.
func (e *MalformedEntryError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedEntry}
	}
	return []error{ErrMalformedEntry, e.Err}
}

// InvalidPatternError reports a phonetic pattern whose translation is not
// a valid regular expression.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() []error { return []error{ErrInvalidPattern, e.Err} }
