package booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidRange      = errors.New("check-out must be after check-in")
	ErrNegativeAmount    = errors.New("amount cannot be negative")
	ErrCurrencyMismatch  = errors.New("currency mismatch")
	ErrInvalidReference  = errors.New("invalid reference format")
	ErrMissingReference  = errors.New("reservation has no reference assigned")
	ErrAlreadyReferenced = errors.New("reference is immutable once assigned")
)

type FieldError struct {
	Field  string
	Reason string
}

// ValidationError names every missing or malformed field of a request so the
// presentation layer can render per-field feedback.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// FieldMap flattens to field -> reason for JSON error payloads.
func (e *ValidationError) FieldMap() map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, dup := m[f.Field]; !dup {
			m[f.Field] = f.Reason
		}
	}
	return m
}
