package mf2

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one of them.
var (
	ErrMissingField  = errors.New("missing field")
	ErrTypeMismatch  = errors.New("type mismatch")
	ErrEmptySequence = errors.New("empty sequence")
	ErrParseFailure  = errors.New("parse failure")
)

// DecodeError reports the first field that failed to decode.
type DecodeError struct {
	// Field is the dotted path of the failing field using wire names,
	// e.g. "properties.category". Empty when the document itself is malformed.
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return "mf2: " + e.Err.Error()
	}
	return fmt.Sprintf("mf2: %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// fieldError attaches field to err, prefixing any path err already carries.
func fieldError(field string, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		path := field
		if de.Field != "" {
			path = field + "." + de.Field
		}
		return &DecodeError{Field: path, Err: de.Err}
	}
	return &DecodeError{Field: field, Err: err}
}

func missingField(field string) error {
	return &DecodeError{Field: field, Err: ErrMissingField}
}

func typeMismatch(field, want string, data []byte) error {
	return &DecodeError{
		Field: field,
		Err:   fmt.Errorf("%w: expected %s, got %s", ErrTypeMismatch, want, describe(data)),
	}
}
