package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrMalformed = errors.New("malformed document")
)

// DecodeError reports a field whose stored value has an unexpected shape.
type DecodeError struct {
	Path  string
	Field string
	Value any
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: field %q has unexpected %T value", e.Path, e.Field, e.Value)
}

func (e *DecodeError) Unwrap() error { return ErrMalformed }
