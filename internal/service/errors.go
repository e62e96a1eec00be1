package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrBackend      = errors.New("calculation backend error")
)

// ValidationError señala un campo de entrada fuera de rango.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// BackendError envuelve una respuesta del almanaque que no se pudo usar.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrBackend, e.Op, e.Err)
}

func (e *BackendError) Unwrap() []error { return []error{ErrBackend, e.Err} }
