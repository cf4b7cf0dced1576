// Package apperr define la taxonomía de errores de dominio que los handlers
// traducen a códigos HTTP.
package apperr

import (
	"errors"
	"fmt"
)

// Kinds. Todo *Error envuelve exactamente uno de estos.
var (
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrPreconditionFailed = errors.New("precondition failed")
)

// Error es un error de dominio con un mensaje legible para el cliente.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Withf crea un error del mismo kind que base con otro mensaje.
// errors.Is(err, base) sigue siendo true.
func Withf(base *Error, format string, args ...any) *Error {
	return &Error{
		Kind:    base.Kind,
		Message: fmt.Sprintf(format, args...),
		Err:     base,
	}
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Kind != nil {
		return e.Kind.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// Message devuelve el mensaje de cliente de err, o "" si no es un error de dominio.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return ""
}

// KindName etiqueta err para métricas y logs.
func KindName(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrPreconditionFailed):
		return "precondition_failed"
	default:
		return "error"
	}
}
