// Package apperr defines the error taxonomy shared by stores and handlers.
// Errors carry the client-facing mensaje; translation to an HTTP response
// happens once, in the server's error handler.
package apperr

import "net/http"

type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindInternal
)

type Error struct {
	Kind    Kind
	Mensaje string
	Err     error // underlying cause, logged but never sent to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Mensaje + ": " + e.Err.Error()
	}
	return e.Mensaje
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func Validation(mensaje string) *Error {
	return &Error{Kind: KindValidation, Mensaje: mensaje}
}

func NotFound(mensaje string) *Error {
	return &Error{Kind: KindNotFound, Mensaje: mensaje}
}

func Conflict(mensaje string) *Error {
	return &Error{Kind: KindConflict, Mensaje: mensaje}
}

func Unauthorized(mensaje string) *Error {
	return &Error{Kind: KindUnauthorized, Mensaje: mensaje}
}

func Forbidden(mensaje string) *Error {
	return &Error{Kind: KindForbidden, Mensaje: mensaje}
}

func Internal(mensaje string, err error) *Error {
	return &Error{Kind: KindInternal, Mensaje: mensaje, Err: err}
}
