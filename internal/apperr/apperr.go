// Package apperr defines the error kinds the service surfaces at the HTTP
// boundary. Services return these (usually wrapped with %w); controllers
// translate them into status codes without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindAuthorization Kind = iota + 1
	KindNotFound
	KindValidation
	KindExternalClient  // provider rejected the request as malformed
	KindExternalUnknown // provider failed for an undisclosed reason
	KindConflict
)

// FieldError points at the offending field of a validation failure.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Authorization(msg string) error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Validation(msg string, fields ...FieldError) error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func ExternalClient(msg string, err error) error {
	return &Error{Kind: KindExternalClient, Message: msg, Err: err}
}

func ExternalUnknown(msg string, err error) error {
	return &Error{Kind: KindExternalUnknown, Message: msg, Err: err}
}

func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

func IsKind(err error, kind Kind) bool {
	if e, ok := As(err); ok {
		return e.Kind == kind
	}
	return false
}

// HTTPStatus classifies an error kind for the request boundary.
// Unrecognized errors map to 500.
func HTTPStatus(err error) int {
	e, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindExternalClient:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
