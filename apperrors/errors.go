// Package apperrors defines the error kinds shared by services and handlers
// and how each kind is rendered over HTTP.
package apperrors

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Error kinds. Match with errors.Is.
var (
	ErrValidation         = errors.New("validation error")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrAccountLocked      = errors.New("account is temporarily locked")
	ErrForbidden          = errors.New("access denied")
	ErrNotFound           = errors.New("not found")
)

// Error carries a kind plus the message shown to the client
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// New builds an Error of the given kind
func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation is shorthand for New(ErrValidation, fmt.Sprintf(format, args...))
func Validation(format string, args ...interface{}) *Error {
	return New(ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound reports a missing resource, e.g. NotFound("Menu item")
func NotFound(resource string) *Error {
	return New(ErrNotFound, resource+" not found")
}

// Unauthenticated is returned by the auth middleware
func Unauthenticated(message string) *Error {
	return New(ErrUnauthenticated, message)
}

// Forbidden is returned by the role middleware
func Forbidden(message string) *Error {
	return New(ErrForbidden, message)
}

// FromMongo translates driver errors that have a client-facing meaning.
// Everything else is returned unchanged.
func FromMongo(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return NotFound(resource)
	case mongo.IsDuplicateKeyError(err):
		return Validation("%s already exists", resource)
	}
	return err
}

// Message returns the client-facing text for err
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "Server error"
}

var kinds = []error{
	ErrValidation,
	ErrUnauthenticated,
	ErrInvalidCredentials,
	ErrAccountInactive,
	ErrAccountLocked,
	ErrForbidden,
	ErrNotFound,
}
