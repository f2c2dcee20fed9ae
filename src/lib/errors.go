package lib

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidState    = errors.New("invalid state")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrStorageFailure  = errors.New("storage failure")
	ErrUnauthorized    = errors.New("unauthorized")
)

// Error carries one of the sentinel kinds above together with a message that
// is safe to show to API clients.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// NewError builds an *Error of the given kind
func NewError(kind error, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(format string, args ...any) error {
	return NewError(ErrNotFound, fmt.Sprintf(format, args...), nil)
}

func InvalidState(format string, args ...any) error {
	return NewError(ErrInvalidState, fmt.Sprintf(format, args...), nil)
}

func InvalidArgument(format string, args ...any) error {
	return NewError(ErrInvalidArgument, fmt.Sprintf(format, args...), nil)
}

func Unauthorized(format string, args ...any) error {
	return NewError(ErrUnauthorized, fmt.Sprintf(format, args...), nil)
}

// StorageFailure wraps a collaborator I/O error. The cause is kept unchanged
// so callers can still match driver errors.
func StorageFailure(message string, err error) error {
	return NewError(ErrStorageFailure, message, err)
}

// StatusFor maps an error to the HTTP status returned to clients
func StatusFor(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidState):
		return fiber.StatusConflict
	case errors.Is(err, ErrInvalidArgument):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// ClientMessage returns the human readable part of err. Storage failures and
// unknown errors collapse into a generic message so driver details never leak.
func ClientMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && !errors.Is(e.Kind, ErrStorageFailure) {
		return e.Message
	}
	return "Server error"
}
