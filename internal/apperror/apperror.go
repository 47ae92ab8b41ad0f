package apperror

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Error is an operational error: an expected failure with a stable,
// user-facing message and an HTTP status code. Anything that is not an
// *Error is treated as a programming error by the handler below.
type Error struct {
	Err     error
	Message string
	Code    int
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an operational error with the given status code and message.
func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches an underlying cause for logging while keeping the
// user-facing message stable.
func Wrap(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *Error {
	return New(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(fiber.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(fiber.StatusNotFound, message)
}

func Internal(message string, err error) *Error {
	return &Error{Code: fiber.StatusInternalServerError, Message: message, Err: err}
}

// IsOperational reports whether err was produced through this package.
func IsOperational(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr)
}
