package types

import (
	"errors"
	"net/http"
)

type ErrorCode string

const (
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
	ValidationError      ErrorCode = "VALIDATION_ERROR"
	NotFound             ErrorCode = "NOT_FOUND"
	BadRequest           ErrorCode = "BAD_REQUEST"
	Forbidden            ErrorCode = "FORBIDDEN"
	UnprocessableEntity  ErrorCode = "UNPROCESSABLE_ENTITY"
	RequestTimeout       ErrorCode = "REQUEST_TIMEOUT"
	ServiceUnavailable   ErrorCode = "SERVICE_UNAVAILABLE"
)

func (e ErrorCode) String() string {
	return string(e)
}

// Error carries an http-like status code and a machine readable error code
// alongside the wrapped error.
type Error struct {
	StatusCode int
	ErrorCode  ErrorCode
	Err        error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        errors.New(msg),
	}
}

func NewInternalServiceError(err error) *Error {
	return &Error{
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  InternalServiceError,
		Err:        err,
	}
}

func NewValidationFailedError(err error) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		ErrorCode:  ValidationError,
		Err:        err,
	}
}

func NewNotFoundError(err error) *Error {
	return &Error{
		StatusCode: http.StatusNotFound,
		ErrorCode:  NotFound,
		Err:        err,
	}
}

// IsRetryable reports whether processing may succeed if attempted again.
func (e *Error) IsRetryable() bool {
	return e.StatusCode >= http.StatusInternalServerError
}
