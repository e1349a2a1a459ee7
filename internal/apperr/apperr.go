package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	ValidationError   Kind = "ValidationError"
	DuplicateUser     Kind = "DuplicateUser"
	InvalidCredential Kind = "InvalidCredential"
	Suspended         Kind = "Suspended"
	NotFound          Kind = "NotFound"
	InvalidTransition Kind = "InvalidTransition"
	Unauthorized      Kind = "Unauthorized"
	Forbidden         Kind = "Forbidden"
	MethodNotAllowed  Kind = "MethodNotAllowed"
	InternalError     Kind = "InternalError"
)

// Error is a classified failure. Message is safe to show to clients;
// Err carries the underlying cause and is only ever logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// holds for every not-found error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation        = &Error{Kind: ValidationError, Message: "invalid input"}
	ErrDuplicateUser     = &Error{Kind: DuplicateUser, Message: "User already exists"}
	ErrInvalidCredential = &Error{Kind: InvalidCredential, Message: "Invalid email or password"}
	ErrSuspended         = &Error{Kind: Suspended, Message: "Account has been suspended"}
	ErrNotFound          = &Error{Kind: NotFound, Message: "not found"}
	ErrInvalidTransition = &Error{Kind: InvalidTransition, Message: "invalid status transition"}
	ErrUnauthorized      = &Error{Kind: Unauthorized, Message: "Authentication required"}
	ErrForbidden         = &Error{Kind: Forbidden, Message: "Admin access required"}
	ErrInternal          = &Error{Kind: InternalError, Message: "Internal server error"}
)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(ValidationError, message)
}

func NotFoundf(what string) *Error {
	return New(NotFound, what+" not found")
}

// Internal hides err behind the generic internal message.
func Internal(err error) *Error {
	return Wrap(InternalError, ErrInternal.Message, err)
}

// From returns err as an *Error, classifying anything unknown as internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

func KindOf(err error) Kind {
	return From(err).Kind
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case ValidationError, DuplicateUser, InvalidCredential:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Suspended, Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case MethodNotAllowed:
		return http.StatusMethodNotAllowed
	case InvalidTransition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
