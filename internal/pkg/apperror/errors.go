package apperror

import "errors"

// Error kinds. Every domain error wraps exactly one of these so the HTTP
// layer can map it to a status code with errors.Is.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrResourceNotFound    = errors.New("resource not found")
	ErrResourcePersistence = errors.New("resource persistence error")
	ErrResourceConflict    = errors.New("resource conflict")
	ErrAuthentication      = errors.New("authentication error")
	ErrAuthorization       = errors.New("authorization error")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternal            = errors.New("internal server error")
)

// Error is a classified error. Message is safe to show to API clients; Err
// (when set) is the underlying cause and is only logged.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(kind error, message string, cause error) *Error {
	if message == "" {
		message = kind.Error()
	}
	return &Error{Kind: kind, Message: message, Err: cause}
}

func BadRequest(message string) *Error {
	return newError(ErrBadRequest, message, nil)
}

func NotFound(message string) *Error {
	return newError(ErrResourceNotFound, message, nil)
}

func Persistence(message string) *Error {
	return newError(ErrResourcePersistence, message, nil)
}

func Conflict(message string) *Error {
	return newError(ErrResourceConflict, message, nil)
}

func Authentication(message string) *Error {
	return newError(ErrAuthentication, message, nil)
}

func Authorization(message string) *Error {
	return newError(ErrAuthorization, message, nil)
}

func TooManyRequests(message string) *Error {
	return newError(ErrTooManyRequests, message, nil)
}

// Internal wraps an unexpected store or infrastructure failure.
func Internal(message string, cause error) *Error {
	return newError(ErrInternal, message, cause)
}

// Message returns the client-facing message of a classified error, or
// fallback when err carries none.
func Message(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
