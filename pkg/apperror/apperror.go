package apperror

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind classifies an application error.
type Kind int

const (
	KindUnauthenticated Kind = iota + 1
	KindUnauthorized
	KindNotFound
	KindInvalidArgument
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Error is the single error type crossing repository and service boundaries.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

func Persistence(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}

// KindOf returns the kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return 0
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// FromStore maps a backing-store error onto the taxonomy. Every repository
// method routes its errors through here; the resource name is used for
// NotFound messages.
func FromStore(err error, resource string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	switch status.Code(err) {
	case codes.NotFound:
		return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource), Err: err}
	case codes.InvalidArgument:
		return &Error{Kind: KindInvalidArgument, Message: "invalid request to store", Err: err}
	case codes.Unauthenticated:
		return &Error{Kind: KindUnauthenticated, Message: "store rejected credentials", Err: err}
	case codes.PermissionDenied:
		return &Error{Kind: KindUnauthorized, Message: "store denied access", Err: err}
	default:
		return &Error{Kind: KindPersistence, Message: fmt.Sprintf("%s operation failed", resource), Err: err}
	}
}
