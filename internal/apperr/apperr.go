package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidDate
	KindValidation
	KindConflict
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidDate:
		return "invalid_date"
	case KindValidation:
		return "validation_failed"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by the call desk core. Handlers map it
// to an HTTP status through StatusOf.
type Error struct {
	Kind     Kind
	Resource string
	Message  string
	Err      error
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

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidDate, KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(resource string, id any) error {
	msg := resource + " not found"
	if id != nil {
		msg = fmt.Sprintf("%s not found: %v", resource, id)
	}
	return &Error{Kind: KindNotFound, Resource: resource, Message: msg}
}

func InvalidDate(value string, err error) error {
	return &Error{
		Kind:    KindInvalidDate,
		Message: fmt.Sprintf("invalid date %q", value),
		Err:     err,
	}
}

func Validation(field, reason string) error {
	return &Error{
		Kind:     KindValidation,
		Resource: field,
		Message:  fmt.Sprintf("validation failed for field '%s': %s", field, reason),
	}
}

func Conflict(resource, message string) error {
	return &Error{Kind: KindConflict, Resource: resource, Message: message}
}

func Forbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusOf maps err to an HTTP status; errors outside the taxonomy are 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus()
	}
	return http.StatusInternalServerError
}
