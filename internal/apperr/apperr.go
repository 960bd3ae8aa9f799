package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindImmutableSchedule
	KindIncompleteBatches
	KindCapacityExceeded
	KindResourceConflict
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindImmutableSchedule:
		return "immutable_schedule"
	case KindIncompleteBatches:
		return "incomplete_batches"
	case KindCapacityExceeded:
		return "capacity_exceeded"
	case KindResourceConflict:
		return "resource_conflict"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Error is a failure the HTTP layer can report to the client. Message is safe to show;
// Err keeps the underlying cause for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrImmutableSchedule = &Error{Kind: KindImmutableSchedule}
	ErrIncompleteBatches = &Error{Kind: KindIncompleteBatches}
	ErrCapacityExceeded  = &Error{Kind: KindCapacityExceeded}
	ErrResourceConflict  = &Error{Kind: KindResourceConflict}
	ErrPersistence       = &Error{Kind: KindPersistence}
)

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

// Persistence hides err behind a generic message.
func Persistence(err error) *Error {
	return &Error{Kind: KindPersistence, Message: "internal storage error", Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Ensure returns err unchanged when it already belongs to the taxonomy and wraps it as a
// persistence failure otherwise.
func Ensure(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return Persistence(err)
}

// Message returns the client-facing text for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "internal server error"
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindImmutableSchedule, KindIncompleteBatches, KindCapacityExceeded, KindResourceConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
