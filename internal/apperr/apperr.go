// Package apperr classifies failures so every transport can map them to its
// own status vocabulary without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindNotFound
	KindNoSchedule
	KindInvalidAvailability
	KindConflict
	KindUnauthenticated
)

var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrNotFound            = errors.New("not found")
	ErrNoSchedule          = errors.New("no schedule found for user")
	ErrInvalidAvailability = errors.New("invalid availability data format")
	ErrConflict            = errors.New("time conflicts with existing appointment")
	ErrUnauthenticated     = errors.New("unauthenticated")
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrInvalidArgument, KindInvalidArgument},
	{ErrNotFound, KindNotFound},
	{ErrNoSchedule, KindNoSchedule},
	{ErrInvalidAvailability, KindInvalidAvailability},
	{ErrConflict, KindConflict},
	{ErrUnauthenticated, KindUnauthenticated},
}

// KindOf reports the classification of err; unclassified errors are internal.
func KindOf(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "INVALID_ARGUMENT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindNoSchedule:
		return "NO_SCHEDULE"
	case KindInvalidAvailability:
		return "INVALID_AVAILABILITY"
	case KindConflict:
		return "CONFLICT"
	case KindUnauthenticated:
		return "UNAUTHENTICATED"
	}
	return "INTERNAL"
}

// With returns an error matching sentinel whose client message is the
// formatted text.
func With(sentinel error, format string, args ...any) error {
	return &detailed{kind: sentinel, msg: fmt.Sprintf(format, args...)}
}

func Invalid(format string, args ...any) error {
	return With(ErrInvalidArgument, format, args...)
}

// detailed keeps a client-facing message while matching its sentinel.
type detailed struct {
	kind error
	msg  string
}

func (d *detailed) Error() string { return d.msg }
func (d *detailed) Unwrap() error { return d.kind }

// Message returns the text safe to show a client: the detail for classified
// errors and a generic string for internal ones.
func Message(err error) string {
	if KindOf(err) == KindInternal {
		return "internal error"
	}
	var d *detailed
	if errors.As(err, &d) {
		return d.msg
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.err.Error()
		}
	}
	return err.Error()
}
