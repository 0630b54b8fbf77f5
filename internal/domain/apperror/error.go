package apperror

import (
	"errors"
	"fmt"
)

// Class is the failure taxonomy an error belongs to. It decides where the
// error was raised, not what the caller sees.
type Class int

const (
	ClassValidation Class = iota + 1
	ClassDispatch
	ClassTransport
	ClassTranslation
	ClassBusiness
)

func (c Class) String() string {
	switch c {
	case ClassValidation:
		return "validation"
	case ClassDispatch:
		return "dispatch"
	case ClassTransport:
		return "transport"
	case ClassTranslation:
		return "translation"
	case ClassBusiness:
		return "business"
	default:
		return "unknown"
	}
}

// Error is a canonical error: a registry entry, the class of failure that
// produced it, and the underlying cause if any.
type Error struct {
	Err   error
	Entry Entry
	Class Class
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Entry.Kind, e.Entry.Code, e.Class, e.Err)
	}
	return fmt.Sprintf("%s (%s): %s", e.Entry.Kind, e.Entry.Code, e.Class)
}

func (e *Error) Unwrap() error { return e.Err }

// Kind is shorthand for e.Entry.Kind.
func (e *Error) Kind() Kind { return e.Entry.Kind }

// As extracts a canonical error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err carries a canonical error of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Entry.Kind == kind
}
