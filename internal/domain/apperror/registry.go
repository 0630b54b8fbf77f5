package apperror

import (
	"fmt"
	"net/http"
)

// Category is the coarse error type reported to callers as error_type.
type Category string

const (
	CategoryValidation Category = "VALIDATION_ERROR"
	CategoryBusiness   Category = "BUSINESS_ERROR"
	CategoryTechnical  Category = "TECHNICAL_ERROR"
)

// Entry is one row of the canonical error table.
type Entry struct {
	Kind        Kind
	Code        string
	Category    Category
	Description string
	HTTPStatus  int
}

// Registry is an immutable lookup from Kind to Entry. It is built once at
// startup and shared read-only.
type Registry struct {
	entries     map[Kind]Entry
	successCode string
}

// SuccessCode is the error_code carried by every successful response.
const SuccessCode = "000"

// NewRegistry builds a registry from entries, rejecting duplicate kinds or codes.
// The table must contain INTERNAL_SERVER_ERROR, the fallback for unknown kinds.
func NewRegistry(entries []Entry) (*Registry, error) {
	successCode := SuccessCode
	byKind := make(map[Kind]Entry, len(entries))
	codes := map[string]Kind{successCode: ""}
	for _, e := range entries {
		if e.Kind == "" || e.Code == "" {
			return nil, fmt.Errorf("apperror: entry with empty kind or code: %+v", e)
		}
		if _, dup := byKind[e.Kind]; dup {
			return nil, fmt.Errorf("apperror: duplicate kind %s", e.Kind)
		}
		if owner, dup := codes[e.Code]; dup {
			if owner == "" {
				return nil, fmt.Errorf("apperror: kind %s reuses the success code %s", e.Kind, e.Code)
			}
			return nil, fmt.Errorf("apperror: code %s used by both %s and %s", e.Code, owner, e.Kind)
		}
		if e.HTTPStatus == 0 {
			e.HTTPStatus = http.StatusInternalServerError
		}
		byKind[e.Kind] = e
		codes[e.Code] = e.Kind
	}
	if _, ok := byKind[KindInternalServerError]; !ok {
		return nil, fmt.Errorf("apperror: table has no %s entry", KindInternalServerError)
	}
	return &Registry{entries: byKind, successCode: successCode}, nil
}

// Lookup returns the entry registered for kind.
func (r *Registry) Lookup(kind Kind) (Entry, bool) {
	e, ok := r.entries[kind]
	return e, ok
}

// Error builds a canonical error for kind. An unknown kind resolves to
// INTERNAL_SERVER_ERROR so that every failure maps to exactly one entry.
func (r *Registry) Error(kind Kind, class Class, cause error) *Error {
	e, ok := r.entries[kind]
	if !ok {
		e = r.entries[KindInternalServerError]
	}
	return &Error{Entry: e, Class: class, Err: cause}
}

// Internal wraps cause as an INTERNAL_SERVER_ERROR. A cause that already
// carries a canonical error is returned unchanged.
func (r *Registry) Internal(class Class, cause error) *Error {
	if appErr, ok := As(cause); ok {
		return appErr
	}
	return r.Error(KindInternalServerError, class, cause)
}

// SuccessCode is the error_code reported on successful responses.
func (r *Registry) SuccessCode() string { return r.successCode }

// Len reports the number of registered entries.
func (r *Registry) Len() int { return len(r.entries) }
