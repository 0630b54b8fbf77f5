// Package partner holds the error translation shared by the bank adapters.
package partner

import (
	"fmt"

	"github.com/bibbank/leapneo/internal/domain/apperror"
	"github.com/bibbank/leapneo/internal/infrastructure/client/transport"
)

// CodeTable maps one partner's result codes to canonical kinds.
type CodeTable struct {
	bank     string
	codes    map[string]apperror.Kind
	fallback apperror.Kind
}

// NewCodeTable returns a table for bank. Codes missing from codes resolve to
// fallback.
func NewCodeTable(bank string, fallback apperror.Kind, codes map[string]apperror.Kind) CodeTable {
	return CodeTable{bank: bank, codes: codes, fallback: fallback}
}

// Resolve returns the canonical kind for code and whether the code is known.
func (t CodeTable) Resolve(code string) (apperror.Kind, bool) {
	kind, ok := t.codes[code]
	if !ok {
		return t.fallback, false
	}
	return kind, true
}

// Failure converts a partner failure code into a canonical error. Known codes
// are business outcomes; unknown codes are translation failures.
func (t CodeTable) Failure(errs *apperror.Registry, code, message string) *apperror.Error {
	kind, known := t.Resolve(code)
	class := apperror.ClassBusiness
	if !known {
		class = apperror.ClassTranslation
	}
	return errs.Error(kind, class, fmt.Errorf("%s returned code %q: %s", t.bank, code, message))
}

// Len reports the number of mapped codes.
func (t CodeTable) Len() int { return len(t.codes) }

// Fallbacks are the kinds an adapter reports when no specific mapping applies.
type Fallbacks struct {
	// Transport covers connection, TLS, status and fault failures.
	Transport apperror.Kind
	// Translation covers undecodable replies and payload preparation failures.
	Translation apperror.Kind
}

// TransportFailure converts a protocol client error into a canonical error.
// A canonical error passes through unchanged.
func TransportFailure(errs *apperror.Registry, err error, fb Fallbacks) *apperror.Error {
	if appErr, ok := apperror.As(err); ok {
		return appErr
	}
	te, ok := transport.AsError(err)
	if !ok {
		return errs.Error(fb.Transport, apperror.ClassTransport, err)
	}
	switch te.Kind {
	case transport.KindConnectTimeout:
		return errs.Error(apperror.KindTransactionTimeout, apperror.ClassTransport, err)
	case transport.KindResponseTimeout:
		return errs.Error(apperror.KindResponseTimeout, apperror.ClassTransport, err)
	case transport.KindConstruction:
		return errs.Error(apperror.KindGenericError, apperror.ClassTransport, err)
	case transport.KindDecode:
		return errs.Error(fb.Translation, apperror.ClassTranslation, err)
	default:
		return errs.Error(fb.Transport, apperror.ClassTransport, err)
	}
}

// TranslationFailure reports a failure to prepare a partner payload or read
// its reply.
func TranslationFailure(errs *apperror.Registry, err error, fb Fallbacks) *apperror.Error {
	return errs.Error(fb.Translation, apperror.ClassTranslation, err)
}
