package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
)

// ErrorKind classifies an outbound call failure.
type ErrorKind int

const (
	KindConnectTimeout ErrorKind = iota + 1
	KindResponseTimeout
	KindTLS
	KindConnection
	KindStatus
	KindDecode
	KindFault
	KindConstruction
)

func (k ErrorKind) String() string {
	switch k {
	case KindConnectTimeout:
		return "connect_timeout"
	case KindResponseTimeout:
		return "response_timeout"
	case KindTLS:
		return "tls"
	case KindConnection:
		return "connection"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindFault:
		return "fault"
	case KindConstruction:
		return "construction"
	default:
		return "unknown"
	}
}

// Error is the only error type returned by the protocol clients.
type Error struct {
	Err        error
	Op         string
	Body       string
	Kind       ErrorKind
	StatusCode int
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Op, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// AsError extracts a transport error from err's chain.
func AsError(err error) (*Error, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// Classify maps a failure of http.Client.Do to a transport error. An error
// that is already classified is returned unchanged.
func Classify(op string, err error) *Error {
	if te, ok := AsError(err); ok {
		return te
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		if opErr.Timeout() {
			return &Error{Kind: KindConnectTimeout, Op: op, Err: err}
		}
		return &Error{Kind: KindConnection, Op: op, Err: err}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindResponseTimeout, Op: op, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindResponseTimeout, Op: op, Err: err}
	}

	if isTLSFailure(err) {
		return &Error{Kind: KindTLS, Op: op, Err: err}
	}
	return &Error{Kind: KindConnection, Op: op, Err: err}
}

func isTLSFailure(err error) bool {
	var (
		unknownAuthority x509.UnknownAuthorityError
		invalidCert      x509.CertificateInvalidError
		hostname         x509.HostnameError
		verification     *tls.CertificateVerificationError
		recordHeader     tls.RecordHeaderError
	)
	return errors.As(err, &unknownAuthority) ||
		errors.As(err, &invalidCert) ||
		errors.As(err, &hostname) ||
		errors.As(err, &verification) ||
		errors.As(err, &recordHeader)
}
