package transport

import (
	"fmt"
	"io"
)

// MaxResponseBytes bounds a partner reply body.
const MaxResponseBytes = 1 << 20

// ErrResponseTooLarge is wrapped in a KindDecode error when a reply exceeds
// MaxResponseBytes.
var ErrResponseTooLarge = fmt.Errorf("partner reply exceeds %d bytes", MaxResponseBytes)

// ReadBody reads a reply body of at most MaxResponseBytes.
func ReadBody(op string, r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxResponseBytes+1))
	if err != nil {
		return nil, Classify(op, err)
	}
	if len(raw) > MaxResponseBytes {
		return nil, &Error{Kind: KindDecode, Op: op, Err: ErrResponseTooLarge}
	}
	return raw, nil
}
