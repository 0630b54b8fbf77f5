package money

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// MaxScale is the number of decimal places a rupee amount may carry.
const MaxScale = 2

var (
	hundred  = decimal.NewFromInt(100)
	maxPaise = decimal.NewFromInt(math.MaxInt64)
)

// ErrOutOfRange is returned when an amount has no int64 paise representation.
var ErrOutOfRange = errors.New("money: amount exceeds the paise range")

// Amount is an immutable rupee amount. It serialises to JSON as a bare number
// so that echoed amounts compare equal to the caller's numeric input.
type Amount struct {
	value decimal.Decimal
}

// New wraps a decimal value as an Amount.
func New(value decimal.Decimal) Amount {
	return Amount{value: value}
}

// NewFromString parses a decimal string into an Amount.
func NewFromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{value: d}, nil
}

// NewFromPaise builds an Amount from an integer count of paise.
func NewFromPaise(paise int64) Amount {
	return Amount{value: decimal.New(paise, -MaxScale)}
}

// MustFromString parses s and panics on error. Intended for tests and fixtures.
func MustFromString(s string) Amount {
	a, err := NewFromString(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

// IsPositive returns true if the amount is strictly greater than zero.
func (a Amount) IsPositive() bool {
	return a.value.IsPositive()
}

// HasValidScale reports whether the amount has no more than MaxScale
// significant decimal places. Trailing zeros are ignored, so 20.000 is valid
// and 0.0011 is not.
func (a Amount) HasValidScale() bool {
	return a.value.Equal(a.value.Truncate(MaxScale))
}

// Paise returns the amount in paise, rounding half away from zero.
func (a Amount) Paise() (int64, error) {
	p := a.value.Mul(hundred).Round(0)
	if p.Abs().GreaterThan(maxPaise) {
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, a)
	}
	return p.IntPart(), nil
}

// GreaterThan reports whether a exceeds other.
func (a Amount) GreaterThan(other Amount) bool {
	return a.value.GreaterThan(other.value)
}

// Fixed renders the amount with exactly two decimals, the format partner
// APIs expect.
func (a Amount) Fixed() string {
	return a.value.StringFixed(MaxScale)
}

// Equal returns true if both amounts are numerically equal.
func (a Amount) Equal(other Amount) bool {
	return a.value.Equal(other.value)
}

// String returns the canonical decimal representation.
func (a Amount) String() string {
	return a.value.String()
}

// MarshalJSON emits the amount as an unquoted JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.value.String()), nil
}

// UnmarshalJSON accepts both a JSON number and a quoted decimal string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}
	d, err := decimal.NewFromString(string(bytes.Trim(data, `"`)))
	if err != nil {
		return fmt.Errorf("invalid amount %s: %w", data, err)
	}
	a.value = d
	return nil
}
