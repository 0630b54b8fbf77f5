package valueobject

import "fmt"

// IdentityKind says which customer identifier a request carries.
type IdentityKind string

const (
	IdentityMobile     IdentityKind = "MOBILE"
	IdentityCardSuffix IdentityKind = "CARD_SUFFIX"
	IdentityPAN        IdentityKind = "PAN"
)

// Identity is the customer identifier block of a request. Exactly one kind is
// selected; the card suffix kind also carries the mobile number it belongs to.
type Identity struct {
	kind         IdentityKind
	mobileNumber string
	cardEnd      string
	pan          string
}

// NewMobileIdentity identifies a customer by registered mobile number.
func NewMobileIdentity(mobile string) (Identity, error) {
	if mobile == "" {
		return Identity{}, fmt.Errorf("mobile number is required")
	}
	return Identity{kind: IdentityMobile, mobileNumber: mobile}, nil
}

// NewCardSuffixIdentity identifies a customer by mobile number plus the last
// four digits of the card.
func NewCardSuffixIdentity(mobile, cardEnd string) (Identity, error) {
	if mobile == "" || cardEnd == "" {
		return Identity{}, fmt.Errorf("mobile number and card end are required")
	}
	return Identity{kind: IdentityCardSuffix, mobileNumber: mobile, cardEnd: cardEnd}, nil
}

// NewPANIdentity identifies a customer by PAN. The mobile number is optional.
func NewPANIdentity(pan, mobile string) (Identity, error) {
	if pan == "" {
		return Identity{}, fmt.Errorf("pan is required")
	}
	return Identity{kind: IdentityPAN, pan: pan, mobileNumber: mobile}, nil
}

func (i Identity) Kind() IdentityKind   { return i.kind }
func (i Identity) MobileNumber() string { return i.mobileNumber }
func (i Identity) CardEnd() string      { return i.cardEnd }
func (i Identity) PAN() string          { return i.pan }
func (i Identity) IsZero() bool         { return i.kind == "" }

// Value returns the identifier selected by Kind.
func (i Identity) Value() string {
	switch i.kind {
	case IdentityPAN:
		return i.pan
	case IdentityCardSuffix:
		return i.cardEnd
	default:
		return i.mobileNumber
	}
}
