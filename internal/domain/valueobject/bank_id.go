package valueobject

import "fmt"

// BankID identifies the partner bank that serves a request.
type BankID struct {
	code string
}

var (
	BankHDFC  = BankID{"HL5"}
	BankICICI = BankID{"ICE"}
	BankAXIS  = BankID{"ASE"}
	BankSBI   = BankID{"SBI"}
)

var validBanks = map[string]BankID{
	"HL5": BankHDFC,
	"ICE": BankICICI,
	"ASE": BankAXIS,
	"SBI": BankSBI,
}

// NewBankID validates and creates a BankID from its wire code.
func NewBankID(code string) (BankID, error) {
	if bank, ok := validBanks[code]; ok {
		return bank, nil
	}
	return BankID{}, fmt.Errorf("invalid bank id: %q", code)
}

// AllBanks lists every supported bank. Each must have a registered adapter.
func AllBanks() []BankID {
	return []BankID{BankHDFC, BankICICI, BankAXIS, BankSBI}
}

// String returns the wire code of the bank.
func (b BankID) String() string {
	return b.code
}

// IsZero returns true if the bank id is uninitialized.
func (b BankID) IsZero() bool {
	return b.code == ""
}
