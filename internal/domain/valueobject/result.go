package valueobject

// Result is the terminal status reported to callers.
type Result string

const (
	ResultSuccess Result = "SUCCESS"
	ResultFailure Result = "FAILURE"
	// ResultAccept is the AXIS spelling of success.
	ResultAccept Result = "ACCEPT"
)

// IsSuccess treats every bank-specific success variant as success.
func (r Result) IsSuccess() bool {
	return r == ResultSuccess || r == ResultAccept
}

func (r Result) String() string { return string(r) }

// Operation names the flow a transaction record belongs to.
type Operation string

const (
	OperationEligibility Operation = "ELIGIBILITY"
	OperationBookLoan    Operation = "BOOK_LOAN"
)

// ParseOperation accepts the two known operations.
func ParseOperation(s string) (Operation, bool) {
	switch Operation(s) {
	case OperationEligibility, OperationBookLoan:
		return Operation(s), true
	default:
		return "", false
	}
}

func (o Operation) String() string { return string(o) }
