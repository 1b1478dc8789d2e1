package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// DeductionEntry is one ledger mutation caused by generating a salary record:
// how much was taken from which advance and what its balance was afterwards.
// The ordered list of entries on a record is the sole source of truth for
// reversing the record later; it is never rewritten after creation.
type DeductionEntry struct {
	AdvanceID      string          `json:"advance_id"`
	AmountDeducted decimal.Decimal `json:"amount_deducted"`
	RemainingAfter decimal.Decimal `json:"remaining_after"`
}

// Record - one generated pay-period result for one employee.
type Record struct {
	ID                string
	EmployeeID        string
	CompanyID         string
	PeriodMonth       int
	PeriodYear        int
	BasicSalary       decimal.Decimal
	OvertimeHours     decimal.Decimal
	OvertimeAmount    decimal.Decimal
	Bonus             decimal.Decimal
	Deductions        decimal.Decimal
	GrossPay          decimal.Decimal
	AdvanceDeducted   decimal.Decimal
	NetPayable        decimal.Decimal
	DeductionSnapshot []DeductionEntry
	Status            Status
	PaidAt            *time.Time
	PaidBy            *string
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}
