package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum, derived from the remaining balance: a grant is settled exactly
// when nothing is left to recover.
type Status string

const (
	StatusActive  Status = "active"
	StatusSettled Status = "settled"
)

// StatusForBalance derives the stored status from a remaining balance.
func StatusForBalance(remaining decimal.Decimal) Status {
	if remaining.IsZero() {
		return StatusSettled
	}
	return StatusActive
}

// AllocationState is the explicit state machine behind the edit/delete guard.
// Only an untouched grant may be edited or deleted; once payroll has consumed
// any part of it, a salary record's deduction snapshot depends on it.
type AllocationState string

const (
	StateUntouched          AllocationState = "untouched"
	StatePartiallyAllocated AllocationState = "partially_allocated"
	StateSettled            AllocationState = "settled"
)

// Grant - one salary advance paid to one employee, tracked as a mutable
// remaining balance that payroll generation draws down and reversal restores.
type Grant struct {
	ID               string
	EmployeeID       string
	CompanyID        string
	Amount           decimal.Decimal
	RemainingBalance decimal.Decimal
	GrantDate        time.Time
	DeductFromPeriod string // first eligible pay period, canonical "YYYY-MM"
	Status           Status
	Reason           *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// AllocationState reports where the grant sits in its lifecycle.
func (g Grant) AllocationState() AllocationState {
	switch {
	case g.RemainingBalance.IsZero():
		return StateSettled
	case g.RemainingBalance.Equal(g.Amount):
		return StateUntouched
	default:
		return StatePartiallyAllocated
	}
}

// Editable reports whether the grant may still be edited or deleted.
func (g Grant) Editable() bool {
	return g.AllocationState() == StateUntouched
}
