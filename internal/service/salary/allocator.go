package salary

import (
	"sort"

	"github.com/ledgerline/books-backend-go/internal/domain/advance"
	"github.com/ledgerline/books-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

// Allocation is the outcome of settling outstanding advances against one
// gross pay amount. Entries are ordered by consumption; the total never
// exceeds max(0, grossPay).
type Allocation struct {
	Entries        []salary.DeductionEntry
	TotalDeducted  decimal.Decimal
	RemainingGross decimal.Decimal
}

// SortEligible orders grants oldest obligation first: ascending
// deduct_from_period, ties broken by grant date. The repository returns rows
// in this order already; sorting again keeps the allocator correct on any
// input and testable in isolation.
func SortEligible(grants []advance.Grant) {
	sort.SliceStable(grants, func(i, j int) bool {
		if grants[i].DeductFromPeriod != grants[j].DeductFromPeriod {
			return grants[i].DeductFromPeriod < grants[j].DeductFromPeriod
		}
		return grants[i].GrantDate.Before(grants[j].GrantDate)
	})
}

// Allocate walks the sorted grants and takes min(balance, remaining gross)
// from each. Allocation stops the moment a grant cannot be even partially
// serviced: settle as much as affordable, oldest debt first. It performs no
// I/O; callers persist the entries and apply the balance adjustments.
func Allocate(grossPay decimal.Decimal, grants []advance.Grant) Allocation {
	remaining := grossPay
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	alloc := Allocation{TotalDeducted: decimal.Zero}
	for _, g := range grants {
		take := decimal.Min(g.RemainingBalance, remaining)
		if !take.IsPositive() {
			break
		}
		alloc.Entries = append(alloc.Entries, salary.DeductionEntry{
			AdvanceID:      g.ID,
			AmountDeducted: take,
			RemainingAfter: g.RemainingBalance.Sub(take),
		})
		alloc.TotalDeducted = alloc.TotalDeducted.Add(take)
		remaining = remaining.Sub(take)
	}
	alloc.RemainingGross = remaining

	return alloc
}
