package advance

import (
	"context"

	"github.com/shopspring/decimal"
)

// AdvanceRepository defines data access for advance grants. Every method
// takes companyID to prevent cross-tenant data access.
type AdvanceRepository interface {
	Create(ctx context.Context, grant Grant) (Grant, error)
	GetByID(ctx context.Context, id string, companyID string) (Grant, error)
	List(ctx context.Context, companyID string, filter AdvanceFilter) ([]Grant, int64, error)

	// UpdateUntouched applies req only while remaining_balance = amount; it
	// returns ErrAdvanceAlreadyAllocated when the guard fails under a race.
	UpdateUntouched(ctx context.Context, companyID string, req UpdateAdvanceRequest) (Grant, error)

	// DeleteUntouched removes the grant under the same guard.
	DeleteUntouched(ctx context.Context, id string, companyID string) error

	// GetEligibleForUpdate loads, with row locks, the grants that may absorb
	// a deduction for the given pay period: active remaining balance and
	// deduct_from_period not after the period. Ordered oldest obligation
	// first (deduct_from_period, then grant_date). Must run inside a
	// transaction.
	GetEligibleForUpdate(ctx context.Context, employeeID, companyID, payPeriod string) ([]Grant, error)

	// AdjustBalance applies remaining_balance += delta in one statement,
	// clamped to [0, amount], and rederives status from the result.
	AdjustBalance(ctx context.Context, id, companyID string, delta decimal.Decimal) (Grant, error)
}
