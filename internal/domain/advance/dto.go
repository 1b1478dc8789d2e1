package advance

import (
	"github.com/ledgerline/books-backend-go/internal/pkg/period"
	"github.com/ledgerline/books-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateAdvanceRequest struct {
	EmployeeID       string          `json:"employee_id"`
	Amount           decimal.Decimal `json:"amount"`
	GrantDate        *string         `json:"grant_date,omitempty"` // "YYYY-MM-DD", defaults to today
	DeductFromPeriod string          `json:"deduct_from_period"`   // "YYYY-MM"
	Reason           *string         `json:"reason,omitempty"`
}

func (r *CreateAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsPositiveAmount(r.Amount) {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than zero and within bounds"})
	}
	if _, err := period.Parse(r.DeductFromPeriod); err != nil {
		errs = append(errs, validator.ValidationError{Field: "deduct_from_period", Message: "must be a valid YYYY-MM period"})
	}
	if r.GrantDate != nil {
		if _, ok := validator.IsValidDate(*r.GrantDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "grant_date", Message: "must be a valid YYYY-MM-DD date"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateAdvanceRequest replaces the definition of an untouched grant. Setting
// a new amount also resets the remaining balance to that amount.
type UpdateAdvanceRequest struct {
	ID               string           `json:"-"`
	Amount           *decimal.Decimal `json:"amount,omitempty"`
	DeductFromPeriod *string          `json:"deduct_from_period,omitempty"`
	Reason           *string          `json:"reason,omitempty"`
}

func (r *UpdateAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Amount != nil && !validator.IsPositiveAmount(*r.Amount) {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than zero and within bounds"})
	}
	if r.DeductFromPeriod != nil {
		if _, err := period.Parse(*r.DeductFromPeriod); err != nil {
			errs = append(errs, validator.ValidationError{Field: "deduct_from_period", Message: "must be a valid YYYY-MM period"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdvanceFilter struct {
	EmployeeID *string
	Status     *string
	Page       int
	Limit      int
}

type AdvanceResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     string          `json:"employee_name,omitempty"`
	EmployeeCode     string          `json:"employee_code,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	GrantDate        string          `json:"grant_date"`
	DeductFromPeriod string          `json:"deduct_from_period"`
	Status           string          `json:"status"`
	AllocationState  string          `json:"allocation_state"`
	Reason           *string         `json:"reason,omitempty"`
}

type ListAdvanceResponse struct {
	Data       []AdvanceResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}
