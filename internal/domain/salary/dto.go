package salary

import (
	"github.com/ledgerline/books-backend-go/internal/pkg/period"
	"github.com/ledgerline/books-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GenerateSalaryRequest struct {
	EmployeeID     string           `json:"employee_id"`
	PeriodMonth    int              `json:"period_month"`
	PeriodYear     int              `json:"period_year"`
	BasicSalary    *decimal.Decimal `json:"basic_salary,omitempty"` // defaults to the employee's base salary
	OvertimeHours  decimal.Decimal  `json:"overtime_hours"`
	OvertimeAmount decimal.Decimal  `json:"overtime_amount"`
	Bonus          decimal.Decimal  `json:"bonus"`
	Deductions     decimal.Decimal  `json:"deductions"`
	Notes          *string          `json:"notes,omitempty"`
}

func (r *GenerateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !period.New(r.PeriodYear, r.PeriodMonth).Valid() {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "period_month must be 1-12 and period_year 2000 or later"})
	}
	if r.BasicSalary != nil && !validator.IsBoundedAmount(*r.BasicSalary) {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be non-negative and within bounds"})
	}
	if !validator.IsBoundedAmount(r.OvertimeHours) {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "must be non-negative and within bounds"})
	}
	if !validator.IsBoundedAmount(r.OvertimeAmount) {
		errs = append(errs, validator.ValidationError{Field: "overtime_amount", Message: "must be non-negative and within bounds"})
	}
	if !validator.IsBoundedAmount(r.Bonus) {
		errs = append(errs, validator.ValidationError{Field: "bonus", Message: "must be non-negative and within bounds"})
	}
	if !validator.IsBoundedAmount(r.Deductions) {
		errs = append(errs, validator.ValidationError{Field: "deductions", Message: "must be non-negative and within bounds"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateSalaryRequest edits the pay components of a pending record. The
// advance portion is frozen: balances were already drawn down, so the
// existing advance_deducted and snapshot stay as written.
type UpdateSalaryRequest struct {
	ID             string           `json:"-"`
	BasicSalary    *decimal.Decimal `json:"basic_salary,omitempty"`
	OvertimeHours  *decimal.Decimal `json:"overtime_hours,omitempty"`
	OvertimeAmount *decimal.Decimal `json:"overtime_amount,omitempty"`
	Bonus          *decimal.Decimal `json:"bonus,omitempty"`
	Deductions     *decimal.Decimal `json:"deductions,omitempty"`
	Notes          *string          `json:"notes,omitempty"`
}

func (r *UpdateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	check := func(field string, v *decimal.Decimal) {
		if v != nil && !validator.IsBoundedAmount(*v) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative and within bounds"})
		}
	}
	check("basic_salary", r.BasicSalary)
	check("overtime_hours", r.OvertimeHours)
	check("overtime_amount", r.OvertimeAmount)
	check("bonus", r.Bonus)
	check("deductions", r.Deductions)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryFilter struct {
	PeriodMonth *int
	PeriodYear  *int
	Status      *string
	EmployeeID  *string
	SortBy      string
	SortOrder   string
	Page        int
	Limit       int
}

type DeductionEntryResponse struct {
	AdvanceID      string          `json:"advance_id"`
	AmountDeducted decimal.Decimal `json:"amount_deducted"`
	RemainingAfter decimal.Decimal `json:"remaining_after"`
}

type SalaryRecordResponse struct {
	ID                string                   `json:"id"`
	EmployeeID        string                   `json:"employee_id"`
	EmployeeName      string                   `json:"employee_name,omitempty"`
	EmployeeCode      string                   `json:"employee_code,omitempty"`
	PeriodMonth       int                      `json:"period_month"`
	PeriodYear        int                      `json:"period_year"`
	BasicSalary       decimal.Decimal          `json:"basic_salary"`
	OvertimeHours     decimal.Decimal          `json:"overtime_hours"`
	OvertimeAmount    decimal.Decimal          `json:"overtime_amount"`
	Bonus             decimal.Decimal          `json:"bonus"`
	Deductions        decimal.Decimal          `json:"deductions"`
	GrossPay          decimal.Decimal          `json:"gross_pay"`
	AdvanceDeducted   decimal.Decimal          `json:"advance_deducted"`
	NetPayable        decimal.Decimal          `json:"net_payable"`
	DeductionSnapshot []DeductionEntryResponse `json:"deduction_snapshot,omitempty"`
	Status            string                   `json:"status"`
	PaidAt            *string                  `json:"paid_at,omitempty"`
	Notes             *string                  `json:"notes,omitempty"`
}

type ListSalaryRecordResponse struct {
	Data       []SalaryRecordResponse `json:"data"`
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
}

// ReversalResponse reports what a record deletion restored to the ledger.
type ReversalResponse struct {
	RecordID          string          `json:"record_id"`
	AmountRestored    decimal.Decimal `json:"amount_restored"`
	SkippedAdvanceIDs []string        `json:"skipped_advance_ids,omitempty"`
	AdvancesRestored  int             `json:"advances_restored"`
}
