package response

import (
	"errors"
	"net/http"

	"github.com/ledgerline/books-backend-go/internal/domain/advance"
	"github.com/ledgerline/books-backend-go/internal/domain/employee"
	"github.com/ledgerline/books-backend-go/internal/domain/salary"
	"github.com/ledgerline/books-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Advance domain errors
	case errors.Is(err, advance.ErrAdvanceNotFound):
		NotFound(w, "Advance not found")
	case errors.Is(err, advance.ErrAdvanceAlreadyAllocated):
		Conflict(w, "Advance already used in payroll, cannot modify")

	// Salary domain errors
	case errors.Is(err, salary.ErrSalaryRecordNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, salary.ErrSalaryRecordAlreadyExists):
		Conflict(w, "Salary record already exists for this employee and period")
	case errors.Is(err, salary.ErrSalaryRecordAlreadyPaid):
		Conflict(w, "Salary record already paid, cannot modify")
	case errors.Is(err, salary.ErrNegativeNetPayable):
		BadRequest(w, "Net payable cannot be negative - reduce deductions or amend advance first", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
