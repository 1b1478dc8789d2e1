package salary

import "errors"

var (
	ErrSalaryRecordNotFound      = errors.New("salary record not found")
	ErrSalaryRecordAlreadyExists = errors.New("salary record already exists for this employee and period")
	ErrSalaryRecordAlreadyPaid   = errors.New("salary record already paid, cannot modify")
	ErrNegativeNetPayable        = errors.New("net payable cannot be negative - reduce deductions or amend advance first")
)
