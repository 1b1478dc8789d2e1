package employee

import "github.com/shopspring/decimal"

type EmployeeResponse struct {
	ID           string           `json:"id"`
	EmployeeCode string           `json:"employee_code"`
	FullName     string           `json:"full_name"`
	BaseSalary   *decimal.Decimal `json:"base_salary,omitempty"`
	Status       string           `json:"status"`
}
