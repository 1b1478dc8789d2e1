package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is owned by the provisioning subsystem; payroll reads it for
// tenant checks, the default basic salary, and display fields.
type Employee struct {
	ID               string
	CompanyID        string
	EmployeeCode     string
	FullName         string
	BaseSalary       *decimal.Decimal
	EmploymentStatus EmploymentStatus
	HireDate         time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)
