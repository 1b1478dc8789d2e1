package employee

import "context"

// EmployeeRepository is read-only here: employee provisioning lives in
// another subsystem of the platform.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
}
