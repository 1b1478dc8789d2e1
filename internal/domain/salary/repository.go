package salary

import "context"

// SalaryRepository defines data access for salary records. Every method takes
// companyID to prevent cross-tenant data access.
type SalaryRepository interface {
	// Create inserts the record with its deduction snapshot. Returns
	// ErrSalaryRecordAlreadyExists on the (employee, period) uniqueness
	// constraint.
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string, companyID string) (Record, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (Record, error)
	List(ctx context.Context, companyID string, filter SalaryFilter) ([]Record, int64, error)

	// UpdatePayComponents rewrites the pay components plus the recomputed
	// gross and net of a pending record. The snapshot and advance_deducted
	// columns are never touched.
	UpdatePayComponents(ctx context.Context, companyID string, rec Record) error

	// MarkPaid transitions pending -> paid. Returns
	// ErrSalaryRecordAlreadyPaid when the record is not pending.
	MarkPaid(ctx context.Context, id, paidBy, companyID string) (Record, error)

	Delete(ctx context.Context, id string, companyID string) error
}
