package salary

import "context"

type SalaryService interface {
	Generate(ctx context.Context, req GenerateSalaryRequest) (SalaryRecordResponse, error)
	Get(ctx context.Context, id string) (SalaryRecordResponse, error)
	List(ctx context.Context, filter SalaryFilter) (ListSalaryRecordResponse, error)
	Update(ctx context.Context, req UpdateSalaryRequest) (SalaryRecordResponse, error)
	MarkPaid(ctx context.Context, id string) (SalaryRecordResponse, error)

	// Delete reverses the record's deduction snapshot against the advance
	// ledger, then removes the record.
	Delete(ctx context.Context, id string) (ReversalResponse, error)
}
