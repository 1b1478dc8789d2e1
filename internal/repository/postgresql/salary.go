package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ledgerline/books-backend-go/internal/domain/salary"
	"github.com/ledgerline/books-backend-go/internal/pkg/database"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepository{db: db}
}

func (r *salaryRepository) Create(ctx context.Context, record salary.Record) (salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	snapshotJSON, err := json.Marshal(record.DeductionSnapshot)
	if err != nil {
		return salary.Record{}, fmt.Errorf("failed to marshal deduction snapshot: %w", err)
	}

	query := `
		INSERT INTO employee_salary_records (
			id, employee_id, company_id, period_month, period_year,
			basic_salary, overtime_hours, overtime_amount, bonus, deductions,
			gross_pay, advance_deducted, net_payable, deduction_snapshot, status, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, employee_id, company_id, period_month, period_year,
			basic_salary, overtime_hours, overtime_amount, bonus, deductions,
			gross_pay, advance_deducted, net_payable, deduction_snapshot,
			status, paid_at, paid_by, notes, created_at, updated_at
	`

	var rec salary.Record
	var snapshotBytes []byte
	err = q.QueryRow(ctx, query,
		uuid.NewString(), record.EmployeeID, record.CompanyID, record.PeriodMonth, record.PeriodYear,
		record.BasicSalary, record.OvertimeHours, record.OvertimeAmount, record.Bonus, record.Deductions,
		record.GrossPay, record.AdvanceDeducted, record.NetPayable, snapshotJSON, record.Status, record.Notes,
	).Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.PeriodMonth, &rec.PeriodYear,
		&rec.BasicSalary, &rec.OvertimeHours, &rec.OvertimeAmount, &rec.Bonus, &rec.Deductions,
		&rec.GrossPay, &rec.AdvanceDeducted, &rec.NetPayable, &snapshotBytes,
		&rec.Status, &rec.PaidAt, &rec.PaidBy, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_salary_employee_period") {
			return salary.Record{}, salary.ErrSalaryRecordAlreadyExists
		}
		return salary.Record{}, fmt.Errorf("failed to create salary record: %w", err)
	}

	_ = json.Unmarshal(snapshotBytes, &rec.DeductionSnapshot)

	return rec, nil
}

func (r *salaryRepository) GetByID(ctx context.Context, id string, companyID string) (salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT sr.id, sr.employee_id, sr.company_id, sr.period_month, sr.period_year,
			   sr.basic_salary, sr.overtime_hours, sr.overtime_amount, sr.bonus, sr.deductions,
			   sr.gross_pay, sr.advance_deducted, sr.net_payable, sr.deduction_snapshot,
			   sr.status, sr.paid_at, sr.paid_by, sr.notes, sr.created_at, sr.updated_at,
			   e.full_name AS employee_name, e.employee_code
		FROM employee_salary_records sr
		JOIN employees e ON sr.employee_id = e.id
		WHERE sr.id = $1 AND sr.company_id = $2
	`

	var rec salary.Record
	var snapshotBytes []byte
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.PeriodMonth, &rec.PeriodYear,
		&rec.BasicSalary, &rec.OvertimeHours, &rec.OvertimeAmount, &rec.Bonus, &rec.Deductions,
		&rec.GrossPay, &rec.AdvanceDeducted, &rec.NetPayable, &snapshotBytes,
		&rec.Status, &rec.PaidAt, &rec.PaidBy, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.EmployeeCode,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Record{}, salary.ErrSalaryRecordNotFound
		}
		return salary.Record{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	_ = json.Unmarshal(snapshotBytes, &rec.DeductionSnapshot)

	return rec, nil
}

func (r *salaryRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, period_month, period_year,
			   basic_salary, overtime_hours, overtime_amount, bonus, deductions,
			   gross_pay, advance_deducted, net_payable, deduction_snapshot,
			   status, paid_at, paid_by, notes, created_at, updated_at
		FROM employee_salary_records
		WHERE employee_id = $1 AND period_month = $2 AND period_year = $3 AND company_id = $4
	`

	var rec salary.Record
	var snapshotBytes []byte
	err := q.QueryRow(ctx, query, employeeID, month, year, companyID).Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.PeriodMonth, &rec.PeriodYear,
		&rec.BasicSalary, &rec.OvertimeHours, &rec.OvertimeAmount, &rec.Bonus, &rec.Deductions,
		&rec.GrossPay, &rec.AdvanceDeducted, &rec.NetPayable, &snapshotBytes,
		&rec.Status, &rec.PaidAt, &rec.PaidBy, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Record{}, salary.ErrSalaryRecordNotFound
		}
		return salary.Record{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	_ = json.Unmarshal(snapshotBytes, &rec.DeductionSnapshot)

	return rec, nil
}

func (r *salaryRepository) List(ctx context.Context, companyID string, filter salary.SalaryFilter) ([]salary.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM employee_salary_records sr
		JOIN employees e ON sr.employee_id = e.id
		WHERE sr.company_id = $1
	`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.PeriodMonth != nil {
		baseQuery += fmt.Sprintf(" AND sr.period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		baseQuery += fmt.Sprintf(" AND sr.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND sr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND sr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	// Count query
	var totalCount int64
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count salary records: %w", err)
	}

	// Sort
	sortColumn := "sr.created_at"
	if filter.SortBy != "" {
		allowedColumns := map[string]string{
			"created_at":    "sr.created_at",
			"period":        "sr.period_year DESC, sr.period_month",
			"employee_name": "e.full_name",
			"net_payable":   "sr.net_payable",
		}
		if col, ok := allowedColumns[filter.SortBy]; ok {
			sortColumn = col
		}
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	// Pagination
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`
		SELECT sr.id, sr.employee_id, sr.company_id, sr.period_month, sr.period_year,
			   sr.basic_salary, sr.overtime_hours, sr.overtime_amount, sr.bonus, sr.deductions,
			   sr.gross_pay, sr.advance_deducted, sr.net_payable, sr.deduction_snapshot,
			   sr.status, sr.paid_at, sr.paid_by, sr.notes, sr.created_at, sr.updated_at,
			   e.full_name AS employee_name, e.employee_code
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseQuery, sortColumn, sortOrder, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	var records []salary.Record
	for rows.Next() {
		var rec salary.Record
		var snapshotBytes []byte
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.PeriodMonth, &rec.PeriodYear,
			&rec.BasicSalary, &rec.OvertimeHours, &rec.OvertimeAmount, &rec.Bonus, &rec.Deductions,
			&rec.GrossPay, &rec.AdvanceDeducted, &rec.NetPayable, &snapshotBytes,
			&rec.Status, &rec.PaidAt, &rec.PaidBy, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName, &rec.EmployeeCode,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan salary record: %w", err)
		}
		_ = json.Unmarshal(snapshotBytes, &rec.DeductionSnapshot)
		records = append(records, rec)
	}

	return records, totalCount, nil
}

func (r *salaryRepository) UpdatePayComponents(ctx context.Context, companyID string, rec salary.Record) error {
	q := GetQuerier(ctx, r.db)

	// advance_deducted and deduction_snapshot are deliberately absent: the
	// advance portion of a record is frozen after generation.
	query := `
		UPDATE employee_salary_records
		SET basic_salary = $3, overtime_hours = $4, overtime_amount = $5,
		    bonus = $6, deductions = $7, gross_pay = $8, net_payable = $9,
		    notes = $10, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = 'pending'
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		rec.ID, companyID,
		rec.BasicSalary, rec.OvertimeHours, rec.OvertimeAmount,
		rec.Bonus, rec.Deductions, rec.GrossPay, rec.NetPayable,
		rec.Notes,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return r.classifyPendingFailure(ctx, rec.ID, companyID)
		}
		return fmt.Errorf("failed to update salary record: %w", err)
	}

	return nil
}

func (r *salaryRepository) MarkPaid(ctx context.Context, id, paidBy, companyID string) (salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employee_salary_records
		SET status = 'paid', paid_at = NOW(), paid_by = $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = 'pending'
		RETURNING id, employee_id, company_id, period_month, period_year,
			basic_salary, overtime_hours, overtime_amount, bonus, deductions,
			gross_pay, advance_deducted, net_payable, deduction_snapshot,
			status, paid_at, paid_by, notes, created_at, updated_at
	`

	var rec salary.Record
	var snapshotBytes []byte
	err := q.QueryRow(ctx, query, id, companyID, paidBy).Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.PeriodMonth, &rec.PeriodYear,
		&rec.BasicSalary, &rec.OvertimeHours, &rec.OvertimeAmount, &rec.Bonus, &rec.Deductions,
		&rec.GrossPay, &rec.AdvanceDeducted, &rec.NetPayable, &snapshotBytes,
		&rec.Status, &rec.PaidAt, &rec.PaidBy, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Record{}, r.classifyPendingFailure(ctx, id, companyID)
		}
		return salary.Record{}, fmt.Errorf("failed to mark salary record paid: %w", err)
	}

	_ = json.Unmarshal(snapshotBytes, &rec.DeductionSnapshot)

	return rec, nil
}

// classifyPendingFailure distinguishes a missing record from one that is no
// longer pending.
func (r *salaryRepository) classifyPendingFailure(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	var status string
	err := q.QueryRow(ctx,
		`SELECT status FROM employee_salary_records WHERE id = $1 AND company_id = $2`,
		id, companyID,
	).Scan(&status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.ErrSalaryRecordNotFound
		}
		return fmt.Errorf("failed to check salary record status: %w", err)
	}
	return salary.ErrSalaryRecordAlreadyPaid
}

func (r *salaryRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM employee_salary_records
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`

	var deletedID string
	err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.ErrSalaryRecordNotFound
		}
		return fmt.Errorf("failed to delete salary record: %w", err)
	}

	return nil
}
