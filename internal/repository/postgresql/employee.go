package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ledgerline/books-backend-go/internal/domain/employee"
	"github.com/ledgerline/books-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_code, full_name, base_salary,
			   employment_status, hire_date, created_at, updated_at
		FROM employees
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&e.ID, &e.CompanyID, &e.EmployeeCode, &e.FullName, &e.BaseSalary,
		&e.EmploymentStatus, &e.HireDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_code, full_name, base_salary,
			   employment_status, hire_date, created_at, updated_at
		FROM employees
		WHERE company_id = $1 AND employment_status = 'active' AND deleted_at IS NULL
		ORDER BY full_name ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.CompanyID, &e.EmployeeCode, &e.FullName, &e.BaseSalary,
			&e.EmploymentStatus, &e.HireDate, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, nil
}
