package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ledgerline/books-backend-go/internal/domain/advance"
	"github.com/ledgerline/books-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type advanceRepository struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.AdvanceRepository {
	return &advanceRepository{db: db}
}

func (r *advanceRepository) Create(ctx context.Context, grant advance.Grant) (advance.Grant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_advances (
			id, employee_id, company_id, amount, remaining_balance,
			grant_date, deduct_from_period, status, reason
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, employee_id, company_id, amount, remaining_balance,
			grant_date, deduct_from_period, status, reason, created_at, updated_at
	`

	var g advance.Grant
	err := q.QueryRow(ctx, query,
		uuid.NewString(), grant.EmployeeID, grant.CompanyID, grant.Amount, grant.RemainingBalance,
		grant.GrantDate, grant.DeductFromPeriod, grant.Status, grant.Reason,
	).Scan(
		&g.ID, &g.EmployeeID, &g.CompanyID, &g.Amount, &g.RemainingBalance,
		&g.GrantDate, &g.DeductFromPeriod, &g.Status, &g.Reason, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return advance.Grant{}, fmt.Errorf("failed to create advance: %w", err)
	}

	return g, nil
}

func (r *advanceRepository) GetByID(ctx context.Context, id string, companyID string) (advance.Grant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.employee_id, a.company_id, a.amount, a.remaining_balance,
			   a.grant_date, a.deduct_from_period, a.status, a.reason, a.created_at, a.updated_at,
			   e.full_name AS employee_name, e.employee_code
		FROM employee_advances a
		JOIN employees e ON a.employee_id = e.id
		WHERE a.id = $1 AND a.company_id = $2
	`

	var g advance.Grant
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&g.ID, &g.EmployeeID, &g.CompanyID, &g.Amount, &g.RemainingBalance,
		&g.GrantDate, &g.DeductFromPeriod, &g.Status, &g.Reason, &g.CreatedAt, &g.UpdatedAt,
		&g.EmployeeName, &g.EmployeeCode,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return advance.Grant{}, advance.ErrAdvanceNotFound
		}
		return advance.Grant{}, fmt.Errorf("failed to get advance: %w", err)
	}

	return g, nil
}

func (r *advanceRepository) List(ctx context.Context, companyID string, filter advance.AdvanceFilter) ([]advance.Grant, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM employee_advances a
		JOIN employees e ON a.employee_id = e.id
		WHERE a.company_id = $1
	`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	// Count query
	var totalCount int64
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count advances: %w", err)
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
		SELECT a.id, a.employee_id, a.company_id, a.amount, a.remaining_balance,
			   a.grant_date, a.deduct_from_period, a.status, a.reason, a.created_at, a.updated_at,
			   e.full_name AS employee_name, e.employee_code
		%s
		ORDER BY a.deduct_from_period ASC, a.grant_date ASC, a.created_at ASC
		LIMIT $%d OFFSET $%d
	`, baseQuery, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	var grants []advance.Grant
	for rows.Next() {
		var g advance.Grant
		if err := rows.Scan(
			&g.ID, &g.EmployeeID, &g.CompanyID, &g.Amount, &g.RemainingBalance,
			&g.GrantDate, &g.DeductFromPeriod, &g.Status, &g.Reason, &g.CreatedAt, &g.UpdatedAt,
			&g.EmployeeName, &g.EmployeeCode,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan advance: %w", err)
		}
		grants = append(grants, g)
	}

	return grants, totalCount, nil
}

func (r *advanceRepository) UpdateUntouched(ctx context.Context, companyID string, req advance.UpdateAdvanceRequest) (advance.Grant, error) {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID, companyID}
	argIdx := 3

	if req.Amount != nil {
		// A new amount also resets the remaining balance; the guard below
		// guarantees nothing has been deducted yet.
		setParts = append(setParts, fmt.Sprintf("amount = $%d", argIdx))
		setParts = append(setParts, fmt.Sprintf("remaining_balance = $%d", argIdx))
		args = append(args, *req.Amount)
		argIdx++
	}
	if req.DeductFromPeriod != nil {
		setParts = append(setParts, fmt.Sprintf("deduct_from_period = $%d", argIdx))
		args = append(args, *req.DeductFromPeriod)
		argIdx++
	}
	if req.Reason != nil {
		setParts = append(setParts, fmt.Sprintf("reason = $%d", argIdx))
		args = append(args, *req.Reason)
		argIdx++
	}

	// The remaining_balance = amount predicate is the untouched guard; it
	// closes the check-then-write race against a concurrent generation.
	query := fmt.Sprintf(`
		UPDATE employee_advances
		SET %s
		WHERE id = $1 AND company_id = $2 AND remaining_balance = amount
		RETURNING id, employee_id, company_id, amount, remaining_balance,
			grant_date, deduct_from_period, status, reason, created_at, updated_at
	`, strings.Join(setParts, ", "))

	var g advance.Grant
	err := q.QueryRow(ctx, query, args...).Scan(
		&g.ID, &g.EmployeeID, &g.CompanyID, &g.Amount, &g.RemainingBalance,
		&g.GrantDate, &g.DeductFromPeriod, &g.Status, &g.Reason, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return advance.Grant{}, r.classifyGuardFailure(ctx, req.ID, companyID)
		}
		return advance.Grant{}, fmt.Errorf("failed to update advance: %w", err)
	}

	return g, nil
}

func (r *advanceRepository) DeleteUntouched(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM employee_advances
		WHERE id = $1 AND company_id = $2 AND remaining_balance = amount
		RETURNING id
	`

	var deletedID string
	err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return r.classifyGuardFailure(ctx, id, companyID)
		}
		return fmt.Errorf("failed to delete advance: %w", err)
	}

	return nil
}

// classifyGuardFailure distinguishes a missing grant from one the untouched
// guard rejected.
func (r *advanceRepository) classifyGuardFailure(ctx context.Context, id, companyID string) error {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM employee_advances WHERE id = $1 AND company_id = $2)`,
		id, companyID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check advance existence: %w", err)
	}
	if exists {
		return advance.ErrAdvanceAlreadyAllocated
	}
	return advance.ErrAdvanceNotFound
}

func (r *advanceRepository) GetEligibleForUpdate(ctx context.Context, employeeID, companyID, payPeriod string) ([]advance.Grant, error) {
	q := GetQuerier(ctx, r.db)

	// deduct_from_period is stored zero-padded, so text comparison orders
	// periods correctly. FOR UPDATE serializes concurrent generations that
	// race for the same grants.
	query := `
		SELECT id, employee_id, company_id, amount, remaining_balance,
			   grant_date, deduct_from_period, status, reason, created_at, updated_at
		FROM employee_advances
		WHERE employee_id = $1 AND company_id = $2
		  AND remaining_balance > 0
		  AND deduct_from_period <= $3
		ORDER BY deduct_from_period ASC, grant_date ASC, created_at ASC
		FOR UPDATE
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, payPeriod)
	if err != nil {
		return nil, fmt.Errorf("failed to get eligible advances: %w", err)
	}
	defer rows.Close()

	var grants []advance.Grant
	for rows.Next() {
		var g advance.Grant
		if err := rows.Scan(
			&g.ID, &g.EmployeeID, &g.CompanyID, &g.Amount, &g.RemainingBalance,
			&g.GrantDate, &g.DeductFromPeriod, &g.Status, &g.Reason, &g.CreatedAt, &g.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan eligible advance: %w", err)
		}
		grants = append(grants, g)
	}

	return grants, nil
}

func (r *advanceRepository) AdjustBalance(ctx context.Context, id, companyID string, delta decimal.Decimal) (advance.Grant, error) {
	q := GetQuerier(ctx, r.db)

	// Single statement: clamp the new balance to [0, amount] and rederive
	// status from the same expression, so concurrent adjustments serialize
	// on the row and status can never disagree with the balance.
	query := `
		UPDATE employee_advances
		SET remaining_balance = LEAST(amount, GREATEST(0::numeric, remaining_balance + $3)),
		    status = CASE
				WHEN LEAST(amount, GREATEST(0::numeric, remaining_balance + $3)) = 0 THEN 'settled'
				ELSE 'active'
			END,
		    updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING id, employee_id, company_id, amount, remaining_balance,
			grant_date, deduct_from_period, status, reason, created_at, updated_at
	`

	var g advance.Grant
	err := q.QueryRow(ctx, query, id, companyID, delta).Scan(
		&g.ID, &g.EmployeeID, &g.CompanyID, &g.Amount, &g.RemainingBalance,
		&g.GrantDate, &g.DeductFromPeriod, &g.Status, &g.Reason, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return advance.Grant{}, advance.ErrAdvanceNotFound
		}
		return advance.Grant{}, fmt.Errorf("failed to adjust advance balance: %w", err)
	}

	return g, nil
}
