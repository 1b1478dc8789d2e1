package salary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ledgerline/books-backend-go/internal/domain/advance"
	"github.com/ledgerline/books-backend-go/internal/domain/employee"
	"github.com/ledgerline/books-backend-go/internal/domain/salary"
	"github.com/ledgerline/books-backend-go/internal/pkg/database"
	"github.com/ledgerline/books-backend-go/internal/pkg/jwt"
	"github.com/ledgerline/books-backend-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

type SalaryServiceImpl struct {
	txm          database.TxManager
	salaryRepo   salary.SalaryRepository
	advanceRepo  advance.AdvanceRepository
	employeeRepo employee.EmployeeRepository
	logger       *slog.Logger
}

func NewSalaryService(
	txm database.TxManager,
	salaryRepo salary.SalaryRepository,
	advanceRepo advance.AdvanceRepository,
	employeeRepo employee.EmployeeRepository,
	logger *slog.Logger,
) salary.SalaryService {
	return &SalaryServiceImpl{
		txm:          txm,
		salaryRepo:   salaryRepo,
		advanceRepo:  advanceRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// ========== GENERATION ==========

func (s *SalaryServiceImpl) Generate(ctx context.Context, req salary.GenerateSalaryRequest) (salary.SalaryRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	payPeriod := period.New(req.PeriodYear, req.PeriodMonth)

	var created salary.Record
	err = s.txm.RunInTx(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
		if err != nil {
			return err
		}

		basicSalary := decimal.Zero
		if req.BasicSalary != nil {
			basicSalary = *req.BasicSalary
		} else if emp.BaseSalary != nil {
			basicSalary = *emp.BaseSalary
		}

		// The unique constraint is the backstop; checking first gives the
		// caller a clean duplicate error without touching the ledger.
		_, err = s.salaryRepo.GetByEmployeePeriod(ctx, req.EmployeeID, req.PeriodMonth, req.PeriodYear, companyID)
		if err == nil {
			return salary.ErrSalaryRecordAlreadyExists
		}
		if !errors.Is(err, salary.ErrSalaryRecordNotFound) {
			return fmt.Errorf("failed to check existing salary record: %w", err)
		}

		grossPay := basicSalary.Add(req.OvertimeAmount).Add(req.Bonus).Sub(req.Deductions)
		if grossPay.IsNegative() {
			return salary.ErrNegativeNetPayable
		}

		// Row locks on the grants serialize concurrent generations for the
		// same employee; both would otherwise read the same balances and
		// over-allocate them.
		grants, err := s.advanceRepo.GetEligibleForUpdate(ctx, req.EmployeeID, companyID, payPeriod.String())
		if err != nil {
			return err
		}
		SortEligible(grants)

		alloc := Allocate(grossPay, grants)

		record := salary.Record{
			EmployeeID:        req.EmployeeID,
			CompanyID:         companyID,
			PeriodMonth:       req.PeriodMonth,
			PeriodYear:        req.PeriodYear,
			BasicSalary:       basicSalary,
			OvertimeHours:     req.OvertimeHours,
			OvertimeAmount:    req.OvertimeAmount,
			Bonus:             req.Bonus,
			Deductions:        req.Deductions,
			GrossPay:          grossPay,
			AdvanceDeducted:   alloc.TotalDeducted,
			NetPayable:        grossPay.Sub(alloc.TotalDeducted),
			DeductionSnapshot: alloc.Entries,
			Status:            salary.StatusPending,
			Notes:             req.Notes,
		}

		created, err = s.salaryRepo.Create(ctx, record)
		if err != nil {
			return err
		}
		// The insert returns no joined columns; fill the display fields
		// from the employee already loaded in this transaction.
		created.EmployeeName = &emp.FullName
		created.EmployeeCode = &emp.EmployeeCode

		for _, entry := range alloc.Entries {
			if _, err := s.advanceRepo.AdjustBalance(ctx, entry.AdvanceID, companyID, entry.AmountDeducted.Neg()); err != nil {
				return fmt.Errorf("failed to deduct advance %s: %w", entry.AdvanceID, err)
			}
		}

		return nil
	})
	if err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	return mapToRecordResponse(created), nil
}

// ========== READS ==========

func (s *SalaryServiceImpl) Get(ctx context.Context, id string) (salary.SalaryRecordResponse, error) {
	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	record, err := s.salaryRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	return mapToRecordResponse(record), nil
}

func (s *SalaryServiceImpl) List(ctx context.Context, filter salary.SalaryFilter) (salary.ListSalaryRecordResponse, error) {
	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return salary.ListSalaryRecordResponse{}, err
	}

	records, totalCount, err := s.salaryRepo.List(ctx, companyID, filter)
	if err != nil {
		return salary.ListSalaryRecordResponse{}, err
	}

	return salary.ListSalaryRecordResponse{
		Data:       mapToRecordResponses(records),
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// ========== EDIT ==========

func (s *SalaryServiceImpl) Update(ctx context.Context, req salary.UpdateSalaryRequest) (salary.SalaryRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	rec, err := s.salaryRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return salary.SalaryRecordResponse{}, err
	}
	if rec.Status != salary.StatusPending {
		return salary.SalaryRecordResponse{}, salary.ErrSalaryRecordAlreadyPaid
	}

	// Apply updates
	if req.BasicSalary != nil {
		rec.BasicSalary = *req.BasicSalary
	}
	if req.OvertimeHours != nil {
		rec.OvertimeHours = *req.OvertimeHours
	}
	if req.OvertimeAmount != nil {
		rec.OvertimeAmount = *req.OvertimeAmount
	}
	if req.Bonus != nil {
		rec.Bonus = *req.Bonus
	}
	if req.Deductions != nil {
		rec.Deductions = *req.Deductions
	}
	if req.Notes != nil {
		rec.Notes = req.Notes
	}

	// Gross is recomputed from the new components; the advance portion is
	// frozen because the ledger balances were already drawn down. Editing
	// the allocation would require a reversal-then-regenerate instead.
	rec.GrossPay = rec.BasicSalary.Add(rec.OvertimeAmount).Add(rec.Bonus).Sub(rec.Deductions)
	rec.NetPayable = rec.GrossPay.Sub(rec.AdvanceDeducted)
	if rec.NetPayable.IsNegative() {
		return salary.SalaryRecordResponse{}, salary.ErrNegativeNetPayable
	}

	if err := s.salaryRepo.UpdatePayComponents(ctx, companyID, rec); err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	return s.Get(ctx, req.ID)
}

func (s *SalaryServiceImpl) MarkPaid(ctx context.Context, id string) (salary.SalaryRecordResponse, error) {
	companyID, userID, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	record, err := s.salaryRepo.MarkPaid(ctx, id, userID, companyID)
	if err != nil {
		return salary.SalaryRecordResponse{}, err
	}

	return mapToRecordResponse(record), nil
}

// ========== REVERSAL ==========

// Delete replays the record's deduction snapshot in reverse, restoring every
// touched grant's balance, then removes the record. A grant removed in the
// interim is skipped: there is nothing left to restore the money onto, and
// blocking the delete would strand the record.
func (s *SalaryServiceImpl) Delete(ctx context.Context, id string) (salary.ReversalResponse, error) {
	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return salary.ReversalResponse{}, err
	}

	result := salary.ReversalResponse{RecordID: id, AmountRestored: decimal.Zero}
	err = s.txm.RunInTx(ctx, func(ctx context.Context) error {
		rec, err := s.salaryRepo.GetByID(ctx, id, companyID)
		if err != nil {
			return err
		}

		for _, entry := range rec.DeductionSnapshot {
			_, err := s.advanceRepo.AdjustBalance(ctx, entry.AdvanceID, companyID, entry.AmountDeducted)
			if err != nil {
				if errors.Is(err, advance.ErrAdvanceNotFound) {
					s.logger.Warn("skipping reversal for missing advance",
						slog.String("salary_record_id", rec.ID),
						slog.String("advance_id", entry.AdvanceID),
						slog.String("amount", entry.AmountDeducted.String()),
					)
					result.SkippedAdvanceIDs = append(result.SkippedAdvanceIDs, entry.AdvanceID)
					continue
				}
				return fmt.Errorf("failed to restore advance %s: %w", entry.AdvanceID, err)
			}
			result.AmountRestored = result.AmountRestored.Add(entry.AmountDeducted)
			result.AdvancesRestored++
		}

		return s.salaryRepo.Delete(ctx, rec.ID, companyID)
	})
	if err != nil {
		return salary.ReversalResponse{}, err
	}

	return result, nil
}

// ========== HELPERS ==========

func mapToRecordResponse(r salary.Record) salary.SalaryRecordResponse {
	var paidAtStr *string
	if r.PaidAt != nil {
		str := r.PaidAt.Format(time.RFC3339)
		paidAtStr = &str
	}

	employeeName := ""
	employeeCode := ""
	if r.EmployeeName != nil {
		employeeName = *r.EmployeeName
	}
	if r.EmployeeCode != nil {
		employeeCode = *r.EmployeeCode
	}

	snapshot := make([]salary.DeductionEntryResponse, 0, len(r.DeductionSnapshot))
	for _, e := range r.DeductionSnapshot {
		snapshot = append(snapshot, salary.DeductionEntryResponse{
			AdvanceID:      e.AdvanceID,
			AmountDeducted: e.AmountDeducted,
			RemainingAfter: e.RemainingAfter,
		})
	}

	return salary.SalaryRecordResponse{
		ID:                r.ID,
		EmployeeID:        r.EmployeeID,
		EmployeeName:      employeeName,
		EmployeeCode:      employeeCode,
		PeriodMonth:       r.PeriodMonth,
		PeriodYear:        r.PeriodYear,
		BasicSalary:       r.BasicSalary,
		OvertimeHours:     r.OvertimeHours,
		OvertimeAmount:    r.OvertimeAmount,
		Bonus:             r.Bonus,
		Deductions:        r.Deductions,
		GrossPay:          r.GrossPay,
		AdvanceDeducted:   r.AdvanceDeducted,
		NetPayable:        r.NetPayable,
		DeductionSnapshot: snapshot,
		Status:            string(r.Status),
		PaidAt:            paidAtStr,
		Notes:             r.Notes,
	}
}

func mapToRecordResponses(records []salary.Record) []salary.SalaryRecordResponse {
	result := make([]salary.SalaryRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, mapToRecordResponse(r))
	}
	return result
}
