package salary

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/ledgerline/books-backend-go/internal/domain/advance"
	"github.com/ledgerline/books-backend-go/internal/domain/employee"
	"github.com/ledgerline/books-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID  = "company-1"
	testUserID     = "user-1"
	testEmployeeID = "employee-1"
)

func authContext(t *testing.T, companyID, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"type":       "access",
		"company_id": companyID,
		"user_id":    userID,
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// ===== MOCKS =====

type mockTxManager struct{}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockSalaryRepo struct {
	createFn              func(ctx context.Context, record salary.Record) (salary.Record, error)
	getByIDFn             func(ctx context.Context, id, companyID string) (salary.Record, error)
	getByEmployeePeriodFn func(ctx context.Context, employeeID string, month, year int, companyID string) (salary.Record, error)
	listFn                func(ctx context.Context, companyID string, filter salary.SalaryFilter) ([]salary.Record, int64, error)
	updatePayComponentsFn func(ctx context.Context, companyID string, rec salary.Record) error
	markPaidFn            func(ctx context.Context, id, paidBy, companyID string) (salary.Record, error)
	deleteFn              func(ctx context.Context, id, companyID string) error
}

func (m *mockSalaryRepo) Create(ctx context.Context, record salary.Record) (salary.Record, error) {
	return m.createFn(ctx, record)
}

func (m *mockSalaryRepo) GetByID(ctx context.Context, id, companyID string) (salary.Record, error) {
	return m.getByIDFn(ctx, id, companyID)
}

func (m *mockSalaryRepo) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (salary.Record, error) {
	return m.getByEmployeePeriodFn(ctx, employeeID, month, year, companyID)
}

func (m *mockSalaryRepo) List(ctx context.Context, companyID string, filter salary.SalaryFilter) ([]salary.Record, int64, error) {
	return m.listFn(ctx, companyID, filter)
}

func (m *mockSalaryRepo) UpdatePayComponents(ctx context.Context, companyID string, rec salary.Record) error {
	return m.updatePayComponentsFn(ctx, companyID, rec)
}

func (m *mockSalaryRepo) MarkPaid(ctx context.Context, id, paidBy, companyID string) (salary.Record, error) {
	return m.markPaidFn(ctx, id, paidBy, companyID)
}

func (m *mockSalaryRepo) Delete(ctx context.Context, id, companyID string) error {
	return m.deleteFn(ctx, id, companyID)
}

type mockAdvanceRepo struct {
	createFn          func(ctx context.Context, grant advance.Grant) (advance.Grant, error)
	getByIDFn         func(ctx context.Context, id, companyID string) (advance.Grant, error)
	listFn            func(ctx context.Context, companyID string, filter advance.AdvanceFilter) ([]advance.Grant, int64, error)
	updateUntouchedFn func(ctx context.Context, companyID string, req advance.UpdateAdvanceRequest) (advance.Grant, error)
	deleteUntouchedFn func(ctx context.Context, id, companyID string) error
	getEligibleFn     func(ctx context.Context, employeeID, companyID, payPeriod string) ([]advance.Grant, error)
	adjustBalanceFn   func(ctx context.Context, id, companyID string, delta decimal.Decimal) (advance.Grant, error)
}

func (m *mockAdvanceRepo) Create(ctx context.Context, grant advance.Grant) (advance.Grant, error) {
	return m.createFn(ctx, grant)
}

func (m *mockAdvanceRepo) GetByID(ctx context.Context, id, companyID string) (advance.Grant, error) {
	return m.getByIDFn(ctx, id, companyID)
}

func (m *mockAdvanceRepo) List(ctx context.Context, companyID string, filter advance.AdvanceFilter) ([]advance.Grant, int64, error) {
	return m.listFn(ctx, companyID, filter)
}

func (m *mockAdvanceRepo) UpdateUntouched(ctx context.Context, companyID string, req advance.UpdateAdvanceRequest) (advance.Grant, error) {
	return m.updateUntouchedFn(ctx, companyID, req)
}

func (m *mockAdvanceRepo) DeleteUntouched(ctx context.Context, id, companyID string) error {
	return m.deleteUntouchedFn(ctx, id, companyID)
}

func (m *mockAdvanceRepo) GetEligibleForUpdate(ctx context.Context, employeeID, companyID, payPeriod string) ([]advance.Grant, error) {
	return m.getEligibleFn(ctx, employeeID, companyID, payPeriod)
}

func (m *mockAdvanceRepo) AdjustBalance(ctx context.Context, id, companyID string, delta decimal.Decimal) (advance.Grant, error) {
	return m.adjustBalanceFn(ctx, id, companyID, delta)
}

type mockEmployeeRepo struct {
	getByIDFn func(ctx context.Context, id, companyID string) (employee.Employee, error)
}

func (m *mockEmployeeRepo) GetByID(ctx context.Context, id, companyID string) (employee.Employee, error) {
	return m.getByIDFn(ctx, id, companyID)
}

func (m *mockEmployeeRepo) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}

func testEmployee() employee.Employee {
	base := decimal.NewFromInt(5000)
	return employee.Employee{
		ID:           testEmployeeID,
		CompanyID:    testCompanyID,
		EmployeeCode: "EMP-001",
		FullName:     "Test Employee",
		BaseSalary:   &base,
	}
}

func newTestService(salaryRepo *mockSalaryRepo, advanceRepo *mockAdvanceRepo, employeeRepo *mockEmployeeRepo) salary.SalaryService {
	return NewSalaryService(&mockTxManager{}, salaryRepo, advanceRepo, employeeRepo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// ===== GENERATION =====

func TestSalaryService_Generate_DeductsAdvanceFIFO(t *testing.T) {
	t.Parallel()
	ctx := authContext(t, testCompanyID, testUserID)

	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	var adjustments []decimal.Decimal

	salaryRepo := &mockSalaryRepo{
		getByEmployeePeriodFn: func(ctx context.Context, employeeID string, month, year int, companyID string) (salary.Record, error) {
			return salary.Record{}, salary.ErrSalaryRecordNotFound
		},
		createFn: func(ctx context.Context, record salary.Record) (salary.Record, error) {
			record.ID = "rec-1"
			return record, nil
		},
	}
	advanceRepo := &mockAdvanceRepo{
		getEligibleFn: func(ctx context.Context, employeeID, companyID, payPeriod string) ([]advance.Grant, error) {
			assert.Equal(t, "2025-02", payPeriod)
			return []advance.Grant{grantAt("adv-1", "2025-01", jan, 1000)}, nil
		},
		adjustBalanceFn: func(ctx context.Context, id, companyID string, delta decimal.Decimal) (advance.Grant, error) {
			adjustments = append(adjustments, delta)
			return advance.Grant{ID: id}, nil
		},
	}
	employeeRepo := &mockEmployeeRepo{
		getByIDFn: func(ctx context.Context, id, companyID string) (employee.Employee, error) {
			assert.Equal(t, testCompanyID, companyID)
			return testEmployee(), nil
		},
	}

	svc := newTestService(salaryRepo, advanceRepo, employeeRepo)

	resp, err := svc.Generate(ctx, salary.GenerateSalaryRequest{
		EmployeeID:  testEmployeeID,
		PeriodMonth: 2,
		PeriodYear:  2025,
	})

	require.NoError(t, err)
	assert.Equal(t, "rec-1", resp.ID)
	assert.True(t, resp.GrossPay.Equal(decimal.NewFromInt(5000)))
	assert.True(t, resp.AdvanceDeducted.Equal(decimal.NewFromInt(1000)))
	assert.True(t, resp.NetPayable.Equal(decimal.NewFromInt(4000)))
	require.Len(t, resp.DeductionSnapshot, 1)
	assert.Equal(t, "adv-1", resp.DeductionSnapshot[0].AdvanceID)
	assert.True(t, resp.DeductionSnapshot[0].RemainingAfter.IsZero())

	// Ledger drawn down by exactly what the snapshot records.
	require.Len(t, adjustments, 1)
	assert.True(t, adjustments[0].Equal(decimal.NewFromInt(-1000)))
}

func TestSalaryService_Generate_DuplicatePeriod(t *testing.T) {
	t.Parallel()
	ctx := authContext(t, testCompanyID, testUserID)

	salaryRepo := &mockSalaryRepo{
		getByEmployeePeriodFn: func(ctx context.Context, employeeID string, month, year int, companyID string) (salary.Record, error) {
			return salary.Record{ID: "existing"}, nil
		},
	}
	employeeRepo := &mockEmployeeRepo{
		getByIDFn: func(ctx context.Context, id, companyID string) (employee.Employee, error) {
			return testEmployee(), nil
		},
	}

	svc := newTestService(salaryRepo, &mockAdvanceRepo{}, employeeRepo)

	_, err := svc.Generate(ctx, salary.GenerateSalaryRequest{
		EmployeeID:  testEmployeeID,
		PeriodMonth: 2,
		PeriodYear:  2025,
	})

	assert.ErrorIs(t, err, salary.ErrSalaryRecordAlreadyExists)
}

func TestSalaryService_Generate_InvalidPeriod(t *testing.T) {
	t.Parallel()
	ctx := authContext(t, testCompanyID, testUserID)

	svc := newTestService(&mockSalaryRepo{}, &mockAdvanceRepo{}, &mockEmployeeRepo{})

	_, err := svc.Generate(ctx, salary.GenerateSalaryRequest{
		EmployeeID:  testEmployeeID,
		PeriodMonth: 13,
		PeriodYear:  2025,
	})

	assert.Error(t, err)
}

func TestSalaryService_Generate_SkipsFutureAdvances(t *testing.T) {
	t.Parallel()
	ctx := authContext(t, testCompanyID, testUserID)

	salaryRepo := &mockSalaryRepo{
		getByEmployeePeriodFn: func(ctx context.Context, employeeID string, month, year int, companyID string) (salary.Record, error) {
			return salary.Record{}, salary.ErrSalaryRecordNotFound
		},
		createFn: func(ctx context.Context, record salary.Record) (salary.Record, error) {
			record.ID = "rec-1"
			return record, nil
		},
	}
	// The repository query already excludes grants with a later
	// deduct_from_period; an empty eligible set must yield a clean record.
	advanceRepo := &mockAdvanceRepo{
		getEligibleFn: func(ctx context.Context, employeeID, companyID, payPeriod string) ([]advance.Grant, error) {
			return nil, nil
		},
	}
	employeeRepo := &mockEmployeeRepo{
		getByIDFn: func(ctx context.Context, id, companyID string) (employee.Employee, error) {
			return testEmployee(), nil
		},
	}

	svc := newTestService(salaryRepo, advanceRepo, employeeRepo)

	resp, err := svc.Generate(ctx, salary.GenerateSalaryRequest{
		EmployeeID:  testEmployeeID,
		PeriodMonth: 2,
		PeriodYear:  2025,
	})

	require.NoError(t, err)
	assert.True(t, resp.AdvanceDeducted.IsZero())
	assert.True(t, resp.NetPayable.Equal(decimal.NewFromInt(5000)))
	assert.Empty(t, resp.DeductionSnapshot)
}

func TestSalaryService_Generate_MissingCompanyClaim(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockSalaryRepo{}, &mockAdvanceRepo{}, &mockEmployeeRepo{})

	_, err := svc.Generate(context.Background(), salary.GenerateSalaryRequest{
		EmployeeID:  testEmployeeID,
		PeriodMonth: 2,
		PeriodYear:  2025,
	})

	assert.Error(t, err)
}

// ===== EDIT =====

func pendingRecord() salary.Record {
	return salary.Record{
		ID:              "rec-1",
		EmployeeID:      testEmployeeID,
		CompanyID:       testCompanyID,
		PeriodMonth:     2,
		PeriodYear:      2025,
		BasicSalary:     decimal.NewFromInt(5000),
		GrossPay:        decimal.NewFromInt(5000),
		AdvanceDeducted: decimal.NewFromInt(1000),
		NetPayable:      decimal.NewFromInt(4000),
		DeductionSnapshot: []salary.DeductionEntry{
			{AdvanceID: "adv-1", AmountDeducted: decimal.NewFromInt(1000), RemainingAfter: decimal.Zero},
		},
		Status: salary.StatusPending,
	}
}

func TestSalaryService_Update_AdvancePortionFrozen(t *testing.T) {
	t.Parallel()
	ctx := authContext(t, testCompanyID, testUserID)

	var saved salary.Record
	salaryRepo := &mockSalaryRepo{
		getByIDFn: func(ctx context.Context, id, companyID string) (salary.Record, error) {
			if saved.ID != "" {
				return saved, nil
			}
			return pendingRecord(), nil
		},
		updatePayComponentsFn: func(ctx context.Context, companyID string, rec salary.Record) error {
			saved = rec
			return nil
		},
	}

	svc := newTestService(salaryRepo, &mockAdvanceRepo{}, &mockEmployeeRepo{})

	newBasic := decimal.NewFromInt(6000)
	resp, err := svc.Update(ctx, salary.UpdateSalaryRequest{ID: "rec-1", BasicSalary: &newBasic})

	require.NoError(t, err)
	assert.True(t, resp.GrossPay.Equal(decimal.NewFromInt(6000)))
	assert.True(t, resp.AdvanceDeducted.Equal(decimal.NewFromInt(1000)))
	assert.True(t, resp.NetPayable.Equal(decimal.NewFromInt(5000)))
	require.Len(t, resp.DeductionSnapshot, 1)
}

func TestSalaryService_Update_NegativeNetRejected(t *testing.T) {
	t.Parallel()
	ctx := authContext(t, testCompanyID, testUserID)

	salaryRepo := &mockSalaryRepo{
		getByIDFn: func(ctx context.Context, id, companyID string) (salary.Record, error) {
			return pendingRecord(), nil
		},
	}

	svc := newTestService(salaryRepo, &mockAdvanceRepo{}, &mockEmployeeRepo{})

	// 500 gross against the frozen 1000 advance deduction.
	newBasic := decimal.NewFromInt(500)
	_, err := svc.Update(ctx, salary.UpdateSalaryRequest{ID: "rec-1", BasicSalary: &newBasic})

	assert.ErrorIs(t, err, salary.ErrNegativeNetPayable)
}

func TestSalaryService_Update_PaidRecordRejected(t *testing.T) {
	t.Parallel()
	ctx := authContext(t, testCompanyID, testUserID)

	salaryRepo := &mockSalaryRepo{
		getByIDFn: func(ctx context.Context, id, companyID string) (salary.Record, error) {
			rec := pendingRecord()
			rec.Status = salary.StatusPaid
			return rec, nil
		},
	}

	svc := newTestService(salaryRepo, &mockAdvanceRepo{}, &mockEmployeeRepo{})

	newBonus := decimal.NewFromInt(100)
	_, err := svc.Update(ctx, salary.UpdateSalaryRequest{ID: "rec-1", Bonus: &newBonus})

	assert.ErrorIs(t, err, salary.ErrSalaryRecordAlreadyPaid)
}

// ===== PAYMENT =====

func TestSalaryService_MarkPaid_RecordsActingUser(t *testing.T) {
	t.Parallel()
	ctx := authContext(t, testCompanyID, testUserID)

	salaryRepo := &mockSalaryRepo{
		markPaidFn: func(ctx context.Context, id, paidBy, companyID string) (salary.Record, error) {
			assert.Equal(t, testUserID, paidBy)
			rec := pendingRecord()
			rec.Status = salary.StatusPaid
			now := time.Now()
			rec.PaidAt = &now
			rec.PaidBy = &paidBy
			return rec, nil
		},
	}

	svc := newTestService(salaryRepo, &mockAdvanceRepo{}, &mockEmployeeRepo{})

	resp, err := svc.MarkPaid(ctx, "rec-1")

	require.NoError(t, err)
	assert.Equal(t, string(salary.StatusPaid), resp.Status)
	assert.NotNil(t, resp.PaidAt)
}

// ===== REVERSAL =====

func TestSalaryService_Delete_RestoresSnapshotBalances(t *testing.T) {
	t.Parallel()
	ctx := authContext(t, testCompanyID, testUserID)

	type adjustment struct {
		id    string
		delta decimal.Decimal
	}
	var adjustments []adjustment
	deleted := false

	rec := pendingRecord()
	rec.AdvanceDeducted = decimal.NewFromInt(1500)
	rec.DeductionSnapshot = []salary.DeductionEntry{
		{AdvanceID: "adv-1", AmountDeducted: decimal.NewFromInt(1000), RemainingAfter: decimal.Zero},
		{AdvanceID: "adv-2", AmountDeducted: decimal.NewFromInt(500), RemainingAfter: decimal.NewFromInt(200)},
	}

	salaryRepo := &mockSalaryRepo{
		getByIDFn: func(ctx context.Context, id, companyID string) (salary.Record, error) {
			return rec, nil
		},
		deleteFn: func(ctx context.Context, id, companyID string) error {
			deleted = true
			return nil
		},
	}
	advanceRepo := &mockAdvanceRepo{
		adjustBalanceFn: func(ctx context.Context, id, companyID string, delta decimal.Decimal) (advance.Grant, error) {
			adjustments = append(adjustments, adjustment{id: id, delta: delta})
			return advance.Grant{ID: id}, nil
		},
	}

	svc := newTestService(salaryRepo, advanceRepo, &mockEmployeeRepo{})

	result, err := svc.Delete(ctx, "rec-1")

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, "rec-1", result.RecordID)
	assert.Equal(t, 2, result.AdvancesRestored)
	assert.True(t, result.AmountRestored.Equal(decimal.NewFromInt(1500)))
	assert.Empty(t, result.SkippedAdvanceIDs)

	require.Len(t, adjustments, 2)
	assert.Equal(t, "adv-1", adjustments[0].id)
	assert.True(t, adjustments[0].delta.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "adv-2", adjustments[1].id)
	assert.True(t, adjustments[1].delta.Equal(decimal.NewFromInt(500)))
}

func TestSalaryService_Delete_SkipsMissingAdvance(t *testing.T) {
	t.Parallel()
	ctx := authContext(t, testCompanyID, testUserID)

	deleted := false
	rec := pendingRecord()
	rec.DeductionSnapshot = []salary.DeductionEntry{
		{AdvanceID: "adv-gone", AmountDeducted: decimal.NewFromInt(400), RemainingAfter: decimal.Zero},
		{AdvanceID: "adv-2", AmountDeducted: decimal.NewFromInt(600), RemainingAfter: decimal.NewFromInt(100)},
	}

	salaryRepo := &mockSalaryRepo{
		getByIDFn: func(ctx context.Context, id, companyID string) (salary.Record, error) {
			return rec, nil
		},
		deleteFn: func(ctx context.Context, id, companyID string) error {
			deleted = true
			return nil
		},
	}
	advanceRepo := &mockAdvanceRepo{
		adjustBalanceFn: func(ctx context.Context, id, companyID string, delta decimal.Decimal) (advance.Grant, error) {
			if id == "adv-gone" {
				return advance.Grant{}, advance.ErrAdvanceNotFound
			}
			return advance.Grant{ID: id}, nil
		},
	}

	svc := newTestService(salaryRepo, advanceRepo, &mockEmployeeRepo{})

	result, err := svc.Delete(ctx, "rec-1")

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, 1, result.AdvancesRestored)
	assert.True(t, result.AmountRestored.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, []string{"adv-gone"}, result.SkippedAdvanceIDs)
}

func TestSalaryService_Delete_RecordNotFound(t *testing.T) {
	t.Parallel()
	ctx := authContext(t, testCompanyID, testUserID)

	salaryRepo := &mockSalaryRepo{
		getByIDFn: func(ctx context.Context, id, companyID string) (salary.Record, error) {
			return salary.Record{}, salary.ErrSalaryRecordNotFound
		},
	}

	svc := newTestService(salaryRepo, &mockAdvanceRepo{}, &mockEmployeeRepo{})

	_, err := svc.Delete(ctx, "missing")

	assert.ErrorIs(t, err, salary.ErrSalaryRecordNotFound)
}

func TestSalaryService_Generate_NegativeGrossRejected(t *testing.T) {
	t.Parallel()
	ctx := authContext(t, testCompanyID, testUserID)

	created := false
	salaryRepo := &mockSalaryRepo{
		getByEmployeePeriodFn: func(ctx context.Context, employeeID string, month, year int, companyID string) (salary.Record, error) {
			return salary.Record{}, salary.ErrSalaryRecordNotFound
		},
		createFn: func(ctx context.Context, record salary.Record) (salary.Record, error) {
			created = true
			return record, nil
		},
	}
	employeeRepo := &mockEmployeeRepo{
		getByIDFn: func(ctx context.Context, id, companyID string) (employee.Employee, error) {
			return testEmployee(), nil
		},
	}

	svc := newTestService(salaryRepo, &mockAdvanceRepo{}, employeeRepo)

	// Deductions exceed every earning component, so the record would carry
	// a negative net payable.
	basic := decimal.Zero
	_, err := svc.Generate(ctx, salary.GenerateSalaryRequest{
		EmployeeID:  testEmployeeID,
		PeriodMonth: 2,
		PeriodYear:  2025,
		BasicSalary: &basic,
		Deductions:  decimal.NewFromInt(100),
	})

	assert.ErrorIs(t, err, salary.ErrNegativeNetPayable)
	assert.False(t, created)
}

func TestSalaryService_Generate_PopulatesEmployeeFields(t *testing.T) {
	t.Parallel()
	ctx := authContext(t, testCompanyID, testUserID)

	salaryRepo := &mockSalaryRepo{
		getByEmployeePeriodFn: func(ctx context.Context, employeeID string, month, year int, companyID string) (salary.Record, error) {
			return salary.Record{}, salary.ErrSalaryRecordNotFound
		},
		createFn: func(ctx context.Context, record salary.Record) (salary.Record, error) {
			record.ID = "rec-1"
			return record, nil
		},
	}
	advanceRepo := &mockAdvanceRepo{
		getEligibleFn: func(ctx context.Context, employeeID, companyID, payPeriod string) ([]advance.Grant, error) {
			return nil, nil
		},
	}
	employeeRepo := &mockEmployeeRepo{
		getByIDFn: func(ctx context.Context, id, companyID string) (employee.Employee, error) {
			return testEmployee(), nil
		},
	}

	svc := newTestService(salaryRepo, advanceRepo, employeeRepo)

	resp, err := svc.Generate(ctx, salary.GenerateSalaryRequest{
		EmployeeID:  testEmployeeID,
		PeriodMonth: 2,
		PeriodYear:  2025,
	})

	require.NoError(t, err)
	assert.Equal(t, "Test Employee", resp.EmployeeName)
	assert.Equal(t, "EMP-001", resp.EmployeeCode)
}

// Generate followed by delete must conserve ledger totals: at every point
// the remaining balances plus what records hold as advance_deducted add up
// to the granted amounts.
func TestSalaryService_GenerateThenDelete_ConservesAdvanceTotals(t *testing.T) {
	t.Parallel()
	ctx := authContext(t, testCompanyID, testUserID)

	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC)
	ledger := map[string]advance.Grant{
		"adv-1": grantAt("adv-1", "2025-01", jan, 800),
		"adv-2": grantAt("adv-2", "2025-02", feb, 500),
	}
	var stored salary.Record

	salaryRepo := &mockSalaryRepo{
		getByEmployeePeriodFn: func(ctx context.Context, employeeID string, month, year int, companyID string) (salary.Record, error) {
			return salary.Record{}, salary.ErrSalaryRecordNotFound
		},
		createFn: func(ctx context.Context, record salary.Record) (salary.Record, error) {
			record.ID = "rec-1"
			stored = record
			return record, nil
		},
		getByIDFn: func(ctx context.Context, id, companyID string) (salary.Record, error) {
			return stored, nil
		},
		deleteFn: func(ctx context.Context, id, companyID string) error {
			return nil
		},
	}
	advanceRepo := &mockAdvanceRepo{
		getEligibleFn: func(ctx context.Context, employeeID, companyID, payPeriod string) ([]advance.Grant, error) {
			var grants []advance.Grant
			for _, g := range ledger {
				if g.RemainingBalance.IsPositive() && g.DeductFromPeriod <= payPeriod {
					grants = append(grants, g)
				}
			}
			return grants, nil
		},
		adjustBalanceFn: func(ctx context.Context, id, companyID string, delta decimal.Decimal) (advance.Grant, error) {
			g, ok := ledger[id]
			if !ok {
				return advance.Grant{}, advance.ErrAdvanceNotFound
			}
			g.RemainingBalance = decimal.Min(g.Amount, decimal.Max(decimal.Zero, g.RemainingBalance.Add(delta)))
			g.Status = advance.StatusForBalance(g.RemainingBalance)
			ledger[id] = g
			return g, nil
		},
	}
	employeeRepo := &mockEmployeeRepo{
		getByIDFn: func(ctx context.Context, id, companyID string) (employee.Employee, error) {
			return testEmployee(), nil
		},
	}

	svc := newTestService(salaryRepo, advanceRepo, employeeRepo)

	grantedTotal := decimal.NewFromInt(1300)
	remainingTotal := func() decimal.Decimal {
		sum := decimal.Zero
		for _, g := range ledger {
			sum = sum.Add(g.RemainingBalance)
		}
		return sum
	}

	resp, err := svc.Generate(ctx, salary.GenerateSalaryRequest{
		EmployeeID:  testEmployeeID,
		PeriodMonth: 2,
		PeriodYear:  2025,
	})
	require.NoError(t, err)
	assert.True(t, resp.AdvanceDeducted.Equal(decimal.NewFromInt(1300)))
	assert.True(t, remainingTotal().Add(resp.AdvanceDeducted).Equal(grantedTotal))

	result, err := svc.Delete(ctx, resp.ID)
	require.NoError(t, err)
	assert.True(t, result.AmountRestored.Equal(decimal.NewFromInt(1300)))
	assert.True(t, remainingTotal().Equal(grantedTotal))
}
