package advance

import (
	"context"
	"time"

	"github.com/ledgerline/books-backend-go/internal/domain/advance"
	"github.com/ledgerline/books-backend-go/internal/domain/employee"
	"github.com/ledgerline/books-backend-go/internal/pkg/jwt"
	"github.com/ledgerline/books-backend-go/internal/pkg/validator"
)

type AdvanceServiceImpl struct {
	advanceRepo  advance.AdvanceRepository
	employeeRepo employee.EmployeeRepository
}

func NewAdvanceService(
	advanceRepo advance.AdvanceRepository,
	employeeRepo employee.EmployeeRepository,
) advance.AdvanceService {
	return &AdvanceServiceImpl{
		advanceRepo:  advanceRepo,
		employeeRepo: employeeRepo,
	}
}

func (s *AdvanceServiceImpl) Create(ctx context.Context, req advance.CreateAdvanceRequest) (advance.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.AdvanceResponse{}, err
	}

	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	grantDate := time.Now()
	if req.GrantDate != nil {
		if parsed, ok := validator.IsValidDate(*req.GrantDate); ok {
			grantDate = parsed
		}
	}

	grant := advance.Grant{
		EmployeeID:       emp.ID,
		CompanyID:        companyID,
		Amount:           req.Amount,
		RemainingBalance: req.Amount,
		GrantDate:        grantDate,
		DeductFromPeriod: req.DeductFromPeriod,
		Status:           advance.StatusActive,
		Reason:           req.Reason,
	}

	created, err := s.advanceRepo.Create(ctx, grant)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	return mapToAdvanceResponse(created), nil
}

func (s *AdvanceServiceImpl) Get(ctx context.Context, id string) (advance.AdvanceResponse, error) {
	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	grant, err := s.advanceRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	return mapToAdvanceResponse(grant), nil
}

func (s *AdvanceServiceImpl) List(ctx context.Context, filter advance.AdvanceFilter) (advance.ListAdvanceResponse, error) {
	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return advance.ListAdvanceResponse{}, err
	}

	grants, totalCount, err := s.advanceRepo.List(ctx, companyID, filter)
	if err != nil {
		return advance.ListAdvanceResponse{}, err
	}

	result := advance.ListAdvanceResponse{
		Data:       make([]advance.AdvanceResponse, 0, len(grants)),
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, g := range grants {
		result.Data = append(result.Data, mapToAdvanceResponse(g))
	}

	return result, nil
}

func (s *AdvanceServiceImpl) Update(ctx context.Context, req advance.UpdateAdvanceRequest) (advance.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.AdvanceResponse{}, err
	}

	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	current, err := s.advanceRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}
	if !current.Editable() {
		return advance.AdvanceResponse{}, advance.ErrAdvanceAlreadyAllocated
	}

	updated, err := s.advanceRepo.UpdateUntouched(ctx, companyID, req)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	return mapToAdvanceResponse(updated), nil
}

func (s *AdvanceServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	current, err := s.advanceRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if !current.Editable() {
		return advance.ErrAdvanceAlreadyAllocated
	}

	return s.advanceRepo.DeleteUntouched(ctx, id, companyID)
}

func mapToAdvanceResponse(g advance.Grant) advance.AdvanceResponse {
	employeeName := ""
	employeeCode := ""
	if g.EmployeeName != nil {
		employeeName = *g.EmployeeName
	}
	if g.EmployeeCode != nil {
		employeeCode = *g.EmployeeCode
	}

	return advance.AdvanceResponse{
		ID:               g.ID,
		EmployeeID:       g.EmployeeID,
		EmployeeName:     employeeName,
		EmployeeCode:     employeeCode,
		Amount:           g.Amount,
		RemainingBalance: g.RemainingBalance,
		GrantDate:        g.GrantDate.Format("2006-01-02"),
		DeductFromPeriod: g.DeductFromPeriod,
		Status:           string(g.Status),
		AllocationState:  string(g.AllocationState()),
		Reason:           g.Reason,
	}
}
