package employee

import (
	"context"

	"github.com/ledgerline/books-backend-go/internal/domain/employee"
	"github.com/ledgerline/books-backend-go/internal/pkg/jwt"
)

// EmployeeService exposes the read-only employee directory the payroll
// screens need. Provisioning belongs to another subsystem.
type EmployeeService interface {
	ListActive(ctx context.Context) ([]employee.EmployeeResponse, error)
}

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

func (s *EmployeeServiceImpl) ListActive(ctx context.Context) ([]employee.EmployeeResponse, error) {
	companyID, _, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		result = append(result, employee.EmployeeResponse{
			ID:           e.ID,
			EmployeeCode: e.EmployeeCode,
			FullName:     e.FullName,
			BaseSalary:   e.BaseSalary,
			Status:       string(e.EmploymentStatus),
		})
	}

	return result, nil
}
