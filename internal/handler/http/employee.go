package http

import (
	"net/http"

	"github.com/ledgerline/books-backend-go/internal/handler/http/response"
	employeeService "github.com/ledgerline/books-backend-go/internal/service/employee"
)

type EmployeeHandler interface {
	ListActive(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employeeService.EmployeeService
}

func NewEmployeeHandler(svc employeeService.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: svc}
}

func (h *employeeHandlerImpl) ListActive(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.ListActive(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
