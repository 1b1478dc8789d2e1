package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ledgerline/books-backend-go/internal/domain/salary"
	"github.com/ledgerline/books-backend-go/internal/handler/http/response"
)

type SalaryHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{salaryService: salaryService}
}

func (h *salaryHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req salary.GenerateSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.salaryService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary record generated", result)
}

func (h *salaryHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	result, err := h.salaryService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := salary.SalaryFilter{
		Page:      1,
		Limit:     20,
		SortBy:    "created_at",
		SortOrder: "desc",
	}

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			filter.Page = page
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if monthStr := r.URL.Query().Get("period_month"); monthStr != "" {
		if month, err := strconv.Atoi(monthStr); err == nil {
			filter.PeriodMonth = &month
		}
	}
	if yearStr := r.URL.Query().Get("period_year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			filter.PeriodYear = &year
		}
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if sortBy := r.URL.Query().Get("sort_by"); sortBy != "" {
		filter.SortBy = sortBy
	}
	if sortOrder := r.URL.Query().Get("sort_order"); sortOrder != "" {
		filter.SortOrder = sortOrder
	}

	result, err := h.salaryService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	var req salary.UpdateSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.salaryService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	result, err := h.salaryService.MarkPaid(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary record marked as paid", result)
}

func (h *salaryHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	result, err := h.salaryService.Delete(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary record deleted, advances restored", result)
}
