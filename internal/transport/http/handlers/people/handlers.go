package peoplehandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gemura/internal/domain/auth"
	"gemura/internal/domain/person"
	"gemura/internal/transport/http/api"
	"gemura/internal/transport/http/middleware"
	"gemura/internal/transport/http/shared"
)

type Handler struct {
	People *person.Service
}

func NewHandler(service *person.Service) *Handler {
	return &Handler{People: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleCreateEmployee)
		r.Get("/departments", h.handleDepartments)
		r.Get("/roles", h.handleRoles)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGetEmployee)
			r.Put("/", h.handleUpdateEmployee)
			r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/", h.handleDeleteEmployee)
		})
	})
	r.Route("/suppliers", func(r chi.Router) {
		r.Get("/", h.handleListSuppliers)
		r.Post("/", h.handleCreateSupplier)
		r.Route("/{supplierID}", func(r chi.Router) {
			r.Get("/", h.handleGetSupplier)
			r.Put("/", h.handleUpdateSupplier)
			r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/", h.handleDeleteSupplier)
		})
	})
}

type createEmployeeRequest struct {
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	Department  string  `json:"department"`
	BaseSalary  float64 `json:"baseSalary"`
	BankName    string  `json:"bankName"`
	BankAccount string  `json:"bankAccount"`
	HireDate    string  `json:"hireDate"`
	Status      string  `json:"status"`
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.People.ListEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	page := shared.ParsePagination(r, shared.DefaultPageSize, shared.MaxPageSize)
	api.Success(w, shared.Page(employees, page), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload createEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "name is required", middleware.GetRequestID(r.Context()))
		return
	}
	hireDate, err := shared.ParseDate(payload.HireDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "invalid hire date", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.People.AddEmployee(r.Context(), person.Employee{
		Name:        payload.Name,
		Phone:       payload.Phone,
		Email:       payload.Email,
		Role:        payload.Role,
		Department:  payload.Department,
		BaseSalary:  payload.BaseSalary,
		BankName:    payload.BankName,
		BankAccount: payload.BankAccount,
		HireDate:    hireDate,
		Status:      payload.Status,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.People.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.failPerson(w, r, err, "employee")
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var update person.EmployeeUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	employee, err := h.People.UpdateEmployee(r.Context(), chi.URLParam(r, "employeeID"), update)
	if err != nil {
		h.failPerson(w, r, err, "employee")
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.People.RemoveEmployee(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		h.failPerson(w, r, err, "employee")
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.People.Departments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_list_failed", "failed to list departments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, departments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.People.Roles(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "role_list_failed", "failed to list roles", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, roles, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.People.ListSuppliers(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "supplier_list_failed", "failed to list suppliers", middleware.GetRequestID(r.Context()))
		return
	}
	page := shared.ParsePagination(r, shared.DefaultPageSize, shared.MaxPageSize)
	api.Success(w, shared.Page(suppliers, page), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateSupplier(w http.ResponseWriter, r *http.Request) {
	var payload person.Supplier
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "name is required", middleware.GetRequestID(r.Context()))
		return
	}
	created, err := h.People.AddSupplier(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "supplier_create_failed", "failed to create supplier", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetSupplier(w http.ResponseWriter, r *http.Request) {
	supplier, err := h.People.GetSupplier(r.Context(), chi.URLParam(r, "supplierID"))
	if err != nil {
		h.failPerson(w, r, err, "supplier")
		return
	}
	api.Success(w, supplier, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateSupplier(w http.ResponseWriter, r *http.Request) {
	var update person.SupplierUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	supplier, err := h.People.UpdateSupplier(r.Context(), chi.URLParam(r, "supplierID"), update)
	if err != nil {
		h.failPerson(w, r, err, "supplier")
		return
	}
	api.Success(w, supplier, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteSupplier(w http.ResponseWriter, r *http.Request) {
	if err := h.People.RemoveSupplier(r.Context(), chi.URLParam(r, "supplierID")); err != nil {
		h.failPerson(w, r, err, "supplier")
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failPerson(w http.ResponseWriter, r *http.Request, err error, kind string) {
	if errors.Is(err, person.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", kind+" not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Fail(w, http.StatusInternalServerError, kind+"_error", "operation failed", middleware.GetRequestID(r.Context()))
}
