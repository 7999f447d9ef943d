package payrollhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"gemura/internal/domain/ledger"
	"gemura/internal/domain/payroll"
	"gemura/internal/domain/person"
	"gemura/internal/transport/http/api"
	"gemura/internal/transport/http/middleware"
	"gemura/internal/transport/http/shared"
)

type Handler struct {
	Payroll *payroll.Service
	Ledger  *ledger.Service
	People  *person.Service
}

func NewHandler(payrollService *payroll.Service, ledgerService *ledger.Service, peopleService *person.Service) *Handler {
	return &Handler{Payroll: payrollService, Ledger: ledgerService, People: peopleService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/advances", func(r chi.Router) {
		r.Get("/", h.handleListAdvances)
		r.Post("/", h.handleCreateAdvance)
		r.Get("/pending", h.handlePendingAdvances)
	})
	r.Route("/product-debts", func(r chi.Router) {
		r.Get("/", h.handleListProductDebts)
		r.Post("/", h.handleCreateProductDebt)
		r.Get("/pending", h.handlePendingProductDebts)
	})
	r.Route("/payroll", func(r chi.Router) {
		r.Get("/summary", h.handleSummary)
		r.Route("/records", func(r chi.Router) {
			r.Get("/", h.handleListRecords)
			r.Post("/", h.handleGenerate)
			r.Route("/{recordID}", func(r chi.Router) {
				r.Get("/", h.handleGetRecord)
				r.Get("/payslip", h.handlePayslip)
				r.With(middleware.RequireAuth).Post("/approve", h.handleApprove)
				r.With(middleware.RequireAuth).Post("/pay", h.handlePay)
			})
		})
	})
}

type createAdvanceRequest struct {
	PersonID   string  `json:"personId"`
	PersonType string  `json:"personType"`
	Amount     float64 `json:"amount"`
	Reason     string  `json:"reason"`
	Date       string  `json:"date"`
}

type debtItemRequest struct {
	ProductName string  `json:"productName"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type createProductDebtRequest struct {
	PersonID   string            `json:"personId"`
	PersonType string            `json:"personType"`
	Products   []debtItemRequest `json:"products"`
	Date       string            `json:"date"`
}

type generateRequest struct {
	PersonID    string  `json:"personId"`
	PersonType  string  `json:"personType"`
	Period      string  `json:"period"`
	PeriodStart string  `json:"periodStart"`
	PeriodEnd   string  `json:"periodEnd"`
	GrossAmount float64 `json:"grossAmount"`
}

type payRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

func (h *Handler) handleListAdvances(w http.ResponseWriter, r *http.Request) {
	advances, err := h.Ledger.Advances(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "advance_list_failed", "failed to list advances", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, advances, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateAdvance(w http.ResponseWriter, r *http.Request) {
	var payload createAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	personType := person.PersonType(payload.PersonType)
	if !personType.Valid() {
		api.Fail(w, http.StatusBadRequest, "invalid_person_type", "personType must be employee or supplier", middleware.GetRequestID(r.Context()))
		return
	}
	date, err := shared.ParseDate(payload.Date)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "invalid date", middleware.GetRequestID(r.Context()))
		return
	}

	personName, err := h.People.ResolveName(r.Context(), personType, payload.PersonID)
	if err != nil {
		if errors.Is(err, person.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "person not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "advance_create_failed", "failed to record advance", middleware.GetRequestID(r.Context()))
		return
	}

	advance, err := h.Ledger.RecordAdvance(r.Context(), payload.PersonID, personName, personType, payload.Amount, payload.Reason, date)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidAmount) {
			api.Fail(w, http.StatusBadRequest, "invalid_amount", "amount must be positive", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "advance_create_failed", "failed to record advance", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, advance, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePendingAdvances(w http.ResponseWriter, r *http.Request) {
	personType := person.PersonType(r.URL.Query().Get("personType"))
	if !personType.Valid() {
		api.Fail(w, http.StatusBadRequest, "invalid_person_type", "personType must be employee or supplier", middleware.GetRequestID(r.Context()))
		return
	}
	advances, err := h.Ledger.PendingAdvances(r.Context(), r.URL.Query().Get("personId"), personType)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "advance_list_failed", "failed to list pending advances", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, advances, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListProductDebts(w http.ResponseWriter, r *http.Request) {
	debts, err := h.Ledger.ProductDebts(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "debt_list_failed", "failed to list product debts", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, debts, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateProductDebt(w http.ResponseWriter, r *http.Request) {
	var payload createProductDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	personType := person.PersonType(payload.PersonType)
	if !personType.Valid() {
		api.Fail(w, http.StatusBadRequest, "invalid_person_type", "personType must be employee or supplier", middleware.GetRequestID(r.Context()))
		return
	}
	date, err := shared.ParseDate(payload.Date)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "invalid date", middleware.GetRequestID(r.Context()))
		return
	}

	personName, err := h.People.ResolveName(r.Context(), personType, payload.PersonID)
	if err != nil {
		if errors.Is(err, person.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "person not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "debt_create_failed", "failed to record product debt", middleware.GetRequestID(r.Context()))
		return
	}

	items := make([]ledger.DebtItem, 0, len(payload.Products))
	for _, product := range payload.Products {
		items = append(items, ledger.DebtItem{
			ProductName: product.ProductName,
			Quantity:    product.Quantity,
			UnitPrice:   product.UnitPrice,
		})
	}

	debt, err := h.Ledger.RecordProductDebt(r.Context(), payload.PersonID, personName, personType, items, date)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrNoItems):
			api.Fail(w, http.StatusBadRequest, "no_items", "at least one product is required", middleware.GetRequestID(r.Context()))
		case errors.Is(err, ledger.ErrInvalidAmount):
			api.Fail(w, http.StatusBadRequest, "invalid_amount", "product quantities and prices must be positive", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "debt_create_failed", "failed to record product debt", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Created(w, debt, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePendingProductDebts(w http.ResponseWriter, r *http.Request) {
	personType := person.PersonType(r.URL.Query().Get("personType"))
	if !personType.Valid() {
		api.Fail(w, http.StatusBadRequest, "invalid_person_type", "personType must be employee or supplier", middleware.GetRequestID(r.Context()))
		return
	}
	debts, err := h.Ledger.PendingProductDebts(r.Context(), r.URL.Query().Get("personId"), personType)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "debt_list_failed", "failed to list pending product debts", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, debts, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRecords(w http.ResponseWriter, r *http.Request) {
	var (
		records []payroll.Record
		err     error
	)
	if period := r.URL.Query().Get("period"); period != "" {
		records, err = h.Payroll.RecordsByPeriod(r.Context(), period)
	} else {
		records, err = h.Payroll.Records(r.Context())
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_list_failed", "failed to list payroll records", middleware.GetRequestID(r.Context()))
		return
	}
	page := shared.ParsePagination(r, shared.DefaultPageSize, shared.MaxPageSize)
	api.Success(w, shared.Page(records, page), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var payload generateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	personType := person.PersonType(payload.PersonType)
	if !personType.Valid() {
		api.Fail(w, http.StatusBadRequest, "invalid_person_type", "personType must be employee or supplier", middleware.GetRequestID(r.Context()))
		return
	}
	periodStart, err := shared.ParseDate(payload.PeriodStart)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "invalid period start", middleware.GetRequestID(r.Context()))
		return
	}
	periodEnd, err := shared.ParseDate(payload.PeriodEnd)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "invalid period end", middleware.GetRequestID(r.Context()))
		return
	}
	if periodStart.IsZero() && periodEnd.IsZero() && payload.Period != "" {
		periodStart, periodEnd, err = periodBounds(payload.Period)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_period", "period must look like 2025-12", middleware.GetRequestID(r.Context()))
			return
		}
	}

	record, err := h.Payroll.Generate(r.Context(), payload.PersonID, personType, payload.Period, periodStart, periodEnd, payload.GrossAmount)
	if err != nil {
		if errors.Is(err, payroll.ErrInvalidPeriod) {
			api.Fail(w, http.StatusBadRequest, "invalid_period", "period end before period start", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "payroll_generate_failed", "failed to generate payroll record", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.Payroll.Record(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		h.failPayroll(w, r, err)
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	approvedBy := "system"
	if user, ok := middleware.GetUser(r.Context()); ok {
		approvedBy = user.Email
	}
	record, err := h.Payroll.Approve(r.Context(), chi.URLParam(r, "recordID"), approvedBy)
	if err != nil {
		h.failPayroll(w, r, err)
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePay(w http.ResponseWriter, r *http.Request) {
	var payload payRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	record, err := h.Payroll.Pay(r.Context(), chi.URLParam(r, "recordID"), payload.PaymentMethod)
	if err != nil {
		h.failPayroll(w, r, err)
		return
	}
	api.Success(w, record, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	recordID := chi.URLParam(r, "recordID")
	payslip, err := h.Payroll.PayslipPDF(r.Context(), recordID)
	if err != nil {
		h.failPayroll(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payslip-%s.pdf", recordID))
	_, _ = w.Write(payslip)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Payroll.Summarize(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "summary_failed", "failed to build payroll summary", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failPayroll(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, payroll.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "payroll record not found", requestID)
	case errors.Is(err, payroll.ErrInvalidMethod):
		api.Fail(w, http.StatusBadRequest, "invalid_method", "unknown payment method", requestID)
	case errors.Is(err, payroll.ErrInvalidTransition):
		api.Fail(w, http.StatusConflict, "invalid_transition", "record is not in the required status", requestID)
	case errors.Is(err, payroll.ErrStaleDeductions):
		api.Fail(w, http.StatusConflict, "stale_deductions", "ledger balances changed since the record was generated", requestID)
	case errors.Is(err, payroll.ErrNotPaid):
		api.Fail(w, http.StatusConflict, "not_paid", "payslips are only available for paid records", requestID)
	case errors.Is(err, ledger.ErrNotFound):
		api.Fail(w, http.StatusConflict, "stale_deductions", "a referenced ledger entry no longer exists", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "payroll_error", "operation failed", requestID)
	}
}

// periodBounds derives the calendar month window for a "YYYY-MM" period.
func periodBounds(period string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 1, -1), nil
}
