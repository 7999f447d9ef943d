package customershandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gemura/internal/domain/auth"
	"gemura/internal/domain/customer"
	"gemura/internal/transport/http/api"
	"gemura/internal/transport/http/middleware"
	"gemura/internal/transport/http/shared"
)

type Handler struct {
	Customers *customer.Service
}

func NewHandler(service *customer.Service) *Handler {
	return &Handler{Customers: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/customers", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/", h.handleDelete)
			r.Get("/sales", h.handleCustomerSales)
		})
	})
	r.Route("/sales", func(r chi.Router) {
		r.Get("/", h.handleListSales)
		r.Post("/", h.handleRecordSale)
	})
}

type recordSaleRequest struct {
	CustomerID      string  `json:"customerId"`
	Date            string  `json:"date"`
	Quantity        float64 `json:"quantity"`
	PricePerLiter   float64 `json:"pricePerLiter"`
	PaymentMethod   string  `json:"paymentMethod"`
	PaymentStatus   string  `json:"paymentStatus"`
	DeliveryMethod  string  `json:"deliveryMethod"`
	DeliveryAddress string  `json:"deliveryAddress"`
	Notes           string  `json:"notes"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Customers.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "customer_list_failed", "failed to list customers", middleware.GetRequestID(r.Context()))
		return
	}
	page := shared.ParsePagination(r, shared.DefaultPageSize, shared.MaxPageSize)
	api.Success(w, shared.Page(customers, page), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload customer.Customer
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "name is required", middleware.GetRequestID(r.Context()))
		return
	}
	created, err := h.Customers.Create(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "customer_create_failed", "failed to create customer", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	found, err := h.Customers.Get(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		h.failCustomer(w, r, err)
		return
	}
	api.Success(w, found, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var update customer.CustomerUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	updated, err := h.Customers.Update(r.Context(), chi.URLParam(r, "customerID"), update)
	if err != nil {
		h.failCustomer(w, r, err)
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Customers.Delete(r.Context(), chi.URLParam(r, "customerID")); err != nil {
		h.failCustomer(w, r, err)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCustomerSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.Customers.Sales(r.Context(), chi.URLParam(r, "customerID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "sale_list_failed", "failed to list sales", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, sales, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.Customers.Sales(r.Context(), r.URL.Query().Get("customerId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "sale_list_failed", "failed to list sales", middleware.GetRequestID(r.Context()))
		return
	}
	page := shared.ParsePagination(r, shared.DefaultPageSize, shared.MaxPageSize)
	api.Success(w, shared.Page(sales, page), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRecordSale(w http.ResponseWriter, r *http.Request) {
	var payload recordSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	date, err := shared.ParseDate(payload.Date)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "invalid date", middleware.GetRequestID(r.Context()))
		return
	}

	sale, err := h.Customers.RecordSale(r.Context(), customer.MilkSale{
		CustomerID:      payload.CustomerID,
		Date:            date,
		Quantity:        payload.Quantity,
		PricePerLiter:   payload.PricePerLiter,
		PaymentMethod:   payload.PaymentMethod,
		PaymentStatus:   payload.PaymentStatus,
		DeliveryMethod:  payload.DeliveryMethod,
		DeliveryAddress: payload.DeliveryAddress,
		Notes:           payload.Notes,
	})
	if err != nil {
		h.failCustomer(w, r, err)
		return
	}
	api.Created(w, sale, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failCustomer(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, customer.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "customer not found", requestID)
	case errors.Is(err, customer.ErrInvalidSale):
		api.Fail(w, http.StatusBadRequest, "invalid_sale", "quantity and price must be positive", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "customer_error", "operation failed", requestID)
	}
}
