package inventoryhandler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gemura/internal/domain/auth"
	"gemura/internal/domain/inventory"
	"gemura/internal/transport/http/api"
	"gemura/internal/transport/http/middleware"
	"gemura/internal/transport/http/shared"
)

type Handler struct {
	Inventory *inventory.Service
}

func NewHandler(service *inventory.Service) *Handler {
	return &Handler{Inventory: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/inventory", func(r chi.Router) {
		r.Get("/movements", h.handleMovements)
		r.Get("/stats", h.handleStats)
		r.Get("/categories", h.handleCategories)
		r.Get("/export", h.handleExport)
		r.Post("/import", h.handleImport)
		r.Route("/items", func(r chi.Router) {
			r.Get("/", h.handleListItems)
			r.Post("/", h.handleCreateItem)
			r.Route("/{itemID}", func(r chi.Router) {
				r.Get("/", h.handleGetItem)
				r.Put("/", h.handleUpdateItem)
				r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/", h.handleDeleteItem)
				r.Post("/adjust", h.handleAdjust)
			})
		})
	})
}

func (h *Handler) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Inventory.Items(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "item_list_failed", "failed to list items", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var payload inventory.Item
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Name == "" || payload.SKU == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "name and sku are required", middleware.GetRequestID(r.Context()))
		return
	}
	created, err := h.Inventory.AddItem(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "item_create_failed", "failed to create item", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Inventory.Item(r.Context(), chi.URLParam(r, "itemID"))
	if err != nil {
		h.failInventory(w, r, err)
		return
	}
	api.Success(w, item, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var update inventory.ItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	item, err := h.Inventory.UpdateItem(r.Context(), chi.URLParam(r, "itemID"), update)
	if err != nil {
		h.failInventory(w, r, err)
		return
	}
	api.Success(w, item, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Inventory.RemoveItem(r.Context(), chi.URLParam(r, "itemID")); err != nil {
		h.failInventory(w, r, err)
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAdjust(w http.ResponseWriter, r *http.Request) {
	var adjustment inventory.Adjustment
	if err := json.NewDecoder(r.Body).Decode(&adjustment); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	performedBy := "system"
	if user, ok := middleware.GetUser(r.Context()); ok {
		performedBy = user.Email
	}
	movement, err := h.Inventory.AdjustStock(r.Context(), chi.URLParam(r, "itemID"), adjustment, performedBy)
	if err != nil {
		h.failInventory(w, r, err)
		return
	}
	api.Success(w, movement, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMovements(w http.ResponseWriter, r *http.Request) {
	movements, err := h.Inventory.Movements(r.Context(), r.URL.Query().Get("itemId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "movement_list_failed", "failed to list movements", middleware.GetRequestID(r.Context()))
		return
	}
	page := shared.ParsePagination(r, shared.DefaultPageSize, shared.MaxPageSize)
	api.Success(w, shared.Page(movements, page), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Inventory.Stats(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "stats_failed", "failed to compute stats", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, stats, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Inventory.Categories(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "category_list_failed", "failed to list categories", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, categories, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	payload, err := h.Inventory.ExportCSV(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to export inventory", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=inventory.csv")
	_, _ = w.Write(payload)
}

// Import accepts either a multipart upload under "file" or a raw CSV body.
func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	var reader io.Reader = r.Body
	if err := r.ParseMultipartForm(8 << 20); err == nil {
		file, _, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			reader = file
		}
	}

	result, err := h.Inventory.ImportCSV(r.Context(), reader)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "import_failed", "failed to parse csv", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failInventory(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "inventory item not found", requestID)
	case errors.Is(err, inventory.ErrInvalidMovementType):
		api.Fail(w, http.StatusBadRequest, "invalid_movement", "movement type must be IN, OUT or ADJUSTMENT", requestID)
	case errors.Is(err, inventory.ErrInvalidQuantity):
		api.Fail(w, http.StatusBadRequest, "invalid_quantity", "quantity must not be negative", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "inventory_error", "operation failed", requestID)
	}
}
