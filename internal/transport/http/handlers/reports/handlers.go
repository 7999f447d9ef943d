package reportshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gemura/internal/domain/reports"
	"gemura/internal/transport/http/api"
	"gemura/internal/transport/http/middleware"
)

type Handler struct {
	Reports *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Reports: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.handleDashboard)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.Reports.Dashboard(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to build dashboard", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, dashboard, middleware.GetRequestID(r.Context()))
}
