package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gemura/internal/domain/auth"
	"gemura/internal/transport/http/api"
	"gemura/internal/transport/http/middleware"
)

type Handler struct {
	Auth            *auth.Service
	AllowSelfSignup bool
}

func NewHandler(service *auth.Service, allowSelfSignup bool) *Handler {
	return &Handler{Auth: service, AllowSelfSignup: allowSelfSignup}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
	r.Get("/me", h.handleMe)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is open only for the first account (bootstrap) or when
// self-signup is enabled; otherwise an admin token is required.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Email == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "email and password are required", middleware.GetRequestID(r.Context()))
		return
	}

	hasUsers, err := h.Auth.HasUsers(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to register user", middleware.GetRequestID(r.Context()))
		return
	}

	role := payload.Role
	if role == "" {
		role = auth.RoleStaff
	}
	if !hasUsers {
		role = auth.RoleAdmin
	} else if !h.AllowSelfSignup {
		user, ok := middleware.GetUser(r.Context())
		if !ok || user.Role != auth.RoleAdmin {
			api.Fail(w, http.StatusForbidden, "forbidden", "only admins can register users", middleware.GetRequestID(r.Context()))
			return
		}
	}

	created, err := h.Auth.Register(r.Context(), payload.Name, payload.Email, payload.Password, role)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			api.Fail(w, http.StatusConflict, "email_taken", "email already registered", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "register_failed", "failed to register user", middleware.GetRequestID(r.Context()))
		return
	}

	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	user, token, err := h.Auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to log in", middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{"token": token, "user": user}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{
		"id":    user.UserID,
		"email": user.Email,
		"role":  user.Role,
	}, middleware.GetRequestID(r.Context()))
}
