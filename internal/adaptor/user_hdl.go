package adaptor

import (
	"net/http"

	"storefront-api/internal/dto/request"
	"storefront-api/internal/dto/response"
	"storefront-api/internal/usecase"
	"storefront-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// IsAdmin handles GET /is-admin/{email}
func (h *UserHandler) IsAdmin(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	isAdmin, err := h.service.IsAdmin(r.Context(), email)
	if err != nil {
		handleServiceError(w, h.log, err, "check admin")
		return
	}

	utils.ResponseSuccess(w, "success", response.IsAdminResponse{IsAdmin: isAdmin})
}

// MakeAdmin handles PATCH /make-admin
func (h *UserHandler) MakeAdmin(w http.ResponseWriter, r *http.Request) {
	var req request.RoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	if err := h.service.MakeAdmin(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "make admin")
		return
	}

	utils.ResponseSuccess(w, "User promoted to admin", nil)
}

// RemoveAdmin handles PATCH /delete-admin
func (h *UserHandler) RemoveAdmin(w http.ResponseWriter, r *http.Request) {
	var req request.RoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	if err := h.service.RemoveAdmin(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "remove admin")
		return
	}

	utils.ResponseSuccess(w, "Admin role removed", nil)
}

// GetUsers handles GET /users
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	req := parseListRequest(r)

	users, err := h.service.GetAllUsers(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "get users")
		return
	}

	utils.ResponseSuccess(w, "success", users)
}
