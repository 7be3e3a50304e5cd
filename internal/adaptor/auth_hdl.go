package adaptor

import (
	"net/http"

	"storefront-api/internal/dto/request"
	"storefront-api/internal/usecase"
	"storefront-api/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// UpsertUser handles PUT /user. It creates or refreshes the profile and returns a fresh token.
func (h *AuthHandler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	var req request.UpsertUserRequest

	if err := decodeJSON(r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	response, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "upsert user")
		return
	}

	utils.ResponseSuccess(w, "User saved", response)
}
