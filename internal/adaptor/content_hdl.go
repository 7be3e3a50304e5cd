package adaptor

import (
	"net/http"

	"storefront-api/internal/dto/request"
	"storefront-api/internal/usecase"
	"storefront-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ContentHandler serves the storefront heading and site settings.
type ContentHandler struct {
	service usecase.ContentService
	log     *zap.Logger
}

func NewContentHandler(service usecase.ContentService, log *zap.Logger) *ContentHandler {
	return &ContentHandler{
		service: service,
		log:     log.With(zap.String("handler", "content")),
	}
}

// GetHeadings handles GET /web-heading
func (h *ContentHandler) GetHeadings(w http.ResponseWriter, r *http.Request) {
	headings, err := h.service.GetHeadings(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get headings")
		return
	}

	utils.ResponseSuccess(w, "success", headings)
}

// UpdateHeading handles PATCH /web-heading
func (h *ContentHandler) UpdateHeading(w http.ResponseWriter, r *http.Request) {
	var req request.HeadingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	heading, err := h.service.UpdateHeading(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update heading")
		return
	}

	utils.ResponseSuccess(w, "Heading updated", heading)
}

// GetSettings handles GET /settings
func (h *ContentHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettings(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get settings")
		return
	}

	utils.ResponseSuccess(w, "success", settings)
}

// UpdateSettings handles PATCH /settings/{section}
func (h *ContentHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")

	req := usecase.NewSectionRequest(section)
	if req == nil {
		utils.ResponseNotFound(w, "unknown settings section "+section)
		return
	}
	if err := decodeJSON(r, req); err != nil {
		writeBodyError(w, err)
		return
	}

	settings, err := h.service.UpdateSettings(r.Context(), section, req)
	if err != nil {
		handleServiceError(w, h.log, err, "update settings")
		return
	}

	utils.ResponseSuccess(w, "Settings updated", settings)
}
