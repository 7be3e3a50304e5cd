package adaptor

import (
	"net/http"
	"strings"

	"storefront-api/internal/dto/request"
	"storefront-api/internal/usecase"
	"storefront-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SliderHandler struct {
	service usecase.SliderService
	limits  UploadLimits
	log     *zap.Logger
}

func NewSliderHandler(service usecase.SliderService, limits UploadLimits, log *zap.Logger) *SliderHandler {
	return &SliderHandler{
		service: service,
		limits:  limits,
		log:     log.With(zap.String("handler", "slider")),
	}
}

// GetSliders handles GET /sliders
func (h *SliderHandler) GetSliders(w http.ResponseWriter, r *http.Request) {
	sliders, err := h.service.GetSliders(r.Context(), parseLatest(r.URL.Query().Get("latest")))
	if err != nil {
		handleServiceError(w, h.log, err, "get sliders")
		return
	}

	utils.ResponseSuccess(w, "success", sliders)
}

// CreateSlider handles POST /sliders
func (h *SliderHandler) CreateSlider(w http.ResponseWriter, r *http.Request) {
	image, ok := singleImage(w, r, h.limits)
	if !ok {
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := request.SliderRequest{Title: strings.TrimSpace(r.FormValue("title"))}

	slider, err := h.service.CreateSlider(r.Context(), &req, image)
	if err != nil {
		handleServiceError(w, h.log, err, "create slider")
		return
	}

	utils.ResponseCreated(w, "Slider created", slider)
}

// UpdateSlider handles PATCH /slider/{id}
func (h *SliderHandler) UpdateSlider(w http.ResponseWriter, r *http.Request) {
	var req request.SliderUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	slider, err := h.service.UpdateSlider(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update slider")
		return
	}

	utils.ResponseSuccess(w, "Slider updated", slider)
}

// DeleteSlider handles DELETE /slider/{id}
func (h *SliderHandler) DeleteSlider(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.DeleteSlider(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "delete slider")
		return
	}

	utils.ResponseSuccess(w, "Slider deleted", result)
}
