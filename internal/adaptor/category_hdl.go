package adaptor

import (
	"net/http"
	"strings"

	"storefront-api/internal/dto/request"
	"storefront-api/internal/usecase"
	"storefront-api/pkg/storage"
	"storefront-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	service usecase.CategoryService
	limits  UploadLimits
	log     *zap.Logger
}

func NewCategoryHandler(service usecase.CategoryService, limits UploadLimits, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		limits:  limits,
		log:     log.With(zap.String("handler", "category")),
	}
}

// GetCategories handles GET /categories
func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	categories, err := h.service.GetCategories(r.Context(), query.Get("demographic"), parseLatest(query.Get("latest")))
	if err != nil {
		handleServiceError(w, h.log, err, "get categories")
		return
	}

	utils.ResponseSuccess(w, "success", categories)
}

// CreateCategory handles POST /categories (multipart: title, demographic, route, image)
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	image, ok := singleImage(w, r, h.limits)
	if !ok {
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := request.CategoryRequest{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Demographic: strings.TrimSpace(r.FormValue("demographic")),
		Route:       strings.TrimSpace(r.FormValue("route")),
	}

	category, err := h.service.CreateCategory(r.Context(), &req, image)
	if err != nil {
		handleServiceError(w, h.log, err, "create category")
		return
	}

	utils.ResponseCreated(w, "Category created", category)
}

// UpdateCategory handles PATCH /category/{id}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req request.CategoryUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update category")
		return
	}

	utils.ResponseSuccess(w, "Category updated", category)
}

// DeleteCategory handles DELETE /category/{id}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.DeleteCategory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "delete category")
		return
	}

	utils.ResponseSuccess(w, "Category deleted", result)
}

// singleImage parses a multipart form holding one "image" file.
// A missing file yields an empty storage.File so the service reports it.
func singleImage(w http.ResponseWriter, r *http.Request, limits UploadLimits) (storage.File, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, limits.bodyLimit(1))
	if err := r.ParseMultipartForm(limits.MaxFileBytes); err != nil {
		writeBodyError(w, err)
		return storage.File{}, false
	}

	files := storage.FromMultipart(r.MultipartForm.File["image"])
	if len(files) == 0 {
		return storage.File{}, true
	}
	return files[0], true
}
