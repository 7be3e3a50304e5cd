package adaptor

import (
	"net/http"
	"strconv"
	"strings"

	"storefront-api/internal/dto/request"
	"storefront-api/internal/dto/response"
	"storefront-api/internal/usecase"
	"storefront-api/pkg/storage"
	"storefront-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	service usecase.ProductService
	limits  UploadLimits
	log     *zap.Logger
}

func NewProductHandler(service usecase.ProductService, limits UploadLimits, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		limits:  limits,
		log:     log.With(zap.String("handler", "product")),
	}
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.ProductListRequest{
		ListRequest: parseListRequest(r),
		Demographic: query.Get("demographic"),
		Category:    query.Get("category"),
		Search:      query.Get("search"),
		Fields:      utils.SplitCSV(query.Get("fields")),
	}

	h.list(w, r, req)
}

// Search handles GET /search?q=
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		utils.ResponseBadRequest(w, "query parameter q is required", nil)
		return
	}

	req := &request.ProductListRequest{
		ListRequest: parseListRequest(r),
		Search:      q,
		Fields:      utils.SplitCSV(r.URL.Query().Get("fields")),
	}

	h.list(w, r, req)
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request, req *request.ProductListRequest) {
	products, err := h.service.GetProducts(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get products")
		return
	}

	if len(req.Fields) == 0 {
		utils.ResponseSuccess(w, "success", products)
		return
	}

	projected, err := response.Project(products.Data, req.Fields)
	if err != nil {
		handleServiceError(w, h.log, err, "project products")
		return
	}

	utils.ResponseSuccess(w, "success", response.PaginatedResponse[map[string]any]{
		Data:       projected,
		Pagination: products.Pagination,
	})
}

// GetProductByID handles GET /get-product/{id}
func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProductByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get product")
		return
	}

	utils.ResponseSuccess(w, "success", product)
}

// CreateProduct handles POST /product (multipart: text fields plus images)
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.limits.bodyLimit(h.limits.MaxFiles))
	if err := r.ParseMultipartForm(h.limits.MaxFileBytes); err != nil {
		writeBodyError(w, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	form := r.MultipartForm
	req := request.ProductRequest{
		Title:          strings.TrimSpace(r.FormValue("title")),
		Category:       strings.TrimSpace(r.FormValue("category")),
		Demographic:    strings.TrimSpace(r.FormValue("demographic")),
		Description:    r.FormValue("description"),
		Sizes:          formList(form.Value["sizes"]),
		Colors:         formList(form.Value["colors"]),
		Specifications: formList(form.Value["specifications"]),
	}

	if raw := strings.TrimSpace(r.FormValue("price")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.ResponseBadRequest(w, "validation failed", map[string]string{"price": "price must be a number"})
			return
		}
		req.Price = &price
	}

	product, err := h.service.CreateProduct(r.Context(), &req, storage.FromMultipart(form.File["images"]))
	if err != nil {
		handleServiceError(w, h.log, err, "create product")
		return
	}

	utils.ResponseCreated(w, "Product created", product)
}

// UpdateProduct handles PATCH /product/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req request.ProductUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update product")
		return
	}

	utils.ResponseSuccess(w, "Product updated", product)
}

// DeleteProduct handles DELETE /product/{id}. Deleting a missing product reports deleted_count 0.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "delete product")
		return
	}

	utils.ResponseSuccess(w, "Product deleted", result)
}
