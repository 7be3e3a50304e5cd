package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront-api/internal/data/entity"
	"storefront-api/internal/data/repository"
	"storefront-api/internal/dto/request"
	"storefront-api/internal/dto/response"
	"storefront-api/pkg/storage"
	"storefront-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductService interface {
	GetProducts(ctx context.Context, req *request.ProductListRequest) (*response.PaginatedResponse[response.ProductResponse], error)
	GetProductByID(ctx context.Context, productID string) (*response.ProductResponse, error)
	CreateProduct(ctx context.Context, req *request.ProductRequest, images []storage.File) (*response.ProductResponse, error)
	UpdateProduct(ctx context.Context, productID string, req *request.ProductUpdateRequest) (*response.ProductResponse, error)
	DeleteProduct(ctx context.Context, productID string) (*response.DeleteResponse, error)
}

type productService struct {
	productRepo repository.ProductRepository
	images      ImageUploader
	log         *zap.Logger
	now         func() time.Time
}

func NewProductService(productRepo repository.ProductRepository, images ImageUploader, log *zap.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		images:      images,
		log:         log.With(zap.String("service", "product")),
		now:         time.Now,
	}
}

// parseID rejects malformed ids before they reach the store.
func parseID(raw, what string) (uuid.UUID, error) {
	id, err := utils.ParseUUID(raw)
	if err != nil {
		return uuid.Nil, invalid("invalid %s id", what)
	}
	return id, nil
}

func (s *productService) GetProducts(ctx context.Context, req *request.ProductListRequest) (*response.PaginatedResponse[response.ProductResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if err := response.ValidateFields(req.Fields, response.ProductFields); err != nil {
		return nil, invalid("%s", err.Error())
	}

	filter := entity.ProductFilter{
		Demographic: strings.TrimSpace(req.Demographic),
		Category:    strings.TrimSpace(req.Category),
		Search:      strings.TrimSpace(req.Search),
	}

	limit, offset, page := req.Limit(), req.Offset(), req.Page
	if req.Latest > 0 {
		limit, offset, page = req.Latest, 0, 1
	}

	products, err := s.productRepo.FindAll(ctx, filter, limit, offset)
	if err != nil {
		s.log.Error("Failed to get products",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, upstream("get products", err)
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, upstream("count products", err)
	}

	s.log.Debug("Products retrieved",
		zap.Int("count", len(products)),
		zap.Int64("total", total),
		zap.String("search", filter.Search),
	)

	return response.NewPaginatedResponse(response.ProductsToResponse(products), page, limit, total), nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*response.ProductResponse, error) {
	id, err := parseID(productID, "product")
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, upstream("get product", err)
	}
	if product == nil {
		return nil, notFound("product")
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

// CreateProduct uploads the gallery first and inserts only when every image was stored.
func (s *productService) CreateProduct(ctx context.Context, req *request.ProductRequest, images []storage.File) (*response.ProductResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create product validation failed", zap.Error(err))
		return nil, err
	}

	stored, err := s.images.SaveAll(ctx, images)
	if err != nil {
		s.log.Warn("Product gallery upload failed", zap.Error(err), zap.Int("files", len(images)))
		return nil, uploadError(err)
	}

	urls := make([]string, len(stored))
	names := make([]string, len(stored))
	for i, st := range stored {
		urls[i] = st.URL
		names[i] = st.Name
	}

	product := &entity.Product{
		Base:           entity.NewBase(s.now()),
		Title:          strings.TrimSpace(req.Title),
		Price:          utils.RoundMoney(*req.Price),
		Images:         urls,
		Category:       req.Category,
		Demographic:    req.Demographic,
		Description:    req.Description,
		Sizes:          req.Sizes,
		Colors:         req.Colors,
		Specifications: req.Specifications,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.images.Remove(names...)
		return nil, upstream("create product", err)
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("title", product.Title),
		zap.Int("images", len(urls)),
	)

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req *request.ProductUpdateRequest) (*response.ProductResponse, error) {
	id, err := parseID(productID, "product")
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, upstream("get product", err)
	}
	if product == nil {
		return nil, notFound("product")
	}

	if req.Title != nil {
		product.Title = strings.TrimSpace(*req.Title)
	}
	if req.Price != nil {
		product.Price = utils.RoundMoney(*req.Price)
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Demographic != nil {
		product.Demographic = *req.Demographic
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.Sizes != nil {
		product.Sizes = *req.Sizes
	}
	if req.Colors != nil {
		product.Colors = *req.Colors
	}
	if req.Specifications != nil {
		product.Specifications = *req.Specifications
	}
	product.UpdatedAt = s.now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("product")
		}
		return nil, upstream("update product", err)
	}

	s.log.Info("Product updated", zap.String("product_id", productID))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) (*response.DeleteResponse, error) {
	id, err := parseID(productID, "product")
	if err != nil {
		return nil, err
	}

	n, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return nil, upstream("delete product", err)
	}

	s.log.Info("Product deleted", zap.String("product_id", productID), zap.Int64("deleted_count", n))
	return &response.DeleteResponse{DeletedCount: n}, nil
}
