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

	"go.uber.org/zap"
)

type CategoryService interface {
	GetCategories(ctx context.Context, demographic string, latest int) ([]response.CategoryResponse, error)
	CreateCategory(ctx context.Context, req *request.CategoryRequest, image storage.File) (*response.CategoryResponse, error)
	UpdateCategory(ctx context.Context, categoryID string, req *request.CategoryUpdateRequest) (*response.CategoryResponse, error)
	DeleteCategory(ctx context.Context, categoryID string) (*response.DeleteResponse, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	images       ImageUploader
	log          *zap.Logger
	now          func() time.Time
}

func NewCategoryService(categoryRepo repository.CategoryRepository, images ImageUploader, log *zap.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		images:       images,
		log:          log.With(zap.String("service", "category")),
		now:          time.Now,
	}
}

func (s *categoryService) GetCategories(ctx context.Context, demographic string, latest int) ([]response.CategoryResponse, error) {
	if latest < 0 {
		return nil, invalid("latest must not be negative")
	}

	categories, err := s.categoryRepo.FindAll(ctx, entity.CategoryFilter{Demographic: strings.TrimSpace(demographic)}, latest)
	if err != nil {
		return nil, upstream("get categories", err)
	}
	return response.CategoriesToResponse(categories), nil
}

func (s *categoryService) CreateCategory(ctx context.Context, req *request.CategoryRequest, image storage.File) (*response.CategoryResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	stored, err := s.images.Save(ctx, image)
	if err != nil {
		s.log.Warn("Category image upload failed", zap.Error(err))
		return nil, uploadError(err)
	}

	category := &entity.Category{
		Base:        entity.NewBase(s.now()),
		Title:       strings.TrimSpace(req.Title),
		Demographic: req.Demographic,
		Route:       req.Route,
		Image:       stored.URL,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		s.images.Remove(stored.Name)
		return nil, upstream("create category", err)
	}

	s.log.Info("Category created", zap.String("category_id", category.ID.String()), zap.String("title", category.Title))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req *request.CategoryUpdateRequest) (*response.CategoryResponse, error) {
	id, err := parseID(categoryID, "category")
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, upstream("get category", err)
	}
	if category == nil {
		return nil, notFound("category")
	}

	if req.Title != nil {
		category.Title = strings.TrimSpace(*req.Title)
	}
	if req.Demographic != nil {
		category.Demographic = *req.Demographic
	}
	if req.Route != nil {
		category.Route = *req.Route
	}
	if req.Image != nil {
		category.Image = *req.Image
	}
	category.UpdatedAt = s.now()

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("category")
		}
		return nil, upstream("update category", err)
	}

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) (*response.DeleteResponse, error) {
	id, err := parseID(categoryID, "category")
	if err != nil {
		return nil, err
	}

	n, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		return nil, upstream("delete category", err)
	}

	s.log.Info("Category deleted", zap.String("category_id", categoryID), zap.Int64("deleted_count", n))
	return &response.DeleteResponse{DeletedCount: n}, nil
}
