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

type SliderService interface {
	GetSliders(ctx context.Context, latest int) ([]response.SliderResponse, error)
	CreateSlider(ctx context.Context, req *request.SliderRequest, image storage.File) (*response.SliderResponse, error)
	UpdateSlider(ctx context.Context, sliderID string, req *request.SliderUpdateRequest) (*response.SliderResponse, error)
	DeleteSlider(ctx context.Context, sliderID string) (*response.DeleteResponse, error)
}

type sliderService struct {
	sliderRepo repository.SliderRepository
	images     ImageUploader
	log        *zap.Logger
	now        func() time.Time
}

func NewSliderService(sliderRepo repository.SliderRepository, images ImageUploader, log *zap.Logger) SliderService {
	return &sliderService{
		sliderRepo: sliderRepo,
		images:     images,
		log:        log.With(zap.String("service", "slider")),
		now:        time.Now,
	}
}

func (s *sliderService) GetSliders(ctx context.Context, latest int) ([]response.SliderResponse, error) {
	if latest < 0 {
		return nil, invalid("latest must not be negative")
	}

	sliders, err := s.sliderRepo.FindAll(ctx, latest)
	if err != nil {
		return nil, upstream("get sliders", err)
	}
	return response.SlidersToResponse(sliders), nil
}

func (s *sliderService) CreateSlider(ctx context.Context, req *request.SliderRequest, image storage.File) (*response.SliderResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	stored, err := s.images.Save(ctx, image)
	if err != nil {
		s.log.Warn("Slider image upload failed", zap.Error(err))
		return nil, uploadError(err)
	}

	slider := &entity.Slider{
		Base:  entity.NewBase(s.now()),
		Title: strings.TrimSpace(req.Title),
		Image: stored.URL,
	}

	if err := s.sliderRepo.Create(ctx, slider); err != nil {
		s.images.Remove(stored.Name)
		return nil, upstream("create slider", err)
	}

	s.log.Info("Slider created", zap.String("slider_id", slider.ID.String()))

	resp := response.SliderToResponse(slider)
	return &resp, nil
}

func (s *sliderService) UpdateSlider(ctx context.Context, sliderID string, req *request.SliderUpdateRequest) (*response.SliderResponse, error) {
	id, err := parseID(sliderID, "slider")
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	slider, err := s.sliderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, upstream("get slider", err)
	}
	if slider == nil {
		return nil, notFound("slider")
	}

	if req.Title != nil {
		slider.Title = strings.TrimSpace(*req.Title)
	}
	if req.Image != nil {
		slider.Image = *req.Image
	}
	slider.UpdatedAt = s.now()

	if err := s.sliderRepo.Update(ctx, slider); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("slider")
		}
		return nil, upstream("update slider", err)
	}

	resp := response.SliderToResponse(slider)
	return &resp, nil
}

func (s *sliderService) DeleteSlider(ctx context.Context, sliderID string) (*response.DeleteResponse, error) {
	id, err := parseID(sliderID, "slider")
	if err != nil {
		return nil, err
	}

	n, err := s.sliderRepo.Delete(ctx, id)
	if err != nil {
		return nil, upstream("delete slider", err)
	}

	s.log.Info("Slider deleted", zap.String("slider_id", sliderID), zap.Int64("deleted_count", n))
	return &response.DeleteResponse{DeletedCount: n}, nil
}
