package usecase

import (
	"context"
	"time"

	"storefront-api/internal/data/repository"
	"storefront-api/pkg/cache"
	"storefront-api/pkg/events"
	"storefront-api/pkg/storage"
	"storefront-api/pkg/utils"

	"go.uber.org/zap"
)

// TokenIssuer signs and checks email-bound credentials.
type TokenIssuer interface {
	Issue(email string) (string, time.Time, error)
	Verify(token string) (string, error)
}

// ImageUploader persists uploaded images and hands back public URLs.
type ImageUploader interface {
	Save(ctx context.Context, f storage.File) (storage.Stored, error)
	SaveAll(ctx context.Context, files []storage.File) ([]storage.Stored, error)
	Remove(names ...string)
}

// Deps are the collaborators services need besides the repositories.
type Deps struct {
	Tokens TokenIssuer
	Images ImageUploader
	Cache  cache.Cache
	Events events.Publisher
}

type Service struct {
	Auth     AuthService
	User     UserService
	Product  ProductService
	Category CategoryService
	Slider   SliderService
	Content  ContentService
	Order    OrderService
	Report   ReportService
}

func NewService(repo *repository.Repository, deps Deps, config *utils.Config, log *zap.Logger) *Service {
	if deps.Cache == nil {
		deps.Cache = cache.NewMemoryCache()
	}
	if deps.Events == nil {
		deps.Events = events.NopPublisher{}
	}

	user := NewUserService(repo.User, deps.Cache, config.Redis.RoleTTL, log)

	return &Service{
		Auth:     NewAuthService(repo.User, deps.Tokens, log),
		User:     user,
		Product:  NewProductService(repo.Product, deps.Images, log),
		Category: NewCategoryService(repo.Category, deps.Images, log),
		Slider:   NewSliderService(repo.Slider, deps.Images, log),
		Content:  NewContentService(repo.Heading, repo.Setting, log),
		Order:    NewOrderService(repo.Order, user, deps.Events, config.App.Name, log),
		Report:   NewReportService(repo, deps.Cache, config.Report, log),
	}
}
