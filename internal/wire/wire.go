// internal/wire/wire.go
package wire

import (
	"context"
	"net/http"
	"time"

	"storefront-api/internal/adaptor"
	"storefront-api/internal/data/repository"
	"storefront-api/internal/usecase"
	"storefront-api/pkg/middleware"
	"storefront-api/pkg/storage"
	"storefront-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the assembled router and services
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// gates are the per-route access stages
type gates struct {
	auth  func(http.Handler) http.Handler
	admin func(http.Handler) http.Handler
}

// Wiring builds services, handlers and routes
func Wiring(repo *repository.Repository, deps usecase.Deps, images *storage.ImageStore, config *utils.Config, logger *zap.Logger) *App {
	deps.Images = images

	service := usecase.NewService(repo, deps, config, logger)
	handler := adaptor.NewHandler(service, adaptor.UploadLimits{
		MaxFileBytes: int64(config.Upload.MaxMB) << 20,
		MaxFiles:     config.Upload.MaxFiles,
	}, logger)

	router := setupRouter(handler, service, repo, images, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	repo *repository.Repository,
	images *storage.ImageStore,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))
	if config.App.RequestTimeout > 0 {
		r.Use(chimw.Timeout(config.App.RequestTimeout))
	}

	g := gates{
		auth:  middleware.VerifyToken(service.Auth, logger),
		admin: middleware.Admin(service.User, logger),
	}

	wireUser(r, handler.Auth, handler.User, g)
	wireProduct(r, handler.Product, g)
	wireCategory(r, handler.Category, g)
	wireSlider(r, handler.Slider, g)
	wireContent(r, handler.Content, g)
	wireOrder(r, handler.Order, g)
	wireReport(r, handler.Report, g)

	// Uploaded images
	r.Handle(images.PublicPath()+"/*", images.Handler())

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := repo.Ping(ctx); err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			utils.ResponseTimeout(w, "store unavailable", 5)
			return
		}
		utils.ResponseSuccess(w, "OK", nil)
	})

	return r
}
