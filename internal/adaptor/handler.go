package adaptor

import (
	"storefront-api/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Product  *ProductHandler
	Category *CategoryHandler
	Slider   *SliderHandler
	Content  *ContentHandler
	Order    *OrderHandler
	Report   *ReportHandler
}

// UploadLimits bounds multipart bodies before they are parsed.
type UploadLimits struct {
	MaxFileBytes int64
	MaxFiles     int
}

func (l UploadLimits) bodyLimit(files int) int64 {
	return l.MaxFileBytes*int64(files) + 1<<20
}

func NewHandler(service *usecase.Service, limits UploadLimits, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Product:  NewProductHandler(service.Product, limits, log),
		Category: NewCategoryHandler(service.Category, limits, log),
		Slider:   NewSliderHandler(service.Slider, limits, log),
		Content:  NewContentHandler(service.Content, log),
		Order:    NewOrderHandler(service.Order, log),
		Report:   NewReportHandler(service.Report, log),
	}
}
