package adaptor

import (
	"net/http"

	"storefront-api/internal/usecase"
	"storefront-api/pkg/utils"

	"go.uber.org/zap"
)

type ReportHandler struct {
	service usecase.ReportService
	log     *zap.Logger
}

func NewReportHandler(service usecase.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log.With(zap.String("handler", "report")),
	}
}

// GetReport handles GET /report
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GetReport(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get report")
		return
	}

	utils.ResponseSuccess(w, "success", report)
}
