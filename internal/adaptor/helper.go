package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"storefront-api/internal/dto/request"
	"storefront-api/internal/usecase"
	"storefront-api/pkg/utils"

	"go.uber.org/zap"
)

// retryAfterSeconds is the hint sent with 503 responses.
const retryAfterSeconds = 5

// handleServiceError maps service errors to status codes
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var verr *usecase.ValidationError

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn(operation+" timed out", zap.Error(err))
		utils.ResponseTimeout(w, "request timed out, try again", retryAfterSeconds)

	case errors.As(err, &verr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, verr.Message, verr.Fields)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrUnauthorized):
		utils.ResponseUnauthorized(w, "authorization required")

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" conflict", zap.Error(err))
		utils.ResponseConflict(w, "resource changed concurrently, reload and retry")

	case errors.Is(err, usecase.ErrUpstream):
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseUpstreamError(w, "store unavailable")

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "internal server error")
	}
}

// decodeJSON rejects unknown fields and trailing data.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	if dec.More() {
		return errors.New("request body must hold a single JSON object")
	}
	return nil
}

// writeBodyError answers a body that could not be read or parsed.
func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		utils.ResponseTooLarge(w, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return
	}
	utils.ResponseBadRequest(w, "invalid request body", err.Error())
}

func requesterEmail(r *http.Request) string {
	email, _ := utils.GetEmailFromContext(r.Context())
	return email
}

// parseListRequest reads latest, page and per_page. Non-numeric values fall back to defaults.
func parseListRequest(r *http.Request) request.ListRequest {
	query := r.URL.Query()
	return request.ListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		Latest: parseLatest(query.Get("latest")),
	}
}

// parseLatest keeps negative values so the service can reject them.
func parseLatest(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// formList accepts repeated keys as well as one comma separated value.
func formList(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, utils.SplitCSV(v)...)
	}
	return out
}
