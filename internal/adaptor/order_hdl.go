package adaptor

import (
	"net/http"

	"storefront-api/internal/dto/request"
	"storefront-api/internal/usecase"
	"storefront-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// CreateOrder handles POST /order
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req request.OrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), requesterEmail(r), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create order")
		return
	}

	utils.ResponseCreated(w, "Order placed", order)
}

// GetMyOrders handles GET /my-orders
func (h *OrderHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.GetMyOrders(r.Context(), requesterEmail(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get my orders")
		return
	}

	utils.ResponseSuccess(w, "success", orders)
}

// GetOrderByID handles GET /order/{id}
func (h *OrderHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrderByID(r.Context(), requesterEmail(r), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get order")
		return
	}

	utils.ResponseSuccess(w, "success", order)
}

// GetOrders handles GET /orders (admin)
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	list := parseListRequest(r)

	req := &request.OrderListRequest{
		PaginatedRequest: list.PaginatedRequest,
		Status:           query.Get("status"),
		DeliveryEmail:    query.Get("delivery_email"),
		DeliveryPhone:    query.Get("delivery_phone"),
		TransactionID:    query.Get("transaction_id"),
		Q:                query.Get("q"),
	}

	orders, err := h.service.GetOrders(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get orders")
		return
	}

	utils.ResponseSuccess(w, "success", orders)
}

// UpdateOrderStatus handles PATCH /update-order-status/{id}
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req request.OrderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBodyError(w, err)
		return
	}

	order, err := h.service.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update order status")
		return
	}

	utils.ResponseSuccess(w, "Order status updated", order)
}
