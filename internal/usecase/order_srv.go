package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-api/internal/data/entity"
	"storefront-api/internal/data/repository"
	"storefront-api/internal/dto/request"
	"storefront-api/internal/dto/response"
	"storefront-api/pkg/events"
	"storefront-api/pkg/utils"

	"go.uber.org/zap"
)

type OrderService interface {
	CreateOrder(ctx context.Context, requester string, req *request.OrderRequest) (*response.OrderResponse, error)
	GetMyOrders(ctx context.Context, requester string) ([]response.OrderResponse, error)
	GetOrderByID(ctx context.Context, requester, orderID string) (*response.OrderResponse, error)
	GetOrders(ctx context.Context, req *request.OrderListRequest) (*response.PaginatedResponse[response.OrderResponse], error)
	UpdateOrderStatus(ctx context.Context, orderID string, req *request.OrderStatusRequest) (*response.OrderResponse, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	users     UserService
	events    events.Publisher
	producer  string
	log       *zap.Logger
	now       func() time.Time
}

func NewOrderService(orderRepo repository.OrderRepository, users UserService, publisher events.Publisher, producer string, log *zap.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		users:     users,
		events:    publisher,
		producer:  producer,
		log:       log.With(zap.String("service", "order")),
		now:       time.Now,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, requester string, req *request.OrderRequest) (*response.OrderResponse, error) {
	if requester == "" {
		return nil, ErrUnauthorized
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	deliveryEmail := strings.TrimSpace(req.Delivery.Email)
	if deliveryEmail == "" {
		deliveryEmail = requester
	}
	if !strings.EqualFold(deliveryEmail, requester) {
		return nil, fmt.Errorf("delivery email must match the signed-in email: %w", ErrForbidden)
	}

	items := make([]entity.OrderItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = entity.OrderItem{
			ProductID: it.ProductID,
			Image:     it.Image,
			Title:     strings.TrimSpace(it.Title),
			Quantity:  it.Quantity,
			Price:     utils.RoundMoney(it.Price),
		}
	}

	now := s.now()
	order := &entity.Order{
		ID:    utils.GenerateUUID(),
		Items: items,
		Delivery: entity.Delivery{
			Name:    strings.TrimSpace(req.Delivery.Name),
			Email:   requester,
			Phone:   strings.TrimSpace(req.Delivery.Phone),
			Address: strings.TrimSpace(req.Delivery.Address),
		},
		Payment: entity.Payment{
			TransactionID: strings.TrimSpace(req.Payment.TransactionID),
			Method:        strings.TrimSpace(req.Payment.Method),
		},
		Status:    entity.OrderStatusPlaced,
		Total:     utils.RoundMoney(*req.Total),
		PlacedAt:  now,
		UpdatedAt: now,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, upstream("create order", err)
	}

	s.log.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("email", requester),
		zap.Int("items", len(items)),
		zap.Float64("total", order.Total),
	)

	s.publish(ctx, events.EventOrderCreated, order.ID.String(), events.OrderCreatedPayload{
		OrderID:       order.ID.String(),
		DeliveryEmail: order.Delivery.Email,
		ItemCount:     len(order.Items),
		Total:         order.Total,
		TransactionID: order.Payment.TransactionID,
	})

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) GetMyOrders(ctx context.Context, requester string) ([]response.OrderResponse, error) {
	if requester == "" {
		return nil, ErrUnauthorized
	}

	orders, err := s.orderRepo.FindAll(ctx, entity.OrderFilter{DeliveryEmail: requester}, 0, 0)
	if err != nil {
		return nil, upstream("get my orders", err)
	}
	return response.OrdersToResponse(orders), nil
}

// GetOrderByID is visible to the order owner and to admins.
func (s *orderService) GetOrderByID(ctx context.Context, requester, orderID string) (*response.OrderResponse, error) {
	id, err := parseID(orderID, "order")
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, upstream("get order", err)
	}
	if order == nil {
		return nil, notFound("order")
	}

	if !strings.EqualFold(order.Delivery.Email, requester) {
		isAdmin, err := s.users.IsAdmin(ctx, requester)
		if err != nil {
			return nil, err
		}
		if !isAdmin {
			return nil, ErrForbidden
		}
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) GetOrders(ctx context.Context, req *request.OrderListRequest) (*response.PaginatedResponse[response.OrderResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	filter := entity.OrderFilter{
		DeliveryEmail: strings.TrimSpace(req.DeliveryEmail),
		DeliveryPhone: strings.TrimSpace(req.DeliveryPhone),
		TransactionID: strings.TrimSpace(req.TransactionID),
		Query:         strings.TrimSpace(req.Q),
	}
	if req.Status != "" {
		status, ok := entity.ParseOrderStatus(req.Status)
		if !ok {
			return nil, invalid("unknown order status %q", req.Status)
		}
		filter.Status = &status
	}

	orders, err := s.orderRepo.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, upstream("get orders", err)
	}

	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, upstream("count orders", err)
	}

	return response.NewPaginatedResponse(response.OrdersToResponse(orders), req.Page, req.Limit(), total), nil
}

// UpdateOrderStatus moves an order along the lifecycle. Illegal jumps are rejected before any write.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID string, req *request.OrderStatusRequest) (*response.OrderResponse, error) {
	id, err := parseID(orderID, "order")
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	next, ok := entity.ParseOrderStatus(req.Status)
	if !ok {
		return nil, invalid("unknown order status %q", req.Status)
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, upstream("get order", err)
	}
	if order == nil {
		return nil, notFound("order")
	}

	prev := order.Status
	if prev.IsTerminal() {
		return nil, invalid("order is already %s", prev)
	}
	if !entity.CanTransition(prev, next) {
		return nil, invalid("cannot move order from %s to %s", prev, next)
	}

	at := s.now()
	if err := s.orderRepo.UpdateStatus(ctx, id, prev, next, at); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, notFound("order")
		case errors.Is(err, repository.ErrStaleStatus):
			return nil, ErrConflict
		}
		return nil, upstream("update order status", err)
	}
	order.Status = next
	order.UpdatedAt = at

	s.log.Info("Order status changed",
		zap.String("order_id", orderID),
		zap.String("from", string(prev)),
		zap.String("to", string(next)),
	)

	s.publish(ctx, events.EventOrderStatusChanged, orderID, events.OrderStatusChangedPayload{
		OrderID: orderID,
		From:    string(prev),
		To:      string(next),
	})

	resp := response.OrderToResponse(order)
	return &resp, nil
}

// publish never fails the caller; the order is already written.
func (s *orderService) publish(ctx context.Context, eventType, orderID string, payload any) {
	env, err := events.NewEnvelope(s.producer, eventType, orderID, payload)
	if err == nil {
		err = s.events.Publish(ctx, env)
	}
	if err != nil {
		s.log.Warn("Failed to publish order event",
			zap.String("event_type", eventType),
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}
}
