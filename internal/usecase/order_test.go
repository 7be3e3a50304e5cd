package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"storefront-api/internal/data/entity"
	"storefront-api/internal/data/repository"
	"storefront-api/internal/dto/request"
	"storefront-api/pkg/cache"
	"storefront-api/pkg/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func orderRequest(email string) *request.OrderRequest {
	return &request.OrderRequest{
		Items: []request.OrderItemRequest{
			{Title: "Summer Dress", Quantity: 2, Price: 19.99},
		},
		Delivery: request.DeliveryRequest{
			Name:    "Alice",
			Email:   email,
			Phone:   "555-0100",
			Address: "1 Main St",
		},
		Payment: request.PaymentRequest{TransactionID: "pi_123", Method: "card"},
		Total:   ptr(39.98),
	}
}

func placeOrder(t *testing.T, f *fixture, email string) string {
	t.Helper()
	order, err := f.svc.Order.CreateOrder(context.Background(), email, orderRequest(""))
	if err != nil {
		t.Fatalf("place order for %s: %v", email, err)
	}
	return order.ID
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.svc.Order.CreateOrder(ctx, "alice@example.com", orderRequest(""))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.Status != entity.OrderStatusPlaced {
		t.Fatalf("status = %s, want placed", order.Status)
	}
	if order.Delivery.Email != "alice@example.com" {
		t.Fatalf("delivery email = %q, want requester", order.Delivery.Email)
	}

	evts := f.events.Events()
	if len(evts) != 1 || evts[0].EventType != events.EventOrderCreated || evts[0].CorrelationID != order.ID {
		t.Fatalf("events = %+v", evts)
	}
	var payload events.OrderCreatedPayload
	if err := json.Unmarshal(evts[0].Payload, &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload.Total != 39.98 || payload.ItemCount != 1 {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestCreateOrderRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Order.CreateOrder(ctx, "alice@example.com", orderRequest("mallory@example.com")); !errors.Is(err, ErrForbidden) {
		t.Fatalf("foreign delivery email err = %v, want ErrForbidden", err)
	}

	empty := orderRequest("")
	empty.Items = nil
	if _, err := f.svc.Order.CreateOrder(ctx, "alice@example.com", empty); !errors.Is(err, ErrValidation) {
		t.Fatalf("no items err = %v, want ErrValidation", err)
	}

	zeroQty := orderRequest("")
	zeroQty.Items[0].Quantity = 0
	if _, err := f.svc.Order.CreateOrder(ctx, "alice@example.com", zeroQty); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero quantity err = %v, want ErrValidation", err)
	}

	huge := orderRequest("")
	huge.Total = ptr(1e10)
	if _, err := f.svc.Order.CreateOrder(ctx, "alice@example.com", huge); !errors.Is(err, ErrValidation) {
		t.Fatalf("overflowing total err = %v, want ErrValidation", err)
	}

	if _, err := f.svc.Order.CreateOrder(ctx, "", orderRequest("")); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("anonymous err = %v, want ErrUnauthorized", err)
	}

	if n, _ := f.repo.Order.Count(ctx, entity.OrderFilter{}); n != 0 {
		t.Fatalf("orders = %d, want 0", n)
	}
}

func TestCreateOrderRoundsAmounts(t *testing.T) {
	f := newFixture(t)

	req := orderRequest("")
	req.Items[0].Price = 19.999
	req.Total = ptr(39.998)
	order, err := f.svc.Order.CreateOrder(context.Background(), "alice@example.com", req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.Total != 40 || order.Items[0].Price != 20 {
		t.Fatalf("total = %v item price = %v, want cents", order.Total, order.Items[0].Price)
	}
}

func TestPublishFailureKeepsOrder(t *testing.T) {
	f := newFixture(t)
	f.events.Err = errors.New("broker down")

	if _, err := f.svc.Order.CreateOrder(context.Background(), "alice@example.com", orderRequest("")); err != nil {
		t.Fatalf("create with failing publisher: %v", err)
	}
	if n, _ := f.repo.Order.Count(context.Background(), entity.OrderFilter{}); n != 1 {
		t.Fatalf("orders = %d, want 1", n)
	}
}

func TestMyOrdersAreScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	placeOrder(t, f, "alice@example.com")
	placeOrder(t, f, "alice@example.com")
	placeOrder(t, f, "bob@example.com")

	mine, err := f.svc.Order.GetMyOrders(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("my orders: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("alice sees %d orders, want 2", len(mine))
	}
	for _, o := range mine {
		if o.Delivery.Email != "alice@example.com" {
			t.Fatalf("foreign order leaked: %+v", o)
		}
	}
}

func TestGetOrderByIDOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := placeOrder(t, f, "alice@example.com")

	if _, err := f.svc.Order.GetOrderByID(ctx, "alice@example.com", id); err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if _, err := f.svc.Order.GetOrderByID(ctx, "bob@example.com", id); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger err = %v, want ErrForbidden", err)
	}

	f.login(t, "admin@example.com")
	if err := f.svc.User.MakeAdmin(ctx, &request.RoleRequest{Email: "admin@example.com"}); err != nil {
		t.Fatalf("make admin: %v", err)
	}
	if _, err := f.svc.Order.GetOrderByID(ctx, "admin@example.com", id); err != nil {
		t.Fatalf("admin read: %v", err)
	}
}

func TestOrderStatusLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := placeOrder(t, f, "alice@example.com")

	move := func(status string) error {
		_, err := f.svc.Order.UpdateOrderStatus(ctx, id, &request.OrderStatusRequest{Status: status})
		return err
	}

	if err := move("Delivered"); !errors.Is(err, ErrValidation) {
		t.Fatalf("placed -> Delivered err = %v, want ErrValidation", err)
	}
	if err := move("teleported"); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown status err = %v, want ErrValidation", err)
	}

	for _, step := range []string{"processing", "SHIPPED", "delivered"} {
		if err := move(step); err != nil {
			t.Fatalf("move to %s: %v", step, err)
		}
	}

	order, err := f.svc.Order.GetOrderByID(ctx, "alice@example.com", id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if order.Status != entity.OrderStatusDelivered {
		t.Fatalf("status = %q, want Delivered", order.Status)
	}

	if err := move("placed"); !errors.Is(err, ErrValidation) {
		t.Fatalf("Delivered -> placed err = %v, want ErrValidation", err)
	}

	evts := f.events.Events()
	if len(evts) != 4 {
		t.Fatalf("events = %d, want created + 3 status changes", len(evts))
	}
	var last events.OrderStatusChangedPayload
	if err := json.Unmarshal(evts[3].Payload, &last); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if last.From != "shipped" || last.To != "Delivered" {
		t.Fatalf("last transition = %+v", last)
	}

	if _, err := f.svc.Order.UpdateOrderStatus(ctx, "7d3c2a7e-3f0e-4f43-9c1b-6b7f0f6f4b11", &request.OrderStatusRequest{Status: "processing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing order err = %v, want ErrNotFound", err)
	}
}

func TestGetOrdersFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := placeOrder(t, f, "alice@example.com")
	placeOrder(t, f, "bob@example.com")

	if _, err := f.svc.Order.UpdateOrderStatus(ctx, first, &request.OrderStatusRequest{Status: "processing"}); err != nil {
		t.Fatalf("move: %v", err)
	}

	page := request.PaginatedRequest{Page: 1, PerPage: 10}

	processing, err := f.svc.Order.GetOrders(ctx, &request.OrderListRequest{PaginatedRequest: page, Status: "processing"})
	if err != nil || processing.Pagination.Total != 1 || processing.Data[0].ID != first {
		t.Fatalf("status filter = %+v, %v", processing, err)
	}

	both, err := f.svc.Order.GetOrders(ctx, &request.OrderListRequest{PaginatedRequest: page, Status: "placed", DeliveryEmail: "alice@example.com"})
	if err != nil || both.Pagination.Total != 0 {
		t.Fatalf("AND filter = %+v, %v", both, err)
	}

	byQ, err := f.svc.Order.GetOrders(ctx, &request.OrderListRequest{PaginatedRequest: page, Q: "bob@example.com"})
	if err != nil || byQ.Pagination.Total != 1 {
		t.Fatalf("q filter = %+v, %v", byQ, err)
	}

	if _, err := f.svc.Order.GetOrders(ctx, &request.OrderListRequest{PaginatedRequest: page, Status: "lost"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad status filter err = %v, want ErrValidation", err)
	}
}

func TestReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.login(t, "alice@example.com")
	f.login(t, "bob@example.com")
	f.login(t, "carol@example.com")
	createProduct(t, f, "tee")
	id := placeOrder(t, f, "alice@example.com")
	placeOrder(t, f, "bob@example.com")
	for _, s := range []string{"processing", "shipped", "Delivered"} {
		if _, err := f.svc.Order.UpdateOrderStatus(ctx, id, &request.OrderStatusRequest{Status: s}); err != nil {
			t.Fatalf("move to %s: %v", s, err)
		}
	}

	report, err := f.svc.Report.GetReport(ctx)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Users != 3 || report.Orders != 2 || report.Products != 1 || report.Categories != 0 {
		t.Fatalf("counts = %+v", report)
	}
	if report.TodayOrders != 2 || report.DeliveredOrders != 1 {
		t.Fatalf("today = %d delivered = %d", report.TodayOrders, report.DeliveredOrders)
	}
	if len(report.RecentUsers) != 2 || report.RecentUsers[0].Email != "carol@example.com" {
		t.Fatalf("recent users = %+v", report.RecentUsers)
	}
	if len(report.RecentOrders) != 2 {
		t.Fatalf("recent orders = %d, want 2", len(report.RecentOrders))
	}
}

func TestReportIsCached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := cache.NewMemoryCache()
	svc := NewReportService(f.repo, c, reportConfig(time.Minute), nopLogger())

	f.login(t, "alice@example.com")
	first, err := svc.GetReport(ctx)
	if err != nil || first.Users != 1 {
		t.Fatalf("first report = %+v, %v", first, err)
	}

	f.login(t, "bob@example.com")
	cached, err := svc.GetReport(ctx)
	if err != nil || cached.Users != 1 {
		t.Fatalf("cached report users = %d, %v, want 1", cached.Users, err)
	}

	if err := c.Delete(ctx, cache.KeyReport); err != nil {
		t.Fatalf("delete: %v", err)
	}
	fresh, err := svc.GetReport(ctx)
	if err != nil || fresh.Users != 2 {
		t.Fatalf("fresh report users = %d, %v, want 2", fresh.Users, err)
	}
}

// vanishingOrders loses the row between the status read and the write.
type vanishingOrders struct {
	repository.OrderRepository
}

func (v vanishingOrders) UpdateStatus(ctx context.Context, _ uuid.UUID, from, to entity.OrderStatus, at time.Time) error {
	return v.OrderRepository.UpdateStatus(ctx, uuid.New(), from, to, at)
}

func TestUpdateOrderStatusMissingOnWrite(t *testing.T) {
	f := newFixture(t)
	id := placeOrder(t, f, "alice@example.com")

	svc := NewOrderService(vanishingOrders{f.repo.Order}, f.svc.User, f.events, "storefront-test", zap.NewNop())
	_, err := svc.UpdateOrderStatus(context.Background(), id, &request.OrderStatusRequest{Status: "processing"})
	if !errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateOrderStatusTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := placeOrder(t, f, "alice@example.com")

	if _, err := f.svc.Order.UpdateOrderStatus(ctx, id, &request.OrderStatusRequest{Status: "cancelled"}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	_, err := f.svc.Order.UpdateOrderStatus(ctx, id, &request.OrderStatusRequest{Status: "processing"})
	var verr *ValidationError
	if !errors.As(err, &verr) || !strings.Contains(verr.Message, "already cancelled") {
		t.Fatalf("err = %v, want already cancelled", err)
	}
}
