package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPlaced     OrderStatus = "placed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPlaced:     {OrderStatusProcessing: true, OrderStatusCancelled: true},
	OrderStatusProcessing: {OrderStatusShipped: true, OrderStatusCancelled: true},
	OrderStatusShipped:    {OrderStatusDelivered: true},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// ParseOrderStatus matches labels case-insensitively and returns the canonical spelling.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	s = strings.TrimSpace(s)
	for status := range validNext {
		if strings.EqualFold(string(status), s) {
			return status, true
		}
	}
	return "", false
}

func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

func (s OrderStatus) IsTerminal() bool {
	next, ok := validNext[s]
	return ok && len(next) == 0
}

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Image     string  `json:"image"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type Delivery struct {
	Name    string `db:"delivery_name"`
	Email   string `db:"delivery_email"`
	Phone   string `db:"delivery_phone"`
	Address string `db:"delivery_address"`
}

type Payment struct {
	TransactionID string `db:"transaction_id"`
	Method        string `db:"payment_method"`
}

type Order struct {
	ID        uuid.UUID   `db:"id"`
	Seq       int64       `db:"seq"`
	Items     []OrderItem `db:"items"`
	Delivery  Delivery
	Payment   Payment
	Status    OrderStatus `db:"status"`
	Total     float64     `db:"total"`
	PlacedAt  time.Time   `db:"placed_at"`
	UpdatedAt time.Time   `db:"updated_at"`
}

// OrderFilter narrows the admin order list. Set fields combine with AND;
// Query matches any of the four fields exactly.
type OrderFilter struct {
	Status        *OrderStatus
	DeliveryEmail string
	DeliveryPhone string
	TransactionID string
	Query         string
}
