package response

import (
	"time"

	"storefront-api/internal/data/entity"
)

type OrderItemResponse struct {
	ProductID string  `json:"product_id,omitempty"`
	Image     string  `json:"image"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type DeliveryResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type PaymentResponse struct {
	TransactionID string `json:"transaction_id"`
	Method        string `json:"method,omitempty"`
}

type OrderResponse struct {
	ID        string              `json:"id"`
	Items     []OrderItemResponse `json:"items"`
	Delivery  DeliveryResponse    `json:"delivery"`
	Payment   PaymentResponse     `json:"payment"`
	Status    entity.OrderStatus  `json:"status"`
	Total     float64             `json:"total"`
	PlacedAt  time.Time           `json:"placed_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func OrderToResponse(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			ProductID: it.ProductID,
			Image:     it.Image,
			Title:     it.Title,
			Quantity:  it.Quantity,
			Price:     it.Price,
		}
	}

	return OrderResponse{
		ID:    o.ID.String(),
		Items: items,
		Delivery: DeliveryResponse{
			Name:    o.Delivery.Name,
			Email:   o.Delivery.Email,
			Phone:   o.Delivery.Phone,
			Address: o.Delivery.Address,
		},
		Payment: PaymentResponse{
			TransactionID: o.Payment.TransactionID,
			Method:        o.Payment.Method,
		},
		Status:    o.Status,
		Total:     o.Total,
		PlacedAt:  o.PlacedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func OrdersToResponse(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = OrderToResponse(o)
	}
	return out
}
