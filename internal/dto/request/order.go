package request

type OrderItemRequest struct {
	ProductID string  `json:"product_id" validate:"omitempty,uuid"`
	Image     string  `json:"image" validate:"max=2048"`
	Title     string  `json:"title" validate:"required,max=200"`
	Quantity  int     `json:"quantity" validate:"required,min=1,max=1000"`
	Price     float64 `json:"price" validate:"gte=0,lte=9999999999.99"`
}

type DeliveryRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"required,max=30"`
	Address string `json:"address" validate:"required,max=300"`
}

type PaymentRequest struct {
	TransactionID string `json:"transaction_id" validate:"required,max=200"`
	Method        string `json:"method" validate:"max=50"`
}

type OrderRequest struct {
	Items    []OrderItemRequest `json:"items" validate:"required,min=1,max=100,dive"`
	Delivery DeliveryRequest    `json:"delivery"`
	Payment  PaymentRequest     `json:"payment"`
	Total    *float64           `json:"total" validate:"required,gte=0,lte=9999999999.99"`
}

type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderListRequest filters the admin order list. Named fields combine with AND;
// Q is an exact match against any of status, delivery email, delivery phone or transaction id.
type OrderListRequest struct {
	PaginatedRequest
	Status        string
	DeliveryEmail string
	DeliveryPhone string
	TransactionID string
	Q             string
}
