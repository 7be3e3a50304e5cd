package response

type ReportResponse struct {
	Users           int64           `json:"users"`
	Orders          int64           `json:"orders"`
	Products        int64           `json:"products"`
	Categories      int64           `json:"categories"`
	TodayOrders     int64           `json:"today_orders"`
	DeliveredOrders int64           `json:"delivered_orders"`
	RecentUsers     []UserResponse  `json:"recent_users"`
	RecentOrders    []OrderResponse `json:"recent_orders"`
}
