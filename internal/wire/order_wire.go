package wire

import (
	"storefront-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireOrder(r chi.Router, orderHandler *adaptor.OrderHandler, g gates) {
	// ==================== PROTECTED ROUTES ====================
	// Any signed-in user; ownership is checked in the service
	r.Group(func(r chi.Router) {
		r.Use(g.auth)

		r.Post("/order", orderHandler.CreateOrder)
		r.Get("/my-orders", orderHandler.GetMyOrders)
		r.Get("/order/{id}", orderHandler.GetOrderByID)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth, g.admin)

		r.Get("/orders", orderHandler.GetOrders)
		r.Patch("/update-order-status/{id}", orderHandler.UpdateOrderStatus)
	})
}

func wireReport(r chi.Router, reportHandler *adaptor.ReportHandler, g gates) {
	r.With(g.auth, g.admin).Get("/report", reportHandler.GetReport)
}
