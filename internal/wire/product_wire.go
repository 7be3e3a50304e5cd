package wire

import (
	"storefront-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireProduct(r chi.Router, productHandler *adaptor.ProductHandler, g gates) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/products", productHandler.GetProducts)
	r.Get("/search", productHandler.Search)
	r.Get("/get-product/{id}", productHandler.GetProductByID)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth, g.admin)

		r.Post("/product", productHandler.CreateProduct)
		r.Patch("/product/{id}", productHandler.UpdateProduct)
		r.Delete("/product/{id}", productHandler.DeleteProduct)
	})
}
