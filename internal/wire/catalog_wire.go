package wire

import (
	"storefront-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCategory(r chi.Router, categoryHandler *adaptor.CategoryHandler, g gates) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/categories", categoryHandler.GetCategories)

	// ==================== ADMIN ROUTES ====================
	r.With(g.auth, g.admin).Post("/categories", categoryHandler.CreateCategory)
	r.With(g.auth, g.admin).Patch("/category/{id}", categoryHandler.UpdateCategory)
	r.With(g.auth, g.admin).Delete("/category/{id}", categoryHandler.DeleteCategory)
}

func wireSlider(r chi.Router, sliderHandler *adaptor.SliderHandler, g gates) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/sliders", sliderHandler.GetSliders)

	// ==================== ADMIN ROUTES ====================
	r.With(g.auth, g.admin).Post("/sliders", sliderHandler.CreateSlider)
	r.With(g.auth, g.admin).Patch("/slider/{id}", sliderHandler.UpdateSlider)
	r.With(g.auth, g.admin).Delete("/slider/{id}", sliderHandler.DeleteSlider)
}

func wireContent(r chi.Router, contentHandler *adaptor.ContentHandler, g gates) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/web-heading", contentHandler.GetHeadings)
	r.Get("/settings", contentHandler.GetSettings)

	// ==================== ADMIN ROUTES ====================
	r.With(g.auth, g.admin).Patch("/web-heading", contentHandler.UpdateHeading)
	r.With(g.auth, g.admin).Patch("/settings/{section}", contentHandler.UpdateSettings)
}
