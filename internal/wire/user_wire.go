package wire

import (
	"storefront-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, authHandler *adaptor.AuthHandler, userHandler *adaptor.UserHandler, g gates) {
	// ==================== PUBLIC ROUTES ====================
	// PUT /user - upsert profile, returns a token
	r.Put("/user", authHandler.UpsertUser)

	// GET /is-admin/{email}
	r.Get("/is-admin/{email}", userHandler.IsAdmin)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.auth)  // Must carry a token matching ?email=
		r.Use(g.admin) // Must be admin

		r.Patch("/make-admin", userHandler.MakeAdmin)
		r.Patch("/delete-admin", userHandler.RemoveAdmin)
		r.Get("/users", userHandler.GetUsers)
	})
}
