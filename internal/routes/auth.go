package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grana-app/grana/internal/auth"
)

// RegisterAuthRoutes wires login and profile endpoints. Profile routes carry
// the user id in the path rather than a token, matching the frontend contract.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/auth")
	if rateLimiter != nil {
		group.Post("/login", rateLimiter, h.Login)
	} else {
		group.Post("/login", h.Login)
	}
	group.Get("/me/:id", h.Me)
	group.Put("/update/:id", h.Update)
}
