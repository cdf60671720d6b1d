package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grana-app/grana/internal/transaction"
)

// RegisterTransactionRoutes wires the owner-scoped CRUD endpoints behind the
// bearer middleware. The idempotency handler is optional (nil in dev without
// Redis) and always runs after authentication.
func RegisterTransactionRoutes(r fiber.Router, h *transaction.Handler, bearer, idempotency fiber.Handler) {
	handlers := []fiber.Handler{bearer}
	if idempotency != nil {
		handlers = append(handlers, idempotency)
	}
	group := r.Group("/transactions", handlers...)
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Put("/:id", h.Update)
	group.Delete("/:id", h.Delete)
}
