package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grana-app/grana/internal/summary"
)

// RegisterSummaryRoutes wires the aggregate report endpoint.
func RegisterSummaryRoutes(r fiber.Router, h *summary.Handler, bearer fiber.Handler) {
	r.Get("/summary", bearer, h.Get)
}
