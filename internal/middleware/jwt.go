package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/grana-app/grana/internal/auth"
)

const userIDLocal = "user_id"

// BearerAuth validates the Authorization bearer token and stores the caller
// id in locals. Requests without a valid token never reach the data layer.
func BearerAuth(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if authz == "" {
			return fiber.NewError(http.StatusUnauthorized, "Token não enviado")
		}
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "Token inválido")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])

		userID, err := auth.Verify(tokenStr, secret)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "Token inválido")
		}

		c.Locals(userIDLocal, userID)
		return c.Next()
	}
}

// CallerID returns the authenticated user id placed in locals by BearerAuth.
func CallerID(c *fiber.Ctx) (int64, error) {
	id, ok := c.Locals(userIDLocal).(int64)
	if !ok {
		return 0, fiber.NewError(http.StatusUnauthorized, "Token não enviado")
	}
	return id, nil
}
