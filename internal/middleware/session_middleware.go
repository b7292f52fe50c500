package middleware

import (
	"go-retail-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the cookie carrying the opaque session token.
const SessionCookie = "session_token"

// RequireAuth resolves the session cookie to a user and stores it in the
// request context. Requests without a live session get a 401.
func RequireAuth(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := authService.CheckAuth(c.Cookies(SessionCookie))
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Authentication required"})
		}

		c.Locals("user", user)
		c.Locals("user_id", user.ID)
		return c.Next()
	}
}
