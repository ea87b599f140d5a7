package fiber

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
)

// RequireAdmin returns a middleware that admits only requests carrying a
// valid passport whose identity resolves to an admin account. Any failure
// along the way - missing passport, bad signature, resolver error - is
// treated as not-admin.
func (a *Adapter) RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := a.extractToken(c)
		if token == "" {
			return c.Status(http.StatusUnauthorized).JSON(map[string]string{
				"error": "missing passport",
			})
		}

		username, err := a.handler.VerifyPassport(token)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(errorBody(err))
		}

		admin, err := a.handler.IsAdmin(username)
		if err != nil || !admin {
			// Fail closed: a resolver error is never an admin.
			return c.Status(http.StatusUnauthorized).JSON(map[string]string{
				"error": "admin privilege required",
			})
		}

		c.Locals("username", username)
		return c.Next()
	}
}

// extractToken extracts the passport from the request. Checks the
// Authorization header (Bearer token) first, then falls back to the
// passport cookie.
func (a *Adapter) extractToken(c fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}

	return c.Cookies(a.cookieName)
}
