package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/banco-digital/banco_core/internal/auth"
	"github.com/banco-digital/banco_core/internal/config"
	"github.com/banco-digital/banco_core/internal/identity"
)

// JWTAuth validates bearer access tokens and rejects tokens issued before the
// user's last logout (token version mismatch). The user id lands in
// c.Locals("user_id") as an int64.
func JWTAuth(cfg config.Config, repo identity.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])

		claims, err := auth.ParseToken(tokenStr, []byte(cfg.JWTSecret))
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}

		user, err := repo.FindByID(c.UserContext(), claims.UserID)
		if err != nil || user.TokenVersion != claims.TokenVersion {
			return fiber.NewError(http.StatusUnauthorized, "token invalidated")
		}

		c.Locals("user_id", user.ID)
		return c.Next()
	}
}
