package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/venividilaundry/veni-vidi-laundry/internal/config"
	"github.com/venividilaundry/veni-vidi-laundry/internal/utils"
)

const identityContextKey = "currentIdentity"

// Identity is the authenticated caller loaded from a verified token.
type Identity struct {
	AccountID uuid.UUID
	Email     string
	IsAdmin   bool
}

// AuthRequired validates bearer tokens and loads the caller identity into
// context. Requests with a missing, malformed, expired or forged token are
// rejected before any handler runs.
func AuthRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		claims, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(identityContextKey, Identity{
			AccountID: claims.UserID,
			Email:     claims.Email,
			IsAdmin:   claims.IsAdmin,
		})
		return c.Next()
	}
}

// AdminRequired rejects callers whose verified token does not carry the admin
// flag. Must run after AuthRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := CurrentIdentity(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}

		if !identity.IsAdmin {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}

		return c.Next()
	}
}

// CurrentIdentity extracts the authenticated identity from context.
func CurrentIdentity(c *fiber.Ctx) (Identity, bool) {
	identity, ok := c.Locals(identityContextKey).(Identity)
	return identity, ok
}
