package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/ayuhealth/internal/config"
	"github.com/example/ayuhealth/internal/utils"
)

const sessionContextKey = "currentSession"

// CustomerAuth validates bearer tokens and loads the customer session claims
// into the request context.
func CustomerAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := parseBearer(c, cfg.JWTSecret)
		if err != nil {
			return err
		}

		if claims.Admin || claims.CustomerID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "customer session required")
		}

		c.Locals(sessionContextKey, claims)
		return c.Next()
	}
}

// AdminAuth guards admin-only endpoints. Every admin route goes through this
// same gate, status transitions included.
func AdminAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := parseBearer(c, cfg.JWTSecret)
		if err != nil {
			return err
		}

		if !claims.Admin {
			return fiber.NewError(fiber.StatusUnauthorized, "admin session required")
		}

		c.Locals(sessionContextKey, claims)
		return c.Next()
	}
}

// GetSession extracts the session claims loaded by CustomerAuth or AdminAuth.
func GetSession(c *fiber.Ctx) (*utils.SessionClaims, bool) {
	value := c.Locals(sessionContextKey)
	if value == nil {
		return nil, false
	}

	if claims, ok := value.(*utils.SessionClaims); ok {
		return claims, true
	}

	return nil, false
}

func parseBearer(c *fiber.Ctx, secret string) (*utils.SessionClaims, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
	}

	claims, err := utils.ParseSessionToken(secret, parts[1])
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	return claims, nil
}
