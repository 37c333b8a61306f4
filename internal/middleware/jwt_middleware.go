package middleware

import (
	"strings"

	"wtwr/internal/apperrors"
	"wtwr/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the Locals key under which AuthRequired stores the
// authenticated user's ID. Downstream handlers read it and never re-verify.
const UserIDKey = "user_id"

// AuthRequired is a Fiber middleware that verifies the bearer token and
// annotates the request with the resolved user ID, or rejects Unauthorized.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return apperrors.NewUnauthorized("Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return apperrors.NewUnauthorized("Authorization header format must be 'Bearer <token>'")
		}

		userID, err := authService.ValidateToken(parts[1])
		if err != nil {
			return err
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user's ID set by AuthRequired, or an
// Unauthorized error if the middleware never ran.
func UserID(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals(UserIDKey).(string)
	if !ok || id == "" {
		return "", apperrors.NewUnauthorized("Unauthorized: no user found in request")
	}
	return id, nil
}
