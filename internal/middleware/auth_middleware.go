package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jointoit/events-api/internal/models"
	"github.com/jointoit/events-api/pkg/apperror"
)

const userKey = "user"

// Authenticator resolves a bearer access token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware reads an optional bearer token. Requests without one, or
// with a different scheme, continue anonymously; a bad token is rejected.
func AuthMiddleware(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if authHeader == "" {
			return c.Next()
		}

		parts := strings.Fields(authHeader)
		if !strings.EqualFold(parts[0], "Bearer") {
			return c.Next()
		}
		if len(parts) != 2 {
			msg := "Invalid Authorization header. No credentials provided."
			if len(parts) > 2 {
				msg = "Invalid Authorization header. Credentials string should not contain spaces."
			}
			return apperror.AuthenticationFailed(msg, "bad_authorization_header", nil)
		}

		user, err := auth.Authenticate(c.UserContext(), parts[1])
		if err != nil {
			return err
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return apperror.NotAuthenticated()
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated user or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}
