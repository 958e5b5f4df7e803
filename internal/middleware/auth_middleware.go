package middleware

import (
	"strings"

	"study-helper/internal/domain"
	"study-helper/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	CurrentUserKey      = "currentUser" // Key for storing the *domain.User in fiber.Ctx locals
)

// Protected requires a valid bearer token and resolves it to an existing
// user. The resolved user is stored in locals under CurrentUserKey; a
// token whose subject no longer exists is rejected like any invalid token.
func Protected(authService service.AuthService, userService service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return domain.NewUnauthorizedError("Authorization header is missing")
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return domain.NewUnauthorizedError("Authorization scheme is not Bearer")
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return domain.NewUnauthorizedError("Token is empty")
		}

		claims, err := authService.ValidateJWT(c.Context(), tokenString)
		if err != nil {
			return domain.NewUnauthorizedError("Could not validate credentials")
		}

		user, err := userService.GetUserByUsername(c.Context(), claims.Subject)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.NewUnauthorizedError("Could not validate credentials")
		}

		c.Locals(CurrentUserKey, user)
		return c.Next()
	}
}

// AdminOnly rejects authenticated non-admin users. Must run after Protected.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return domain.NewUnauthorizedError("Could not validate credentials")
		}
		if !user.IsAdmin {
			return domain.NewForbiddenError("Admin privileges required")
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated user stored by Protected, or nil.
func CurrentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(CurrentUserKey).(*domain.User)
	return user
}
