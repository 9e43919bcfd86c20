package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/scolara/scolara-auth/internal/token"
)

// PrincipalKey is the request-local slot holding the resolved token.Principal.
const PrincipalKey = "principal"

// BearerAuth validates the presented opaque token against the token store and
// resolves the principal into request locals for downstream handlers.
func BearerAuth(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		value := strings.TrimSpace(authz[len("Bearer "):])

		principal, err := tokens.Validate(c.UserContext(), value)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid token")
		}

		c.Locals(PrincipalKey, principal)
		return c.Next()
	}
}
