package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/scolara/scolara-auth/internal/account"
	"github.com/scolara/scolara-auth/internal/middleware"
	"github.com/scolara/scolara-auth/internal/token"
)

// Handler exposes registration, login and logout endpoints for every role.
type Handler struct {
	accounts *account.Service
	tokens   *token.Service
}

// NewHandler constructs the auth HTTP handler.
func NewHandler(accounts *account.Service, tokens *token.Service) *Handler {
	return &Handler{accounts: accounts, tokens: tokens}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"mot_de_passe"`
}

// payloadKey follows the historical API: each role's record is returned under
// its own key.
func payloadKey(role account.Role) string {
	if role == account.RoleTeacher {
		return "enseignant"
	}
	return string(role)
}

// Register returns the registration handler for the given role. Success pairs
// the new record with a freshly issued token.
func (h *Handler) Register(role account.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in account.RegisterInput
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid request body")
		}

		acct, err := h.accounts.Register(c.UserContext(), role, in)
		if err != nil {
			return respondError(c, err)
		}

		value, err := h.tokens.Issue(c.UserContext(), string(role), acct.ID)
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, "token issuance failed")
		}

		return c.Status(http.StatusOK).JSON(fiber.Map{
			payloadKey(role): acct,
			"token":          value,
		})
	}
}

// Login returns the login handler for the given role.
func (h *Handler) Login(role account.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid request body")
		}

		acct, err := h.accounts.Login(c.UserContext(), role, req.Email, req.Password)
		if err != nil {
			return respondError(c, err)
		}

		value, err := h.tokens.Issue(c.UserContext(), string(role), acct.ID)
		if err != nil {
			return fiber.NewError(http.StatusInternalServerError, "token issuance failed")
		}

		return c.Status(http.StatusOK).JSON(fiber.Map{
			payloadKey(role): acct,
			"token":          value,
		})
	}
}

// Logout revokes every token bound to the authenticated principal, not only
// the one presented on this request.
func (h *Handler) Logout(c *fiber.Ctx) error {
	principal, ok := c.Locals(middleware.PrincipalKey).(token.Principal)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "unauthenticated")
	}

	if _, err := h.tokens.RevokeAll(c.UserContext(), principal.Role, principal.AccountID); err != nil {
		return fiber.NewError(http.StatusInternalServerError, "logout failed")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"message": "logged out"})
}

// Me returns the authenticated principal's identity record.
func (h *Handler) Me(c *fiber.Ctx) error {
	principal, ok := c.Locals(middleware.PrincipalKey).(token.Principal)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "unauthenticated")
	}

	acct, err := h.accounts.Get(c.UserContext(), account.Role(principal.Role), principal.AccountID)
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, "account not found")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		payloadKey(acct.Role): acct,
	})
}

// respondError translates domain errors into the API's stable error contract.
func respondError(c *fiber.Ctx, err error) error {
	var verr *account.ValidationError
	if errors.As(err, &verr) {
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": verr.Fields,
		})
	}
	if errors.Is(err, account.ErrBadCredentials) {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Bad creds"})
	}
	return fiber.NewError(http.StatusInternalServerError, err.Error())
}
