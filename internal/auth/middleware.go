package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/agate-ltd/agency-crm/pkg/util"
)

const claimsKey = "auth_claims"

// Messages surfaced for the three authentication failures.
const (
	MsgNoCredential   = "Unauthorized - Please sign in"
	MsgSessionExpired = "Session expired - Please sign in again"
	MsgInvalidToken   = "Unauthorized - Invalid token"
)

// AuthMiddleware validates the session cookie and attaches its claims.
// Claims are trusted as issued; the staff store is not consulted.
type AuthMiddleware struct {
	tokens     *TokenManager
	cookieName string
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, cookieName: cookieName}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	raw := c.Cookies(m.cookieName)
	if raw == "" {
		return apperrors.NewUnauthorized(MsgNoCredential)
	}

	claims, err := m.tokens.Parse(raw)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return apperrors.NewUnauthorized(MsgSessionExpired)
		}
		return apperrors.NewUnauthorized(MsgInvalidToken)
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// ClaimsFromContext retrieves the authenticated claims.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*Claims)
	return claims, ok && claims != nil
}
