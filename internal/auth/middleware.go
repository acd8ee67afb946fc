package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/domain"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller of a request.
type Principal struct {
	Username  string
	Roles     []domain.Role
	TokenID   string
	ExpiresAt time.Time
}

// AuthMiddleware validates bearer tokens and applies the URL rules.
type AuthMiddleware struct {
	tokens      *TokenManager
	revocations RevocationStore
	rules       AccessRules
}

// NewAuthMiddleware constructs middleware. revocations may be nil.
func NewAuthMiddleware(tokens *TokenManager, revocations RevocationStore, rules AccessRules) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, revocations: revocations, rules: rules}
}

// Handle authenticates the request unless a public rule matches, then checks the
// rule's roles. Missing or bad credentials yield 401, a missing role 403.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	rule, matched := m.rules.Match(c.Method(), c.Path())
	if matched && rule.Public {
		return c.Next()
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	if m.revocations != nil {
		revoked, err := m.revocations.IsRevoked(c.UserContext(), claims.ID)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		if revoked {
			return apperrors.NewUnauthorized("token revoked")
		}
	}

	principal := &Principal{
		Username: claims.Subject,
		Roles:    claims.Roles,
		TokenID:  claims.ID,
	}
	if claims.ExpiresAt != nil {
		principal.ExpiresAt = claims.ExpiresAt.Time
	}

	if matched && len(rule.Roles) > 0 && !domain.HasAnyRole(principal.Roles, rule.Roles...) {
		return apperrors.NewForbidden("insufficient role")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
