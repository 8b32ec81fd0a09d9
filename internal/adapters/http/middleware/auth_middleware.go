package middleware

import (
	"context"
	"errors"
	"log"
	"strings"

	"jangja-school/internal/core/domain"
	"jangja-school/internal/pkg/jwt"
	"jangja-school/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthMiddleware
const (
	LocalAccountID = "accountID"
	LocalUsername  = "username"
	LocalRole      = "role"
	LocalClaims    = "claims"
)

// TokenVerifier validates bearer tokens
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*jwt.Claims, error)
}

// BearerToken returns the token part of the Authorization header: the text
// after the first space, or "" when there is none
func BearerToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	_, token, found := strings.Cut(authHeader, " ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

// AuthMiddleware creates authentication middleware.
// Missing token → 401, invalid/expired/revoked token → 403.
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Get token from Authorization header
		accessToken := BearerToken(c)

		// 2. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "액세스 토큰이 필요합니다.")
		}

		// 3. Validate token
		claims, err := verifier.VerifyToken(c.UserContext(), accessToken)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenMissing):
				return response.Unauthorized(c, "액세스 토큰이 필요합니다.")
			case errors.Is(err, domain.ErrTokenExpired),
				errors.Is(err, domain.ErrTokenInvalid),
				errors.Is(err, domain.ErrTokenRevoked):
				return response.Forbidden(c, "토큰이 유효하지 않습니다.")
			default:
				log.Printf("❌ Token verification error: %v", err)
				return response.InternalServerError(c, "서버 오류가 발생했습니다.")
			}
		}

		// 4. Set account info in context
		c.Locals(LocalAccountID, claims.AccountID)
		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalClaims, claims)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(string)
		if !ok {
			return response.Unauthorized(c, "액세스 토큰이 필요합니다.")
		}

		// Check if account's role is in allowed roles
		for _, allowedRole := range allowedRoles {
			if role == string(allowedRole) {
				return c.Next()
			}
		}

		return response.Forbidden(c, "접근 권한이 없습니다.")
	}
}

// ClaimsFrom returns the claims stored by AuthMiddleware
func ClaimsFrom(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return claims
}
