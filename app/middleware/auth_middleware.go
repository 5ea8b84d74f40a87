// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/jasado/jasado-middleware/app/dto"
	"github.com/jasado/jasado-middleware/app/services"
)

// Locals keys set by AdminAuthenticate
const (
	adminIDLocal     = "admin_id"
	tokenIDLocal     = "token_id"
	tokenClaimsLocal = "token_claims"
	accessTokenLocal = "access_token"
)

// AuthMiddleware handles JWT token validation for protected endpoints
type AuthMiddleware struct {
	tokenService services.TokenService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// AdminAuthenticate validates admin access tokens and sets admin-specific context values
func (m *AuthMiddleware) AdminAuthenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required", "MISSING_AUTHORIZATION_HEADER")
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return unauthorized(c, "Invalid authorization header format. Expected 'Bearer <token>'", "INVALID_AUTHORIZATION_FORMAT")
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			return unauthorized(c, "Access token is required", "MISSING_ACCESS_TOKEN")
		}

		claims, err := m.tokenService.ValidateAdminToken(token)
		if err != nil {
			var code, msg string
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				code, msg = "TOKEN_EXPIRED", "Access token has expired"
			case errors.Is(err, services.ErrTokenRevoked):
				code, msg = "TOKEN_REVOKED", "Access token has been revoked"
			case errors.Is(err, services.ErrTokenInvalid):
				code, msg = "TOKEN_INVALID", "Invalid access token"
			default:
				code, msg = "TOKEN_VALIDATION_FAILED", "Token validation failed"
			}
			return unauthorized(c, msg, code)
		}

		// refresh tokens only buy new sessions
		if claims.TokenType != services.TokenTypeAccess {
			return unauthorized(c, "Invalid access token", "TOKEN_INVALID")
		}

		c.Locals(adminIDLocal, claims.AdminID)
		c.Locals(tokenIDLocal, claims.TokenID)
		c.Locals(tokenClaimsLocal, claims)
		c.Locals(accessTokenLocal, token)

		return c.Next()
	}
}

func unauthorized(c fiber.Ctx, message, code string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error:   dto.ErrorDetail{Code: code},
	})
}

// GetAdminIDFromContext extracts admin ID from the request context
func GetAdminIDFromContext(c fiber.Ctx) (uint, bool) {
	adminID, ok := c.Locals(adminIDLocal).(uint)
	return adminID, ok
}

// GetAccessTokenFromContext returns the bearer token accepted by AdminAuthenticate
func GetAccessTokenFromContext(c fiber.Ctx) (string, bool) {
	token, ok := c.Locals(accessTokenLocal).(string)
	return token, ok && token != ""
}

// GetTokenClaimsFromContext extracts token claims from the request context
func GetTokenClaimsFromContext(c fiber.Ctx) (*services.AdminTokenClaims, bool) {
	claims, ok := c.Locals(tokenClaimsLocal).(*services.AdminTokenClaims)
	return claims, ok
}
