package middleware

import (
	"strings"

	"github.com/Sujal-Mishra/cleanvit/internal/config"
	"github.com/Sujal-Mishra/cleanvit/internal/core/domain"
	"github.com/Sujal-Mishra/cleanvit/internal/pkg/jwt"
	"github.com/Sujal-Mishra/cleanvit/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware. Validated claims are
// placed in request locals; expired or malformed tokens are rejected
// before any handler runs.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Set caller identity in context
		c.Locals("userID", claims.UserID)
		c.Locals("role", claims.Role)
		c.Locals("claims", claims)

		return c.Next()
	}
}

// RoleMiddleware is the single authorization gate: it maps the caller's
// role against the roles an operation allows, once per request.
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedRoles {
			if domain.Role(role) == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// StudentOnly middleware allows only the student role
func StudentOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleStudent)
}

// CleanerOnly middleware allows only the cleaner role
func CleanerOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleCleaner)
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// Claims extracts the validated claims set by AuthMiddleware
func Claims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals("claims").(*jwt.Claims)
	return claims
}
