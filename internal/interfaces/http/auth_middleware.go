package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastell/milasset-api/internal/application/dto"
	"github.com/jcastell/milasset-api/internal/domain/access"
	pkgjwt "github.com/jcastell/milasset-api/pkg/jwt"
)

// Locals keys set by AuthMiddleware.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
	LocalBaseID = "base_id"
)

// AuthMiddleware validates the Bearer token and stores the resolved
// credential fields in c.Locals. The core never reads ambient session state;
// handlers turn these locals into an explicit access.Scope per call.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header required"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "empty token"})
		}
		claims, err := pkgjwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired token"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalBaseID, claims.BaseID)
		return c.Next()
	}
}

// RequireRole authorizes only the given roles past this point. The fine-
// grained own-base checks still run inside the usecases; this is the coarse
// route-level gate.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token carries no role"})
		}
		if !access.ValidRole(role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "unknown role"})
		}
		for _, a := range allowed {
			if role == a {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "role not allowed for this operation"})
	}
}

// GetUserID returns the user id placed by AuthMiddleware.
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole returns the role placed by AuthMiddleware.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetBaseID returns the commander's base id placed by AuthMiddleware.
func GetBaseID(c *fiber.Ctx) int64 {
	n, _ := c.Locals(LocalBaseID).(int64)
	return n
}

// GetScope assembles the explicit credential object the core consumes.
func GetScope(c *fiber.Ctx) access.Scope {
	return access.Scope{
		UserID: GetUserID(c),
		Role:   GetRole(c),
		BaseID: GetBaseID(c),
	}
}
