package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/squeedr/squeedr-api/internal/services"
)

const (
	UserIDKey         = "user_id"
	UserEmailKey      = "user_email"
	ActingRoleKey     = "acting_role"
	AvailableRolesKey = "available_roles"
)

func Auth(jwtService *services.JWTService) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Unauthorized("missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Unauthorized("invalid authorization header format")
			return
		}

		claims, err := jwtService.ValidateAccessToken(parts[1])
		if err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(ActingRoleKey, claims.ActingRole)
		c.Set(AvailableRolesKey, claims.AvailableRoles)

		c.Next()
	}
}

func GetUserID(c *drift.Context) uuid.UUID {
	if id, ok := c.Get(UserIDKey); ok {
		if uid, ok := id.(uuid.UUID); ok {
			return uid
		}
	}
	return uuid.Nil
}

func GetUserEmail(c *drift.Context) string {
	if email, ok := c.Get(UserEmailKey); ok {
		if e, ok := email.(string); ok {
			return e
		}
	}
	return ""
}

func GetActingRole(c *drift.Context) string {
	if role, ok := c.Get(ActingRoleKey); ok {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}

func GetAvailableRoles(c *drift.Context) []string {
	if roles, ok := c.Get(AvailableRolesKey); ok {
		if r, ok := roles.([]string); ok {
			return r
		}
	}
	return nil
}
