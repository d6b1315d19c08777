package middleware

import (
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/squeedr/squeedr-api/internal/permissions"
)

// RequirePermission gates a route on the acting role holding at least one of
// the given permissions. An empty or unknown acting role is denied.
func RequirePermission(required ...permissions.Permission) drift.HandlerFunc {
	return func(c *drift.Context) {
		role := permissions.Role(GetActingRole(c))
		perms := permissions.GetPermissionsForRole(role)
		if !permissions.HasPermission(perms, required...) {
			c.Forbidden("insufficient permissions")
			return
		}
		c.Next()
	}
}

// RequireRole gates a route on the acting role being in the allow list.
func RequireRole(allowed ...permissions.Role) drift.HandlerFunc {
	return func(c *drift.Context) {
		acting := permissions.Role(GetActingRole(c))
		for _, role := range allowed {
			if acting == role {
				c.Next()
				return
			}
		}
		c.Forbidden("role not allowed")
	}
}
