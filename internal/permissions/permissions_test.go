package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPermissionsForRole_KnownRoles(t *testing.T) {
	for _, role := range Roles() {
		perms := GetPermissionsForRole(role)
		assert.NotEmpty(t, perms, "role %s should have permissions", role)
	}
}

func TestGetPermissionsForRole_UnknownRole(t *testing.T) {
	assert.Empty(t, GetPermissionsForRole(Role("admin")))
	assert.Empty(t, GetPermissionsForRole(Role("")))
}

func TestGetPermissionsForRole_ReturnsCopy(t *testing.T) {
	perms := GetPermissionsForRole(RoleClient)
	perms[0] = Permission("tampered:with")

	again := GetPermissionsForRole(RoleClient)
	assert.NotContains(t, again, Permission("tampered:with"))
}

func TestHasPermission_SingleMatch(t *testing.T) {
	perms := GetPermissionsForRole(RoleExpert)

	assert.True(t, HasPermission(perms, SessionsCreate))
	assert.False(t, HasPermission(perms, UsersManage))
}

func TestHasPermission_AnyOf(t *testing.T) {
	perms := GetPermissionsForRole(RoleClient)

	assert.True(t, HasPermission(perms, UsersManage, WorkspacesBook))
	assert.False(t, HasPermission(perms, UsersManage, RequestsReview))
}

func TestHasPermission_EmptySet(t *testing.T) {
	assert.False(t, HasPermission(nil, SessionsView))
	assert.False(t, HasPermission([]Permission{SessionsView}))
}

func TestRoleHasPermission_UserManagement(t *testing.T) {
	assert.False(t, RoleHasPermission(RoleClient, UsersManage))
	assert.True(t, RoleHasPermission(RoleOwner, UsersManage))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole("owner"))
	assert.True(t, ValidRole("expert"))
	assert.True(t, ValidRole("client"))
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("Owner"))
}
