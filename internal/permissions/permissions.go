package permissions

// Role is the acting identity of a user. A user may hold several roles but
// acts under exactly one at a time.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleExpert Role = "expert"
	RoleClient Role = "client"
)

// Permission is a category:action capability. The set is closed; values
// outside this list never enter the system.
type Permission string

const (
	SessionsView   Permission = "sessions:view"
	SessionsCreate Permission = "sessions:create"
	SessionsUpdate Permission = "sessions:update"
	SessionsCancel Permission = "sessions:cancel"
	SessionsRecord Permission = "sessions:record"

	WorkspacesView   Permission = "workspaces:view"
	WorkspacesCreate Permission = "workspaces:create"
	WorkspacesUpdate Permission = "workspaces:update"
	WorkspacesBook   Permission = "workspaces:book"

	UsersView   Permission = "users:view"
	UsersManage Permission = "users:manage"

	BillingView Permission = "billing:view"

	RequestsCreate Permission = "requests:create"
	RequestsReview Permission = "requests:review"

	WaitlistJoin   Permission = "waitlist:join"
	WaitlistManage Permission = "waitlist:manage"
)

// rolePermissions is the exhaustive role to permission mapping. Adding a role
// or permission means touching this table.
var rolePermissions = map[Role][]Permission{
	RoleOwner: {
		SessionsView, SessionsCreate, SessionsUpdate, SessionsCancel, SessionsRecord,
		WorkspacesView, WorkspacesCreate, WorkspacesUpdate, WorkspacesBook,
		UsersView, UsersManage,
		BillingView,
		RequestsCreate, RequestsReview,
		WaitlistJoin, WaitlistManage,
	},
	RoleExpert: {
		SessionsView, SessionsCreate, SessionsUpdate, SessionsRecord,
		WorkspacesView, WorkspacesBook,
		BillingView,
		RequestsCreate,
		WaitlistJoin,
	},
	RoleClient: {
		SessionsView,
		WorkspacesView, WorkspacesBook,
		RequestsCreate,
		WaitlistJoin,
	},
}

// GetPermissionsForRole returns the permission set for a role. Unknown roles
// get an empty set (fail closed).
func GetPermissionsForRole(role Role) []Permission {
	perms, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// HasPermission reports whether perms contains at least one of required.
func HasPermission(perms []Permission, required ...Permission) bool {
	for _, p := range perms {
		for _, r := range required {
			if p == r {
				return true
			}
		}
	}
	return false
}

// RoleHasPermission checks a role directly against the table.
func RoleHasPermission(role Role, required ...Permission) bool {
	return HasPermission(rolePermissions[role], required...)
}

// ValidRole reports whether s is one of the known role strings. Persisted or
// claimed values that fail this check are treated as absent.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleOwner, RoleExpert, RoleClient:
		return true
	}
	return false
}

// Roles returns all known roles.
func Roles() []Role {
	return []Role{RoleOwner, RoleExpert, RoleClient}
}
