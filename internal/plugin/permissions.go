package plugin

// Permission roles, lowest to highest.
const (
	RoleEveryone = "everyone"
	RoleMember   = "member"
	RoleAdmin    = "admin"
	RoleOwner    = "owner"
)

var roleHierarchy = map[string]int{
	RoleEveryone: 0,
	RoleMember:   1,
	RoleAdmin:    2,
	RoleOwner:    3,
}

// HasPermission reports whether userRole meets or exceeds requiredRole.
// Unknown roles rank as everyone.
func HasPermission(userRole, requiredRole string) bool {
	return roleHierarchy[userRole] >= roleHierarchy[requiredRole]
}
