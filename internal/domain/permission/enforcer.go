package permission

// RoleGrant is one role-to-permission edge of the resolved grant graph.
type RoleGrant struct {
	RoleID       uint
	PermissionID uint
}

// RoleAssignment is one user-to-role edge of the resolved grant graph.
type RoleAssignment struct {
	UserID uint
	RoleID uint
}

// PolicyEnforcer answers authorization questions from a policy snapshot
// built out of the grant graph. The snapshot only changes on Replace.
type PolicyEnforcer interface {
	Enforce(userID, permissionID uint) (bool, error)
	Replace(grants []RoleGrant, assignments []RoleAssignment) error
	GetRolesForUser(userID uint) ([]uint, error)
	GetPermissionsForUser(userID uint) ([]uint, error)
}
