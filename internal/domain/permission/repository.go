package permission

import "context"

// Lookups return (nil, nil) when the row does not exist. Update fails with a
// write conflict when the stored version no longer matches the entity's.
// Delete removes the row and everything that depends on it and reports
// whether the row existed.

type ModuleRepository interface {
	Create(ctx context.Context, module *Module) error
	GetByID(ctx context.Context, id uint) (*Module, error)
	List(ctx context.Context) ([]*Module, error)
	ListActive(ctx context.Context) ([]*Module, error)
	Update(ctx context.Context, module *Module) error
	Delete(ctx context.Context, id uint) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	NameExists(ctx context.Context, name string, excludeID uint) (bool, error)
}

type SubModuleRepository interface {
	Create(ctx context.Context, subModule *SubModule) error
	GetByID(ctx context.Context, id uint) (*SubModule, error)
	List(ctx context.Context) ([]*SubModule, error)
	ListActive(ctx context.Context) ([]*SubModule, error)
	ListByModule(ctx context.Context, moduleID uint) ([]*SubModule, error)
	Update(ctx context.Context, subModule *SubModule) error
	Delete(ctx context.Context, id uint) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	NameExists(ctx context.Context, moduleID uint, name string, excludeID uint) (bool, error)
}

type PermissionRepository interface {
	Create(ctx context.Context, permission *Permission) error
	GetByID(ctx context.Context, id uint) (*Permission, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Permission, error)
	List(ctx context.Context) ([]*Permission, error)
	ListActive(ctx context.Context) ([]*Permission, error)
	ListBySubModule(ctx context.Context, subModuleID uint) ([]*Permission, error)
	Update(ctx context.Context, permission *Permission) error
	Delete(ctx context.Context, id uint) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	NameExists(ctx context.Context, subModuleID uint, name string, excludeID uint) (bool, error)
}

type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	GetByID(ctx context.Context, id uint) (*Role, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*Role, error)
	List(ctx context.Context) ([]*Role, error)
	ListActive(ctx context.Context) ([]*Role, error)
	Update(ctx context.Context, role *Role) error
	Delete(ctx context.Context, id uint) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
	NameExists(ctx context.Context, name string, excludeID uint) (bool, error)

	// GetPermissions returns the role's permissions in grant order.
	GetPermissions(ctx context.Context, roleID uint) ([]*Permission, error)
	// AssignPermission reports false when the pair already exists.
	AssignPermission(ctx context.Context, roleID, permissionID uint) (bool, error)
	// RevokePermission reports false when the pair did not exist.
	RevokePermission(ctx context.Context, roleID, permissionID uint) (bool, error)
	ReplacePermissions(ctx context.Context, roleID uint, permissionIDs []uint) error
}

// GrantReader resolves the active grant graph: active roles, and permissions
// whose sub-module and module are active too.
type GrantReader interface {
	EffectivePermissions(ctx context.Context, userID uint) ([]*Permission, error)
	HasPermission(ctx context.Context, userID, permissionID uint) (bool, error)
	ActiveRoleGrants(ctx context.Context) ([]RoleGrant, error)
	ActiveRoleAssignments(ctx context.Context) ([]RoleAssignment, error)
}
