package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"warden/internal/domain/permission"
	"warden/internal/shared/db"
)

// GrantRepositoryImpl reads the active grant graph. Every query re-reads the
// store; nothing is cached between calls.
type GrantRepositoryImpl struct {
	db *gorm.DB
}

func NewGrantRepository(db *gorm.DB) permission.GrantReader {
	return &GrantRepositoryImpl{db: db}
}

// userGrantedPermissionIDs selects ids of permissions granted to userID
// through any active role.
func userGrantedPermissionIDs(tx *gorm.DB, userID uint) *gorm.DB {
	return tx.Table("role_permissions rp").
		Select("rp.permission_id").
		Joins("JOIN roles r ON r.id = rp.role_id").
		Joins("JOIN user_roles ur ON ur.role_id = r.id").
		Where("ur.user_id = ?", userID).
		Scopes(db.ActiveOnly("r"))
}

// EffectivePermissions returns each reachable permission once, in the same
// order as the active permission listing.
func (r *GrantRepositoryImpl) EffectivePermissions(ctx context.Context, userID uint) ([]*permission.Permission, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := permissionRows(tx).
		Scopes(db.ActiveChain("p", "s", "m")).
		Where("p.id IN (?)", userGrantedPermissionIDs(tx, userID)).
		Order(permissionListOrder)
	return scanPermissions(query)
}

func (r *GrantRepositoryImpl) HasPermission(ctx context.Context, userID, permissionID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	err := tx.Table("permissions p").
		Joins("JOIN sub_modules s ON s.id = p.sub_module_id").
		Joins("JOIN modules m ON m.id = s.module_id").
		Scopes(db.ActiveChain("p", "s", "m")).
		Where("p.id = ?", permissionID).
		Where("p.id IN (?)", userGrantedPermissionIDs(tx, userID)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check user permission: %w", err)
	}
	return count > 0, nil
}

// ActiveRoleGrants lists role to permission edges where the role and the
// permission's whole chain are active.
func (r *GrantRepositoryImpl) ActiveRoleGrants(ctx context.Context) ([]permission.RoleGrant, error) {
	var grants []permission.RoleGrant
	err := db.GetTxFromContext(ctx, r.db).
		Table("role_permissions rp").
		Select("rp.role_id AS role_id, rp.permission_id AS permission_id").
		Joins("JOIN roles r ON r.id = rp.role_id").
		Joins("JOIN permissions p ON p.id = rp.permission_id").
		Joins("JOIN sub_modules s ON s.id = p.sub_module_id").
		Joins("JOIN modules m ON m.id = s.module_id").
		Scopes(db.ActiveOnly("r"), db.ActiveChain("p", "s", "m")).
		Order("rp.role_id, rp.permission_id").
		Scan(&grants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list role grants: %w", err)
	}
	return grants, nil
}

// ActiveRoleAssignments lists user to role edges for active roles.
func (r *GrantRepositoryImpl) ActiveRoleAssignments(ctx context.Context) ([]permission.RoleAssignment, error) {
	var assignments []permission.RoleAssignment
	err := db.GetTxFromContext(ctx, r.db).
		Table("user_roles ur").
		Select("ur.user_id AS user_id, ur.role_id AS role_id").
		Joins("JOIN roles r ON r.id = ur.role_id").
		Scopes(db.ActiveOnly("r")).
		Order("ur.user_id, ur.role_id").
		Scan(&assignments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list role assignments: %w", err)
	}
	return assignments, nil
}
