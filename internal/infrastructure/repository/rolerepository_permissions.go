package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"warden/internal/domain/permission"
	"warden/internal/infrastructure/persistence/models"
	"warden/internal/shared/db"
	"warden/internal/shared/errors"
)

// GetPermissions returns the role's permissions in the order they were granted.
func (r *RoleRepositoryImpl) GetPermissions(ctx context.Context, roleID uint) ([]*permission.Permission, error) {
	query := permissionRows(db.GetTxFromContext(ctx, r.db)).
		Joins("JOIN role_permissions rp ON rp.permission_id = p.id").
		Where("rp.role_id = ?", roleID).
		Order("rp.id")
	return scanPermissions(query)
}

func (r *RoleRepositoryImpl) AssignPermission(ctx context.Context, roleID, permissionID uint) (bool, error) {
	pair := &models.RolePermissionModel{
		RoleID:       roleID,
		PermissionID: permissionID,
		CreatedAt:    r.clock.Now(),
	}
	inserted, err := insertPair(db.GetTxFromContext(ctx, r.db), pair, "role_id = ? AND permission_id = ?", roleID, permissionID)
	if err != nil {
		return false, fmt.Errorf("failed to assign permission to role: %w", err)
	}
	return inserted, nil
}

func (r *RoleRepositoryImpl) RevokePermission(ctx context.Context, roleID, permissionID uint) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("role_id = ? AND permission_id = ?", roleID, permissionID).
		Delete(&models.RolePermissionModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to revoke permission from role: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ReplacePermissions makes permissionIDs the role's exact grant set. Grants
// that survive keep their original position; new ones are appended.
func (r *RoleRepositoryImpl) ReplacePermissions(ctx context.Context, roleID uint, permissionIDs []uint) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		stale := tx.Where("role_id = ?", roleID)
		if len(permissionIDs) > 0 {
			stale = stale.Where("permission_id NOT IN ?", permissionIDs)
		}
		if err := stale.Delete(&models.RolePermissionModel{}).Error; err != nil {
			return fmt.Errorf("failed to remove role grants: %w", err)
		}

		now := r.clock.Now()
		for _, permissionID := range permissionIDs {
			pair := &models.RolePermissionModel{RoleID: roleID, PermissionID: permissionID, CreatedAt: now}
			if _, err := insertPair(tx, pair, "role_id = ? AND permission_id = ?", roleID, permissionID); err != nil {
				return fmt.Errorf("failed to grant permission %d: %w", permissionID, err)
			}
		}
		return nil
	})
}

// insertPair inserts a join row unless the pair already exists. A unique
// index hit from a concurrent writer counts as "already exists".
func insertPair(tx *gorm.DB, pair interface{}, query string, args ...interface{}) (bool, error) {
	found, err := exists(tx, pair, query, args...)
	if err != nil {
		return false, err
	}
	if found {
		return false, nil
	}
	if err := tx.Create(pair).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
