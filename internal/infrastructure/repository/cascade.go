package repository

import (
	"fmt"

	"gorm.io/gorm"

	"warden/internal/infrastructure/persistence/models"
)

// The cascade helpers delete dependants child-first so the graph never holds
// a dangling reference, whatever the database's foreign key support.

func deleteGrantsOfPermissions(tx *gorm.DB, permissionIDs []uint) error {
	if len(permissionIDs) == 0 {
		return nil
	}
	if err := tx.Where("permission_id IN ?", permissionIDs).Delete(&models.RolePermissionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete role grants: %w", err)
	}
	return nil
}

func deletePermissionsCascade(tx *gorm.DB, permissionIDs []uint) error {
	if len(permissionIDs) == 0 {
		return nil
	}
	if err := deleteGrantsOfPermissions(tx, permissionIDs); err != nil {
		return err
	}
	if err := tx.Where("id IN ?", permissionIDs).Delete(&models.PermissionModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete permissions: %w", err)
	}
	return nil
}

func deleteSubModulesCascade(tx *gorm.DB, subModuleIDs []uint) error {
	if len(subModuleIDs) == 0 {
		return nil
	}
	permissionIDs, err := pluckIDs(tx, &models.PermissionModel{}, "sub_module_id", subModuleIDs)
	if err != nil {
		return fmt.Errorf("failed to collect permissions: %w", err)
	}
	if err := deletePermissionsCascade(tx, permissionIDs); err != nil {
		return err
	}
	if err := tx.Where("id IN ?", subModuleIDs).Delete(&models.SubModuleModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete sub-modules: %w", err)
	}
	return nil
}

func deleteModuleCascade(tx *gorm.DB, moduleID uint) (bool, error) {
	subModuleIDs, err := pluckIDs(tx, &models.SubModuleModel{}, "module_id", []uint{moduleID})
	if err != nil {
		return false, fmt.Errorf("failed to collect sub-modules: %w", err)
	}
	if err := deleteSubModulesCascade(tx, subModuleIDs); err != nil {
		return false, err
	}
	result := tx.Delete(&models.ModuleModel{}, moduleID)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete module: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func deleteRoleCascade(tx *gorm.DB, roleID uint) (bool, error) {
	if err := tx.Where("role_id = ?", roleID).Delete(&models.UserRoleModel{}).Error; err != nil {
		return false, fmt.Errorf("failed to delete role assignments: %w", err)
	}
	if err := tx.Where("role_id = ?", roleID).Delete(&models.RolePermissionModel{}).Error; err != nil {
		return false, fmt.Errorf("failed to delete role grants: %w", err)
	}
	result := tx.Delete(&models.RoleModel{}, roleID)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete role: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func deleteUserCascade(tx *gorm.DB, userID uint) (bool, error) {
	if err := tx.Where("user_id = ?", userID).Delete(&models.UserRoleModel{}).Error; err != nil {
		return false, fmt.Errorf("failed to delete user roles: %w", err)
	}
	result := tx.Delete(&models.UserModel{}, userID)
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete user: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
