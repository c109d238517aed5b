package repository

import (
	"context"
	"fmt"

	"warden/internal/domain/permission"
	"warden/internal/infrastructure/persistence/mappers"
	"warden/internal/infrastructure/persistence/models"
	"warden/internal/shared/constants"
	"warden/internal/shared/db"
)

// GetRoles returns the user's roles in the order they were assigned.
func (r *UserRepositoryImpl) GetRoles(ctx context.Context, userID uint) ([]*permission.Role, error) {
	var roleModels []*models.RoleModel
	err := db.GetTxFromContext(ctx, r.db).
		Table(constants.TableRoles).
		Joins("INNER JOIN "+constants.TableUserRoles+" ur ON "+constants.TableRoles+".id = ur.role_id").
		Where("ur.user_id = ?", userID).
		Order("ur.id").
		Find(&roleModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user roles: %w", err)
	}

	roles, err := mappers.RolesToEntities(roleModels)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []*permission.Role{}
	}
	return roles, nil
}

func (r *UserRepositoryImpl) AssignRole(ctx context.Context, userID, roleID uint) (bool, error) {
	pair := &models.UserRoleModel{
		UserID:    userID,
		RoleID:    roleID,
		CreatedAt: r.clock.Now(),
	}
	inserted, err := insertPair(db.GetTxFromContext(ctx, r.db), pair, "user_id = ? AND role_id = ?", userID, roleID)
	if err != nil {
		return false, fmt.Errorf("failed to assign role to user: %w", err)
	}
	return inserted, nil
}

func (r *UserRepositoryImpl) RemoveRole(ctx context.Context, userID, roleID uint) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&models.UserRoleModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to remove role from user: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
