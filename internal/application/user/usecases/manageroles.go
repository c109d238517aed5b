package usecases

import (
	"context"
	"fmt"

	"warden/internal/domain/permission"
	domainUser "warden/internal/domain/user"
	"warden/internal/shared/db"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

// ManageRolesUseCase links users to roles.
type ManageRolesUseCase struct {
	userRepo domainUser.Repository
	roleRepo permission.RoleRepository
	tx       db.Transactor
	logger   logger.Interface
}

func NewManageRolesUseCase(
	userRepo domainUser.Repository,
	roleRepo permission.RoleRepository,
	tx db.Transactor,
	logger logger.Interface,
) *ManageRolesUseCase {
	return &ManageRolesUseCase{
		userRepo: userRepo,
		roleRepo: roleRepo,
		tx:       tx,
		logger:   logger,
	}
}

func userNotFound(id uint) error {
	return errors.NewNotFoundError("user not found", fmt.Sprintf("id=%d", id))
}

// GetRoles lists the user's roles, inactive ones included.
func (uc *ManageRolesUseCase) GetRoles(ctx context.Context, userID uint) ([]*permission.Role, error) {
	found, err := uc.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, userNotFound(userID)
	}
	return uc.userRepo.GetRoles(ctx, userID)
}

// AssignRole reports false when the user already holds the role.
func (uc *ManageRolesUseCase) AssignRole(ctx context.Context, userID, roleID uint) (bool, error) {
	var inserted bool
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		found, err := uc.userRepo.Exists(ctx, userID)
		if err != nil {
			return err
		}
		if !found {
			return userNotFound(userID)
		}

		found, err = uc.roleRepo.Exists(ctx, roleID)
		if err != nil {
			return err
		}
		if !found {
			return errors.NewNotFoundError("role not found", fmt.Sprintf("id=%d", roleID))
		}

		inserted, err = uc.userRepo.AssignRole(ctx, userID, roleID)
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to assign role", "user_id", userID, "role_id", roleID, "error", err)
		return false, err
	}

	if inserted {
		uc.logger.Infow("role assigned to user", "user_id", userID, "role_id", roleID)
	}
	return inserted, nil
}

// RemoveRole reports false when the user did not hold the role.
func (uc *ManageRolesUseCase) RemoveRole(ctx context.Context, userID, roleID uint) (bool, error) {
	var removed bool
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		removed, err = uc.userRepo.RemoveRole(ctx, userID, roleID)
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to remove role", "user_id", userID, "role_id", roleID, "error", err)
		return false, err
	}

	if removed {
		uc.logger.Infow("role removed from user", "user_id", userID, "role_id", roleID)
	}
	return removed, nil
}
