// Package role manages roles and the permissions granted to them.
package role

import (
	"context"
	"fmt"

	"warden/internal/application/role/dto"
	"warden/internal/domain/permission"
	"warden/internal/shared/biztime"
	"warden/internal/shared/db"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
	"warden/internal/shared/utils"
	"warden/internal/shared/utils/setutil"
)

type Service struct {
	roles       permission.RoleRepository
	permissions permission.PermissionRepository
	tx          db.Transactor
	clock       biztime.Clock
	logger      logger.Interface
}

func NewService(
	roles permission.RoleRepository,
	permissions permission.PermissionRepository,
	tx db.Transactor,
	clock biztime.Clock,
	logger logger.Interface,
) *Service {
	return &Service{
		roles:       roles,
		permissions: permissions,
		tx:          tx,
		clock:       clock,
		logger:      logger,
	}
}

func roleNotFound(id uint) error {
	return errors.NewNotFoundError("role not found", fmt.Sprintf("id=%d", id))
}

func (s *Service) List(ctx context.Context) ([]*permission.Role, error) {
	return s.roles.List(ctx)
}

func (s *Service) ListActive(ctx context.Context) ([]*permission.Role, error) {
	return s.roles.ListActive(ctx)
}

// Get returns the role with its permissions attached.
func (s *Service) Get(ctx context.Context, id uint) (*permission.Role, error) {
	if err := utils.ValidateID("role id", id); err != nil {
		return nil, err
	}
	r, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, roleNotFound(id)
	}

	perms, err := s.roles.GetPermissions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get role permissions: %w", err)
	}
	r.SetPermissions(perms)
	return r, nil
}

func (s *Service) Create(ctx context.Context, cmd dto.CreateRoleCommand) (*permission.Role, error) {
	s.logger.Infow("executing create role", "name", cmd.Name)

	if err := utils.ValidateStruct(cmd); err != nil {
		s.logger.Warnw("invalid create role command", "error", err)
		return nil, err
	}

	r, err := permission.NewRole(permission.RoleAttrs{
		Name:        cmd.Name,
		Description: cmd.Description,
		IsActive:    cmd.IsActive,
	}, s.clock.Now())
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		taken, err := s.roles.NameExists(ctx, r.Name(), 0)
		if err != nil {
			return err
		}
		if taken {
			return errors.NewConflictError("role name already exists", r.Name())
		}
		return s.roles.Create(ctx, r)
	})
	if err != nil {
		s.logger.Errorw("failed to create role", "name", cmd.Name, "error", err)
		return nil, err
	}

	s.logger.Infow("role created successfully", "role_id", r.ID())
	return r, nil
}

func (s *Service) Update(ctx context.Context, cmd dto.UpdateRoleCommand) (*permission.Role, error) {
	s.logger.Infow("executing update role", "role_id", cmd.ID)

	if err := utils.ValidateStruct(cmd); err != nil {
		s.logger.Warnw("invalid update role command", "error", err)
		return nil, err
	}

	var updated *permission.Role
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.roles.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return roleNotFound(cmd.ID)
		}
		if cmd.Version != 0 && cmd.Version != existing.Version() {
			return errors.NewWriteConflictError("role was modified by another request",
				fmt.Sprintf("id=%d expected_version=%d current_version=%d", cmd.ID, cmd.Version, existing.Version()))
		}

		if err := existing.Update(permission.RoleAttrs{
			Name:        cmd.Name,
			Description: cmd.Description,
			IsActive:    cmd.IsActive,
		}, s.clock.Now()); err != nil {
			return err
		}

		taken, err := s.roles.NameExists(ctx, existing.Name(), existing.ID())
		if err != nil {
			return err
		}
		if taken {
			return errors.NewConflictError("role name already exists", existing.Name())
		}

		if err := s.roles.Update(ctx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		s.logger.Errorw("failed to update role", "role_id", cmd.ID, "error", err)
		return nil, err
	}

	s.logger.Infow("role updated successfully", "role_id", updated.ID(), "version", updated.Version())
	return updated, nil
}

// Delete removes the role, its grants and every user assignment of it.
func (s *Service) Delete(ctx context.Context, id uint) (bool, error) {
	if err := utils.ValidateID("role id", id); err != nil {
		return false, err
	}

	var deleted bool
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.roles.Delete(ctx, id)
		return err
	})
	if err != nil {
		s.logger.Errorw("failed to delete role", "role_id", id, "error", err)
		return false, fmt.Errorf("failed to delete role: %w", err)
	}

	if deleted {
		s.logger.Infow("role deleted", "role_id", id)
	}
	return deleted, nil
}

func (s *Service) Exists(ctx context.Context, id uint) (bool, error) {
	return s.roles.Exists(ctx, id)
}

func (s *Service) NameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	return s.roles.NameExists(ctx, name, excludeID)
}

// GetPermissions lists the role's grants in the order they were made.
func (s *Service) GetPermissions(ctx context.Context, roleID uint) ([]*permission.Permission, error) {
	if err := utils.ValidateID("role id", roleID); err != nil {
		return nil, err
	}
	found, err := s.roles.Exists(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, roleNotFound(roleID)
	}
	return s.roles.GetPermissions(ctx, roleID)
}

func (s *Service) requirePair(ctx context.Context, roleID, permissionID uint) error {
	found, err := s.roles.Exists(ctx, roleID)
	if err != nil {
		return err
	}
	if !found {
		return roleNotFound(roleID)
	}

	found, err = s.permissions.Exists(ctx, permissionID)
	if err != nil {
		return err
	}
	if !found {
		return errors.NewNotFoundError("permission not found", fmt.Sprintf("id=%d", permissionID))
	}
	return nil
}

// AssignPermission grants the permission to the role. Granting an existing
// pair again succeeds and reports false.
func (s *Service) AssignPermission(ctx context.Context, roleID, permissionID uint) (bool, error) {
	if err := utils.ValidateID("role id", roleID); err != nil {
		return false, err
	}
	if err := utils.ValidateID("permission id", permissionID); err != nil {
		return false, err
	}

	var inserted bool
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.requirePair(ctx, roleID, permissionID); err != nil {
			return err
		}
		var err error
		inserted, err = s.roles.AssignPermission(ctx, roleID, permissionID)
		return err
	})
	if err != nil {
		s.logger.Errorw("failed to assign permission", "role_id", roleID, "permission_id", permissionID, "error", err)
		return false, err
	}

	if inserted {
		s.logger.Infow("permission assigned to role", "role_id", roleID, "permission_id", permissionID)
	}
	return inserted, nil
}

// RevokePermission reports false when the role did not hold the permission.
func (s *Service) RevokePermission(ctx context.Context, roleID, permissionID uint) (bool, error) {
	var removed bool
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		removed, err = s.roles.RevokePermission(ctx, roleID, permissionID)
		return err
	})
	if err != nil {
		s.logger.Errorw("failed to revoke permission", "role_id", roleID, "permission_id", permissionID, "error", err)
		return false, err
	}

	if removed {
		s.logger.Infow("permission revoked from role", "role_id", roleID, "permission_id", permissionID)
	}
	return removed, nil
}

// SetPermissions makes the role hold exactly the given permissions. Every
// id must exist; nothing changes otherwise.
func (s *Service) SetPermissions(ctx context.Context, cmd dto.SetPermissionsCommand) error {
	if err := utils.ValidateStruct(cmd); err != nil {
		return err
	}

	ids := setutil.Dedupe(cmd.PermissionIDs)

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		found, err := s.roles.Exists(ctx, cmd.RoleID)
		if err != nil {
			return err
		}
		if !found {
			return roleNotFound(cmd.RoleID)
		}

		if len(ids) > 0 {
			perms, err := s.permissions.GetByIDs(ctx, ids)
			if err != nil {
				return err
			}
			if len(perms) != len(ids) {
				return errors.NewNotFoundError("permission not found", missingIDs(ids, perms)...)
			}
		}

		return s.roles.ReplacePermissions(ctx, cmd.RoleID, ids)
	})
	if err != nil {
		s.logger.Errorw("failed to set role permissions", "role_id", cmd.RoleID, "error", err)
		return err
	}

	s.logger.Infow("role permissions replaced", "role_id", cmd.RoleID, "count", len(ids))
	return nil
}

func missingIDs(ids []uint, found []*permission.Permission) []string {
	have := setutil.NewUintSetWithCap(len(found))
	for _, p := range found {
		have.Add(p.ID())
	}
	var missing []string
	for _, id := range have.Missing(ids) {
		missing = append(missing, fmt.Sprintf("id=%d", id))
	}
	return missing
}
