package hierarchy

import (
	"context"
	"fmt"

	"warden/internal/application/hierarchy/dto"
	"warden/internal/domain/permission"
	"warden/internal/shared/biztime"
	"warden/internal/shared/db"
	"warden/internal/shared/logger"
	"warden/internal/shared/utils"
)

type PermissionService struct {
	permissions permission.PermissionRepository
	subModules  permission.SubModuleRepository
	tx          db.Transactor
	clock       biztime.Clock
	logger      logger.Interface
}

func NewPermissionService(
	permissions permission.PermissionRepository,
	subModules permission.SubModuleRepository,
	tx db.Transactor,
	clock biztime.Clock,
	logger logger.Interface,
) *PermissionService {
	return &PermissionService{
		permissions: permissions,
		subModules:  subModules,
		tx:          tx,
		clock:       clock,
		logger:      logger,
	}
}

// List orders permissions by module name, sub-module name and name.
func (s *PermissionService) List(ctx context.Context) ([]*permission.Permission, error) {
	return s.permissions.List(ctx)
}

func (s *PermissionService) ListActive(ctx context.Context) ([]*permission.Permission, error) {
	return s.permissions.ListActive(ctx)
}

func (s *PermissionService) ListBySubModule(ctx context.Context, subModuleID uint) ([]*permission.Permission, error) {
	if err := utils.ValidateID("sub-module id", subModuleID); err != nil {
		return nil, err
	}
	return s.permissions.ListBySubModule(ctx, subModuleID)
}

func (s *PermissionService) Get(ctx context.Context, id uint) (*permission.Permission, error) {
	if err := utils.ValidateID("permission id", id); err != nil {
		return nil, err
	}
	p, err := s.permissions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("permission", id)
	}
	return p, nil
}

func (s *PermissionService) checkScope(ctx context.Context, subModuleID uint, name string, excludeID uint) error {
	found, err := s.subModules.Exists(ctx, subModuleID)
	if err != nil {
		return err
	}
	if !found {
		return notFound("sub-module", subModuleID)
	}

	taken, err := s.permissions.NameExists(ctx, subModuleID, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return nameConflict("permission", name)
	}
	return nil
}

func (s *PermissionService) Create(ctx context.Context, cmd dto.CreatePermissionCommand) (*permission.Permission, error) {
	s.logger.Infow("executing create permission", "sub_module_id", cmd.SubModuleID, "name", cmd.Name)

	if err := utils.ValidateStruct(cmd); err != nil {
		s.logger.Warnw("invalid create permission command", "error", err)
		return nil, err
	}

	p, err := permission.NewPermission(permission.PermissionAttrs{
		SubModuleID: cmd.SubModuleID,
		Name:        cmd.Name,
		Description: cmd.Description,
		IsActive:    cmd.IsActive,
	}, s.clock.Now())
	if err != nil {
		return nil, err
	}

	var created *permission.Permission
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkScope(ctx, p.SubModuleID(), p.Name(), 0); err != nil {
			return err
		}
		if err := s.permissions.Create(ctx, p); err != nil {
			return err
		}
		var err error
		created, err = s.permissions.GetByID(ctx, p.ID())
		return err
	})
	if err != nil {
		s.logger.Errorw("failed to create permission", "name", cmd.Name, "error", err)
		return nil, err
	}

	s.logger.Infow("permission created successfully", "permission_id", created.ID())
	return created, nil
}

// Update replaces the permission's fields. Moving it to another sub-module
// re-checks the name inside the new sub-module.
func (s *PermissionService) Update(ctx context.Context, cmd dto.UpdatePermissionCommand) (*permission.Permission, error) {
	s.logger.Infow("executing update permission", "permission_id", cmd.ID)

	if err := utils.ValidateStruct(cmd); err != nil {
		s.logger.Warnw("invalid update permission command", "error", err)
		return nil, err
	}

	var updated *permission.Permission
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.permissions.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return notFound("permission", cmd.ID)
		}
		if err := checkVersion("permission", cmd.ID, cmd.Version, existing.Version()); err != nil {
			return err
		}

		if err := existing.Update(permission.PermissionAttrs{
			SubModuleID: cmd.SubModuleID,
			Name:        cmd.Name,
			Description: cmd.Description,
			IsActive:    cmd.IsActive,
		}, s.clock.Now()); err != nil {
			return err
		}

		if err := s.checkScope(ctx, existing.SubModuleID(), existing.Name(), existing.ID()); err != nil {
			return err
		}
		if err := s.permissions.Update(ctx, existing); err != nil {
			return err
		}

		updated, err = s.permissions.GetByID(ctx, existing.ID())
		return err
	})
	if err != nil {
		s.logger.Errorw("failed to update permission", "permission_id", cmd.ID, "error", err)
		return nil, err
	}

	s.logger.Infow("permission updated successfully", "permission_id", updated.ID(), "version", updated.Version())
	return updated, nil
}

// Delete removes the permission and every role grant of it.
func (s *PermissionService) Delete(ctx context.Context, id uint) (bool, error) {
	if err := utils.ValidateID("permission id", id); err != nil {
		return false, err
	}

	var deleted bool
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.permissions.Delete(ctx, id)
		return err
	})
	if err != nil {
		s.logger.Errorw("failed to delete permission", "permission_id", id, "error", err)
		return false, fmt.Errorf("failed to delete permission: %w", err)
	}

	if deleted {
		s.logger.Infow("permission deleted", "permission_id", id)
	}
	return deleted, nil
}

func (s *PermissionService) Exists(ctx context.Context, id uint) (bool, error) {
	return s.permissions.Exists(ctx, id)
}

func (s *PermissionService) NameExists(ctx context.Context, subModuleID uint, name string, excludeID uint) (bool, error) {
	return s.permissions.NameExists(ctx, subModuleID, name, excludeID)
}
