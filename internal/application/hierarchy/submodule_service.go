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

type SubModuleService struct {
	subModules permission.SubModuleRepository
	modules    permission.ModuleRepository
	tx         db.Transactor
	clock      biztime.Clock
	logger     logger.Interface
}

func NewSubModuleService(
	subModules permission.SubModuleRepository,
	modules permission.ModuleRepository,
	tx db.Transactor,
	clock biztime.Clock,
	logger logger.Interface,
) *SubModuleService {
	return &SubModuleService{
		subModules: subModules,
		modules:    modules,
		tx:         tx,
		clock:      clock,
		logger:     logger,
	}
}

func (s *SubModuleService) List(ctx context.Context) ([]*permission.SubModule, error) {
	return s.subModules.List(ctx)
}

// ListActive skips sub-modules that are inactive or sit under an inactive module.
func (s *SubModuleService) ListActive(ctx context.Context) ([]*permission.SubModule, error) {
	return s.subModules.ListActive(ctx)
}

func (s *SubModuleService) ListByModule(ctx context.Context, moduleID uint) ([]*permission.SubModule, error) {
	if err := utils.ValidateID("module id", moduleID); err != nil {
		return nil, err
	}
	return s.subModules.ListByModule(ctx, moduleID)
}

func (s *SubModuleService) Get(ctx context.Context, id uint) (*permission.SubModule, error) {
	if err := utils.ValidateID("sub-module id", id); err != nil {
		return nil, err
	}
	subModule, err := s.subModules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if subModule == nil {
		return nil, notFound("sub-module", id)
	}
	return subModule, nil
}

// checkScope verifies the parent module exists and the name is free in it.
func (s *SubModuleService) checkScope(ctx context.Context, moduleID uint, name string, excludeID uint) error {
	found, err := s.modules.Exists(ctx, moduleID)
	if err != nil {
		return err
	}
	if !found {
		return notFound("module", moduleID)
	}

	taken, err := s.subModules.NameExists(ctx, moduleID, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return nameConflict("sub-module", name)
	}
	return nil
}

func (s *SubModuleService) Create(ctx context.Context, cmd dto.CreateSubModuleCommand) (*permission.SubModule, error) {
	s.logger.Infow("executing create sub-module", "module_id", cmd.ModuleID, "name", cmd.Name)

	if err := utils.ValidateStruct(cmd); err != nil {
		s.logger.Warnw("invalid create sub-module command", "error", err)
		return nil, err
	}

	subModule, err := permission.NewSubModule(permission.SubModuleAttrs{
		ModuleID:    cmd.ModuleID,
		Name:        cmd.Name,
		Description: cmd.Description,
		Icon:        cmd.Icon,
		URL:         cmd.URL,
		IsActive:    cmd.IsActive,
		SortOrder:   cmd.SortOrder,
	}, s.clock.Now())
	if err != nil {
		return nil, err
	}

	var created *permission.SubModule
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkScope(ctx, subModule.ModuleID(), subModule.Name(), 0); err != nil {
			return err
		}
		if err := s.subModules.Create(ctx, subModule); err != nil {
			return err
		}
		var err error
		created, err = s.subModules.GetByID(ctx, subModule.ID())
		return err
	})
	if err != nil {
		s.logger.Errorw("failed to create sub-module", "name", cmd.Name, "error", err)
		return nil, err
	}

	s.logger.Infow("sub-module created successfully", "sub_module_id", created.ID())
	return created, nil
}

// Update replaces the sub-module's fields. Moving it to another module
// re-checks the name inside the new module.
func (s *SubModuleService) Update(ctx context.Context, cmd dto.UpdateSubModuleCommand) (*permission.SubModule, error) {
	s.logger.Infow("executing update sub-module", "sub_module_id", cmd.ID)

	if err := utils.ValidateStruct(cmd); err != nil {
		s.logger.Warnw("invalid update sub-module command", "error", err)
		return nil, err
	}

	var updated *permission.SubModule
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.subModules.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return notFound("sub-module", cmd.ID)
		}
		if err := checkVersion("sub-module", cmd.ID, cmd.Version, existing.Version()); err != nil {
			return err
		}

		if err := existing.Update(permission.SubModuleAttrs{
			ModuleID:    cmd.ModuleID,
			Name:        cmd.Name,
			Description: cmd.Description,
			Icon:        cmd.Icon,
			URL:         cmd.URL,
			IsActive:    cmd.IsActive,
			SortOrder:   cmd.SortOrder,
		}, s.clock.Now()); err != nil {
			return err
		}

		if err := s.checkScope(ctx, existing.ModuleID(), existing.Name(), existing.ID()); err != nil {
			return err
		}
		if err := s.subModules.Update(ctx, existing); err != nil {
			return err
		}

		updated, err = s.subModules.GetByID(ctx, existing.ID())
		return err
	})
	if err != nil {
		s.logger.Errorw("failed to update sub-module", "sub_module_id", cmd.ID, "error", err)
		return nil, err
	}

	s.logger.Infow("sub-module updated successfully", "sub_module_id", updated.ID(), "version", updated.Version())
	return updated, nil
}

// Delete removes the sub-module, its permissions and their role grants.
func (s *SubModuleService) Delete(ctx context.Context, id uint) (bool, error) {
	if err := utils.ValidateID("sub-module id", id); err != nil {
		return false, err
	}

	var deleted bool
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.subModules.Delete(ctx, id)
		return err
	})
	if err != nil {
		s.logger.Errorw("failed to delete sub-module", "sub_module_id", id, "error", err)
		return false, fmt.Errorf("failed to delete sub-module: %w", err)
	}

	if deleted {
		s.logger.Infow("sub-module deleted", "sub_module_id", id)
	}
	return deleted, nil
}

func (s *SubModuleService) Exists(ctx context.Context, id uint) (bool, error) {
	return s.subModules.Exists(ctx, id)
}

func (s *SubModuleService) NameExists(ctx context.Context, moduleID uint, name string, excludeID uint) (bool, error) {
	return s.subModules.NameExists(ctx, moduleID, name, excludeID)
}
