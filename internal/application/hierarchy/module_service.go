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

type ModuleService struct {
	modules permission.ModuleRepository
	tx      db.Transactor
	clock   biztime.Clock
	logger  logger.Interface
}

func NewModuleService(
	modules permission.ModuleRepository,
	tx db.Transactor,
	clock biztime.Clock,
	logger logger.Interface,
) *ModuleService {
	return &ModuleService{
		modules: modules,
		tx:      tx,
		clock:   clock,
		logger:  logger,
	}
}

func (s *ModuleService) List(ctx context.Context) ([]*permission.Module, error) {
	return s.modules.List(ctx)
}

// ListActive returns active modules, each carrying only its active sub-modules.
func (s *ModuleService) ListActive(ctx context.Context) ([]*permission.Module, error) {
	return s.modules.ListActive(ctx)
}

func (s *ModuleService) Get(ctx context.Context, id uint) (*permission.Module, error) {
	if err := utils.ValidateID("module id", id); err != nil {
		return nil, err
	}
	module, err := s.modules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, notFound("module", id)
	}
	return module, nil
}

func (s *ModuleService) Create(ctx context.Context, cmd dto.CreateModuleCommand) (*permission.Module, error) {
	s.logger.Infow("executing create module", "name", cmd.Name)

	if err := utils.ValidateStruct(cmd); err != nil {
		s.logger.Warnw("invalid create module command", "error", err)
		return nil, err
	}

	module, err := permission.NewModule(permission.ModuleAttrs{
		Name:        cmd.Name,
		Description: cmd.Description,
		Icon:        cmd.Icon,
		IsActive:    cmd.IsActive,
		SortOrder:   cmd.SortOrder,
	}, s.clock.Now())
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		taken, err := s.modules.NameExists(ctx, module.Name(), 0)
		if err != nil {
			return err
		}
		if taken {
			return nameConflict("module", module.Name())
		}
		return s.modules.Create(ctx, module)
	})
	if err != nil {
		s.logger.Errorw("failed to create module", "name", cmd.Name, "error", err)
		return nil, err
	}

	s.logger.Infow("module created successfully", "module_id", module.ID())
	return module, nil
}

func (s *ModuleService) Update(ctx context.Context, cmd dto.UpdateModuleCommand) (*permission.Module, error) {
	s.logger.Infow("executing update module", "module_id", cmd.ID)

	if err := utils.ValidateStruct(cmd); err != nil {
		s.logger.Warnw("invalid update module command", "error", err)
		return nil, err
	}

	var module *permission.Module
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.modules.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return notFound("module", cmd.ID)
		}
		if err := checkVersion("module", cmd.ID, cmd.Version, existing.Version()); err != nil {
			return err
		}

		if err := existing.Update(permission.ModuleAttrs{
			Name:        cmd.Name,
			Description: cmd.Description,
			Icon:        cmd.Icon,
			IsActive:    cmd.IsActive,
			SortOrder:   cmd.SortOrder,
		}, s.clock.Now()); err != nil {
			return err
		}

		taken, err := s.modules.NameExists(ctx, existing.Name(), existing.ID())
		if err != nil {
			return err
		}
		if taken {
			return nameConflict("module", existing.Name())
		}

		if err := s.modules.Update(ctx, existing); err != nil {
			return err
		}
		module = existing
		return nil
	})
	if err != nil {
		s.logger.Errorw("failed to update module", "module_id", cmd.ID, "error", err)
		return nil, err
	}

	s.logger.Infow("module updated successfully", "module_id", module.ID(), "version", module.Version())
	return module, nil
}

// Delete removes the module with its sub-modules, their permissions and the
// role grants of those permissions. It reports false when nothing existed.
func (s *ModuleService) Delete(ctx context.Context, id uint) (bool, error) {
	if err := utils.ValidateID("module id", id); err != nil {
		return false, err
	}

	var deleted bool
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.modules.Delete(ctx, id)
		return err
	})
	if err != nil {
		s.logger.Errorw("failed to delete module", "module_id", id, "error", err)
		return false, fmt.Errorf("failed to delete module: %w", err)
	}

	if deleted {
		s.logger.Infow("module deleted", "module_id", id)
	}
	return deleted, nil
}

func (s *ModuleService) Exists(ctx context.Context, id uint) (bool, error) {
	return s.modules.Exists(ctx, id)
}

func (s *ModuleService) NameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	return s.modules.NameExists(ctx, name, excludeID)
}
