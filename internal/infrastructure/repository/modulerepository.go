package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"warden/internal/domain/permission"
	"warden/internal/domain/shared"
	"warden/internal/infrastructure/persistence/mappers"
	"warden/internal/infrastructure/persistence/models"
	"warden/internal/shared/db"
)

type ModuleRepositoryImpl struct {
	db *gorm.DB
}

func NewModuleRepository(db *gorm.DB) permission.ModuleRepository {
	return &ModuleRepositoryImpl{db: db}
}

func (r *ModuleRepositoryImpl) Create(ctx context.Context, module *permission.Module) error {
	model := mappers.ModuleToModel(module)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return writeError(err, "module", "create")
	}

	return module.SetID(model.ID)
}

// GetByID returns the module with all of its sub-modules attached.
func (r *ModuleRepositoryImpl) GetByID(ctx context.Context, id uint) (*permission.Module, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.ModuleModel
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get module: %w", err)
	}

	module, err := mappers.ModuleToEntity(&model)
	if err != nil {
		return nil, err
	}
	if err := r.attachSubModules(tx, []*permission.Module{module}, false); err != nil {
		return nil, err
	}
	return module, nil
}

func (r *ModuleRepositoryImpl) List(ctx context.Context) ([]*permission.Module, error) {
	return r.list(ctx, false)
}

// ListActive returns active modules carrying only their active sub-modules.
func (r *ModuleRepositoryImpl) ListActive(ctx context.Context) ([]*permission.Module, error) {
	return r.list(ctx, true)
}

func (r *ModuleRepositoryImpl) list(ctx context.Context, activeOnly bool) ([]*permission.Module, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Model(&models.ModuleModel{})
	if activeOnly {
		query = query.Scopes(db.ActiveOnly(""))
	}

	var moduleModels []*models.ModuleModel
	if err := query.Order("sort_order, id").Find(&moduleModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}

	modules, err := mappers.ModulesToEntities(moduleModels)
	if err != nil {
		return nil, err
	}
	if err := r.attachSubModules(tx, modules, activeOnly); err != nil {
		return nil, err
	}
	return modules, nil
}

func (r *ModuleRepositoryImpl) attachSubModules(tx *gorm.DB, modules []*permission.Module, activeOnly bool) error {
	if len(modules) == 0 {
		return nil
	}

	byID := make(map[uint]*permission.Module, len(modules))
	ids := make([]uint, 0, len(modules))
	for _, m := range modules {
		byID[m.ID()] = m
		ids = append(ids, m.ID())
		m.SetSubModules([]*permission.SubModule{})
	}

	query := tx.Model(&models.SubModuleModel{}).Where("module_id IN ?", ids)
	if activeOnly {
		query = query.Scopes(db.ActiveOnly(""))
	}

	var subModels []*models.SubModuleModel
	if err := query.Order("sort_order, id").Find(&subModels).Error; err != nil {
		return fmt.Errorf("failed to load sub-modules: %w", err)
	}

	subModules, err := mappers.SubModulesToEntities(subModels)
	if err != nil {
		return err
	}
	for _, s := range subModules {
		parent := byID[s.ModuleID()]
		s.SetModule(shared.ParentRef{ID: parent.ID(), Name: parent.Name()})
		parent.SetSubModules(append(parent.SubModules(), s))
	}
	return nil
}

// Update writes the module if its stored version still matches.
func (r *ModuleRepositoryImpl) Update(ctx context.Context, module *permission.Module) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.ModuleModel{}).
		Where("id = ? AND version = ?", module.ID(), module.Version()).
		Updates(map[string]interface{}{
			"name":        module.Name(),
			"name_key":    module.NameKey(),
			"description": module.Description(),
			"icon":        module.Icon(),
			"is_active":   module.IsActive(),
			"sort_order":  module.SortOrder(),
			"updated_at":  module.UpdatedAt(),
			"version":     gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return writeError(result.Error, "module", "update")
	}
	if result.RowsAffected == 0 {
		return versionMissError(tx, &models.ModuleModel{}, module.ID(), "module")
	}

	module.BumpVersion()
	return nil
}

// Delete removes the module, its sub-modules, their permissions and every
// role grant of those permissions.
func (r *ModuleRepositoryImpl) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := withTx(ctx, r.db, func(tx *gorm.DB) error {
		var err error
		deleted, err = deleteModuleCascade(tx, id)
		return err
	})
	return deleted, err
}

func (r *ModuleRepositoryImpl) Exists(ctx context.Context, id uint) (bool, error) {
	found, err := exists(db.GetTxFromContext(ctx, r.db), &models.ModuleModel{}, "id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to check module existence: %w", err)
	}
	return found, nil
}

func (r *ModuleRepositoryImpl) NameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db).Scopes(db.ExcludeID("id", excludeID))
	found, err := exists(tx, &models.ModuleModel{}, "name_key = ?", shared.NameKey(name))
	if err != nil {
		return false, fmt.Errorf("failed to check module name: %w", err)
	}
	return found, nil
}
