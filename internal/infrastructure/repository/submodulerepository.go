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

type SubModuleRepositoryImpl struct {
	db *gorm.DB
}

func NewSubModuleRepository(db *gorm.DB) permission.SubModuleRepository {
	return &SubModuleRepositoryImpl{db: db}
}

func (r *SubModuleRepositoryImpl) Create(ctx context.Context, subModule *permission.SubModule) error {
	model := mappers.SubModuleToModel(subModule)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return writeError(err, "sub-module", "create")
	}

	return subModule.SetID(model.ID)
}

// GetByID returns the sub-module with its parent module and permissions resolved.
func (r *SubModuleRepositoryImpl) GetByID(ctx context.Context, id uint) (*permission.SubModule, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.SubModuleModel
	if err := tx.Preload("Module").First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sub-module: %w", err)
	}

	subModule, err := mappers.SubModuleToEntity(&model)
	if err != nil {
		return nil, err
	}

	var rows []*models.PermissionRow
	if err := permissionRows(tx).Where("p.sub_module_id = ?", id).Order("p.name, p.id").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load sub-module permissions: %w", err)
	}
	permissions, err := mappers.PermissionRowsToEntities(rows)
	if err != nil {
		return nil, err
	}
	if permissions == nil {
		permissions = []*permission.Permission{}
	}
	subModule.SetPermissions(permissions)

	return subModule, nil
}

// List orders sub-modules by parent module name, then sort order.
func (r *SubModuleRepositoryImpl) List(ctx context.Context) ([]*permission.SubModule, error) {
	return r.find(r.joinedModules(ctx))
}

// ListActive excludes inactive sub-modules and those under an inactive module.
func (r *SubModuleRepositoryImpl) ListActive(ctx context.Context) ([]*permission.SubModule, error) {
	return r.find(r.joinedModules(ctx).Scopes(db.ActiveOnly(models.SubModuleModel{}.TableName()), db.ActiveOnly("m")))
}

func (r *SubModuleRepositoryImpl) ListByModule(ctx context.Context, moduleID uint) ([]*permission.SubModule, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Preload("Module").
		Where("module_id = ?", moduleID).
		Order("sort_order, id")
	return r.find(query)
}

func (r *SubModuleRepositoryImpl) joinedModules(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db).
		Preload("Module").
		Joins("JOIN modules m ON m.id = sub_modules.module_id").
		Order("m.name, sub_modules.sort_order, sub_modules.id")
}

func (r *SubModuleRepositoryImpl) find(query *gorm.DB) ([]*permission.SubModule, error) {
	var subModels []*models.SubModuleModel
	if err := query.Find(&subModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list sub-modules: %w", err)
	}
	return mappers.SubModulesToEntities(subModels)
}

func (r *SubModuleRepositoryImpl) Update(ctx context.Context, subModule *permission.SubModule) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.SubModuleModel{}).
		Where("id = ? AND version = ?", subModule.ID(), subModule.Version()).
		Updates(map[string]interface{}{
			"module_id":   subModule.ModuleID(),
			"name":        subModule.Name(),
			"name_key":    subModule.NameKey(),
			"description": subModule.Description(),
			"icon":        subModule.Icon(),
			"url":         subModule.URL(),
			"is_active":   subModule.IsActive(),
			"sort_order":  subModule.SortOrder(),
			"updated_at":  subModule.UpdatedAt(),
			"version":     gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return writeError(result.Error, "sub-module", "update")
	}
	if result.RowsAffected == 0 {
		return versionMissError(tx, &models.SubModuleModel{}, subModule.ID(), "sub-module")
	}

	subModule.BumpVersion()
	return nil
}

// Delete removes the sub-module, its permissions and their role grants.
func (r *SubModuleRepositoryImpl) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := withTx(ctx, r.db, func(tx *gorm.DB) error {
		found, err := exists(tx, &models.SubModuleModel{}, "id = ?", id)
		if err != nil || !found {
			return err
		}
		if err := deleteSubModulesCascade(tx, []uint{id}); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

func (r *SubModuleRepositoryImpl) Exists(ctx context.Context, id uint) (bool, error) {
	found, err := exists(db.GetTxFromContext(ctx, r.db), &models.SubModuleModel{}, "id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to check sub-module existence: %w", err)
	}
	return found, nil
}

// NameExists checks name collisions within one module only.
func (r *SubModuleRepositoryImpl) NameExists(ctx context.Context, moduleID uint, name string, excludeID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db).Scopes(db.ExcludeID("id", excludeID))
	found, err := exists(tx, &models.SubModuleModel{}, "module_id = ? AND name_key = ?", moduleID, shared.NameKey(name))
	if err != nil {
		return false, fmt.Errorf("failed to check sub-module name: %w", err)
	}
	return found, nil
}
