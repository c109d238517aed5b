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

// permissionRows selects permissions p joined with sub_modules s and modules m.
func permissionRows(tx *gorm.DB) *gorm.DB {
	return tx.Table("permissions p").
		Select(models.PermissionRowColumns).
		Joins("JOIN sub_modules s ON s.id = p.sub_module_id").
		Joins("JOIN modules m ON m.id = s.module_id")
}

const permissionListOrder = "m.name, s.name, p.name, p.id"

func scanPermissions(query *gorm.DB) ([]*permission.Permission, error) {
	var rows []*models.PermissionRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query permissions: %w", err)
	}
	permissions, err := mappers.PermissionRowsToEntities(rows)
	if err != nil {
		return nil, err
	}
	if permissions == nil {
		permissions = []*permission.Permission{}
	}
	return permissions, nil
}

type PermissionRepositoryImpl struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) permission.PermissionRepository {
	return &PermissionRepositoryImpl{db: db}
}

func (r *PermissionRepositoryImpl) Create(ctx context.Context, p *permission.Permission) error {
	model := mappers.PermissionToModel(p)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return writeError(err, "permission", "create")
	}

	return p.SetID(model.ID)
}

// GetByID returns the permission with its sub-module and module resolved.
func (r *PermissionRepositoryImpl) GetByID(ctx context.Context, id uint) (*permission.Permission, error) {
	permissions, err := scanPermissions(permissionRows(db.GetTxFromContext(ctx, r.db)).Where("p.id = ?", id))
	if err != nil {
		return nil, err
	}
	if len(permissions) == 0 {
		return nil, nil
	}
	return permissions[0], nil
}

func (r *PermissionRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) ([]*permission.Permission, error) {
	if len(ids) == 0 {
		return []*permission.Permission{}, nil
	}
	return scanPermissions(permissionRows(db.GetTxFromContext(ctx, r.db)).Where("p.id IN ?", ids).Order(permissionListOrder))
}

// List orders by module name, sub-module name, then permission name.
func (r *PermissionRepositoryImpl) List(ctx context.Context) ([]*permission.Permission, error) {
	return scanPermissions(permissionRows(db.GetTxFromContext(ctx, r.db)).Order(permissionListOrder))
}

// ListActive keeps permissions whose sub-module and module are active too.
func (r *PermissionRepositoryImpl) ListActive(ctx context.Context) ([]*permission.Permission, error) {
	query := permissionRows(db.GetTxFromContext(ctx, r.db)).
		Scopes(db.ActiveChain("p", "s", "m")).
		Order(permissionListOrder)
	return scanPermissions(query)
}

func (r *PermissionRepositoryImpl) ListBySubModule(ctx context.Context, subModuleID uint) ([]*permission.Permission, error) {
	query := permissionRows(db.GetTxFromContext(ctx, r.db)).
		Where("p.sub_module_id = ?", subModuleID).
		Order("p.name, p.id")
	return scanPermissions(query)
}

func (r *PermissionRepositoryImpl) Update(ctx context.Context, p *permission.Permission) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.PermissionModel{}).
		Where("id = ? AND version = ?", p.ID(), p.Version()).
		Updates(map[string]interface{}{
			"sub_module_id": p.SubModuleID(),
			"name":          p.Name(),
			"name_key":      p.NameKey(),
			"description":   p.Description(),
			"is_active":     p.IsActive(),
			"updated_at":    p.UpdatedAt(),
			"version":       gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return writeError(result.Error, "permission", "update")
	}
	if result.RowsAffected == 0 {
		return versionMissError(tx, &models.PermissionModel{}, p.ID(), "permission")
	}

	p.BumpVersion()
	return nil
}

// Delete removes the permission and every role grant of it.
func (r *PermissionRepositoryImpl) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := withTx(ctx, r.db, func(tx *gorm.DB) error {
		found, err := exists(tx, &models.PermissionModel{}, "id = ?", id)
		if err != nil || !found {
			return err
		}
		if err := deletePermissionsCascade(tx, []uint{id}); err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

func (r *PermissionRepositoryImpl) Exists(ctx context.Context, id uint) (bool, error) {
	found, err := exists(db.GetTxFromContext(ctx, r.db), &models.PermissionModel{}, "id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to check permission existence: %w", err)
	}
	return found, nil
}

// NameExists checks name collisions within one sub-module only.
func (r *PermissionRepositoryImpl) NameExists(ctx context.Context, subModuleID uint, name string, excludeID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db).Scopes(db.ExcludeID("id", excludeID))
	found, err := exists(tx, &models.PermissionModel{}, "sub_module_id = ? AND name_key = ?", subModuleID, shared.NameKey(name))
	if err != nil {
		return false, fmt.Errorf("failed to check permission name: %w", err)
	}
	return found, nil
}
