package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"warden/internal/domain/permission"
	"warden/internal/domain/shared"
	"warden/internal/infrastructure/persistence/mappers"
	"warden/internal/infrastructure/persistence/models"
	"warden/internal/shared/biztime"
	"warden/internal/shared/db"
)

type RoleRepositoryImpl struct {
	db    *gorm.DB
	clock biztime.Clock
}

// NewRoleRepository creates a role repository. clock stamps new role grants.
func NewRoleRepository(db *gorm.DB, clock biztime.Clock) permission.RoleRepository {
	return &RoleRepositoryImpl{db: db, clock: clock}
}

func (r *RoleRepositoryImpl) Create(ctx context.Context, role *permission.Role) error {
	model := mappers.RoleToModel(role)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return writeError(err, "role", "create")
	}

	return role.SetID(model.ID)
}

// GetByID returns the role with its permissions attached in grant order.
func (r *RoleRepositoryImpl) GetByID(ctx context.Context, id uint) (*permission.Role, error) {
	var model models.RoleModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	role, err := mappers.RoleToEntity(&model)
	if err != nil {
		return nil, err
	}

	permissions, err := r.GetPermissions(ctx, id)
	if err != nil {
		return nil, err
	}
	role.SetPermissions(permissions)
	return role, nil
}

func (r *RoleRepositoryImpl) GetByIDs(ctx context.Context, ids []uint) ([]*permission.Role, error) {
	if len(ids) == 0 {
		return []*permission.Role{}, nil
	}
	return r.find(db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids))
}

// List orders roles by name.
func (r *RoleRepositoryImpl) List(ctx context.Context) ([]*permission.Role, error) {
	return r.find(db.GetTxFromContext(ctx, r.db))
}

func (r *RoleRepositoryImpl) ListActive(ctx context.Context) ([]*permission.Role, error) {
	return r.find(db.GetTxFromContext(ctx, r.db).Scopes(db.ActiveOnly("")))
}

func (r *RoleRepositoryImpl) find(query *gorm.DB) ([]*permission.Role, error) {
	var roleModels []*models.RoleModel
	if err := query.Order("name, id").Find(&roleModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return mappers.RolesToEntities(roleModels)
}

func (r *RoleRepositoryImpl) Update(ctx context.Context, role *permission.Role) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.RoleModel{}).
		Where("id = ? AND version = ?", role.ID(), role.Version()).
		Updates(map[string]interface{}{
			"name":        role.Name(),
			"name_key":    role.NameKey(),
			"description": role.Description(),
			"is_active":   role.IsActive(),
			"updated_at":  role.UpdatedAt(),
			"version":     gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		return writeError(result.Error, "role", "update")
	}
	if result.RowsAffected == 0 {
		return versionMissError(tx, &models.RoleModel{}, role.ID(), "role")
	}

	role.BumpVersion()
	return nil
}

// Delete removes the role with its user assignments and permission grants.
func (r *RoleRepositoryImpl) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := withTx(ctx, r.db, func(tx *gorm.DB) error {
		var err error
		deleted, err = deleteRoleCascade(tx, id)
		return err
	})
	return deleted, err
}

func (r *RoleRepositoryImpl) Exists(ctx context.Context, id uint) (bool, error) {
	found, err := exists(db.GetTxFromContext(ctx, r.db), &models.RoleModel{}, "id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to check role existence: %w", err)
	}
	return found, nil
}

func (r *RoleRepositoryImpl) NameExists(ctx context.Context, name string, excludeID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db).Scopes(db.ExcludeID("id", excludeID))
	found, err := exists(tx, &models.RoleModel{}, "name_key = ?", shared.NameKey(name))
	if err != nil {
		return false, fmt.Errorf("failed to check role name: %w", err)
	}
	return found, nil
}
