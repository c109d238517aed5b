package mappers

import (
	"fmt"

	"warden/internal/domain/permission"
	"warden/internal/domain/shared"
	"warden/internal/infrastructure/persistence/models"
	"warden/internal/shared/mapper"
)

func ModuleToEntity(model *models.ModuleModel) (*permission.Module, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := permission.ReconstructModule(model.ID, permission.ModuleAttrs{
		Name:        model.Name,
		Description: model.Description,
		Icon:        model.Icon,
		IsActive:    model.IsActive,
		SortOrder:   model.SortOrder,
	}, model.Version, model.CreatedAt.UTC(), model.UpdatedAt.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct module: %w", err)
	}
	return entity, nil
}

func ModuleToModel(entity *permission.Module) *models.ModuleModel {
	return &models.ModuleModel{
		ID:          entity.ID(),
		Name:        entity.Name(),
		NameKey:     entity.NameKey(),
		Description: entity.Description(),
		Icon:        entity.Icon(),
		IsActive:    entity.IsActive(),
		SortOrder:   entity.SortOrder(),
		Version:     entity.Version(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func ModulesToEntities(items []*models.ModuleModel) ([]*permission.Module, error) {
	return mapper.Entities(items, ModuleToEntity, func(m *models.ModuleModel) uint { return m.ID })
}

func SubModuleToEntity(model *models.SubModuleModel) (*permission.SubModule, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := permission.ReconstructSubModule(model.ID, permission.SubModuleAttrs{
		ModuleID:    model.ModuleID,
		Name:        model.Name,
		Description: model.Description,
		Icon:        model.Icon,
		URL:         model.URL,
		IsActive:    model.IsActive,
		SortOrder:   model.SortOrder,
	}, model.Version, model.CreatedAt.UTC(), model.UpdatedAt.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct sub-module: %w", err)
	}
	if model.Module != nil {
		entity.SetModule(shared.ParentRef{ID: model.Module.ID, Name: model.Module.Name})
	}
	return entity, nil
}

func SubModuleToModel(entity *permission.SubModule) *models.SubModuleModel {
	return &models.SubModuleModel{
		ID:          entity.ID(),
		ModuleID:    entity.ModuleID(),
		Name:        entity.Name(),
		NameKey:     entity.NameKey(),
		Description: entity.Description(),
		Icon:        entity.Icon(),
		URL:         entity.URL(),
		IsActive:    entity.IsActive(),
		SortOrder:   entity.SortOrder(),
		Version:     entity.Version(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func SubModulesToEntities(items []*models.SubModuleModel) ([]*permission.SubModule, error) {
	return mapper.Entities(items, SubModuleToEntity, func(m *models.SubModuleModel) uint { return m.ID })
}

func PermissionRowToEntity(row *models.PermissionRow) (*permission.Permission, error) {
	if row == nil {
		return nil, nil
	}
	entity, err := permission.ReconstructPermission(row.ID, permission.PermissionAttrs{
		SubModuleID: row.SubModuleID,
		Name:        row.Name,
		Description: row.Description,
		IsActive:    row.IsActive,
	}, row.Version, row.CreatedAt.UTC(), row.UpdatedAt.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct permission: %w", err)
	}
	entity.SetParents(
		shared.ParentRef{ID: row.SubModuleID, Name: row.SubModuleName},
		shared.ParentRef{ID: row.ModuleID, Name: row.ModuleName},
	)
	return entity, nil
}

func PermissionRowsToEntities(rows []*models.PermissionRow) ([]*permission.Permission, error) {
	return mapper.Entities(rows, PermissionRowToEntity, func(r *models.PermissionRow) uint { return r.ID })
}

func PermissionToModel(entity *permission.Permission) *models.PermissionModel {
	return &models.PermissionModel{
		ID:          entity.ID(),
		SubModuleID: entity.SubModuleID(),
		Name:        entity.Name(),
		NameKey:     entity.NameKey(),
		Description: entity.Description(),
		IsActive:    entity.IsActive(),
		Version:     entity.Version(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func RoleToEntity(model *models.RoleModel) (*permission.Role, error) {
	if model == nil {
		return nil, nil
	}
	entity, err := permission.ReconstructRole(model.ID, permission.RoleAttrs{
		Name:        model.Name,
		Description: model.Description,
		IsActive:    model.IsActive,
	}, model.Version, model.CreatedAt.UTC(), model.UpdatedAt.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct role: %w", err)
	}
	return entity, nil
}

func RoleToModel(entity *permission.Role) *models.RoleModel {
	return &models.RoleModel{
		ID:          entity.ID(),
		Name:        entity.Name(),
		NameKey:     entity.NameKey(),
		Description: entity.Description(),
		IsActive:    entity.IsActive(),
		Version:     entity.Version(),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func RolesToEntities(items []*models.RoleModel) ([]*permission.Role, error) {
	return mapper.Entities(items, RoleToEntity, func(m *models.RoleModel) uint { return m.ID })
}
