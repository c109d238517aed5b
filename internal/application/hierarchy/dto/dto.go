package dto

import (
	"time"

	"warden/internal/domain/permission"
	"warden/internal/shared/mapper"
)

type CreateModuleCommand struct {
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"max=500"`
	Icon        string `json:"icon" validate:"max=50"`
	IsActive    bool   `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

// UpdateModuleCommand replaces every editable field. A non-zero Version
// must match the stored one.
type UpdateModuleCommand struct {
	ID          uint   `json:"id" validate:"required"`
	Version     int    `json:"version" validate:"gte=0"`
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"max=500"`
	Icon        string `json:"icon" validate:"max=50"`
	IsActive    bool   `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

type CreateSubModuleCommand struct {
	ModuleID    uint   `json:"module_id" validate:"required"`
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"max=500"`
	Icon        string `json:"icon" validate:"max=50"`
	URL         string `json:"url" validate:"max=200"`
	IsActive    bool   `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

type UpdateSubModuleCommand struct {
	ID          uint   `json:"id" validate:"required"`
	Version     int    `json:"version" validate:"gte=0"`
	ModuleID    uint   `json:"module_id" validate:"required"`
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"max=500"`
	Icon        string `json:"icon" validate:"max=50"`
	URL         string `json:"url" validate:"max=200"`
	IsActive    bool   `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

type CreatePermissionCommand struct {
	SubModuleID uint   `json:"sub_module_id" validate:"required"`
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsActive    bool   `json:"is_active"`
}

type UpdatePermissionCommand struct {
	ID          uint   `json:"id" validate:"required"`
	Version     int    `json:"version" validate:"gte=0"`
	SubModuleID uint   `json:"sub_module_id" validate:"required"`
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsActive    bool   `json:"is_active"`
}

type PermissionResponse struct {
	ID            uint      `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	QualifiedName string    `json:"qualified_name" yaml:"qualified_name"`
	Description   string    `json:"description,omitempty" yaml:"description,omitempty"`
	IsActive      bool      `json:"is_active" yaml:"is_active"`
	SubModuleID   uint      `json:"sub_module_id" yaml:"sub_module_id"`
	SubModuleName string    `json:"sub_module_name,omitempty" yaml:"sub_module_name,omitempty"`
	ModuleID      uint      `json:"module_id,omitempty" yaml:"module_id,omitempty"`
	ModuleName    string    `json:"module_name,omitempty" yaml:"module_name,omitempty"`
	Version       int       `json:"version" yaml:"version"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" yaml:"updated_at"`
}

type SubModuleResponse struct {
	ID          uint                  `json:"id" yaml:"id"`
	ModuleID    uint                  `json:"module_id" yaml:"module_id"`
	ModuleName  string                `json:"module_name,omitempty" yaml:"module_name,omitempty"`
	Name        string                `json:"name" yaml:"name"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Icon        string                `json:"icon,omitempty" yaml:"icon,omitempty"`
	URL         string                `json:"url,omitempty" yaml:"url,omitempty"`
	IsActive    bool                  `json:"is_active" yaml:"is_active"`
	SortOrder   int                   `json:"sort_order" yaml:"sort_order"`
	Version     int                   `json:"version" yaml:"version"`
	CreatedAt   time.Time             `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at" yaml:"updated_at"`
	Permissions []*PermissionResponse `json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

type ModuleResponse struct {
	ID          uint                 `json:"id" yaml:"id"`
	Name        string               `json:"name" yaml:"name"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Icon        string               `json:"icon,omitempty" yaml:"icon,omitempty"`
	IsActive    bool                 `json:"is_active" yaml:"is_active"`
	SortOrder   int                  `json:"sort_order" yaml:"sort_order"`
	Version     int                  `json:"version" yaml:"version"`
	CreatedAt   time.Time            `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at" yaml:"updated_at"`
	SubModules  []*SubModuleResponse `json:"sub_modules,omitempty" yaml:"sub_modules,omitempty"`
}

func ToPermissionResponse(p *permission.Permission) *PermissionResponse {
	if p == nil {
		return nil
	}
	return &PermissionResponse{
		ID:            p.ID(),
		Name:          p.Name(),
		QualifiedName: p.QualifiedName(),
		Description:   p.Description(),
		IsActive:      p.IsActive(),
		SubModuleID:   p.SubModuleID(),
		SubModuleName: p.SubModule().Name,
		ModuleID:      p.Module().ID,
		ModuleName:    p.Module().Name,
		Version:       p.Version(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func ToPermissionResponses(items []*permission.Permission) []*PermissionResponse {
	return mapper.Each(items, ToPermissionResponse)
}

func ToSubModuleResponse(s *permission.SubModule) *SubModuleResponse {
	if s == nil {
		return nil
	}
	resp := &SubModuleResponse{
		ID:          s.ID(),
		ModuleID:    s.ModuleID(),
		ModuleName:  s.Module().Name,
		Name:        s.Name(),
		Description: s.Description(),
		Icon:        s.Icon(),
		URL:         s.URL(),
		IsActive:    s.IsActive(),
		SortOrder:   s.SortOrder(),
		Version:     s.Version(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
	if perms := s.Permissions(); len(perms) > 0 {
		resp.Permissions = ToPermissionResponses(perms)
	}
	return resp
}

func ToSubModuleResponses(items []*permission.SubModule) []*SubModuleResponse {
	return mapper.Each(items, ToSubModuleResponse)
}

func ToModuleResponse(m *permission.Module) *ModuleResponse {
	if m == nil {
		return nil
	}
	resp := &ModuleResponse{
		ID:          m.ID(),
		Name:        m.Name(),
		Description: m.Description(),
		Icon:        m.Icon(),
		IsActive:    m.IsActive(),
		SortOrder:   m.SortOrder(),
		Version:     m.Version(),
		CreatedAt:   m.CreatedAt(),
		UpdatedAt:   m.UpdatedAt(),
	}
	if subs := m.SubModules(); len(subs) > 0 {
		resp.SubModules = ToSubModuleResponses(subs)
	}
	return resp
}

func ToModuleResponses(items []*permission.Module) []*ModuleResponse {
	return mapper.Each(items, ToModuleResponse)
}
