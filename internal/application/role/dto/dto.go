package dto

import (
	"time"

	hierarchydto "warden/internal/application/hierarchy/dto"
	"warden/internal/domain/permission"
	"warden/internal/shared/mapper"
)

type CreateRoleCommand struct {
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsActive    bool   `json:"is_active"`
}

// UpdateRoleCommand replaces every editable field. A non-zero Version
// must match the stored one.
type UpdateRoleCommand struct {
	ID          uint   `json:"id" validate:"required"`
	Version     int    `json:"version" validate:"gte=0"`
	Name        string `json:"name" validate:"required,notblank,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsActive    bool   `json:"is_active"`
}

type SetPermissionsCommand struct {
	RoleID        uint   `json:"role_id" validate:"required"`
	PermissionIDs []uint `json:"permission_ids" validate:"dive,required"`
}

type RoleResponse struct {
	ID          uint                               `json:"id" yaml:"id"`
	Name        string                             `json:"name" yaml:"name"`
	Description string                             `json:"description,omitempty" yaml:"description,omitempty"`
	IsActive    bool                               `json:"is_active" yaml:"is_active"`
	Version     int                                `json:"version" yaml:"version"`
	CreatedAt   time.Time                          `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time                          `json:"updated_at" yaml:"updated_at"`
	Permissions []*hierarchydto.PermissionResponse `json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

func ToRoleResponse(r *permission.Role) *RoleResponse {
	if r == nil {
		return nil
	}
	resp := &RoleResponse{
		ID:          r.ID(),
		Name:        r.Name(),
		Description: r.Description(),
		IsActive:    r.IsActive(),
		Version:     r.Version(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
	if perms := r.Permissions(); len(perms) > 0 {
		resp.Permissions = hierarchydto.ToPermissionResponses(perms)
	}
	return resp
}

func ToRoleResponses(items []*permission.Role) []*RoleResponse {
	return mapper.Each(items, ToRoleResponse)
}
