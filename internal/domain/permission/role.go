package permission

import (
	"fmt"
	"time"

	"warden/internal/domain/shared"
	"warden/internal/shared/constants"
)

type Role struct {
	id          uint
	name        string
	description string
	isActive    bool
	version     int
	createdAt   time.Time
	updatedAt   time.Time
	permissions []*Permission
}

type RoleAttrs struct {
	Name        string
	Description string
	IsActive    bool
}

func (a *RoleAttrs) normalize() error {
	a.Name = shared.CleanName(a.Name)
	a.Description = shared.CleanDescription(a.Description)

	if err := shared.CheckRequired("role name", a.Name); err != nil {
		return err
	}
	if err := shared.CheckLength("role name", a.Name, constants.MaxNameLength); err != nil {
		return err
	}
	return shared.CheckLength("role description", a.Description, constants.MaxDescriptionLength)
}

func NewRole(attrs RoleAttrs, now time.Time) (*Role, error) {
	if err := attrs.normalize(); err != nil {
		return nil, err
	}

	return &Role{
		name:        attrs.Name,
		description: attrs.Description,
		isActive:    attrs.IsActive,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructRole(id uint, attrs RoleAttrs, version int, createdAt, updatedAt time.Time) (*Role, error) {
	if id == 0 {
		return nil, fmt.Errorf("role ID cannot be zero")
	}

	return &Role{
		id:          id,
		name:        attrs.Name,
		description: attrs.Description,
		isActive:    attrs.IsActive,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (r *Role) ID() uint {
	return r.id
}

func (r *Role) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("role ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("role ID cannot be zero")
	}
	r.id = id
	return nil
}

func (r *Role) Name() string {
	return r.name
}

func (r *Role) NameKey() string {
	return shared.NameKey(r.name)
}

func (r *Role) Description() string {
	return r.description
}

func (r *Role) IsActive() bool {
	return r.isActive
}

func (r *Role) Version() int {
	return r.version
}

func (r *Role) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Role) UpdatedAt() time.Time {
	return r.updatedAt
}

func (r *Role) Permissions() []*Permission {
	return r.permissions
}

func (r *Role) SetPermissions(permissions []*Permission) {
	r.permissions = permissions
}

func (r *Role) Update(attrs RoleAttrs, now time.Time) error {
	if err := attrs.normalize(); err != nil {
		return err
	}
	r.name = attrs.Name
	r.description = attrs.Description
	r.isActive = attrs.IsActive
	r.updatedAt = now
	return nil
}

func (r *Role) BumpVersion() {
	r.version++
}
