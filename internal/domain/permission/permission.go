package permission

import (
	"fmt"
	"time"

	"warden/internal/domain/shared"
	"warden/internal/shared/constants"
	"warden/internal/shared/errors"
)

// Permission is a named capability, the leaf of the hierarchy and the unit
// granted to roles.
type Permission struct {
	id          uint
	subModuleID uint
	name        string
	description string
	isActive    bool
	version     int
	createdAt   time.Time
	updatedAt   time.Time

	subModule shared.ParentRef
	module    shared.ParentRef
}

type PermissionAttrs struct {
	SubModuleID uint
	Name        string
	Description string
	IsActive    bool
}

func (a *PermissionAttrs) normalize() error {
	a.Name = shared.CleanName(a.Name)
	a.Description = shared.CleanDescription(a.Description)

	if a.SubModuleID == 0 {
		return errors.NewValidationError("permission must belong to a sub-module")
	}
	if err := shared.CheckRequired("permission name", a.Name); err != nil {
		return err
	}
	if err := shared.CheckLength("permission name", a.Name, constants.MaxNameLength); err != nil {
		return err
	}
	return shared.CheckLength("permission description", a.Description, constants.MaxDescriptionLength)
}

func NewPermission(attrs PermissionAttrs, now time.Time) (*Permission, error) {
	if err := attrs.normalize(); err != nil {
		return nil, err
	}

	return &Permission{
		subModuleID: attrs.SubModuleID,
		name:        attrs.Name,
		description: attrs.Description,
		isActive:    attrs.IsActive,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructPermission(id uint, attrs PermissionAttrs, version int, createdAt, updatedAt time.Time) (*Permission, error) {
	if id == 0 {
		return nil, fmt.Errorf("permission ID cannot be zero")
	}

	return &Permission{
		id:          id,
		subModuleID: attrs.SubModuleID,
		name:        attrs.Name,
		description: attrs.Description,
		isActive:    attrs.IsActive,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (p *Permission) ID() uint {
	return p.id
}

func (p *Permission) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("permission ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("permission ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Permission) SubModuleID() uint {
	return p.subModuleID
}

func (p *Permission) Name() string {
	return p.name
}

func (p *Permission) NameKey() string {
	return shared.NameKey(p.name)
}

func (p *Permission) Description() string {
	return p.description
}

func (p *Permission) IsActive() bool {
	return p.isActive
}

func (p *Permission) Version() int {
	return p.version
}

func (p *Permission) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Permission) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Permission) SubModule() shared.ParentRef {
	if p.subModule.ID == 0 {
		return shared.ParentRef{ID: p.subModuleID}
	}
	return p.subModule
}

func (p *Permission) Module() shared.ParentRef {
	return p.module
}

// SetParents attaches the resolved sub-module and module of this permission.
func (p *Permission) SetParents(subModule, module shared.ParentRef) {
	p.subModule = subModule
	p.module = module
}

// QualifiedName is "Module / SubModule / Permission" once parents are resolved.
func (p *Permission) QualifiedName() string {
	if p.module.Name == "" || p.subModule.Name == "" {
		return p.name
	}
	return p.module.Name + " / " + p.subModule.Name + " / " + p.name
}

func (p *Permission) Update(attrs PermissionAttrs, now time.Time) error {
	if err := attrs.normalize(); err != nil {
		return err
	}
	if attrs.SubModuleID != p.subModuleID {
		p.subModule = shared.ParentRef{}
		p.module = shared.ParentRef{}
	}
	p.subModuleID = attrs.SubModuleID
	p.name = attrs.Name
	p.description = attrs.Description
	p.isActive = attrs.IsActive
	p.updatedAt = now
	return nil
}

func (p *Permission) BumpVersion() {
	p.version++
}
