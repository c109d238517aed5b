package permission

import (
	"fmt"
	"time"

	"warden/internal/domain/shared"
	"warden/internal/shared/constants"
	"warden/internal/shared/errors"
)

type SubModule struct {
	id          uint
	moduleID    uint
	name        string
	description string
	icon        string
	url         string
	isActive    bool
	sortOrder   int
	version     int
	createdAt   time.Time
	updatedAt   time.Time

	module      shared.ParentRef
	permissions []*Permission
}

type SubModuleAttrs struct {
	ModuleID    uint
	Name        string
	Description string
	Icon        string
	URL         string
	IsActive    bool
	SortOrder   int
}

func (a *SubModuleAttrs) normalize() error {
	a.Name = shared.CleanName(a.Name)
	a.Description = shared.CleanDescription(a.Description)
	a.Icon = shared.CleanName(a.Icon)
	a.URL = shared.CleanName(a.URL)

	if a.ModuleID == 0 {
		return errors.NewValidationError("sub-module must belong to a module")
	}
	if err := shared.CheckRequired("sub-module name", a.Name); err != nil {
		return err
	}
	if err := shared.CheckLength("sub-module name", a.Name, constants.MaxNameLength); err != nil {
		return err
	}
	if err := shared.CheckLength("sub-module description", a.Description, constants.MaxDescriptionLength); err != nil {
		return err
	}
	if err := shared.CheckLength("sub-module icon", a.Icon, constants.MaxIconLength); err != nil {
		return err
	}
	return shared.CheckLength("sub-module url", a.URL, constants.MaxURLLength)
}

func NewSubModule(attrs SubModuleAttrs, now time.Time) (*SubModule, error) {
	if err := attrs.normalize(); err != nil {
		return nil, err
	}

	return &SubModule{
		moduleID:    attrs.ModuleID,
		name:        attrs.Name,
		description: attrs.Description,
		icon:        attrs.Icon,
		url:         attrs.URL,
		isActive:    attrs.IsActive,
		sortOrder:   attrs.SortOrder,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructSubModule(id uint, attrs SubModuleAttrs, version int, createdAt, updatedAt time.Time) (*SubModule, error) {
	if id == 0 {
		return nil, fmt.Errorf("sub-module ID cannot be zero")
	}

	return &SubModule{
		id:          id,
		moduleID:    attrs.ModuleID,
		name:        attrs.Name,
		description: attrs.Description,
		icon:        attrs.Icon,
		url:         attrs.URL,
		isActive:    attrs.IsActive,
		sortOrder:   attrs.SortOrder,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (s *SubModule) ID() uint {
	return s.id
}

func (s *SubModule) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("sub-module ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("sub-module ID cannot be zero")
	}
	s.id = id
	return nil
}

func (s *SubModule) ModuleID() uint {
	return s.moduleID
}

func (s *SubModule) Name() string {
	return s.name
}

func (s *SubModule) NameKey() string {
	return shared.NameKey(s.name)
}

func (s *SubModule) Description() string {
	return s.description
}

func (s *SubModule) Icon() string {
	return s.icon
}

func (s *SubModule) URL() string {
	return s.url
}

func (s *SubModule) IsActive() bool {
	return s.isActive
}

func (s *SubModule) SortOrder() int {
	return s.sortOrder
}

func (s *SubModule) Version() int {
	return s.version
}

func (s *SubModule) CreatedAt() time.Time {
	return s.createdAt
}

func (s *SubModule) UpdatedAt() time.Time {
	return s.updatedAt
}

// Module is the resolved parent. Only the ID is set until a read attaches the name.
func (s *SubModule) Module() shared.ParentRef {
	if s.module.ID == 0 {
		return shared.ParentRef{ID: s.moduleID}
	}
	return s.module
}

func (s *SubModule) SetModule(ref shared.ParentRef) {
	s.module = ref
}

func (s *SubModule) Permissions() []*Permission {
	return s.permissions
}

func (s *SubModule) SetPermissions(permissions []*Permission) {
	s.permissions = permissions
}

// Update replaces every editable field, including the parent module.
func (s *SubModule) Update(attrs SubModuleAttrs, now time.Time) error {
	if err := attrs.normalize(); err != nil {
		return err
	}
	if attrs.ModuleID != s.moduleID {
		s.module = shared.ParentRef{}
	}
	s.moduleID = attrs.ModuleID
	s.name = attrs.Name
	s.description = attrs.Description
	s.icon = attrs.Icon
	s.url = attrs.URL
	s.isActive = attrs.IsActive
	s.sortOrder = attrs.SortOrder
	s.updatedAt = now
	return nil
}

func (s *SubModule) BumpVersion() {
	s.version++
}
