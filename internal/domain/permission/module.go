// Package permission models the authorization taxonomy (a Module owns
// SubModules, a SubModule owns Permissions) and the Roles that group them.
package permission

import (
	"fmt"
	"time"

	"warden/internal/domain/shared"
	"warden/internal/shared/constants"
)

type Module struct {
	id          uint
	name        string
	description string
	icon        string
	isActive    bool
	sortOrder   int
	version     int
	createdAt   time.Time
	updatedAt   time.Time
	subModules  []*SubModule
}

// ModuleAttrs holds the caller-editable fields of a module.
type ModuleAttrs struct {
	Name        string
	Description string
	Icon        string
	IsActive    bool
	SortOrder   int
}

func (a *ModuleAttrs) normalize() error {
	a.Name = shared.CleanName(a.Name)
	a.Description = shared.CleanDescription(a.Description)
	a.Icon = shared.CleanName(a.Icon)

	if err := shared.CheckRequired("module name", a.Name); err != nil {
		return err
	}
	if err := shared.CheckLength("module name", a.Name, constants.MaxNameLength); err != nil {
		return err
	}
	if err := shared.CheckLength("module description", a.Description, constants.MaxDescriptionLength); err != nil {
		return err
	}
	return shared.CheckLength("module icon", a.Icon, constants.MaxIconLength)
}

func NewModule(attrs ModuleAttrs, now time.Time) (*Module, error) {
	if err := attrs.normalize(); err != nil {
		return nil, err
	}

	return &Module{
		name:        attrs.Name,
		description: attrs.Description,
		icon:        attrs.Icon,
		isActive:    attrs.IsActive,
		sortOrder:   attrs.SortOrder,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructModule(id uint, attrs ModuleAttrs, version int, createdAt, updatedAt time.Time) (*Module, error) {
	if id == 0 {
		return nil, fmt.Errorf("module ID cannot be zero")
	}

	return &Module{
		id:          id,
		name:        attrs.Name,
		description: attrs.Description,
		icon:        attrs.Icon,
		isActive:    attrs.IsActive,
		sortOrder:   attrs.SortOrder,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (m *Module) ID() uint {
	return m.id
}

func (m *Module) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("module ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("module ID cannot be zero")
	}
	m.id = id
	return nil
}

func (m *Module) Name() string {
	return m.name
}

func (m *Module) NameKey() string {
	return shared.NameKey(m.name)
}

func (m *Module) Description() string {
	return m.description
}

func (m *Module) Icon() string {
	return m.icon
}

func (m *Module) IsActive() bool {
	return m.isActive
}

func (m *Module) SortOrder() int {
	return m.sortOrder
}

func (m *Module) Version() int {
	return m.version
}

func (m *Module) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Module) UpdatedAt() time.Time {
	return m.updatedAt
}

func (m *Module) SubModules() []*SubModule {
	return m.subModules
}

func (m *Module) SetSubModules(subModules []*SubModule) {
	m.subModules = subModules
}

// Update replaces every editable field and stamps updatedAt.
func (m *Module) Update(attrs ModuleAttrs, now time.Time) error {
	if err := attrs.normalize(); err != nil {
		return err
	}
	m.name = attrs.Name
	m.description = attrs.Description
	m.icon = attrs.Icon
	m.isActive = attrs.IsActive
	m.sortOrder = attrs.SortOrder
	m.updatedAt = now
	return nil
}

// BumpVersion records a successful persisted update.
func (m *Module) BumpVersion() {
	m.version++
}
