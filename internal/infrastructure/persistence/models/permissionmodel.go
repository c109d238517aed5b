package models

import (
	"time"

	"warden/internal/shared/constants"
)

type PermissionModel struct {
	ID          uint            `gorm:"primarykey"`
	SubModuleID uint            `gorm:"not null;uniqueIndex:uk_permissions_sub_module_name_key,priority:1"`
	SubModule   *SubModuleModel `gorm:"foreignKey:SubModuleID;constraint:OnDelete:CASCADE"`
	Name        string          `gorm:"not null;size:100"`
	NameKey     string          `gorm:"not null;size:300;uniqueIndex:uk_permissions_sub_module_name_key,priority:2"`
	Description string          `gorm:"size:500"`
	IsActive    bool            `gorm:"not null"`
	Version     int             `gorm:"not null;default:1"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime:false"`
}

func (PermissionModel) TableName() string {
	return constants.TablePermissions
}

// PermissionRow is a permission joined with its sub-module and module names.
type PermissionRow struct {
	ID            uint
	SubModuleID   uint
	SubModuleName string
	ModuleID      uint
	ModuleName    string
	Name          string
	Description   string
	IsActive      bool
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PermissionRowColumns selects a PermissionRow from permissions p joined to
// sub_modules s and modules m.
const PermissionRowColumns = "p.id, p.sub_module_id, s.name AS sub_module_name, s.module_id AS module_id, m.name AS module_name, " +
	"p.name, p.description, p.is_active, p.version, p.created_at, p.updated_at"
