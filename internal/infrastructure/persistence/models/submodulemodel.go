package models

import (
	"time"

	"warden/internal/shared/constants"
)

type SubModuleModel struct {
	ID          uint         `gorm:"primarykey"`
	ModuleID    uint         `gorm:"not null;uniqueIndex:uk_sub_modules_module_name_key,priority:1"`
	Module      *ModuleModel `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
	Name        string       `gorm:"not null;size:100"`
	NameKey     string       `gorm:"not null;size:300;uniqueIndex:uk_sub_modules_module_name_key,priority:2"`
	Description string       `gorm:"size:500"`
	Icon        string       `gorm:"size:50"`
	URL         string       `gorm:"column:url;size:200"`
	IsActive    bool         `gorm:"not null"`
	SortOrder   int          `gorm:"not null;default:0"`
	Version     int          `gorm:"not null;default:1"`
	CreatedAt   time.Time    `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time    `gorm:"not null;autoUpdateTime:false"`
}

func (SubModuleModel) TableName() string {
	return constants.TableSubModules
}
