package models

import (
	"time"

	"warden/internal/shared/constants"
)

// ModuleModel is the top level of the permission hierarchy.
// NameKey is the case-folded name and carries the uniqueness rule.
type ModuleModel struct {
	ID          uint      `gorm:"primarykey"`
	Name        string    `gorm:"not null;size:100"`
	NameKey     string    `gorm:"not null;size:300;uniqueIndex:uk_modules_name_key"`
	Description string    `gorm:"size:500"`
	Icon        string    `gorm:"size:50"`
	IsActive    bool      `gorm:"not null;index:idx_modules_active_sort,priority:1"`
	SortOrder   int       `gorm:"not null;default:0;index:idx_modules_active_sort,priority:2"`
	Version     int       `gorm:"not null;default:1"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (ModuleModel) TableName() string {
	return constants.TableModules
}
