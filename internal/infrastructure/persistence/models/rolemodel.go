package models

import (
	"time"

	"warden/internal/shared/constants"
)

type RoleModel struct {
	ID          uint      `gorm:"primarykey"`
	Name        string    `gorm:"not null;size:100"`
	NameKey     string    `gorm:"not null;size:300;uniqueIndex:uk_roles_name_key"`
	Description string    `gorm:"size:500"`
	IsActive    bool      `gorm:"not null"`
	Version     int       `gorm:"not null;default:1"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (RoleModel) TableName() string {
	return constants.TableRoles
}
