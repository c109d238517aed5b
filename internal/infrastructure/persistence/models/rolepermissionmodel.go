package models

import (
	"time"

	"warden/internal/shared/constants"
)

type RolePermissionModel struct {
	ID           uint             `gorm:"primarykey"`
	RoleID       uint             `gorm:"not null;uniqueIndex:uk_role_permissions_pair,priority:1"`
	Role         *RoleModel       `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	PermissionID uint             `gorm:"not null;uniqueIndex:uk_role_permissions_pair,priority:2;index:idx_role_permissions_permission"`
	Permission   *PermissionModel `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time        `gorm:"not null;autoCreateTime:false"`
}

func (RolePermissionModel) TableName() string {
	return constants.TableRolePermissions
}

type UserRoleModel struct {
	ID        uint       `gorm:"primarykey"`
	UserID    uint       `gorm:"not null;uniqueIndex:uk_user_roles_pair,priority:1"`
	User      *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	RoleID    uint       `gorm:"not null;uniqueIndex:uk_user_roles_pair,priority:2;index:idx_user_roles_role"`
	Role      *RoleModel `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime:false"`
}

func (UserRoleModel) TableName() string {
	return constants.TableUserRoles
}
