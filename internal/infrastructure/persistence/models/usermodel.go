package models

import (
	"time"

	"warden/internal/shared/constants"
)

type UserModel struct {
	ID              uint      `gorm:"primarykey"`
	FirstName       string    `gorm:"not null;size:100"`
	LastName        string    `gorm:"not null;size:100"`
	Email           string    `gorm:"not null;size:150"`
	EmailKey        string    `gorm:"not null;size:450;uniqueIndex:uk_users_email_key"`
	Phone           string    `gorm:"size:20"`
	PasswordHash    string    `gorm:"not null;size:255"`
	IsActive        bool      `gorm:"not null"`
	IsEmailVerified bool      `gorm:"not null"`
	Version         int       `gorm:"not null;default:1"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt       time.Time `gorm:"not null;autoUpdateTime:false"`
	LastLoginAt     *time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
