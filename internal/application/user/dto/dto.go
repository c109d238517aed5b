package dto

import (
	"time"

	"warden/internal/domain/user"
	"warden/internal/shared/mapper"
)

type CreateUserCommand struct {
	FirstName       string `json:"first_name" validate:"required,notblank,max=100"`
	LastName        string `json:"last_name" validate:"required,notblank,max=100"`
	Email           string `json:"email" validate:"required,email,max=150"`
	Phone           string `json:"phone" validate:"max=20"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	IsActive        bool   `json:"is_active"`
	IsEmailVerified bool   `json:"is_email_verified"`
}

// UpdateUserCommand replaces the profile. Password is only changed when set.
type UpdateUserCommand struct {
	ID              uint    `json:"id" validate:"required"`
	Version         int     `json:"version" validate:"gte=0"`
	FirstName       string  `json:"first_name" validate:"required,notblank,max=100"`
	LastName        string  `json:"last_name" validate:"required,notblank,max=100"`
	Email           string  `json:"email" validate:"required,email,max=150"`
	Phone           string  `json:"phone" validate:"max=20"`
	Password        *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	IsActive        bool    `json:"is_active"`
	IsEmailVerified bool    `json:"is_email_verified"`
}

type RoleSummary struct {
	ID       uint   `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	IsActive bool   `json:"is_active" yaml:"is_active"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID              uint           `json:"id" yaml:"id"`
	FirstName       string         `json:"first_name" yaml:"first_name"`
	LastName        string         `json:"last_name" yaml:"last_name"`
	FullName        string         `json:"full_name" yaml:"full_name"`
	Email           string         `json:"email" yaml:"email"`
	Phone           string         `json:"phone,omitempty" yaml:"phone,omitempty"`
	IsActive        bool           `json:"is_active" yaml:"is_active"`
	IsEmailVerified bool           `json:"is_email_verified" yaml:"is_email_verified"`
	Version         int            `json:"version" yaml:"version"`
	CreatedAt       time.Time      `json:"created_at" yaml:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" yaml:"updated_at"`
	LastLoginAt     *time.Time     `json:"last_login_at,omitempty" yaml:"last_login_at,omitempty"`
	Roles           []*RoleSummary `json:"roles,omitempty" yaml:"roles,omitempty"`
}

func ToUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	resp := &UserResponse{
		ID:              u.ID(),
		FirstName:       u.FirstName(),
		LastName:        u.LastName(),
		FullName:        u.FullName(),
		Email:           u.Email().String(),
		Phone:           u.Phone(),
		IsActive:        u.IsActive(),
		IsEmailVerified: u.IsEmailVerified(),
		Version:         u.Version(),
		CreatedAt:       u.CreatedAt(),
		UpdatedAt:       u.UpdatedAt(),
		LastLoginAt:     u.LastLoginAt(),
	}
	for _, r := range u.Roles() {
		resp.Roles = append(resp.Roles, &RoleSummary{ID: r.ID(), Name: r.Name(), IsActive: r.IsActive()})
	}
	return resp
}

func ToUserResponses(items []*user.User) []*UserResponse {
	return mapper.Each(items, ToUserResponse)
}
