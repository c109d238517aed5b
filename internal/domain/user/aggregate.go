package user

import (
	"fmt"
	"strings"
	"time"

	"warden/internal/domain/permission"
	"warden/internal/domain/shared"
	vo "warden/internal/domain/user/valueobjects"
	"warden/internal/shared/constants"
)

// User is an account that receives permissions through its roles.
type User struct {
	id              uint
	firstName       string
	lastName        string
	email           *vo.Email
	phone           string
	passwordHash    string
	isActive        bool
	isEmailVerified bool
	version         int
	createdAt       time.Time
	updatedAt       time.Time
	lastLoginAt     *time.Time
	roles           []*permission.Role
}

// Profile holds the caller-editable fields of a user.
type Profile struct {
	FirstName       string
	LastName        string
	Phone           string
	IsActive        bool
	IsEmailVerified bool
}

func (p *Profile) normalize() error {
	p.FirstName = shared.CleanName(p.FirstName)
	p.LastName = shared.CleanName(p.LastName)
	p.Phone = strings.TrimSpace(p.Phone)

	if err := shared.CheckRequired("first name", p.FirstName); err != nil {
		return err
	}
	if err := shared.CheckLength("first name", p.FirstName, constants.MaxNameLength); err != nil {
		return err
	}
	if err := shared.CheckRequired("last name", p.LastName); err != nil {
		return err
	}
	if err := shared.CheckLength("last name", p.LastName, constants.MaxNameLength); err != nil {
		return err
	}
	return shared.CheckLength("phone", p.Phone, constants.MaxPhoneLength)
}

// NewUser creates a user without a password; call SetPassword before persisting.
func NewUser(email *vo.Email, profile Profile, now time.Time) (*User, error) {
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if err := profile.normalize(); err != nil {
		return nil, err
	}

	return &User{
		firstName:       profile.FirstName,
		lastName:        profile.LastName,
		email:           email,
		phone:           profile.Phone,
		isActive:        profile.IsActive,
		isEmailVerified: profile.IsEmailVerified,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// ReconstructUser rebuilds a user from persistence
func ReconstructUser(id uint, email *vo.Email, profile Profile, passwordHash string, version int, createdAt, updatedAt time.Time, lastLoginAt *time.Time) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}

	return &User{
		id:              id,
		firstName:       profile.FirstName,
		lastName:        profile.LastName,
		email:           email,
		phone:           profile.Phone,
		passwordHash:    passwordHash,
		isActive:        profile.IsActive,
		isEmailVerified: profile.IsEmailVerified,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		lastLoginAt:     lastLoginAt,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) FirstName() string {
	return u.firstName
}

func (u *User) LastName() string {
	return u.lastName
}

func (u *User) FullName() string {
	return u.firstName + " " + u.lastName
}

func (u *User) Email() *vo.Email {
	return u.email
}

func (u *User) Phone() string {
	return u.phone
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) IsActive() bool {
	return u.isActive
}

func (u *User) IsEmailVerified() bool {
	return u.isEmailVerified
}

func (u *User) Version() int {
	return u.version
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *User) LastLoginAt() *time.Time {
	return u.lastLoginAt
}

func (u *User) Roles() []*permission.Role {
	return u.roles
}

func (u *User) SetRoles(roles []*permission.Role) {
	u.roles = roles
}

// Update replaces the profile and email.
func (u *User) Update(email *vo.Email, profile Profile, now time.Time) error {
	if email == nil {
		return fmt.Errorf("email is required")
	}
	if err := profile.normalize(); err != nil {
		return err
	}
	u.email = email
	u.firstName = profile.FirstName
	u.lastName = profile.LastName
	u.phone = profile.Phone
	u.isActive = profile.IsActive
	u.isEmailVerified = profile.IsEmailVerified
	u.updatedAt = now
	return nil
}

func (u *User) BumpVersion() {
	u.version++
}
