package user

import (
	"context"
	"time"

	"warden/internal/domain/permission"
)

// Repository defines the interface for user data operations.
// Lookups return (nil, nil) when no row matches.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)

	// GetByEmail matches case-insensitively.
	GetByEmail(ctx context.Context, email string) (*User, error)

	List(ctx context.Context) ([]*User, error)

	// Update fails with a write conflict when the stored version moved.
	Update(ctx context.Context, user *User) error

	// UpdateLastLogin touches only last_login_at; it does not bump the version.
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error

	// Delete removes the user and its role assignments.
	Delete(ctx context.Context, id uint) (bool, error)

	Exists(ctx context.Context, id uint) (bool, error)
	EmailExists(ctx context.Context, email string, excludeID uint) (bool, error)

	GetRoles(ctx context.Context, userID uint) ([]*permission.Role, error)
	AssignRole(ctx context.Context, userID, roleID uint) (bool, error)
	RemoveRole(ctx context.Context, userID, roleID uint) (bool, error)
}
