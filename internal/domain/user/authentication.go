package user

import (
	"fmt"
	"time"

	vo "warden/internal/domain/user/valueobjects"
)

// PasswordHasher turns plaintext into a stored digest and checks it back.
// Verify returns a non-nil error on any mismatch.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// RehashPolicy is implemented by hashers that can tell a digest was made
// with outdated parameters.
type RehashPolicy interface {
	NeedsRehash(hash string) bool
}

func (u *User) SetPassword(password *vo.Password, hasher PasswordHasher, now time.Time) error {
	if password == nil {
		return fmt.Errorf("password cannot be nil")
	}

	hash, err := hasher.Hash(password.String())
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	u.passwordHash = hash
	u.updatedAt = now
	return nil
}

// CanAuthenticate is false for inactive users and users without a password.
func (u *User) CanAuthenticate() bool {
	return u.isActive && u.passwordHash != ""
}

func (u *User) VerifyPassword(plainPassword string, hasher PasswordHasher) error {
	if u.passwordHash == "" {
		return fmt.Errorf("user has no password set")
	}

	if err := hasher.Verify(plainPassword, u.passwordHash); err != nil {
		return fmt.Errorf("invalid password")
	}
	return nil
}

// RecordLogin stamps a successful credential check.
func (u *User) RecordLogin(now time.Time) {
	t := now
	u.lastLoginAt = &t
}
