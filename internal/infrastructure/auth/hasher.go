package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"warden/internal/domain/user"
	"warden/internal/shared/config"
)

var (
	_ user.PasswordHasher = (*BcryptPasswordHasher)(nil)
	_ user.RehashPolicy   = (*BcryptPasswordHasher)(nil)
)

type BcryptPasswordHasher struct {
	cost int
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

// NewPasswordHasher builds the hasher from the auth.password config section.
func NewPasswordHasher(cfg config.PasswordConfig) *BcryptPasswordHasher {
	return NewBcryptPasswordHasher(cfg.BcryptCost)
}

func (h *BcryptPasswordHasher) Cost() int {
	return h.cost
}

func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate password hash: %w", err)
	}
	return string(hash), nil
}

// Verify fails with the same message for a wrong password and a malformed hash.
func (h *BcryptPasswordHasher) Verify(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("password verification failed")
	}
	return nil
}

// NeedsRehash reports whether hash was produced with a different cost.
func (h *BcryptPasswordHasher) NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return true
	}
	return cost != h.cost
}
