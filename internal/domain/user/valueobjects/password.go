package valueobjects

import (
	"fmt"

	"warden/internal/shared/constants"
	"warden/internal/shared/errors"
)

// bcrypt ignores input beyond 72 bytes.
const maxPasswordBytes = 72

// Password is a plaintext password that passed the length policy. It is
// only ever handed to a hasher and never stored.
type Password struct {
	value string
}

func NewPassword(plainPassword string) (*Password, error) {
	if len([]rune(plainPassword)) < constants.MinPasswordLength {
		return nil, errors.NewValidationError(fmt.Sprintf("password must be at least %d characters long", constants.MinPasswordLength))
	}
	if len(plainPassword) > maxPasswordBytes {
		return nil, errors.NewValidationError(fmt.Sprintf("password must be at most %d bytes long", maxPasswordBytes))
	}
	return &Password{value: plainPassword}, nil
}

func (p *Password) String() string {
	return p.value
}
