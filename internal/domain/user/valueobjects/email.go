package valueobjects

import (
	"fmt"
	"regexp"
	"strings"

	"warden/internal/domain/shared"
	"warden/internal/shared/constants"
	"warden/internal/shared/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email keeps the address as entered (trimmed) for display and a folded
// key for lookups and uniqueness.
type Email struct {
	value string
	key   string
}

func NewEmail(value string) (*Email, error) {
	trimmed := strings.TrimSpace(value)

	if trimmed == "" {
		return nil, errors.NewValidationError("email is required")
	}

	if len(trimmed) > constants.MaxEmailLength {
		return nil, errors.NewValidationError(fmt.Sprintf("email cannot exceed %d characters", constants.MaxEmailLength))
	}

	if !emailRegex.MatchString(trimmed) {
		return nil, errors.NewValidationError("invalid email format", trimmed)
	}

	return &Email{value: trimmed, key: EmailKey(trimmed)}, nil
}

// EmailKey is the case-insensitive comparison key of an address.
func EmailKey(value string) string {
	return shared.NameKey(value)
}

func (e *Email) String() string {
	return e.value
}

func (e *Email) Key() string {
	return e.key
}

// Equals compares addresses case-insensitively.
func (e *Email) Equals(other *Email) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.key == other.key
}
