package shared

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"

	"warden/internal/shared/errors"
)

var (
	folder      = cases.Fold()
	plainPolicy = bluemonday.StrictPolicy()
)

// NameKey returns the comparison key used by every case-insensitive
// uniqueness rule. Two names collide exactly when their keys are equal.
func NameKey(name string) string {
	return folder.String(strings.TrimSpace(name))
}

// CleanName trims surrounding whitespace.
func CleanName(name string) string {
	return strings.TrimSpace(name)
}

// CleanDescription strips any markup so only plain text is stored.
func CleanDescription(description string) string {
	return strings.TrimSpace(html.UnescapeString(plainPolicy.Sanitize(description)))
}

// CheckRequired fails when value is blank.
func CheckRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewValidationError(fmt.Sprintf("%s is required", field))
	}
	return nil
}

// CheckLength fails when value has more than max characters.
func CheckLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return errors.NewValidationError(fmt.Sprintf("%s too long (max %d characters)", field, max))
	}
	return nil
}

// ParentRef names the owning entity of a hierarchy node as resolved by reads.
type ParentRef struct {
	ID   uint
	Name string
}
