package shared

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/internal/shared/constants"
	"warden/internal/shared/errors"
)

func TestNameKey(t *testing.T) {
	assert.Equal(t, NameKey("Reports"), NameKey("reports"))
	assert.Equal(t, NameKey("  REPORTS "), NameKey("reports"))
	assert.Equal(t, NameKey("Straße"), NameKey("STRASSE"))
	assert.NotEqual(t, NameKey("Reports"), NameKey("Report"))
}

func TestNameKeyFitsKeyColumn(t *testing.T) {
	tests := []struct {
		name  string
		input string
		runes int
	}{
		{"sharp s", strings.Repeat("ß", constants.MaxNameLength), 2 * constants.MaxNameLength},
		{"iota with dialytika and tonos", strings.Repeat("\u0390", constants.MaxNameLength), 0},
		{"ascii", strings.Repeat("A", constants.MaxNameLength), constants.MaxNameLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, CheckLength("name", tt.input, constants.MaxNameLength))
			key := NameKey(tt.input)
			if tt.runes > 0 {
				assert.Equal(t, tt.runes, utf8.RuneCountInString(key))
			}
			assert.LessOrEqual(t, utf8.RuneCountInString(key), constants.MaxNameKeyLength)
		})
	}
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "Manage users", CleanDescription("<b>Manage</b> users"))
	assert.Equal(t, "", CleanDescription(`<script>alert(1)</script>`))
	assert.Equal(t, "plain", CleanDescription("  plain  "))
	assert.Equal(t, "Tom & Jerry", CleanDescription("Tom & Jerry"))
}

func TestChecks(t *testing.T) {
	assert.True(t, errors.IsValidationError(CheckRequired("name", "   ")))
	assert.NoError(t, CheckRequired("name", "x"))

	assert.NoError(t, CheckLength("name", strings.Repeat("é", 100), 100))
	assert.True(t, errors.IsValidationError(CheckLength("name", strings.Repeat("a", 101), 100)))
}
