package access

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"warden/internal/application/bootstrap"
	"warden/internal/infrastructure/config"
	"warden/internal/infrastructure/persistence/seeds"
	"warden/internal/infrastructure/testutil"
	"warden/internal/interfaces/cli/container"
	"warden/internal/interfaces/cli/output"
	sharedConfig "warden/internal/shared/config"
	"warden/internal/shared/logger"
)

func TestReadPassword_FromPipe(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"first line only", "s3cret\nignored\n", "s3cret"},
		{"windows newline", "s3cret\r\n", "s3cret"},
		{"no trailing newline", "s3cret", "s3cret"},
		{"keeps inner spaces", " a b \n", " a b "},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prompt bytes.Buffer
			got, err := readPassword(strings.NewReader(tt.in), &prompt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, prompt.String())
		})
	}
}

func TestLoadSnapshot(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		Database: sharedConfig.DatabaseConfig{Driver: sharedConfig.DriverSQLite},
		Auth:     sharedConfig.AuthConfig{Password: sharedConfig.PasswordConfig{BcryptCost: bcrypt.MinCost}},
	}
	c, err := container.New(cfg, testutil.NewTestDB(t), logger.NewNopLogger())
	require.NoError(t, err)
	defer c.Close()

	tax, err := seeds.Default()
	require.NoError(t, err)
	result, err := c.Seeder.Run(ctx, tax, bootstrap.AdminCredentials{Email: "root@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	admin, err := c.Users.GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	require.NotNil(t, admin)

	before, err := loadSnapshot(c.Access, admin.ID())
	require.NoError(t, err)
	assert.Empty(t, before.Roles)
	assert.NotNil(t, before.Permissions)
	assert.Empty(t, before.Permissions)

	_, err = c.Access.SyncPolicies(ctx)
	require.NoError(t, err)

	after, err := loadSnapshot(c.Access, admin.ID())
	require.NoError(t, err)
	assert.Equal(t, admin.ID(), after.UserID)
	assert.Len(t, after.Roles, 1)
	assert.Len(t, after.Permissions, result.PermissionsCreated)

	var out bytes.Buffer
	require.NoError(t, output.Render(&out, output.FormatJSON, after, nil))
	assert.Contains(t, out.String(), `"roles": [`)
}
