package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"warden/internal/application/hierarchy"
	"warden/internal/application/role"
	"warden/internal/application/user"
	"warden/internal/infrastructure/auth"
	"warden/internal/infrastructure/persistence/seeds"
	"warden/internal/infrastructure/repository"
	"warden/internal/infrastructure/testutil"
	"warden/internal/shared/biztime"
	"warden/internal/shared/db"
	"warden/internal/shared/logger"
)

func newSeeder(t *testing.T) (*Seeder, *user.Service, *hierarchy.PermissionService) {
	t.Helper()

	gdb := testutil.NewTestDB(t)
	clock := biztime.NewFixedClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	tm := db.NewTransactionManager(gdb)
	log := logger.NewNopLogger()

	moduleRepo := repository.NewModuleRepository(gdb)
	subModuleRepo := repository.NewSubModuleRepository(gdb)
	permissionRepo := repository.NewPermissionRepository(gdb)
	roleRepo := repository.NewRoleRepository(gdb, clock)

	permissions := hierarchy.NewPermissionService(permissionRepo, subModuleRepo, tm, clock, log)
	users := user.NewService(
		repository.NewUserRepository(gdb, clock),
		roleRepo,
		repository.NewGrantRepository(gdb),
		auth.NewBcryptPasswordHasher(bcrypt.MinCost),
		tm, clock, log,
	)

	seeder := NewSeeder(
		hierarchy.NewModuleService(moduleRepo, tm, clock, log),
		hierarchy.NewSubModuleService(subModuleRepo, moduleRepo, tm, clock, log),
		permissions,
		role.NewService(roleRepo, permissionRepo, tm, clock, log),
		users,
		tm,
		log,
	)
	return seeder, users, permissions
}

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()
	seeder, users, permissions := newSeeder(t)

	tax, err := seeds.Default()
	require.NoError(t, err)
	creds := AdminCredentials{Email: "admin@example.com", Password: "Admin123!"}

	first, err := seeder.Run(ctx, tax, creds)
	require.NoError(t, err)
	assert.Equal(t, &Result{
		RolesCreated:       3,
		ModulesCreated:     4,
		SubModulesCreated:  9,
		PermissionsCreated: 24,
		GrantsAdded:        24,
		AdminCreated:       true,
		AdminRoleAssigned:  true,
	}, first)

	second, err := seeder.Run(ctx, tax, creds)
	require.NoError(t, err)
	assert.Equal(t, &Result{}, second)

	all, err := permissions.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 24)

	admin, err := users.Validate(ctx, "ADMIN@example.com", "Admin123!")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "System Administrator", admin.FullName())

	effective, err := users.ResolveEffectivePermissions(ctx, admin.ID())
	require.NoError(t, err)
	assert.Len(t, effective, 24)
}

func TestSeeder_SkipsAdminWithoutPassword(t *testing.T) {
	ctx := context.Background()
	seeder, users, _ := newSeeder(t)

	tax, err := seeds.Default()
	require.NoError(t, err)

	res, err := seeder.Run(ctx, tax, AdminCredentials{Email: "admin@example.com"})
	require.NoError(t, err)
	assert.False(t, res.AdminCreated)
	assert.Equal(t, 24, res.PermissionsCreated)

	found, err := users.EmailExists(ctx, "admin@example.com", 0)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSeeder_FillsGaps(t *testing.T) {
	ctx := context.Background()
	seeder, _, permissions := newSeeder(t)

	partial, err := seeds.Parse([]byte(`
roles:
  - name: administrator
    grant_all: true
modules:
  - name: reports
    sub_modules:
      - name: user reports
        permissions:
          - name: view user reports
`))
	require.NoError(t, err)
	_, err = seeder.Run(ctx, partial, AdminCredentials{})
	require.NoError(t, err)

	tax, err := seeds.Default()
	require.NoError(t, err)
	res, err := seeder.Run(ctx, tax, AdminCredentials{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.RolesCreated)
	assert.Equal(t, 3, res.ModulesCreated)
	assert.Equal(t, 8, res.SubModulesCreated)
	assert.Equal(t, 23, res.PermissionsCreated)
	assert.Equal(t, 23, res.GrantsAdded)

	all, err := permissions.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 24)
}
