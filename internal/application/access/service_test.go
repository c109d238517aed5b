package access

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/internal/domain/permission"
	"warden/internal/domain/user"
	vo "warden/internal/domain/user/valueobjects"
	permissionInfra "warden/internal/infrastructure/permission"
	"warden/internal/infrastructure/repository"
	"warden/internal/infrastructure/testutil"
	"warden/internal/shared/biztime"
	"warden/internal/shared/db"
	"warden/internal/shared/logger"
)

type graph struct {
	modules     permission.ModuleRepository
	subModules  permission.SubModuleRepository
	permissions permission.PermissionRepository
	roles       permission.RoleRepository
	users       user.Repository
	clock       *biztime.FixedClock
}

func (g *graph) chain(t *testing.T, ctx context.Context, module, sub string, perms ...string) (*permission.Module, []*permission.Permission) {
	t.Helper()
	m, err := permission.NewModule(permission.ModuleAttrs{Name: module, IsActive: true}, g.clock.Now())
	require.NoError(t, err)
	require.NoError(t, g.modules.Create(ctx, m))
	s, err := permission.NewSubModule(permission.SubModuleAttrs{ModuleID: m.ID(), Name: sub, IsActive: true}, g.clock.Now())
	require.NoError(t, err)
	require.NoError(t, g.subModules.Create(ctx, s))

	var out []*permission.Permission
	for _, name := range perms {
		p, err := permission.NewPermission(permission.PermissionAttrs{SubModuleID: s.ID(), Name: name, IsActive: true}, g.clock.Now())
		require.NoError(t, err)
		require.NoError(t, g.permissions.Create(ctx, p))
		out = append(out, p)
	}
	return m, out
}

func ids(perms []*permission.Permission) []uint {
	out := make([]uint, 0, len(perms))
	for _, p := range perms {
		out = append(out, p.ID())
	}
	return out
}

func TestService_SnapshotAgreesWithStore(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.NewTestDB(t)
	clock := biztime.NewFixedClock(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	g := &graph{
		modules:     repository.NewModuleRepository(gdb),
		subModules:  repository.NewSubModuleRepository(gdb),
		permissions: repository.NewPermissionRepository(gdb),
		roles:       repository.NewRoleRepository(gdb, clock),
		users:       repository.NewUserRepository(gdb, clock),
		clock:       clock,
	}

	_, salesPerms := g.chain(t, ctx, "Sales", "Orders", "View", "Create")
	stock, stockPerms := g.chain(t, ctx, "Stock", "Items", "Adjust")

	clerk, err := permission.NewRole(permission.RoleAttrs{Name: "Clerk", IsActive: true}, clock.Now())
	require.NoError(t, err)
	require.NoError(t, g.roles.Create(ctx, clerk))
	for _, p := range append(salesPerms, stockPerms...) {
		_, err := g.roles.AssignPermission(ctx, clerk.ID(), p.ID())
		require.NoError(t, err)
	}

	email, err := vo.NewEmail("lee@example.com")
	require.NoError(t, err)
	u, err := user.NewUser(email, user.Profile{FirstName: "Lee", LastName: "Chen", IsActive: true}, clock.Now())
	require.NoError(t, err)
	require.NoError(t, g.users.Create(ctx, u))
	_, err = g.users.AssignRole(ctx, u.ID(), clerk.ID())
	require.NoError(t, err)

	enforcer, err := permissionInfra.NewEnforcer(logger.NewNopLogger())
	require.NoError(t, err)
	svc := NewService(repository.NewGrantRepository(gdb), enforcer, db.NewTransactionManager(gdb), logger.NewNopLogger())

	allowed, err := svc.Enforce(u.ID(), salesPerms[0].ID())
	require.NoError(t, err)
	assert.False(t, allowed, "nothing is granted before the first sync")

	result, err := svc.SyncPolicies(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Policies)
	assert.Equal(t, 1, result.RoleLinks)

	effective, err := svc.ResolveEffectivePermissions(ctx, u.ID())
	require.NoError(t, err)
	snapshot, err := svc.SnapshotPermissions(u.ID())
	require.NoError(t, err)
	assert.ElementsMatch(t, ids(effective), snapshot)

	for _, p := range append(salesPerms, stockPerms...) {
		fromStore, err := svc.HasPermission(ctx, u.ID(), p.ID())
		require.NoError(t, err)
		fromSnapshot, err := svc.Enforce(u.ID(), p.ID())
		require.NoError(t, err)
		assert.Equal(t, fromStore, fromSnapshot, "permission %d", p.ID())
	}

	t.Run("snapshot lags until the next sync", func(t *testing.T) {
		require.NoError(t, stock.Update(permission.ModuleAttrs{Name: "Stock", IsActive: false}, clock.Now()))
		require.NoError(t, g.modules.Update(ctx, stock))

		fromStore, err := svc.HasPermission(ctx, u.ID(), stockPerms[0].ID())
		require.NoError(t, err)
		assert.False(t, fromStore)

		stale, err := svc.Enforce(u.ID(), stockPerms[0].ID())
		require.NoError(t, err)
		assert.True(t, stale)

		_, err = svc.SyncPolicies(ctx)
		require.NoError(t, err)

		fresh, err := svc.Enforce(u.ID(), stockPerms[0].ID())
		require.NoError(t, err)
		assert.False(t, fresh)

		roles, err := svc.SnapshotRoles(u.ID())
		require.NoError(t, err)
		assert.Equal(t, []uint{clerk.ID()}, roles)
	})
}
