package role

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/internal/application/role/dto"
	"warden/internal/domain/permission"
	"warden/internal/infrastructure/repository"
	"warden/internal/infrastructure/testutil"
	"warden/internal/shared/biztime"
	"warden/internal/shared/db"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

type roleFixture struct {
	ctx     context.Context
	clock   *biztime.FixedClock
	service *Service
	perms   []*permission.Permission
}

func newRoleFixture(t *testing.T) *roleFixture {
	t.Helper()

	gdb := testutil.NewTestDB(t)
	clock := biztime.NewFixedClock(time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	modules := repository.NewModuleRepository(gdb)
	subModules := repository.NewSubModuleRepository(gdb)
	permissions := repository.NewPermissionRepository(gdb)

	m, err := permission.NewModule(permission.ModuleAttrs{Name: "Sales", IsActive: true}, clock.Now())
	require.NoError(t, err)
	require.NoError(t, modules.Create(ctx, m))
	s, err := permission.NewSubModule(permission.SubModuleAttrs{ModuleID: m.ID(), Name: "Orders", IsActive: true}, clock.Now())
	require.NoError(t, err)
	require.NoError(t, subModules.Create(ctx, s))

	var perms []*permission.Permission
	for _, name := range []string{"View", "Create", "Refund"} {
		p, err := permission.NewPermission(permission.PermissionAttrs{SubModuleID: s.ID(), Name: name, IsActive: true}, clock.Now())
		require.NoError(t, err)
		require.NoError(t, permissions.Create(ctx, p))
		perms = append(perms, p)
	}

	return &roleFixture{
		ctx:   ctx,
		clock: clock,
		service: NewService(
			repository.NewRoleRepository(gdb, clock),
			permissions,
			db.NewTransactionManager(gdb),
			clock,
			logger.NewNopLogger(),
		),
		perms: perms,
	}
}

func names(items []*permission.Permission) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.Name())
	}
	return out
}

func TestService_CreateAndUpdate(t *testing.T) {
	f := newRoleFixture(t)

	clerk, err := f.service.Create(f.ctx, dto.CreateRoleCommand{Name: "Clerk", IsActive: true})
	require.NoError(t, err)
	_, err = f.service.Create(f.ctx, dto.CreateRoleCommand{Name: "Manager", IsActive: true})
	require.NoError(t, err)

	_, err = f.service.Create(f.ctx, dto.CreateRoleCommand{Name: " clerk "})
	assert.True(t, errors.IsConflictError(err))

	_, err = f.service.Create(f.ctx, dto.CreateRoleCommand{Name: ""})
	assert.True(t, errors.IsValidationError(err))

	f.clock.Advance(time.Hour)
	updated, err := f.service.Update(f.ctx, dto.UpdateRoleCommand{ID: clerk.ID(), Version: 1, Name: "Senior Clerk", IsActive: false})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version())
	assert.False(t, updated.IsActive())

	_, err = f.service.Update(f.ctx, dto.UpdateRoleCommand{ID: clerk.ID(), Version: 1, Name: "Clerk"})
	assert.True(t, errors.IsWriteConflictError(err))

	_, err = f.service.Update(f.ctx, dto.UpdateRoleCommand{ID: clerk.ID(), Name: "MANAGER"})
	assert.True(t, errors.IsConflictError(err))

	active, err := f.service.ListActive(f.ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Manager", active[0].Name())
}

func TestService_AssignPermission(t *testing.T) {
	f := newRoleFixture(t)
	r, err := f.service.Create(f.ctx, dto.CreateRoleCommand{Name: "Clerk", IsActive: true})
	require.NoError(t, err)
	view := f.perms[0]

	inserted, err := f.service.AssignPermission(f.ctx, r.ID(), view.ID())
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = f.service.AssignPermission(f.ctx, r.ID(), view.ID())
	require.NoError(t, err)
	assert.False(t, inserted)

	tests := []struct {
		name         string
		roleID       uint
		permissionID uint
		check        func(error) bool
	}{
		{"unknown role", 999, view.ID(), errors.IsNotFoundError},
		{"unknown permission", r.ID(), 999, errors.IsNotFoundError},
		{"zero role", 0, view.ID(), errors.IsValidationError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.AssignPermission(f.ctx, tt.roleID, tt.permissionID)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}

	got, err := f.service.Get(f.ctx, r.ID())
	require.NoError(t, err)
	assert.Equal(t, []string{"View"}, names(got.Permissions()))

	removed, err := f.service.RevokePermission(f.ctx, r.ID(), view.ID())
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = f.service.RevokePermission(f.ctx, r.ID(), view.ID())
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestService_SetPermissions(t *testing.T) {
	f := newRoleFixture(t)
	r, err := f.service.Create(f.ctx, dto.CreateRoleCommand{Name: "Clerk", IsActive: true})
	require.NoError(t, err)
	view, create, refund := f.perms[0], f.perms[1], f.perms[2]

	require.NoError(t, f.service.SetPermissions(f.ctx, dto.SetPermissionsCommand{
		RoleID:        r.ID(),
		PermissionIDs: []uint{refund.ID(), view.ID(), refund.ID()},
	}))
	perms, err := f.service.GetPermissions(f.ctx, r.ID())
	require.NoError(t, err)
	assert.Equal(t, []string{"Refund", "View"}, names(perms))

	t.Run("unknown id leaves grants untouched", func(t *testing.T) {
		err := f.service.SetPermissions(f.ctx, dto.SetPermissionsCommand{
			RoleID:        r.ID(),
			PermissionIDs: []uint{create.ID(), 4040},
		})
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err))

		perms, err := f.service.GetPermissions(f.ctx, r.ID())
		require.NoError(t, err)
		assert.Equal(t, []string{"Refund", "View"}, names(perms))
	})

	t.Run("empty set clears the role", func(t *testing.T) {
		require.NoError(t, f.service.SetPermissions(f.ctx, dto.SetPermissionsCommand{RoleID: r.ID()}))
		perms, err := f.service.GetPermissions(f.ctx, r.ID())
		require.NoError(t, err)
		assert.Empty(t, perms)
	})

	err = f.service.SetPermissions(f.ctx, dto.SetPermissionsCommand{RoleID: 555, PermissionIDs: []uint{view.ID()}})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestService_Delete(t *testing.T) {
	f := newRoleFixture(t)
	r, err := f.service.Create(f.ctx, dto.CreateRoleCommand{Name: "Temp", IsActive: true})
	require.NoError(t, err)
	_, err = f.service.AssignPermission(f.ctx, r.ID(), f.perms[0].ID())
	require.NoError(t, err)

	deleted, err := f.service.Delete(f.ctx, r.ID())
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = f.service.Delete(f.ctx, r.ID())
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = f.service.Get(f.ctx, r.ID())
	assert.True(t, errors.IsNotFoundError(err))

	_, err = f.service.GetPermissions(f.ctx, r.ID())
	assert.True(t, errors.IsNotFoundError(err))
}
