package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/internal/domain/permission"
	"warden/internal/domain/user"
	vo "warden/internal/domain/user/valueobjects"
	"warden/internal/shared/errors"
)

func TestRoleRepository_AssignmentsAreIdempotent(t *testing.T) {
	f := newFixture(t)
	m := f.module(t, "Admin", true)
	s := f.subModule(t, m.ID(), "Users", true)
	view := f.permission(t, s.ID(), "View", true)
	edit := f.permission(t, s.ID(), "Edit", true)
	r := f.role(t, "Auditor", true)

	t.Run("assign twice keeps one grant", func(t *testing.T) {
		inserted, err := f.roles.AssignPermission(f.ctx, r.ID(), view.ID())
		require.NoError(t, err)
		assert.True(t, inserted)

		inserted, err = f.roles.AssignPermission(f.ctx, r.ID(), view.ID())
		require.NoError(t, err)
		assert.False(t, inserted)

		perms, err := f.roles.GetPermissions(f.ctx, r.ID())
		require.NoError(t, err)
		assert.Equal(t, []string{"View"}, permissionNames(perms))
	})

	t.Run("revoke reports whether a grant existed", func(t *testing.T) {
		removed, err := f.roles.RevokePermission(f.ctx, r.ID(), view.ID())
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = f.roles.RevokePermission(f.ctx, r.ID(), view.ID())
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("replace keeps surviving grants first", func(t *testing.T) {
		_, err := f.roles.AssignPermission(f.ctx, r.ID(), edit.ID())
		require.NoError(t, err)

		require.NoError(t, f.roles.ReplacePermissions(f.ctx, r.ID(), []uint{view.ID(), edit.ID(), view.ID()}))
		perms, err := f.roles.GetPermissions(f.ctx, r.ID())
		require.NoError(t, err)
		assert.Equal(t, []string{"Edit", "View"}, permissionNames(perms))

		require.NoError(t, f.roles.ReplacePermissions(f.ctx, r.ID(), nil))
		perms, err = f.roles.GetPermissions(f.ctx, r.ID())
		require.NoError(t, err)
		assert.Empty(t, perms)
	})
}

func TestRoleRepository_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	m := f.module(t, "Docs", true)
	s := f.subModule(t, m.ID(), "Pages", true)
	p := f.permission(t, s.ID(), "Publish", true)
	r := f.role(t, "Editor", true)
	u := f.user(t, "ed@example.com", "Ed")

	_, err := f.roles.AssignPermission(f.ctx, r.ID(), p.ID())
	require.NoError(t, err)
	_, err = f.users.AssignRole(f.ctx, u.ID(), r.ID())
	require.NoError(t, err)

	deleted, err := f.roles.Delete(f.ctx, r.ID())
	require.NoError(t, err)
	assert.True(t, deleted)

	roles, err := f.users.GetRoles(f.ctx, u.ID())
	require.NoError(t, err)
	assert.Empty(t, roles)

	found, err := f.permissions.Exists(f.ctx, p.ID())
	require.NoError(t, err)
	assert.True(t, found)
}

func TestUserRepository_Email(t *testing.T) {
	f := newFixture(t)
	ann := f.user(t, "Ann.Lee@Example.com", "Ann")

	got, err := f.users.GetByEmail(f.ctx, "  ann.lee@EXAMPLE.com ")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ann.ID(), got.ID())
	assert.Equal(t, "Ann.Lee@Example.com", got.Email().String())

	exists, err := f.users.EmailExists(f.ctx, "ANN.LEE@example.com", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = f.users.EmailExists(f.ctx, "ann.lee@example.com", ann.ID())
	require.NoError(t, err)
	assert.False(t, exists)

	addr, err := vo.NewEmail("ann.lee@example.COM")
	require.NoError(t, err)
	dup, err := user.NewUser(addr, user.Profile{FirstName: "Other", LastName: "Ann"}, f.clock.Now())
	require.NoError(t, err)
	err = f.users.Create(f.ctx, dup)
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))

	missing, err := f.users.GetByEmail(f.ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_ListAndLastLogin(t *testing.T) {
	f := newFixture(t)
	f.user(t, "zoe@example.com", "Zoe")
	amy := f.user(t, "amy@example.com", "Amy")

	users, err := f.users.List(f.ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Amy", users[0].FirstName())

	at := f.clock.Advance(time.Hour)
	require.NoError(t, f.users.UpdateLastLogin(f.ctx, amy.ID(), at))

	got, err := f.users.GetByID(f.ctx, amy.ID())
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt())
	assert.True(t, got.LastLoginAt().Equal(at))
	assert.True(t, got.CreatedAt().Equal(testEpoch))

	err = f.users.UpdateLastLogin(f.ctx, 4242, at)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestUserRepository_DeleteRemovesAssignments(t *testing.T) {
	f := newFixture(t)
	r := f.role(t, "Viewer", true)
	u := f.user(t, "gone@example.com", "Gone")

	inserted, err := f.users.AssignRole(f.ctx, u.ID(), r.ID())
	require.NoError(t, err)
	assert.True(t, inserted)
	inserted, err = f.users.AssignRole(f.ctx, u.ID(), r.ID())
	require.NoError(t, err)
	assert.False(t, inserted)

	deleted, err := f.users.Delete(f.ctx, u.ID())
	require.NoError(t, err)
	assert.True(t, deleted)

	assignments, err := f.grants.ActiveRoleAssignments(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, assignments)

	deleted, err = f.users.Delete(f.ctx, u.ID())
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGrantRepository_EffectivePermissions(t *testing.T) {
	f := newFixture(t)
	sales := f.module(t, "Sales", true)
	orders := f.subModule(t, sales.ID(), "Orders", true)
	view := f.permission(t, orders.ID(), "View", true)
	create := f.permission(t, orders.ID(), "Create", true)
	refund := f.permission(t, orders.ID(), "Refund", true)

	clerk := f.role(t, "Clerk", true)
	manager := f.role(t, "Manager", true)
	retired := f.role(t, "Retired", false)
	u := f.user(t, "sam@example.com", "Sam")

	for _, id := range []uint{view.ID(), create.ID()} {
		_, err := f.roles.AssignPermission(f.ctx, clerk.ID(), id)
		require.NoError(t, err)
	}
	for _, id := range []uint{view.ID(), refund.ID()} {
		_, err := f.roles.AssignPermission(f.ctx, manager.ID(), id)
		require.NoError(t, err)
	}
	_, err := f.roles.AssignPermission(f.ctx, retired.ID(), refund.ID())
	require.NoError(t, err)

	for _, r := range []*permission.Role{clerk, manager, retired} {
		_, err := f.users.AssignRole(f.ctx, u.ID(), r.ID())
		require.NoError(t, err)
	}

	t.Run("union of active roles without duplicates", func(t *testing.T) {
		perms, err := f.grants.EffectivePermissions(f.ctx, u.ID())
		require.NoError(t, err)
		assert.Equal(t, []string{"Create", "Refund", "View"}, permissionNames(perms))

		ok, err := f.grants.HasPermission(f.ctx, u.ID(), refund.ID())
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("removing a role drops what only it granted", func(t *testing.T) {
		_, err := f.users.RemoveRole(f.ctx, u.ID(), manager.ID())
		require.NoError(t, err)

		perms, err := f.grants.EffectivePermissions(f.ctx, u.ID())
		require.NoError(t, err)
		assert.Equal(t, []string{"Create", "View"}, permissionNames(perms))

		ok, err := f.grants.HasPermission(f.ctx, u.ID(), refund.ID())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("inactive ancestor hides permissions", func(t *testing.T) {
		require.NoError(t, sales.Update(permission.ModuleAttrs{Name: "Sales", IsActive: false}, f.clock.Now()))
		require.NoError(t, f.modules.Update(f.ctx, sales))

		perms, err := f.grants.EffectivePermissions(f.ctx, u.ID())
		require.NoError(t, err)
		assert.Empty(t, perms)
	})

	t.Run("grant graph lists only active edges", func(t *testing.T) {
		require.NoError(t, sales.Update(permission.ModuleAttrs{Name: "Sales", IsActive: true}, f.clock.Now()))
		require.NoError(t, f.modules.Update(f.ctx, sales))

		grants, err := f.grants.ActiveRoleGrants(f.ctx)
		require.NoError(t, err)
		for _, g := range grants {
			assert.NotEqual(t, retired.ID(), g.RoleID)
		}
		assert.Len(t, grants, 4)

		assignments, err := f.grants.ActiveRoleAssignments(f.ctx)
		require.NoError(t, err)
		assert.Equal(t, []permission.RoleAssignment{{UserID: u.ID(), RoleID: clerk.ID()}}, assignments)
	})
}
