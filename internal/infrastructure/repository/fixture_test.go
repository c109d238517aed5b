package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"warden/internal/domain/permission"
	"warden/internal/domain/user"
	vo "warden/internal/domain/user/valueobjects"
	"warden/internal/infrastructure/testutil"
	"warden/internal/shared/biztime"
)

var testEpoch = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

type fixture struct {
	ctx         context.Context
	db          *gorm.DB
	clock       *biztime.FixedClock
	modules     permission.ModuleRepository
	subModules  permission.SubModuleRepository
	permissions permission.PermissionRepository
	roles       permission.RoleRepository
	users       user.Repository
	grants      permission.GrantReader
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	clock := biztime.NewFixedClock(testEpoch)
	return &fixture{
		ctx:         context.Background(),
		db:          db,
		clock:       clock,
		modules:     NewModuleRepository(db),
		subModules:  NewSubModuleRepository(db),
		permissions: NewPermissionRepository(db),
		roles:       NewRoleRepository(db, clock),
		users:       NewUserRepository(db, clock),
		grants:      NewGrantRepository(db),
	}
}

func (f *fixture) module(t *testing.T, name string, active bool) *permission.Module {
	t.Helper()
	m, err := permission.NewModule(permission.ModuleAttrs{Name: name, IsActive: active}, f.clock.Now())
	require.NoError(t, err)
	require.NoError(t, f.modules.Create(f.ctx, m))
	return m
}

func (f *fixture) subModule(t *testing.T, moduleID uint, name string, active bool) *permission.SubModule {
	t.Helper()
	s, err := permission.NewSubModule(permission.SubModuleAttrs{ModuleID: moduleID, Name: name, IsActive: active}, f.clock.Now())
	require.NoError(t, err)
	require.NoError(t, f.subModules.Create(f.ctx, s))
	return s
}

func (f *fixture) permission(t *testing.T, subModuleID uint, name string, active bool) *permission.Permission {
	t.Helper()
	p, err := permission.NewPermission(permission.PermissionAttrs{SubModuleID: subModuleID, Name: name, IsActive: active}, f.clock.Now())
	require.NoError(t, err)
	require.NoError(t, f.permissions.Create(f.ctx, p))
	return p
}

func (f *fixture) role(t *testing.T, name string, active bool) *permission.Role {
	t.Helper()
	r, err := permission.NewRole(permission.RoleAttrs{Name: name, IsActive: active}, f.clock.Now())
	require.NoError(t, err)
	require.NoError(t, f.roles.Create(f.ctx, r))
	return r
}

func (f *fixture) user(t *testing.T, email, firstName string) *user.User {
	t.Helper()
	addr, err := vo.NewEmail(email)
	require.NoError(t, err)
	u, err := user.NewUser(addr, user.Profile{FirstName: firstName, LastName: "Tester", IsActive: true}, f.clock.Now())
	require.NoError(t, err)
	require.NoError(t, f.users.Create(f.ctx, u))
	return u
}

func permissionNames(items []*permission.Permission) []string {
	names := make([]string, 0, len(items))
	for _, p := range items {
		names = append(names, p.Name())
	}
	return names
}
