package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"warden/internal/application/user/dto"
	"warden/internal/domain/permission"
	"warden/internal/infrastructure/auth"
	"warden/internal/infrastructure/repository"
	"warden/internal/infrastructure/testutil"
	"warden/internal/shared/biztime"
	"warden/internal/shared/db"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

var start = time.Date(2024, 9, 1, 7, 30, 0, 0, time.UTC)

type userFixture struct {
	ctx     context.Context
	clock   *biztime.FixedClock
	service *Service
	roles   permission.RoleRepository
	modules permission.ModuleRepository
	subs    permission.SubModuleRepository
	perms   permission.PermissionRepository
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()

	gdb := testutil.NewTestDB(t)
	clock := biztime.NewFixedClock(start)
	roles := repository.NewRoleRepository(gdb, clock)

	return &userFixture{
		ctx:   context.Background(),
		clock: clock,
		service: NewService(
			repository.NewUserRepository(gdb, clock),
			roles,
			repository.NewGrantRepository(gdb),
			auth.NewBcryptPasswordHasher(bcrypt.MinCost),
			db.NewTransactionManager(gdb),
			clock,
			logger.NewNopLogger(),
		),
		roles:   roles,
		modules: repository.NewModuleRepository(gdb),
		subs:    repository.NewSubModuleRepository(gdb),
		perms:   repository.NewPermissionRepository(gdb),
	}
}

func (f *userFixture) role(t *testing.T, name string, active bool) *permission.Role {
	t.Helper()
	r, err := permission.NewRole(permission.RoleAttrs{Name: name, IsActive: active}, f.clock.Now())
	require.NoError(t, err)
	require.NoError(t, f.roles.Create(f.ctx, r))
	return r
}

func createCmd(email string) dto.CreateUserCommand {
	return dto.CreateUserCommand{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  "analytical-engine",
		IsActive:  true,
	}
}

func TestService_Create(t *testing.T) {
	f := newUserFixture(t)

	u, err := f.service.Create(f.ctx, createCmd("Ada@Example.com"))
	require.NoError(t, err)
	assert.NotZero(t, u.ID())
	assert.Equal(t, "Ada Lovelace", u.FullName())
	assert.NotEqual(t, "analytical-engine", u.PasswordHash())
	assert.True(t, u.CreatedAt().Equal(start))

	tests := []struct {
		name  string
		cmd   dto.CreateUserCommand
		check func(error) bool
	}{
		{"duplicate email in another case", createCmd("ada@EXAMPLE.com"), errors.IsConflictError},
		{"short password", func() dto.CreateUserCommand { c := createCmd("b@example.com"); c.Password = "short"; return c }(), errors.IsValidationError},
		{"bad email", createCmd("not-an-email"), errors.IsValidationError},
		{"blank first name", func() dto.CreateUserCommand { c := createCmd("c@example.com"); c.FirstName = "  "; return c }(), errors.IsValidationError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Create(f.ctx, tt.cmd)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}

	found, err := f.service.EmailExists(f.ctx, "ADA@example.com", 0)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestService_Validate(t *testing.T) {
	f := newUserFixture(t)
	u, err := f.service.Create(f.ctx, createCmd("ada@example.com"))
	require.NoError(t, err)

	loginAt := f.clock.Advance(2 * time.Hour)

	got, err := f.service.Validate(f.ctx, " ADA@example.com", "analytical-engine")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID(), got.ID())
	require.NotNil(t, got.LastLoginAt())
	assert.True(t, got.LastLoginAt().Equal(loginAt))

	stored, err := f.service.Get(f.ctx, u.ID())
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt())
	assert.True(t, stored.LastLoginAt().Equal(loginAt))
	assert.Equal(t, 1, stored.Version())

	t.Run("no match cases return nil without error", func(t *testing.T) {
		got, err := f.service.Validate(f.ctx, "ada@example.com", "wrong-password")
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = f.service.Validate(f.ctx, "nobody@example.com", "analytical-engine")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("inactive user cannot validate", func(t *testing.T) {
		_, err := f.service.Update(f.ctx, dto.UpdateUserCommand{
			ID: u.ID(), FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", IsActive: false,
		})
		require.NoError(t, err)

		got, err := f.service.Validate(f.ctx, "ada@example.com", "analytical-engine")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestService_UpdatePassword(t *testing.T) {
	f := newUserFixture(t)
	u, err := f.service.Create(f.ctx, createCmd("ada@example.com"))
	require.NoError(t, err)
	_, err = f.service.Create(f.ctx, createCmd("grace@example.com"))
	require.NoError(t, err)

	newPassword := "difference-engine"
	updated, err := f.service.Update(f.ctx, dto.UpdateUserCommand{
		ID: u.ID(), Version: 1, FirstName: "Augusta", LastName: "King", Email: "ada@example.com", Password: &newPassword, IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version())
	assert.Equal(t, "Augusta King", updated.FullName())

	got, err := f.service.Validate(f.ctx, "ada@example.com", "analytical-engine")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = f.service.Validate(f.ctx, "ada@example.com", newPassword)
	require.NoError(t, err)
	assert.NotNil(t, got)

	_, err = f.service.Update(f.ctx, dto.UpdateUserCommand{
		ID: u.ID(), Version: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com",
	})
	assert.True(t, errors.IsWriteConflictError(err))

	_, err = f.service.Update(f.ctx, dto.UpdateUserCommand{
		ID: u.ID(), FirstName: "Ada", LastName: "Lovelace", Email: "GRACE@example.com",
	})
	assert.True(t, errors.IsConflictError(err))

	_, err = f.service.Update(f.ctx, dto.UpdateUserCommand{
		ID: 9876, FirstName: "Ada", LastName: "Lovelace", Email: "x@example.com",
	})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestService_Roles(t *testing.T) {
	f := newUserFixture(t)
	u, err := f.service.Create(f.ctx, createCmd("ada@example.com"))
	require.NoError(t, err)
	admin := f.role(t, "Administrator", true)
	guest := f.role(t, "Guest", false)

	inserted, err := f.service.AssignRole(f.ctx, u.ID(), admin.ID())
	require.NoError(t, err)
	assert.True(t, inserted)
	inserted, err = f.service.AssignRole(f.ctx, u.ID(), admin.ID())
	require.NoError(t, err)
	assert.False(t, inserted)
	_, err = f.service.AssignRole(f.ctx, u.ID(), guest.ID())
	require.NoError(t, err)

	_, err = f.service.AssignRole(f.ctx, u.ID(), 404)
	assert.True(t, errors.IsNotFoundError(err))
	_, err = f.service.AssignRole(f.ctx, 404, admin.ID())
	assert.True(t, errors.IsNotFoundError(err))

	roles, err := f.service.GetRoles(f.ctx, u.ID())
	require.NoError(t, err)
	assert.Len(t, roles, 2)

	got, err := f.service.Get(f.ctx, u.ID())
	require.NoError(t, err)
	assert.Len(t, dto.ToUserResponse(got).Roles, 2)

	removed, err := f.service.RemoveRole(f.ctx, u.ID(), guest.ID())
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = f.service.RemoveRole(f.ctx, u.ID(), guest.ID())
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = f.service.GetRoles(f.ctx, 404)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestService_ResolveEffectivePermissions(t *testing.T) {
	f := newUserFixture(t)
	u, err := f.service.Create(f.ctx, createCmd("ada@example.com"))
	require.NoError(t, err)

	m, err := permission.NewModule(permission.ModuleAttrs{Name: "Reports", IsActive: true}, f.clock.Now())
	require.NoError(t, err)
	require.NoError(t, f.modules.Create(f.ctx, m))
	s, err := permission.NewSubModule(permission.SubModuleAttrs{ModuleID: m.ID(), Name: "Monthly", IsActive: true}, f.clock.Now())
	require.NoError(t, err)
	require.NoError(t, f.subs.Create(f.ctx, s))
	p, err := permission.NewPermission(permission.PermissionAttrs{SubModuleID: s.ID(), Name: "Download", IsActive: true}, f.clock.Now())
	require.NoError(t, err)
	require.NoError(t, f.perms.Create(f.ctx, p))

	analyst := f.role(t, "Analyst", true)
	_, err = f.roles.AssignPermission(f.ctx, analyst.ID(), p.ID())
	require.NoError(t, err)
	_, err = f.service.AssignRole(f.ctx, u.ID(), analyst.ID())
	require.NoError(t, err)

	perms, err := f.service.ResolveEffectivePermissions(f.ctx, u.ID())
	require.NoError(t, err)
	require.Len(t, perms, 1)
	assert.Equal(t, "Reports / Monthly / Download", perms[0].QualifiedName())

	perms, err = f.service.ResolveEffectivePermissions(f.ctx, 31337)
	require.NoError(t, err)
	assert.Empty(t, perms)

	deleted, err := f.service.Delete(f.ctx, u.ID())
	require.NoError(t, err)
	assert.True(t, deleted)

	perms, err = f.service.ResolveEffectivePermissions(f.ctx, u.ID())
	require.NoError(t, err)
	assert.Empty(t, perms)
}

func TestService_ValidateUpgradesHashCost(t *testing.T) {
	gdb := testutil.NewTestDB(t)
	clock := biztime.NewFixedClock(start)
	ctx := context.Background()

	serviceWithCost := func(cost int) *Service {
		return NewService(
			repository.NewUserRepository(gdb, clock),
			repository.NewRoleRepository(gdb, clock),
			repository.NewGrantRepository(gdb),
			auth.NewBcryptPasswordHasher(cost),
			db.NewTransactionManager(gdb),
			clock,
			logger.NewNopLogger(),
		)
	}

	created, err := serviceWithCost(bcrypt.MinCost).Create(ctx, createCmd("ada@example.com"))
	require.NoError(t, err)

	upgraded := serviceWithCost(bcrypt.MinCost + 1)
	u, err := upgraded.Validate(ctx, "ada@example.com", "analytical-engine")
	require.NoError(t, err)
	require.NotNil(t, u)

	stored, err := upgraded.Get(ctx, created.ID())
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(stored.PasswordHash()))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
	assert.Equal(t, created.Version()+1, stored.Version())
	require.NotNil(t, stored.LastLoginAt())

	again, err := upgraded.Validate(ctx, "ada@example.com", "analytical-engine")
	require.NoError(t, err)
	assert.NotNil(t, again)
}
