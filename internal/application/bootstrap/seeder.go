// Package bootstrap loads the default taxonomy into an empty or partially
// seeded store.
package bootstrap

import (
	"context"
	"fmt"

	"warden/internal/application/hierarchy"
	hierarchydto "warden/internal/application/hierarchy/dto"
	"warden/internal/application/role"
	roledto "warden/internal/application/role/dto"
	"warden/internal/application/user"
	userdto "warden/internal/application/user/dto"
	"warden/internal/domain/permission"
	"warden/internal/domain/shared"
	"warden/internal/infrastructure/persistence/seeds"
	"warden/internal/shared/db"
	"warden/internal/shared/logger"
	"warden/internal/shared/utils"
)

// AdminCredentials identify the bootstrap account. An empty password skips
// creating it.
type AdminCredentials struct {
	Email    string
	Password string
}

// Result counts what a run created. A second run over the same taxonomy
// reports zeros.
type Result struct {
	RolesCreated       int
	ModulesCreated     int
	SubModulesCreated  int
	PermissionsCreated int
	GrantsAdded        int
	AdminCreated       bool
	AdminRoleAssigned  bool
}

type Seeder struct {
	modules     *hierarchy.ModuleService
	subModules  *hierarchy.SubModuleService
	permissions *hierarchy.PermissionService
	roles       *role.Service
	users       *user.Service
	tx          db.Transactor
	logger      logger.Interface
}

func NewSeeder(
	modules *hierarchy.ModuleService,
	subModules *hierarchy.SubModuleService,
	permissions *hierarchy.PermissionService,
	roles *role.Service,
	users *user.Service,
	tx db.Transactor,
	logger logger.Interface,
) *Seeder {
	return &Seeder{
		modules:     modules,
		subModules:  subModules,
		permissions: permissions,
		roles:       roles,
		users:       users,
		tx:          tx,
		logger:      logger,
	}
}

// Run creates whatever the taxonomy names and the store lacks, matching
// existing rows by case-insensitive name. Everything happens in one
// transaction.
func (s *Seeder) Run(ctx context.Context, tax *seeds.Taxonomy, admin AdminCredentials) (*Result, error) {
	res := &Result{}

	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		roles, err := s.seedRoles(ctx, tax.Roles, res)
		if err != nil {
			return err
		}

		permissionIDs, err := s.seedHierarchy(ctx, tax.Modules, res)
		if err != nil {
			return err
		}

		for _, r := range tax.Roles {
			if !r.GrantAll {
				continue
			}
			target := roles[shared.NameKey(r.Name)]
			for _, id := range permissionIDs {
				inserted, err := s.roles.AssignPermission(ctx, target.ID(), id)
				if err != nil {
					return fmt.Errorf("failed to grant permission %d to %s: %w", id, target.Name(), err)
				}
				if inserted {
					res.GrantsAdded++
				}
			}
		}

		return s.seedAdmin(ctx, tax.Admin, admin, roles, res)
	})
	if err != nil {
		s.logger.Errorw("seed failed", "error", err)
		return nil, err
	}

	s.logger.Infow("seed completed",
		"roles_created", res.RolesCreated,
		"modules_created", res.ModulesCreated,
		"sub_modules_created", res.SubModulesCreated,
		"permissions_created", res.PermissionsCreated,
		"grants_added", res.GrantsAdded,
		"admin_created", res.AdminCreated)
	return res, nil
}

func (s *Seeder) seedRoles(ctx context.Context, items []seeds.RoleSeed, res *Result) (map[string]*permission.Role, error) {
	existing, err := s.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]*permission.Role, len(existing))
	for _, r := range existing {
		byKey[r.NameKey()] = r
	}

	for _, item := range items {
		key := shared.NameKey(item.Name)
		if _, ok := byKey[key]; ok {
			continue
		}
		created, err := s.roles.Create(ctx, roledto.CreateRoleCommand{
			Name:        item.Name,
			Description: item.Description,
			IsActive:    true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to seed role %q: %w", item.Name, err)
		}
		byKey[key] = created
		res.RolesCreated++
	}
	return byKey, nil
}

// seedHierarchy returns the ids of every permission the taxonomy names, in
// document order.
func (s *Seeder) seedHierarchy(ctx context.Context, items []seeds.ModuleSeed, res *Result) ([]uint, error) {
	existing, err := s.modules.List(ctx)
	if err != nil {
		return nil, err
	}
	modules := make(map[string]*permission.Module, len(existing))
	for _, m := range existing {
		modules[m.NameKey()] = m
	}

	var permissionIDs []uint
	for _, item := range items {
		m, ok := modules[shared.NameKey(item.Name)]
		if !ok {
			m, err = s.modules.Create(ctx, hierarchydto.CreateModuleCommand{
				Name:        item.Name,
				Description: item.Description,
				Icon:        item.Icon,
				IsActive:    true,
				SortOrder:   item.SortOrder,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to seed module %q: %w", item.Name, err)
			}
			modules[m.NameKey()] = m
			res.ModulesCreated++
		}

		ids, err := s.seedSubModules(ctx, m.ID(), item.SubModules, res)
		if err != nil {
			return nil, err
		}
		permissionIDs = append(permissionIDs, ids...)
	}
	return permissionIDs, nil
}

func (s *Seeder) seedSubModules(ctx context.Context, moduleID uint, items []seeds.SubModuleSeed, res *Result) ([]uint, error) {
	existing, err := s.subModules.ListByModule(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	subModules := make(map[string]*permission.SubModule, len(existing))
	for _, sm := range existing {
		subModules[sm.NameKey()] = sm
	}

	var permissionIDs []uint
	for _, item := range items {
		sm, ok := subModules[shared.NameKey(item.Name)]
		if !ok {
			sm, err = s.subModules.Create(ctx, hierarchydto.CreateSubModuleCommand{
				ModuleID:    moduleID,
				Name:        item.Name,
				Description: item.Description,
				Icon:        item.Icon,
				URL:         item.URL,
				IsActive:    true,
				SortOrder:   item.SortOrder,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to seed sub-module %q: %w", item.Name, err)
			}
			subModules[sm.NameKey()] = sm
			res.SubModulesCreated++
		}

		ids, err := s.seedPermissions(ctx, sm.ID(), item.Permissions, res)
		if err != nil {
			return nil, err
		}
		permissionIDs = append(permissionIDs, ids...)
	}
	return permissionIDs, nil
}

func (s *Seeder) seedPermissions(ctx context.Context, subModuleID uint, items []seeds.PermissionSeed, res *Result) ([]uint, error) {
	existing, err := s.permissions.ListBySubModule(ctx, subModuleID)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]uint, len(existing))
	for _, p := range existing {
		byKey[p.NameKey()] = p.ID()
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		key := shared.NameKey(item.Name)
		if id, ok := byKey[key]; ok {
			ids = append(ids, id)
			continue
		}
		p, err := s.permissions.Create(ctx, hierarchydto.CreatePermissionCommand{
			SubModuleID: subModuleID,
			Name:        item.Name,
			Description: item.Description,
			IsActive:    true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to seed permission %q: %w", item.Name, err)
		}
		byKey[key] = p.ID()
		ids = append(ids, p.ID())
		res.PermissionsCreated++
	}
	return ids, nil
}

func (s *Seeder) seedAdmin(ctx context.Context, profile seeds.AdminSeed, creds AdminCredentials, roles map[string]*permission.Role, res *Result) error {
	if creds.Email == "" {
		return nil
	}

	account, err := s.users.GetByEmail(ctx, creds.Email)
	if err != nil {
		return err
	}
	if account == nil {
		if creds.Password == "" {
			s.logger.Warnw("admin password not configured, skipping admin user", "email", utils.MaskEmail(creds.Email))
			return nil
		}
		account, err = s.users.Create(ctx, userdto.CreateUserCommand{
			FirstName:       profile.FirstName,
			LastName:        profile.LastName,
			Email:           creds.Email,
			Phone:           profile.Phone,
			Password:        creds.Password,
			IsActive:        true,
			IsEmailVerified: true,
		})
		if err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
		res.AdminCreated = true
	}

	if profile.Role == "" {
		return nil
	}
	adminRole, ok := roles[shared.NameKey(profile.Role)]
	if !ok {
		return fmt.Errorf("admin role %q was not seeded", profile.Role)
	}
	inserted, err := s.users.AssignRole(ctx, account.ID(), adminRole.ID())
	if err != nil {
		return err
	}
	res.AdminRoleAssigned = inserted
	return nil
}
