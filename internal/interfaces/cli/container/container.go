// Package container wires configuration, storage and application services
// for the command line tools.
package container

import (
	"fmt"

	"gorm.io/gorm"

	"warden/internal/application/access"
	"warden/internal/application/bootstrap"
	"warden/internal/application/hierarchy"
	"warden/internal/application/role"
	"warden/internal/application/user"
	"warden/internal/domain/permission"
	domainUser "warden/internal/domain/user"
	"warden/internal/infrastructure/auth"
	"warden/internal/infrastructure/config"
	"warden/internal/infrastructure/database"
	"warden/internal/infrastructure/migration"
	permissionInfra "warden/internal/infrastructure/permission"
	"warden/internal/infrastructure/repository"
	"warden/internal/shared/biztime"
	"warden/internal/shared/db"
	"warden/internal/shared/logger"
)

// repositories holds the store adapters. Types match the constructors.
type repositories struct {
	moduleRepo     permission.ModuleRepository
	subModuleRepo  permission.SubModuleRepository
	permissionRepo permission.PermissionRepository
	roleRepo       permission.RoleRepository
	userRepo       domainUser.Repository
	grantRepo      permission.GrantReader
}

// Container holds everything a command needs. Build it with New or Open.
type Container struct {
	cfg   *config.Config
	db    *gorm.DB
	log   logger.Interface
	clock biztime.Clock
	repos *repositories

	Modules     *hierarchy.ModuleService
	SubModules  *hierarchy.SubModuleService
	Permissions *hierarchy.PermissionService
	Roles       *role.Service
	Users       *user.Service
	Access      *access.Service
	Seeder      *bootstrap.Seeder

	enforcer *permissionInfra.Enforcer
	owned    bool
}

// Open loads configuration for env, initializes logging and the database,
// and wires every service. Close releases the database.
func Open(env string) (*Container, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.App.Mode); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	c, err := New(cfg, database.Get(), logger.NewLogger())
	if err != nil {
		_ = database.Close()
		return nil, err
	}
	c.owned = true
	return c, nil
}

// New wires services over an already open database.
func New(cfg *config.Config, gdb *gorm.DB, log logger.Interface) (*Container, error) {
	c := &Container{
		cfg:   cfg,
		db:    gdb,
		log:   log,
		clock: biztime.NewSystemClock(),
	}

	c.initRepositories()

	if err := c.initEnforcer(); err != nil {
		return nil, err
	}

	c.initServices()

	return c, nil
}

func (c *Container) initRepositories() {
	c.repos = &repositories{
		moduleRepo:     repository.NewModuleRepository(c.db),
		subModuleRepo:  repository.NewSubModuleRepository(c.db),
		permissionRepo: repository.NewPermissionRepository(c.db),
		roleRepo:       repository.NewRoleRepository(c.db, c.clock),
		userRepo:       repository.NewUserRepository(c.db, c.clock),
		grantRepo:      repository.NewGrantRepository(c.db),
	}
}

func (c *Container) initEnforcer() error {
	enforcerLog := c.log.Named("authorization")

	var (
		enforcer *permissionInfra.Enforcer
		err      error
	)
	if c.cfg.Authorization.PersistPolicies {
		enforcer, err = permissionInfra.NewPersistentEnforcer(c.db, enforcerLog)
	} else {
		enforcer, err = permissionInfra.NewEnforcer(enforcerLog)
	}
	if err != nil {
		return fmt.Errorf("failed to create policy enforcer: %w", err)
	}

	c.enforcer = enforcer
	return nil
}

func (c *Container) initServices() {
	tx := db.NewTransactionManager(c.db)
	hasher := auth.NewPasswordHasher(c.cfg.Auth.Password)
	c.log.Debugw("password hasher ready", "bcrypt_cost", hasher.Cost())
	r := c.repos

	c.Modules = hierarchy.NewModuleService(r.moduleRepo, tx, c.clock, c.log.Named("module"))
	c.SubModules = hierarchy.NewSubModuleService(r.subModuleRepo, r.moduleRepo, tx, c.clock, c.log.Named("submodule"))
	c.Permissions = hierarchy.NewPermissionService(r.permissionRepo, r.subModuleRepo, tx, c.clock, c.log.Named("permission"))
	c.Roles = role.NewService(r.roleRepo, r.permissionRepo, tx, c.clock, c.log.Named("role"))
	c.Users = user.NewService(r.userRepo, r.roleRepo, r.grantRepo, hasher, tx, c.clock, c.log.Named("user"))
	c.Access = access.NewService(r.grantRepo, c.enforcer, tx, c.log.Named("access"))
	c.Seeder = bootstrap.NewSeeder(c.Modules, c.SubModules, c.Permissions, c.Roles, c.Users, tx, c.log.Named("seed"))
}

func (c *Container) Config() *config.Config {
	return c.cfg
}

func (c *Container) DB() *gorm.DB {
	return c.db
}

func (c *Container) Logger() logger.Interface {
	return c.log
}

// PersistentPolicies reports whether the enforcer reads its snapshot from
// the casbin rule table.
func (c *Container) PersistentPolicies() bool {
	return c.cfg.Authorization.PersistPolicies
}

// Migrations returns the migration manager for the configured environment.
func (c *Container) Migrations() (*migration.Manager, error) {
	return migration.NewManager(c.cfg.App.Env, migration.DriverOf(&c.cfg.Database), c.log)
}

// Close flushes the logger and closes a database opened by Open.
func (c *Container) Close() {
	_ = logger.Sync()
	if c.owned {
		if err := database.Close(); err != nil {
			c.log.Warnw("failed to close database", "error", err)
		}
	}
}
