package migration

import (
	"fmt"

	"gorm.io/gorm"

	"warden/internal/infrastructure/persistence/models"
	"warden/internal/shared/logger"
)

// AutoMigrateModels lists the tables in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.ModuleModel{},
		&models.SubModuleModel{},
		&models.PermissionModel{},
		&models.RoleModel{},
		&models.UserModel{},
		&models.RolePermissionModel{},
		&models.UserRoleModel{},
	}
}

// GormAutoMigrateStrategy derives the schema from the model structs.
type GormAutoMigrateStrategy struct {
	models []interface{}
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) *GormAutoMigrateStrategy {
	if log == nil {
		log = logger.NewLogger()
	}
	return &GormAutoMigrateStrategy{
		models: AutoMigrateModels(),
		logger: log.Named("migration.gorm"),
	}
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB) error {
	s.logger.Infow("starting gorm auto migration", "models_count", len(s.models))
	if err := db.AutoMigrate(s.models...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	s.logger.Infow("auto migration completed successfully")
	return nil
}
