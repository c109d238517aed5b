package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	sharedConfig "warden/internal/shared/config"
	"warden/internal/shared/constants"
	"warden/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks versioned scripts for test and production and
// struct-driven auto migration for everything else.
func NewManager(environment, driver string, log logger.Interface) (*Manager, error) {
	if log == nil {
		log = logger.NewLogger()
	}

	var strategy Strategy
	switch strings.ToLower(environment) {
	case constants.EnvTest, constants.EnvProduction:
		goose, err := NewGooseStrategy(driver, log)
		if err != nil {
			return nil, err
		}
		strategy = goose
	default:
		strategy = NewGormAutoMigrateStrategy(log)
	}

	return NewManagerWithStrategy(strategy, log), nil
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	if log == nil {
		log = logger.NewLogger()
	}
	return &Manager{
		strategy: strategy,
		logger:   log.Named("migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

// Rollback undoes the last steps migrations. Only versioned strategies support it.
func (m *Manager) Rollback(db *gorm.DB, steps int) error {
	vs, ok := m.strategy.(VersionedStrategy)
	if !ok {
		return fmt.Errorf("strategy %s does not support rollback", m.strategy.GetName())
	}
	if steps <= 0 {
		steps = 1
	}
	return vs.MigrateDown(db, steps)
}

// Status prints the applied and pending scripts.
func (m *Manager) Status(db *gorm.DB) error {
	vs, ok := m.strategy.(VersionedStrategy)
	if !ok {
		return fmt.Errorf("strategy %s does not track versions", m.strategy.GetName())
	}
	return vs.Status(db)
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

// GetStrategyInfo returns information about the current strategy
func (m *Manager) GetStrategyInfo() map[string]interface{} {
	return map[string]interface{}{
		"name":        m.strategy.GetName(),
		"description": getStrategyDescription(m.strategy.GetName()),
	}
}

func getStrategyDescription(strategyName string) string {
	switch strategyName {
	case "gorm_auto_migrate":
		return "GORM AutoMigrate - Automatic schema migration based on struct definitions"
	case "goose":
		return "goose - Version-controlled SQL migration scripts"
	default:
		return "Unknown migration strategy"
	}
}

// DriverOf returns the configured driver, defaulting to SQLite.
func DriverOf(cfg *sharedConfig.DatabaseConfig) string {
	if cfg == nil || cfg.Driver == "" {
		return sharedConfig.DriverSQLite
	}
	return cfg.Driver
}
