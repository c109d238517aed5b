// Package testutil opens throwaway databases for integration tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"warden/internal/infrastructure/database"
	"warden/internal/infrastructure/migration"
	"warden/internal/shared/config"
	"warden/internal/shared/logger"
)

var dbSeq atomic.Int64

// MemoryConfig returns a config for a private in-memory SQLite database.
func MemoryConfig(name string) *config.DatabaseConfig {
	return &config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1)),
	}
}

// OpenDB opens an empty in-memory database without any tables.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(MemoryConfig("warden_test"))
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewTestDB opens an in-memory database with the full schema applied.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := OpenDB(t)
	require.NoError(t, migration.NewGormAutoMigrateStrategy(logger.NewNopLogger()).Migrate(db))
	return db
}
