package db

import (
	"gorm.io/gorm"
)

// ActiveOnly filters rows whose is_active flag is set.
//
// Example usage:
//
//	db.Model(&RoleModel{}).Scopes(db.ActiveOnly("")).Find(&roles)
//	db.Table("permissions p").Scopes(db.ActiveOnly("p")).Find(&rows)
func ActiveOnly(alias string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if alias == "" {
			return db.Where("is_active = ?", true)
		}
		return db.Where(alias+".is_active = ?", true)
	}
}

// ActiveChain restricts a permissions query joined with its sub-module (s)
// and module (m) to rows whose whole ancestor chain is active.
func ActiveChain(permAlias, subAlias, modAlias string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Scopes(ActiveOnly(permAlias), ActiveOnly(subAlias), ActiveOnly(modAlias))
	}
}

// ExcludeID skips the row being updated when checking for name collisions.
func ExcludeID(column string, id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if id == 0 {
			return db
		}
		return db.Where(column+" <> ?", id)
	}
}
