package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"warden/internal/shared/db"
	"warden/internal/shared/errors"
)

// withTx runs fn on the transaction carried by ctx, or opens one when the
// caller did not. Multi-statement writes always go through here.
func withTx(ctx context.Context, base *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db.InTransaction(ctx) {
		return fn(db.GetTxFromContext(ctx, base))
	}
	return base.WithContext(ctx).Transaction(fn)
}

// writeError maps a failed insert or update to the error taxonomy.
// A unique index hit means another writer took the name first.
func writeError(err error, entity, op string) error {
	if errors.IsDuplicateError(err) {
		return errors.NewConflictError(fmt.Sprintf("%s name already exists", entity))
	}
	return fmt.Errorf("failed to %s %s: %w", op, entity, err)
}

// versionMissError explains a versioned update that touched no row.
func versionMissError(tx *gorm.DB, model interface{}, id uint, entity string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check %s existence: %w", entity, err)
	}
	if count == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("%s not found", entity), fmt.Sprintf("id=%d", id))
	}
	return errors.NewWriteConflictError(fmt.Sprintf("%s was modified concurrently", entity), fmt.Sprintf("id=%d", id))
}

func exists(tx *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := tx.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// pluckIDs returns the ids of rows in model whose column is one of parentIDs.
func pluckIDs(tx *gorm.DB, model interface{}, column string, parentIDs []uint) ([]uint, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	if err := tx.Model(model).Where(column+" IN ?", parentIDs).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
