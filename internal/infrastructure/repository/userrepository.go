package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"warden/internal/domain/user"
	vo "warden/internal/domain/user/valueobjects"
	"warden/internal/infrastructure/persistence/mappers"
	"warden/internal/infrastructure/persistence/models"
	"warden/internal/shared/biztime"
	"warden/internal/shared/db"
	"warden/internal/shared/errors"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	clock  biztime.Clock
	mapper mappers.UserMapper
}

// NewUserRepository creates a user repository. clock stamps new role assignments.
func NewUserRepository(db *gorm.DB, clock biztime.Clock) user.Repository {
	return &UserRepositoryImpl{
		db:     db,
		clock:  clock,
		mapper: mappers.NewUserMapper(),
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("email already exists")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return u.SetID(model.ID)
}

// GetByID returns the user with its roles attached.
func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return r.first(ctx, db.GetTxFromContext(ctx, r.db).Where("id = ?", id))
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, db.GetTxFromContext(ctx, r.db).Where("email_key = ?", vo.EmailKey(email)))
}

func (r *UserRepositoryImpl) first(ctx context.Context, query *gorm.DB) (*user.User, error) {
	var model models.UserModel
	if err := query.First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		return nil, err
	}

	roles, err := r.GetRoles(ctx, entity.ID())
	if err != nil {
		return nil, err
	}
	entity.SetRoles(roles)
	return entity, nil
}

// List orders users by first name, then last name.
func (r *UserRepositoryImpl) List(ctx context.Context) ([]*user.User, error) {
	var userModels []*models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).Order("first_name, last_name, id").Find(&userModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return r.mapper.ToEntities(userModels)
}

func (r *UserRepositoryImpl) Update(ctx context.Context, u *user.User) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.UserModel{}).
		Where("id = ? AND version = ?", u.ID(), u.Version()).
		Updates(map[string]interface{}{
			"first_name":        u.FirstName(),
			"last_name":         u.LastName(),
			"email":             u.Email().String(),
			"email_key":         u.Email().Key(),
			"phone":             u.Phone(),
			"password_hash":     u.PasswordHash(),
			"is_active":         u.IsActive(),
			"is_email_verified": u.IsEmailVerified(),
			"updated_at":        u.UpdatedAt(),
			"version":           gorm.Expr("version + 1"),
		})

	if result.Error != nil {
		if errors.IsDuplicateError(result.Error) {
			return errors.NewConflictError("email already exists")
		}
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return versionMissError(tx, &models.UserModel{}, u.ID(), "user")
	}

	u.BumpVersion()
	return nil
}

func (r *UserRepositoryImpl) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{}).
		Where("id = ?", id).
		Update("last_login_at", at)
	if result.Error != nil {
		return fmt.Errorf("failed to update last login: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("user not found", fmt.Sprintf("id=%d", id))
	}
	return nil
}

// Delete removes the user and its role assignments.
func (r *UserRepositoryImpl) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := withTx(ctx, r.db, func(tx *gorm.DB) error {
		var err error
		deleted, err = deleteUserCascade(tx, id)
		return err
	})
	return deleted, err
}

func (r *UserRepositoryImpl) Exists(ctx context.Context, id uint) (bool, error) {
	found, err := exists(db.GetTxFromContext(ctx, r.db), &models.UserModel{}, "id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return found, nil
}

// EmailExists compares addresses case-insensitively.
func (r *UserRepositoryImpl) EmailExists(ctx context.Context, email string, excludeID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db).Scopes(db.ExcludeID("id", excludeID))
	found, err := exists(tx, &models.UserModel{}, "email_key = ?", vo.EmailKey(email))
	if err != nil {
		return false, fmt.Errorf("failed to check user email: %w", err)
	}
	return found, nil
}
