package usecases

import (
	"context"
	"fmt"

	domainUser "warden/internal/domain/user"
	"warden/internal/shared/db"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

type DeleteUserUseCase struct {
	userRepo domainUser.Repository
	tx       db.Transactor
	logger   logger.Interface
}

func NewDeleteUserUseCase(userRepo domainUser.Repository, tx db.Transactor, logger logger.Interface) *DeleteUserUseCase {
	return &DeleteUserUseCase{
		userRepo: userRepo,
		tx:       tx,
		logger:   logger,
	}
}

// Execute removes the user and its role assignments, reporting false when
// the user did not exist.
func (uc *DeleteUserUseCase) Execute(ctx context.Context, id uint) (bool, error) {
	if id == 0 {
		return false, errors.NewValidationError("user ID cannot be zero")
	}

	var deleted bool
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = uc.userRepo.Delete(ctx, id)
		return err
	})
	if err != nil {
		uc.logger.Errorw("failed to delete user", "user_id", id, "error", err)
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	if deleted {
		uc.logger.Infow("user deleted", "user_id", id)
	}
	return deleted, nil
}
