package usecases

import (
	"context"
	"fmt"

	domainUser "warden/internal/domain/user"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

// GetUserUseCase handles the business logic for retrieving users
type GetUserUseCase struct {
	userRepo domainUser.Repository
	logger   logger.Interface
}

func NewGetUserUseCase(userRepo domainUser.Repository, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ExecuteByID returns the user with its roles attached.
func (uc *GetUserUseCase) ExecuteByID(ctx context.Context, id uint) (*domainUser.User, error) {
	if id == 0 {
		return nil, errors.NewValidationError("user ID cannot be zero")
	}

	userEntity, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get user", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if userEntity == nil {
		return nil, errors.NewNotFoundError("user not found", fmt.Sprintf("id=%d", id))
	}

	roles, err := uc.userRepo.GetRoles(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user roles: %w", err)
	}
	userEntity.SetRoles(roles)
	return userEntity, nil
}

// ExecuteByEmail returns nil when no user has the address.
func (uc *GetUserUseCase) ExecuteByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	userEntity, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return userEntity, nil
}

func (uc *GetUserUseCase) ExecuteList(ctx context.Context) ([]*domainUser.User, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
