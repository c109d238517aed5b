package usecases

import (
	"context"
	"fmt"

	"warden/internal/application/user/dto"
	domainUser "warden/internal/domain/user"
	vo "warden/internal/domain/user/valueobjects"
	"warden/internal/shared/biztime"
	"warden/internal/shared/db"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
	"warden/internal/shared/utils"
)

// CreateUserUseCase handles the business logic for creating a user
type CreateUserUseCase struct {
	userRepo domainUser.Repository
	hasher   domainUser.PasswordHasher
	tx       db.Transactor
	clock    biztime.Clock
	logger   logger.Interface
}

func NewCreateUserUseCase(
	userRepo domainUser.Repository,
	hasher domainUser.PasswordHasher,
	tx db.Transactor,
	clock biztime.Clock,
	logger logger.Interface,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tx:       tx,
		clock:    clock,
		logger:   logger,
	}
}

// Execute hashes the password before opening the transaction, then checks
// the email and persists the user.
func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd dto.CreateUserCommand) (*domainUser.User, error) {
	uc.logger.Infow("executing create user use case", "email", utils.MaskEmail(cmd.Email))

	if err := utils.ValidateStruct(cmd); err != nil {
		uc.logger.Warnw("invalid create user command", "error", err)
		return nil, err
	}

	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	password, err := vo.NewPassword(cmd.Password)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	userEntity, err := domainUser.NewUser(email, domainUser.Profile{
		FirstName:       cmd.FirstName,
		LastName:        cmd.LastName,
		Phone:           cmd.Phone,
		IsActive:        cmd.IsActive,
		IsEmailVerified: cmd.IsEmailVerified,
	}, now)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := userEntity.SetPassword(password, uc.hasher, now); err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, err
	}

	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		taken, err := uc.userRepo.EmailExists(ctx, email.String(), 0)
		if err != nil {
			return fmt.Errorf("failed to check existing user: %w", err)
		}
		if taken {
			return errors.NewConflictError("user with this email already exists", email.String())
		}
		return uc.userRepo.Create(ctx, userEntity)
	})
	if err != nil {
		uc.logger.Errorw("failed to create user", "email", utils.MaskEmail(cmd.Email), "error", err)
		return nil, err
	}

	uc.logger.Infow("user created successfully", "user_id", userEntity.ID())
	return userEntity, nil
}
