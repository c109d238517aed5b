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

// UpdateUserUseCase handles the business logic for updating a user
type UpdateUserUseCase struct {
	userRepo domainUser.Repository
	hasher   domainUser.PasswordHasher
	tx       db.Transactor
	clock    biztime.Clock
	logger   logger.Interface
}

func NewUpdateUserUseCase(
	userRepo domainUser.Repository,
	hasher domainUser.PasswordHasher,
	tx db.Transactor,
	clock biztime.Clock,
	logger logger.Interface,
) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		tx:       tx,
		clock:    clock,
		logger:   logger,
	}
}

func (uc *UpdateUserUseCase) Execute(ctx context.Context, cmd dto.UpdateUserCommand) (*domainUser.User, error) {
	uc.logger.Infow("executing update user use case", "user_id", cmd.ID)

	if err := utils.ValidateStruct(cmd); err != nil {
		uc.logger.Warnw("invalid update user command", "error", err)
		return nil, err
	}

	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, err
	}

	var password *vo.Password
	if cmd.Password != nil {
		if password, err = vo.NewPassword(*cmd.Password); err != nil {
			return nil, err
		}
	}

	var userEntity *domainUser.User
	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := uc.userRepo.GetByID(ctx, cmd.ID)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if existing == nil {
			return errors.NewNotFoundError("user not found", fmt.Sprintf("id=%d", cmd.ID))
		}
		if cmd.Version != 0 && cmd.Version != existing.Version() {
			return errors.NewWriteConflictError("user was modified by another request",
				fmt.Sprintf("id=%d expected_version=%d current_version=%d", cmd.ID, cmd.Version, existing.Version()))
		}

		if !existing.Email().Equals(email) {
			taken, err := uc.userRepo.EmailExists(ctx, email.String(), existing.ID())
			if err != nil {
				return fmt.Errorf("failed to check email: %w", err)
			}
			if taken {
				return errors.NewConflictError("email already in use", email.String())
			}
		}

		now := uc.clock.Now()
		if err := existing.Update(email, domainUser.Profile{
			FirstName:       cmd.FirstName,
			LastName:        cmd.LastName,
			Phone:           cmd.Phone,
			IsActive:        cmd.IsActive,
			IsEmailVerified: cmd.IsEmailVerified,
		}, now); err != nil {
			return err
		}

		if password != nil {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := existing.SetPassword(password, uc.hasher, now); err != nil {
				return err
			}
		}

		if err := uc.userRepo.Update(ctx, existing); err != nil {
			return err
		}
		userEntity = existing
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to update user", "user_id", cmd.ID, "error", err)
		return nil, err
	}

	uc.logger.Infow("user updated successfully", "user_id", userEntity.ID(), "password_changed", password != nil)
	return userEntity, nil
}
