package usecases

import (
	"context"
	"fmt"

	domainUser "warden/internal/domain/user"
	vo "warden/internal/domain/user/valueobjects"
	"warden/internal/shared/biztime"
	"warden/internal/shared/logger"
	"warden/internal/shared/utils"
)

// ValidateCredentialsUseCase checks an email and password pair.
type ValidateCredentialsUseCase struct {
	userRepo domainUser.Repository
	hasher   domainUser.PasswordHasher
	clock    biztime.Clock
	logger   logger.Interface
}

func NewValidateCredentialsUseCase(
	userRepo domainUser.Repository,
	hasher domainUser.PasswordHasher,
	clock biztime.Clock,
	logger logger.Interface,
) *ValidateCredentialsUseCase {
	return &ValidateCredentialsUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		clock:    clock,
		logger:   logger,
	}
}

// Execute returns the user and stamps its last login on success. An unknown
// email, an inactive user and a wrong password all yield (nil, nil) so the
// caller cannot tell them apart.
func (uc *ValidateCredentialsUseCase) Execute(ctx context.Context, email, password string) (*domainUser.User, error) {
	existingUser, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if existingUser == nil {
		uc.logger.Debugw("credential check for unknown email", "email", utils.MaskEmail(email))
		return nil, nil
	}
	if !existingUser.CanAuthenticate() {
		uc.logger.Debugw("credential check for user that cannot authenticate", "user_id", existingUser.ID())
		return nil, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := existingUser.VerifyPassword(password, uc.hasher); err != nil {
		uc.logger.Debugw("password mismatch", "user_id", existingUser.ID())
		return nil, nil
	}

	if policy, ok := uc.hasher.(domainUser.RehashPolicy); ok && policy.NeedsRehash(existingUser.PasswordHash()) {
		uc.upgradeHash(ctx, existingUser, password)
	}

	now := uc.clock.Now()
	if err := uc.userRepo.UpdateLastLogin(ctx, existingUser.ID(), now); err != nil {
		uc.logger.Errorw("failed to record login", "user_id", existingUser.ID(), "error", err)
		return nil, err
	}
	existingUser.RecordLogin(now)

	uc.logger.Infow("credentials validated", "user_id", existingUser.ID())
	return existingUser, nil
}

// upgradeHash stores a fresh digest made with the current hasher settings.
// Failures are logged and leave the old digest in place.
func (uc *ValidateCredentialsUseCase) upgradeHash(ctx context.Context, u *domainUser.User, plain string) {
	password, err := vo.NewPassword(plain)
	if err != nil {
		uc.logger.Debugw("skipping hash upgrade for password outside policy", "user_id", u.ID())
		return
	}
	if err := u.SetPassword(password, uc.hasher, uc.clock.Now()); err != nil {
		uc.logger.Warnw("failed to rehash password", "user_id", u.ID(), "error", err)
		return
	}
	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Warnw("failed to store rehashed password", "user_id", u.ID(), "error", err)
		return
	}
	uc.logger.Infow("password hash upgraded", "user_id", u.ID())
}
