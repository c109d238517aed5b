// Package user manages accounts, their credentials and their roles.
package user

import (
	"context"

	"warden/internal/application/user/dto"
	"warden/internal/application/user/usecases"
	"warden/internal/domain/permission"
	domainUser "warden/internal/domain/user"
	"warden/internal/shared/biztime"
	"warden/internal/shared/db"
	"warden/internal/shared/logger"
)

// Service is the application service that orchestrates the user use cases.
type Service struct {
	createUserUC  *usecases.CreateUserUseCase
	updateUserUC  *usecases.UpdateUserUseCase
	getUserUC     *usecases.GetUserUseCase
	deleteUserUC  *usecases.DeleteUserUseCase
	validateUC    *usecases.ValidateCredentialsUseCase
	manageRolesUC *usecases.ManageRolesUseCase
	userRepo      domainUser.Repository
	grants        permission.GrantReader
	logger        logger.Interface
}

func NewService(
	userRepo domainUser.Repository,
	roleRepo permission.RoleRepository,
	grants permission.GrantReader,
	hasher domainUser.PasswordHasher,
	tx db.Transactor,
	clock biztime.Clock,
	logger logger.Interface,
) *Service {
	return &Service{
		createUserUC:  usecases.NewCreateUserUseCase(userRepo, hasher, tx, clock, logger),
		updateUserUC:  usecases.NewUpdateUserUseCase(userRepo, hasher, tx, clock, logger),
		getUserUC:     usecases.NewGetUserUseCase(userRepo, logger),
		deleteUserUC:  usecases.NewDeleteUserUseCase(userRepo, tx, logger),
		validateUC:    usecases.NewValidateCredentialsUseCase(userRepo, hasher, clock, logger),
		manageRolesUC: usecases.NewManageRolesUseCase(userRepo, roleRepo, tx, logger),
		userRepo:      userRepo,
		grants:        grants,
		logger:        logger,
	}
}

// List orders users by first name, last name and id.
func (s *Service) List(ctx context.Context) ([]*domainUser.User, error) {
	return s.getUserUC.ExecuteList(ctx)
}

func (s *Service) Get(ctx context.Context, id uint) (*domainUser.User, error) {
	return s.getUserUC.ExecuteByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*domainUser.User, error) {
	return s.getUserUC.ExecuteByEmail(ctx, email)
}

func (s *Service) Create(ctx context.Context, cmd dto.CreateUserCommand) (*domainUser.User, error) {
	return s.createUserUC.Execute(ctx, cmd)
}

func (s *Service) Update(ctx context.Context, cmd dto.UpdateUserCommand) (*domainUser.User, error) {
	return s.updateUserUC.Execute(ctx, cmd)
}

func (s *Service) Delete(ctx context.Context, id uint) (bool, error) {
	return s.deleteUserUC.Execute(ctx, id)
}

func (s *Service) Exists(ctx context.Context, id uint) (bool, error) {
	return s.userRepo.Exists(ctx, id)
}

func (s *Service) EmailExists(ctx context.Context, email string, excludeID uint) (bool, error) {
	return s.userRepo.EmailExists(ctx, email, excludeID)
}

// Validate returns (nil, nil) when the credentials do not match an active user.
func (s *Service) Validate(ctx context.Context, email, password string) (*domainUser.User, error) {
	return s.validateUC.Execute(ctx, email, password)
}

func (s *Service) GetRoles(ctx context.Context, userID uint) ([]*permission.Role, error) {
	return s.manageRolesUC.GetRoles(ctx, userID)
}

func (s *Service) AssignRole(ctx context.Context, userID, roleID uint) (bool, error) {
	return s.manageRolesUC.AssignRole(ctx, userID, roleID)
}

func (s *Service) RemoveRole(ctx context.Context, userID, roleID uint) (bool, error) {
	return s.manageRolesUC.RemoveRole(ctx, userID, roleID)
}

// ResolveEffectivePermissions is empty for an unknown user.
func (s *Service) ResolveEffectivePermissions(ctx context.Context, userID uint) ([]*permission.Permission, error) {
	return s.grants.EffectivePermissions(ctx, userID)
}
