package mappers

import (
	"fmt"

	"warden/internal/domain/user"
	vo "warden/internal/domain/user/valueobjects"
	"warden/internal/infrastructure/persistence/models"
	"warden/internal/shared/biztime"
	"warden/internal/shared/mapper"
)

// UserMapper handles the conversion between domain entities and persistence models
type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) *models.UserModel
	ToEntities(models []*models.UserModel) ([]*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	email, err := vo.NewEmail(model.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create email value object: %w", err)
	}

	entity, err := user.ReconstructUser(
		model.ID,
		email,
		user.Profile{
			FirstName:       model.FirstName,
			LastName:        model.LastName,
			Phone:           model.Phone,
			IsActive:        model.IsActive,
			IsEmailVerified: model.IsEmailVerified,
		},
		model.PasswordHash,
		model.Version,
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
		biztime.ToUTCPtr(model.LastLoginAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user entity: %w", err)
	}
	return entity, nil
}

func (m *UserMapperImpl) ToModel(entity *user.User) *models.UserModel {
	if entity == nil {
		return nil
	}

	return &models.UserModel{
		ID:              entity.ID(),
		FirstName:       entity.FirstName(),
		LastName:        entity.LastName(),
		Email:           entity.Email().String(),
		EmailKey:        entity.Email().Key(),
		Phone:           entity.Phone(),
		PasswordHash:    entity.PasswordHash(),
		IsActive:        entity.IsActive(),
		IsEmailVerified: entity.IsEmailVerified(),
		Version:         entity.Version(),
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
		LastLoginAt:     entity.LastLoginAt(),
	}
}

func (m *UserMapperImpl) ToEntities(items []*models.UserModel) ([]*user.User, error) {
	return mapper.Entities(items, m.ToEntity, func(u *models.UserModel) uint { return u.ID })
}
