package mappers

import (
	"fmt"

	"redsys/internal/domain/user"
	vo "redsys/internal/domain/user/valueobjects"
	"redsys/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between user entities and persistence models.
type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
	ToModel(entity *user.User) *models.UserModel
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	role, err := vo.NewRole(model.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to map user %d: %w", model.ID, err)
	}

	return user.ReconstructUser(
		model.ID,
		model.Username,
		model.FullName,
		role,
		model.Active,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *UserMapperImpl) ToModel(entity *user.User) *models.UserModel {
	if entity == nil {
		return nil
	}

	return &models.UserModel{
		ID:        entity.ID(),
		Username:  entity.Username(),
		FullName:  entity.FullName(),
		Role:      entity.Role().String(),
		Active:    entity.IsActive(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}
}
