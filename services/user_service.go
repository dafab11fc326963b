package services

import (
	"errors"

	"taskhive/taskhive/database"
	"taskhive/taskhive/models"

	"gorm.io/gorm"
)

// Users are only ever created through AuthService.Register, so this service
// exposes lookups only.
type UserServiceInterface interface {
	GetUserById(id string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
}

type UserService struct {
	db *database.Database
}

func NewUserService(db *database.Database) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetUserById(id string) (models.User, error) {
	var user models.User
	if err := s.db.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	var user models.User
	if err := s.db.DB.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
