package services

import (
	"errors"
	"time"

	"taskhive/taskhive/database"
	"taskhive/taskhive/models"
	"taskhive/taskhive/utils/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Use the JWTClaims from token package
type JWTClaims = token.JWTClaims

type AuthServiceInterface interface {
	Register(name, email, password string) (models.User, error)
	Login(email, password string) (string, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
	HashPassword(password string) (string, error)
	ComparePasswords(hashedPassword, password string) error
}

type AuthService struct {
	db            *database.Database
	jwtSecret     []byte
	jwtExpiration time.Duration
}

func NewAuthService(db *database.Database, jwtSecret string, jwtExpirationSeconds int) *AuthService {
	return &AuthService{
		db:            db,
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: time.Duration(jwtExpirationSeconds) * time.Second,
	}
}

// Register creates a new user with a bcrypt-hashed password. The plaintext
// password is never persisted.
func (s *AuthService) Register(name, email, password string) (models.User, error) {
	var existing models.User
	err := s.db.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return models.User{}, ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, err
	}

	hashedPassword, err := s.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := s.db.DB.Create(&user).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Login verifies the credentials and issues a signed token. Unknown email and
// wrong password return the same error so accounts cannot be enumerated.
func (s *AuthService) Login(email, password string) (string, error) {
	var user models.User
	if err := s.db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}

	if err := s.ComparePasswords(user.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	tokenString, err := token.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken uses the token utility to validate tokens
func (s *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	return token.ValidateToken(tokenString, s.jwtSecret)
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
