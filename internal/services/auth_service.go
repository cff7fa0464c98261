package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"lifemate-backend/internal/models"
	"lifemate-backend/internal/utils"
)

// AuthService handles login: find-or-create the user and stamp the login
// time. Token issuance lives in internal/auth.
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// ProcessLogin finds or creates a user by email.
func (s *AuthService) ProcessLogin(email, name string) (*models.User, error) {
	var user models.User
	result := s.db.Where("email = ?", email).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		if name == "" {
			tag, err := utils.GeneratePlayerTag()
			if err != nil {
				return nil, fmt.Errorf("failed to generate player tag: %w", err)
			}
			name = tag
		}
		user = models.User{
			Email: email,
			Name:  name,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		log.Printf("New user created: email=%s (ID: %d)", email, user.ID)
	} else if result.Error != nil {
		return nil, fmt.Errorf("database error: %w", result.Error)
	}

	now := time.Now()
	if err := s.db.Model(&user).Update("last_login_at", now).Error; err != nil {
		log.Printf("Warning: failed to stamp login time for user %d: %v", user.ID, err)
	}
	user.LastLoginAt = &now

	return &user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
