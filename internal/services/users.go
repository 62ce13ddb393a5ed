package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blogicum/internal/forms"
	"blogicum/internal/models"
	"blogicum/internal/utils"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetByID(ctx context.Context, id any) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// Register creates an account. The username must not be taken yet; a
// concurrent signup that wins the unique index also yields ErrUsernameTaken.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	taken, err := s.usernameTaken(ctx, username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.User{Username: username, Password: hash}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", usernameConflict(err))
	}
	return &user, nil
}

// Authenticate checks a username and password pair.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ChangePassword replaces the password after verifying the old one.
func (s *UserService) ChangePassword(ctx context.Context, user *models.User, oldPassword, newPassword string) error {
	if !utils.CheckPasswordHash(oldPassword, user.Password) {
		return ErrInvalidCredentials
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Update("password", hash).Error; err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	user.Password = hash
	return nil
}

// UpdateProfile saves the editable profile fields of user.
func (s *UserService) UpdateProfile(ctx context.Context, user *models.User, form forms.ProfileForm) error {
	username := strings.TrimSpace(form.Username)
	if username != user.Username {
		taken, err := s.usernameTaken(ctx, username, user.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}
	}

	updates := map[string]any{
		"username":   username,
		"first_name": strings.TrimSpace(form.FirstName),
		"last_name":  strings.TrimSpace(form.LastName),
		"email":      strings.TrimSpace(form.Email),
	}
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("update profile: %w", usernameConflict(err))
	}
	user.Username = updates["username"].(string)
	user.FirstName = updates["first_name"].(string)
	user.LastName = updates["last_name"].(string)
	user.Email = updates["email"].(string)
	return nil
}

func (s *UserService) usernameTaken(ctx context.Context, username string, exceptID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? AND id <> ?", username, exceptID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
