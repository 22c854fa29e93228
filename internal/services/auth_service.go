package services

import (
	"context"
	"crypto/subtle"
	"fmt"

	"go.uber.org/zap"

	"github.com/yukikurage/team-work-tracker/internal/constants"
	"github.com/yukikurage/team-work-tracker/internal/credential"
	"github.com/yukikurage/team-work-tracker/internal/logger"
	"github.com/yukikurage/team-work-tracker/internal/models"
	"github.com/yukikurage/team-work-tracker/internal/repository"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	store           *repository.Store
	encrypter       credential.Encrypter
	maxLoginRetries int
	logger          *zap.Logger
}

// NewAuthService creates a new AuthService. A non-positive maxLoginRetries uses the default.
func NewAuthService(store *repository.Store, encrypter credential.Encrypter, maxLoginRetries int, log *zap.Logger) *AuthService {
	if maxLoginRetries <= 0 {
		maxLoginRetries = constants.DefaultMaxLoginRetries
	}
	return &AuthService{
		store:           store,
		encrypter:       encrypter,
		maxLoginRetries: maxLoginRetries,
		logger:          log.With(logger.Module("auth")),
	}
}

// Login verifies credentials and returns the login record.
// Each failed attempt increments the retry counter; reaching the limit locks the account.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.UserLogin, error) {
	var result *models.UserLogin
	err := s.store.UserLogins(ctx, func(repo repository.Repository[models.UserLogin]) error {
		login, err := findLogin(repo, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to find user: %w", err)
		}
		if login == nil {
			return ErrInvalidCredentials
		}
		if !login.IsActive || login.IsLocked {
			return ErrAccountLocked
		}

		encrypted, err := s.encrypter.Encrypt(input.Password)
		if err != nil {
			return fmt.Errorf("failed to encrypt password: %w", err)
		}

		if subtle.ConstantTimeCompare([]byte(encrypted), []byte(login.Password)) != 1 {
			login.RetryCount++
			if login.RetryCount >= s.maxLoginRetries {
				login.IsLocked = true
			}
			if err := repo.Update(login); err != nil {
				return fmt.Errorf("failed to record failed login: %w", err)
			}
			if login.IsLocked {
				s.logger.Warn("Account locked after failed logins", logger.UserID(login.UserID))
				return ErrAccountLocked
			}
			return ErrInvalidCredentials
		}

		if login.RetryCount != 0 {
			login.RetryCount = 0
			if err := repo.Update(login); err != nil {
				return fmt.Errorf("failed to reset retry count: %w", err)
			}
		}

		result = login
		return nil
	})
	if err != nil {
		s.logger.Warn("Login failed", logger.UserID(input.UserID), zap.Error(err))
		return nil, err
	}

	return result, nil
}

// GetProfile returns the profile of a user.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.UserInfo, error) {
	var profile *models.UserInfo
	err := s.store.UserInfos(ctx, func(repo repository.Repository[models.UserInfo]) error {
		var err error
		profile, err = repo.Find("user_id = ?", userID)
		if err != nil {
			return fmt.Errorf("failed to find user: %w", err)
		}
		if profile == nil {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to get profile", logger.UserID(userID), zap.Error(err))
		return nil, err
	}

	return profile, nil
}
