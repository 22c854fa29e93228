package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/yukikurage/team-work-tracker/internal/credential"
	"github.com/yukikurage/team-work-tracker/internal/logger"
	"github.com/yukikurage/team-work-tracker/internal/models"
	"github.com/yukikurage/team-work-tracker/internal/repository"
)

// Authenticator verifies a credential hash against a team server.
type Authenticator interface {
	Authenticate(ctx context.Context, server models.TeamServer, credentialHash string) error
}

// UserManagementService registers users and links them to team servers.
//
// Uniqueness of logins and server links is checked before insert, not enforced
// by the database, so two concurrent registrations of the same id can both succeed.
// Multi-step operations are not transactional: a login row without a profile, or a
// successful remote authentication without a link row, is possible after a failure.
type UserManagementService struct {
	store         *repository.Store
	encrypter     credential.Encrypter
	serialize     credential.Serializer
	authenticator Authenticator
	logger        *zap.Logger
}

// NewUserManagementService creates a new UserManagementService.
func NewUserManagementService(
	store *repository.Store,
	encrypter credential.Encrypter,
	serialize credential.Serializer,
	authenticator Authenticator,
	log *zap.Logger,
) *UserManagementService {
	return &UserManagementService{
		store:         store,
		encrypter:     encrypter,
		serialize:     serialize,
		authenticator: authenticator,
		logger:        log.With(logger.Module("user_management")),
	}
}

// LoginInput is the login part of a registration.
type LoginInput struct {
	UserID   string
	Password string
}

// ProfileInput is the profile part of a registration.
type ProfileInput struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
	Gender    string
}

// RegisterUserInput represents the information required to register a user.
// Both parts are required.
type RegisterUserInput struct {
	Login   *LoginInput
	Profile *ProfileInput
}

// UserServer is a server link enriched with the server's name and URL.
type UserServer struct {
	UserID     string
	TfsID      uint64
	ServerName string
	ServerURL  string
}

// RegisterServerInput represents a request to link a user to a team server account.
type RegisterServerInput struct {
	ServerID       uint64
	UserID         string
	ServerUserID   string
	ServerPassword string
	ServerDomain   string
}

// RegisterUser creates the login and profile records of a new user and returns
// the profile's identifier.
func (s *UserManagementService) RegisterUser(ctx context.Context, input RegisterUserInput) (uint64, error) {
	id, err := s.registerUser(ctx, input)
	if err != nil {
		var userID string
		if input.Login != nil {
			userID = input.Login.UserID
		}
		s.logger.Error("Failed to register user", logger.UserID(userID), zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (s *UserManagementService) registerUser(ctx context.Context, input RegisterUserInput) (uint64, error) {
	if input.Login == nil {
		return 0, ErrLoginInfoRequired
	}
	if input.Profile == nil {
		return 0, ErrUserInfoRequired
	}

	var loginID uint64
	err := s.store.UserLogins(ctx, func(repo repository.Repository[models.UserLogin]) error {
		existing, err := findLogin(repo, input.Login.UserID)
		if err != nil {
			return fmt.Errorf("failed to check user id: %w", err)
		}
		if existing != nil {
			return ErrUserAlreadyExists
		}

		password, err := s.encrypter.Encrypt(input.Login.Password)
		if err != nil {
			return fmt.Errorf("failed to encrypt password: %w", err)
		}

		loginID, err = repo.Insert(&models.UserLogin{
			UserID:     input.Login.UserID,
			Password:   password,
			IsActive:   true,
			IsLocked:   false,
			RetryCount: 0,
		})
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrUserAlreadyExists
			}
			return fmt.Errorf("failed to create user login: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if loginID == 0 {
		return 0, ErrRegistrationFailed
	}

	var profileID uint64
	err = s.store.UserInfos(ctx, func(repo repository.Repository[models.UserInfo]) error {
		var err error
		profileID, err = repo.Insert(&models.UserInfo{
			UserID:    input.Profile.UserID,
			Email:     input.Profile.Email,
			FirstName: input.Profile.FirstName,
			LastName:  input.Profile.LastName,
			Gender:    input.Profile.Gender,
		})
		if err != nil {
			return fmt.Errorf("failed to create user info: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return profileID, nil
}

// GetUserServerList returns the servers linked to userID. Links whose server no
// longer exists are left out. The result is never nil.
func (s *UserManagementService) GetUserServerList(ctx context.Context, userID string) ([]UserServer, error) {
	servers, err := s.getUserServerList(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to get servers for user", logger.UserID(userID), zap.Error(err))
		return nil, err
	}
	return servers, nil
}

func (s *UserManagementService) getUserServerList(ctx context.Context, userID string) ([]UserServer, error) {
	var links []models.UserServerInfo
	err := s.store.UserServerInfos(ctx, func(repo repository.Repository[models.UserServerInfo]) error {
		var err error
		links, err = repo.Filter("user_id = ?", userID)
		if err != nil {
			return fmt.Errorf("failed to list server links: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := make([]UserServer, 0, len(links))
	if len(links) == 0 {
		return result, nil
	}

	err = s.store.TeamServers(ctx, func(repo repository.Repository[models.TeamServer]) error {
		for _, link := range links {
			server, err := repo.GetByID(link.TfsID)
			if err != nil {
				return fmt.Errorf("failed to find team server %d: %w", link.TfsID, err)
			}
			if server == nil {
				continue
			}
			result = append(result, UserServer{
				UserID:     link.UserID,
				TfsID:      link.TfsID,
				ServerName: server.Name,
				ServerURL:  server.URL,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// RegisterServer verifies the remote account and links it to the local user.
// It returns the identifier of the new link.
func (s *UserManagementService) RegisterServer(ctx context.Context, input RegisterServerInput) (uint64, error) {
	id, err := s.registerServer(ctx, input)
	if err != nil {
		s.logger.Error("Failed to register server",
			logger.UserID(input.UserID),
			logger.ServerID(input.ServerID),
			zap.Error(err),
		)
		return 0, err
	}
	return id, nil
}

func (s *UserManagementService) registerServer(ctx context.Context, input RegisterServerInput) (uint64, error) {
	var server *models.TeamServer
	err := s.store.TeamServers(ctx, func(repo repository.Repository[models.TeamServer]) error {
		var err error
		server, err = repo.GetByID(input.ServerID)
		if err != nil {
			return fmt.Errorf("failed to find team server: %w", err)
		}
		if server == nil {
			return ErrInvalidServerID
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	err = s.store.UserInfos(ctx, func(repo repository.Repository[models.UserInfo]) error {
		profile, err := repo.Find("user_id = ?", input.UserID)
		if err != nil {
			return fmt.Errorf("failed to find user: %w", err)
		}
		if profile == nil {
			return ErrInvalidUserID
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	var linkID uint64
	err = s.store.UserServerInfos(ctx, func(repo repository.Repository[models.UserServerInfo]) error {
		existing, err := findLink(repo, input.UserID, input.ServerID)
		if err != nil {
			return fmt.Errorf("failed to check server link: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("%w: server %d, user %s", ErrServerAlreadyRegistered, input.ServerID, input.UserID)
		}

		hash, err := credential.Hash(credential.Credential{
			UserName: input.ServerUserID,
			Password: input.ServerPassword,
			Domain:   input.ServerDomain,
		}, s.serialize, s.encrypter)
		if err != nil {
			return err
		}

		if err := s.authenticator.Authenticate(ctx, *server, hash); err != nil {
			return fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
		}

		linkID, err = repo.Insert(&models.UserServerInfo{
			UserID:         input.UserID,
			TfsID:          input.ServerID,
			TfsUserID:      input.ServerUserID,
			CredentialHash: hash,
		})
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrServerAlreadyRegistered
			}
			return fmt.Errorf("failed to create server link: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return linkID, nil
}

// findLogin looks a login up by exact, case-sensitive user id. Filtering again in Go
// keeps the comparison exact on databases whose collation ignores case.
func findLogin(repo repository.Repository[models.UserLogin], userID string) (*models.UserLogin, error) {
	candidates, err := repo.Filter("user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		if candidates[i].UserID == userID {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

// findLink looks up the link of userID to serverID ignoring the case of the user id.
// Case folding happens in Go since SQL UPPER only folds ASCII on some databases.
func findLink(repo repository.Repository[models.UserServerInfo], userID string, serverID uint64) (*models.UserServerInfo, error) {
	links, err := repo.Filter("tfs_id = ?", serverID)
	if err != nil {
		return nil, err
	}
	wanted := strings.ToUpper(userID)
	for i := range links {
		if strings.ToUpper(links[i].UserID) == wanted {
			return &links[i], nil
		}
	}
	return nil, nil
}
