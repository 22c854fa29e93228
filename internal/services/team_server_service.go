package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/yukikurage/team-work-tracker/internal/logger"
	"github.com/yukikurage/team-work-tracker/internal/models"
	"github.com/yukikurage/team-work-tracker/internal/repository"
)

// TeamServerService manages the catalogue of team servers.
type TeamServerService struct {
	store  *repository.Store
	logger *zap.Logger
}

// NewTeamServerService creates a new TeamServerService.
func NewTeamServerService(store *repository.Store, log *zap.Logger) *TeamServerService {
	return &TeamServerService{
		store:  store,
		logger: log.With(logger.Module("team_server")),
	}
}

// CreateServerInput represents parameters to add a team server.
type CreateServerInput struct {
	Name string
	URL  string
}

// CreateServer adds a team server to the catalogue.
func (s *TeamServerService) CreateServer(ctx context.Context, input CreateServerInput) (*models.TeamServer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrServerNameRequired
	}
	parsed, err := url.Parse(strings.TrimSpace(input.URL))
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, ErrInvalidServerURL
	}

	server := &models.TeamServer{Name: name, URL: parsed.String()}
	err = s.store.TeamServers(ctx, func(repo repository.Repository[models.TeamServer]) error {
		_, err := repo.Insert(server)
		return err
	})
	if err != nil {
		s.logger.Error("Failed to create team server", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("failed to create team server: %w", err)
	}

	s.logger.Info("Team server created", logger.ServerID(server.ID), zap.String("url", server.URL))
	return server, nil
}

// ListServers returns every team server in insertion order.
func (s *TeamServerService) ListServers(ctx context.Context) ([]models.TeamServer, error) {
	var servers []models.TeamServer
	err := s.store.TeamServers(ctx, func(repo repository.Repository[models.TeamServer]) error {
		var err error
		servers, err = repo.Filter(&models.TeamServer{})
		return err
	})
	if err != nil {
		s.logger.Error("Failed to list team servers", zap.Error(err))
		return nil, fmt.Errorf("failed to list team servers: %w", err)
	}
	return servers, nil
}

// GetServer returns a team server by ID.
func (s *TeamServerService) GetServer(ctx context.Context, id uint64) (*models.TeamServer, error) {
	var server *models.TeamServer
	err := s.store.TeamServers(ctx, func(repo repository.Repository[models.TeamServer]) error {
		var err error
		server, err = repo.GetByID(id)
		if err != nil {
			return fmt.Errorf("failed to find team server: %w", err)
		}
		if server == nil {
			return ErrServerNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return server, nil
}
