package teamserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/yukikurage/team-work-tracker/internal/config"
	"github.com/yukikurage/team-work-tracker/internal/credential"
	"github.com/yukikurage/team-work-tracker/internal/logger"
	"github.com/yukikurage/team-work-tracker/internal/models"
)

// connectionDataPath answers with the authenticated identity on TFS and Azure DevOps Server.
const connectionDataPath = "/_apis/connectionData"

var (
	ErrUnauthorized     = errors.New("team server rejected the credentials")
	ErrUnreachable      = errors.New("team server is unreachable")
	ErrUnexpectedStatus = errors.New("team server returned an unexpected status")
)

// Client checks credentials against a team server.
type Client struct {
	client    *resty.Client
	decrypter credential.Decrypter
	logger    *zap.Logger
}

func NewClient(cfg config.TeamServerConfig, decrypter credential.Decrypter, log *zap.Logger) *Client {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetHeader("Accept", "application/json")

	return &Client{
		client:    client,
		decrypter: decrypter,
		logger:    log.With(logger.Module("teamserver")),
	}
}

// Authenticate decrypts credentialHash and verifies it against server.
func (c *Client) Authenticate(ctx context.Context, server models.TeamServer, credentialHash string) error {
	cred, err := credential.FromHash(credentialHash, c.decrypter)
	if err != nil {
		return err
	}

	url := strings.TrimRight(server.URL, "/") + connectionDataPath
	resp, err := c.client.R().
		SetContext(ctx).
		SetBasicAuth(cred.Login(), cred.Password).
		Get(url)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	switch {
	case resp.IsSuccess():
		c.logger.Debug("Team server accepted credentials", logger.ServerID(server.ID))
		return nil
	case resp.StatusCode() == http.StatusUnauthorized, resp.StatusCode() == http.StatusForbidden:
		return ErrUnauthorized
	default:
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode())
	}
}
