package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/team-work-tracker/internal/credential"
	"github.com/yukikurage/team-work-tracker/internal/crypto"
	"github.com/yukikurage/team-work-tracker/internal/models"
	"github.com/yukikurage/team-work-tracker/internal/repository"
)

type fakeAuthenticator struct {
	mu    sync.Mutex
	err   error
	calls []authCall
}

type authCall struct {
	serverID       uint64
	credentialHash string
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, server models.TeamServer, credentialHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, authCall{serverID: server.ID, credentialHash: credentialHash})
	return f.err
}

type serviceTestEnv struct {
	db            *gorm.DB
	store         *repository.Store
	cipher        *crypto.Cipher
	authenticator *fakeAuthenticator
	users         *UserManagementService
	auth          *AuthService
	servers       *TeamServerService
	workItems     *WorkItemService
}

func setupServiceTestEnv(t *testing.T) serviceTestEnv {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.UserLogin{},
		&models.UserInfo{},
		&models.TeamServer{},
		&models.UserServerInfo{},
		&models.WorkItem{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	c, err := crypto.NewCipher("test-secret")
	require.NoError(t, err)

	log := zaptest.NewLogger(t)
	store := repository.NewStore(db)
	authenticator := &fakeAuthenticator{}

	return serviceTestEnv{
		db:            db,
		store:         store,
		cipher:        c,
		authenticator: authenticator,
		users:         NewUserManagementService(store, c, credential.Serialize, authenticator, log),
		auth:          NewAuthService(store, c, 3, log),
		servers:       NewTeamServerService(store, log),
		workItems:     NewWorkItemService(store, log),
	}
}

func registrationFor(userID, password string) RegisterUserInput {
	return RegisterUserInput{
		Login: &LoginInput{UserID: userID, Password: password},
		Profile: &ProfileInput{
			UserID:    userID,
			Email:     userID + "@example.com",
			FirstName: "First",
			LastName:  "Last",
			Gender:    "F",
		},
	}
}

func createServer(t *testing.T, env serviceTestEnv, name string) *models.TeamServer {
	t.Helper()
	server, err := env.servers.CreateServer(context.Background(), CreateServerInput{
		Name: name,
		URL:  "https://" + strings.ToLower(name) + ".example.com/tfs",
	})
	require.NoError(t, err)
	return server
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}
