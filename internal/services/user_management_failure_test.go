package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yukikurage/team-work-tracker/internal/credential"
	"github.com/yukikurage/team-work-tracker/internal/crypto"
	"github.com/yukikurage/team-work-tracker/internal/repository"
)

func observedUserService(env serviceTestEnv) (*UserManagementService, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewUserManagementService(env.store, env.cipher, credential.Serialize, env.authenticator, zap.New(core))
	return svc, logs
}

func requireLoggedError(t *testing.T, logs *observer.ObservedLogs, message string, want error, fields map[string]interface{}) {
	t.Helper()

	entries := logs.FilterMessage(message).FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, entries, 1)

	ctx := entries[0].ContextMap()
	require.Equal(t, "user_management", ctx["module"])
	require.Equal(t, want.Error(), ctx["error"])
	for key, value := range fields {
		require.Equal(t, value, ctx[key], key)
	}
}

func TestRegisterUser_LogsConflict(t *testing.T) {
	env := setupServiceTestEnv(t)
	svc, logs := observedUserService(env)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, registrationFor("alice", "p@ss"))
	require.NoError(t, err)
	require.Zero(t, logs.Len())

	_, err = svc.RegisterUser(ctx, registrationFor("alice", "p@ss"))
	require.Equal(t, ErrUserAlreadyExists, err)

	requireLoggedError(t, logs, "Failed to register user", err, map[string]interface{}{
		"user_id": "alice",
	})
}

func TestRegisterServer_LogsNotFound(t *testing.T) {
	env := setupServiceTestEnv(t)
	svc, logs := observedUserService(env)
	ctx := context.Background()
	server := createServer(t, env, "Main")

	_, err := svc.RegisterServer(ctx, RegisterServerInput{ServerID: server.ID + 5, UserID: "alice", ServerUserID: "a"})
	require.Equal(t, ErrInvalidServerID, err)
	requireLoggedError(t, logs, "Failed to register server", err, map[string]interface{}{
		"user_id":   "alice",
		"server_id": server.ID + 5,
	})

	logs.TakeAll()
	_, err = svc.RegisterServer(ctx, RegisterServerInput{ServerID: server.ID, UserID: "ghost", ServerUserID: "a"})
	require.Equal(t, ErrInvalidUserID, err)
	requireLoggedError(t, logs, "Failed to register server", err, map[string]interface{}{
		"user_id":   "ghost",
		"server_id": server.ID,
	})
}

func TestRegisterUser_ZeroLoginIDFails(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	c, err := crypto.NewCipher("test-secret")
	require.NoError(t, err)

	svc := NewUserManagementService(repository.NewStore(db), c, credential.Serialize, &fakeAuthenticator{}, zaptest.NewLogger(t))

	mock.ExpectQuery(`SELECT \* FROM "user_logins"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "password"}))
	mock.ExpectQuery(`INSERT INTO "user_logins"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(0))

	_, err = svc.RegisterUser(context.Background(), registrationFor("alice", "p@ss"))
	require.Equal(t, ErrRegistrationFailed, err)
	require.ErrorIs(t, err, ErrFailure)

	// No profile insert follows a failed login insert.
	require.NoError(t, mock.ExpectationsWereMet())
}
