package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateServer_Validation(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()

	_, err := env.servers.CreateServer(ctx, CreateServerInput{Name: " ", URL: "https://tfs.example.com"})
	require.ErrorIs(t, err, ErrServerNameRequired)

	for _, raw := range []string{"", "tfs.example.com", "ftp://tfs.example.com", "https://"} {
		_, err = env.servers.CreateServer(ctx, CreateServerInput{Name: "Main", URL: raw})
		require.ErrorIs(t, err, ErrInvalidServerURL, raw)
	}
}

func TestListAndGetServers(t *testing.T) {
	env := setupServiceTestEnv(t)
	ctx := context.Background()

	servers, err := env.servers.ListServers(ctx)
	require.NoError(t, err)
	require.Empty(t, servers)

	first := createServer(t, env, "First")
	createServer(t, env, "Second")

	servers, err = env.servers.ListServers(ctx)
	require.NoError(t, err)
	require.Len(t, servers, 2)
	require.Equal(t, "First", servers[0].Name)

	server, err := env.servers.GetServer(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, first.URL, server.URL)

	_, err = env.servers.GetServer(ctx, 999)
	require.ErrorIs(t, err, ErrServerNotFound)
}
