package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/team-work-tracker/internal/database"
	"github.com/yukikurage/team-work-tracker/internal/models"
	"github.com/yukikurage/team-work-tracker/internal/utils"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
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

	return NewStore(db)
}

func TestRepository_InsertAndGetByID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	var id uint64
	err := store.TeamServers(ctx, func(repo Repository[models.TeamServer]) error {
		var err error
		id, err = repo.Insert(&models.TeamServer{Name: "Main", URL: "https://tfs.example.com"})
		return err
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	err = store.TeamServers(ctx, func(repo Repository[models.TeamServer]) error {
		server, err := repo.GetByID(id)
		require.NoError(t, err)
		require.NotNil(t, server)
		require.Equal(t, "Main", server.Name)

		missing, err := repo.GetByID(id + 100)
		require.NoError(t, err)
		require.Nil(t, missing)
		return nil
	})
	require.NoError(t, err)
}

func TestRepository_FindReturnsNilWhenMissing(t *testing.T) {
	store := setupTestStore(t)

	err := store.UserLogins(context.Background(), func(repo Repository[models.UserLogin]) error {
		login, err := repo.Find("user_id = ?", "nobody")
		require.NoError(t, err)
		require.Nil(t, login)
		return nil
	})
	require.NoError(t, err)
}

func TestRepository_FilterKeepsInsertionOrder(t *testing.T) {
	store := setupTestStore(t)

	err := store.UserServerInfos(context.Background(), func(repo Repository[models.UserServerInfo]) error {
		for _, serverID := range []uint64{3, 1, 2} {
			_, err := repo.Insert(&models.UserServerInfo{UserID: "alice", TfsID: serverID, CredentialHash: "x"})
			require.NoError(t, err)
		}
		_, err := repo.Insert(&models.UserServerInfo{UserID: "bob", TfsID: 1, CredentialHash: "x"})
		require.NoError(t, err)

		links, err := repo.Filter("user_id = ?", "alice")
		require.NoError(t, err)
		require.Len(t, links, 3)
		require.Equal(t, uint64(3), links[0].TfsID)
		require.Equal(t, uint64(1), links[1].TfsID)
		require.Equal(t, uint64(2), links[2].TfsID)

		none, err := repo.Filter("user_id = ?", "carol")
		require.NoError(t, err)
		require.NotNil(t, none)
		require.Empty(t, none)

		count, err := repo.Count("user_id = ?", "alice")
		require.NoError(t, err)
		require.Equal(t, int64(3), count)
		return nil
	})
	require.NoError(t, err)
}

func TestRepository_Update(t *testing.T) {
	store := setupTestStore(t)

	err := store.UserLogins(context.Background(), func(repo Repository[models.UserLogin]) error {
		login := &models.UserLogin{UserID: "alice", Password: "enc", IsActive: true}
		_, err := repo.Insert(login)
		require.NoError(t, err)

		login.RetryCount = 2
		login.IsLocked = true
		require.NoError(t, repo.Update(login))

		reloaded, err := repo.GetByID(login.ID)
		require.NoError(t, err)
		require.Equal(t, 2, reloaded.RetryCount)
		require.True(t, reloaded.IsLocked)
		return nil
	})
	require.NoError(t, err)
}

func TestRepository_ScopedPagination(t *testing.T) {
	store := setupTestStore(t)

	err := store.WorkItems(context.Background(), func(repo Repository[models.WorkItem]) error {
		for i := 1; i <= 5; i++ {
			_, err := repo.Insert(&models.WorkItem{ServerID: 1, WeekID: 10, Title: fmt.Sprintf("item %d", i)})
			require.NoError(t, err)
		}

		page := repo.Scoped(database.Paginate(utils.NewPaginationParams(2, 2)))
		items, err := page.Filter("server_id = ?", 1)
		require.NoError(t, err)
		require.Len(t, items, 2)
		require.Equal(t, "item 3", items[0].Title)
		require.Equal(t, "item 4", items[1].Title)

		// The scoped repository can be reused without accumulating conditions.
		again, err := page.Filter("week_id = ?", 10)
		require.NoError(t, err)
		require.Len(t, again, 2)
		return nil
	})
	require.NoError(t, err)
}

func TestRepository_ScopeReturnsCallbackError(t *testing.T) {
	store := setupTestStore(t)
	errBoom := errors.New("boom")

	err := store.UserInfos(context.Background(), func(repo Repository[models.UserInfo]) error {
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	// The connection was released: another scope can still run.
	err = store.UserInfos(context.Background(), func(repo Repository[models.UserInfo]) error {
		_, err := repo.Insert(&models.UserInfo{UserID: "alice"})
		return err
	})
	require.NoError(t, err)
}
