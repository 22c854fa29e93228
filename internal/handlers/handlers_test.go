package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/team-work-tracker/internal/constants"
	"github.com/yukikurage/team-work-tracker/internal/credential"
	"github.com/yukikurage/team-work-tracker/internal/crypto"
	"github.com/yukikurage/team-work-tracker/internal/middleware"
	"github.com/yukikurage/team-work-tracker/internal/models"
	"github.com/yukikurage/team-work-tracker/internal/repository"
	"github.com/yukikurage/team-work-tracker/internal/services"
)

type stubAuthenticator struct {
	err error
}

func (s *stubAuthenticator) Authenticate(context.Context, models.TeamServer, string) error {
	return s.err
}

type handlerTestEnv struct {
	db            *gorm.DB
	router        *gin.Engine
	authenticator *stubAuthenticator
	servers       *services.TeamServerService
}

func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	cipher, err := crypto.NewCipher("handler-secret")
	require.NoError(t, err)

	log := zaptest.NewLogger(t)
	store := repository.NewStore(db)
	authenticator := &stubAuthenticator{}

	userService := services.NewUserManagementService(store, cipher, credential.Serialize, authenticator, log)
	authService := services.NewAuthService(store, cipher, 2, log)
	serverService := services.NewTeamServerService(store, log)
	workItemService := services.NewWorkItemService(store, log)

	authHandler := NewAuthHandler(userService, authService)
	serverHandler := NewServerHandler(serverService, userService)
	workItemHandler := NewWorkItemHandler(workItemService)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))

	api := r.Group("/api")
	api.POST("/users/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
	api.GET("/servers", serverHandler.ListServers)

	me := api.Group("/me", middleware.RequireAuth())
	me.GET("/servers", serverHandler.ListMyServers)
	me.POST("/servers", serverHandler.RegisterMyServer)

	items := api.Group("/work-items", middleware.RequireAuth())
	items.GET("", workItemHandler.ListWorkItems)
	items.POST("", workItemHandler.CreateWorkItem)
	items.GET("/:id", workItemHandler.GetWorkItem)

	return handlerTestEnv{
		db:            db,
		router:        r,
		authenticator: authenticator,
		servers:       serverService,
	}
}

func (env handlerTestEnv) do(t *testing.T, method, path string, payload interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func registrationPayload(userID, password string) map[string]interface{} {
	return map[string]interface{}{
		"login": map[string]string{
			"user_id":  userID,
			"password": password,
		},
		"user": map[string]string{
			"user_id":    userID,
			"email":      userID + "@example.com",
			"first_name": "Ada",
			"last_name":  "Lovelace",
			"gender":     "F",
		},
	}
}

// signIn registers userID and returns the session cookies of a successful login.
func (env handlerTestEnv) signIn(t *testing.T, userID string) []*http.Cookie {
	t.Helper()

	w := env.do(t, http.MethodPost, "/api/users/register", registrationPayload(userID, "pw"), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"user_id": userID, "password": "pw"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func (env handlerTestEnv) createServer(t *testing.T, name string) *models.TeamServer {
	t.Helper()
	server, err := env.servers.CreateServer(context.Background(), services.CreateServerInput{
		Name: name,
		URL:  "https://" + strings.ToLower(name) + ".example.com/tfs",
	})
	require.NoError(t, err)
	return server
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}
