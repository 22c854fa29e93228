package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/yukikurage/team-work-tracker/internal/config"
	"github.com/yukikurage/team-work-tracker/internal/constants"
	"github.com/yukikurage/team-work-tracker/internal/credential"
	"github.com/yukikurage/team-work-tracker/internal/crypto"
	"github.com/yukikurage/team-work-tracker/internal/database"
	"github.com/yukikurage/team-work-tracker/internal/handlers"
	"github.com/yukikurage/team-work-tracker/internal/logger"
	"github.com/yukikurage/team-work-tracker/internal/middleware"
	"github.com/yukikurage/team-work-tracker/internal/repository"
	"github.com/yukikurage/team-work-tracker/internal/services"
	"github.com/yukikurage/team-work-tracker/internal/teamserver"
)

func run() error {
	cfg, err := config.Load(os.Getenv("TEAM_CONFIG"))
	if err != nil {
		return err
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = zlog.Sync() }()

	gin.SetMode(cfg.Server.GinMode)

	db, err := database.Connect(cfg.Database, zlog)
	if err != nil {
		return err
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, zlog); err != nil {
			return err
		}
	}

	cipher, err := crypto.NewCipher(cfg.Crypto.SecretKey)
	if err != nil {
		return errors.Wrap(err, "failed to create cipher")
	}

	store := repository.NewStore(db)
	authenticator := teamserver.NewClient(cfg.TeamServer, cipher, zlog)

	userService := services.NewUserManagementService(store, cipher, credential.Serialize, authenticator, zlog)
	authService := services.NewAuthService(store, cipher, cfg.Auth.MaxLoginRetries, zlog)
	serverService := services.NewTeamServerService(store, zlog)
	workItemService := services.NewWorkItemService(store, zlog)

	r := gin.New()
	r.Use(middleware.RequestLogger(zlog))
	r.Use(middleware.Recovery(zlog))

	sessionStore, err := redisStore.NewStore(
		10,                  // Redis pool size
		"tcp",               // network type
		cfg.Redis.Address(), // Redis address from config
		"",                  // username (empty for default user)
		"",                  // password (empty = no password)
		[]byte(cfg.Server.SessionSecret),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create redis store")
	}
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.Server.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	authHandler := handlers.NewAuthHandler(userService, authService)
	serverHandler := handlers.NewServerHandler(serverService, userService)
	workItemHandler := handlers.NewWorkItemHandler(workItemService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Team Work Tracker is running",
		})
	})

	api := r.Group("/api")
	{
		api.POST("/users/register", authHandler.Register)

		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		api.GET("/servers", serverHandler.ListServers)

		// Team servers of the current user (protected)
		me := api.Group("/me")
		me.Use(middleware.RequireAuth())
		{
			me.GET("/servers", serverHandler.ListMyServers)
			me.POST("/servers", serverHandler.RegisterMyServer)
		}

		// Work item routes (protected)
		workItems := api.Group("/work-items")
		workItems.Use(middleware.RequireAuth())
		{
			workItems.GET("", workItemHandler.ListWorkItems)
			workItems.POST("", workItemHandler.CreateWorkItem)
			workItems.GET("/:id", workItemHandler.GetWorkItem)
		}
	}

	zlog.Info("Server starting", zap.String("address", cfg.Server.ListenAddress))
	return r.Run(cfg.Server.ListenAddress)
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("%+v\n", err)
	}
}
