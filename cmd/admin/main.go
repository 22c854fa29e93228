package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yukikurage/team-work-tracker/internal/config"
	"github.com/yukikurage/team-work-tracker/internal/database"
	"github.com/yukikurage/team-work-tracker/internal/logger"
)

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:   "team-admin",
		Short: "Team work tracker administration",
	}
)

// env is what every command needs from the configuration.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	cfg.Log.Development = true

	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log}, nil
}

func (e *env) connect() (*gorm.DB, error) {
	return database.Connect(e.cfg.Database, e.log)
}

func initCommands() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file")

	rootCmd.AddCommand(makeMigrateCommand())
	rootCmd.AddCommand(makeServerCommand())
	rootCmd.AddCommand(makeKeygenCommand())
}

func init() {
	initCommands()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Command failed: %s\n", err.Error())
		os.Exit(1)
	}
}
