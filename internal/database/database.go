package database

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"moul.io/zapgorm2"

	"github.com/yukikurage/team-work-tracker/internal/config"
	"github.com/yukikurage/team-work-tracker/internal/models"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Connect opens the database configured in cfg with gorm logging routed to logger.
func Connect(cfg config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gormLogger := newGormLogger(logger)
	gormLogger.SetAsDefault()

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	logger.Info("Database connection established", zap.String("driver", cfg.Driver))
	return db, nil
}

// newGormLogger routes gorm logs to zap. Lookups that find no row are expected
// and stay out of the error log.
func newGormLogger(logger *zap.Logger) zapgorm2.Logger {
	gormLogger := zapgorm2.New(logger.Named("gorm"))
	gormLogger.IgnoreRecordNotFoundError = true
	return gormLogger
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case DriverMySQL, "":
		return mysql.Open(cfg.DSN()), nil
	case DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case DriverSQLite:
		// Name is the database file path for sqlite.
		return sqlite.Open(cfg.Name), nil
	default:
		return nil, errors.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Migrate creates or updates the tables of every entity.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")
	err := db.AutoMigrate(
		&models.UserLogin{},
		&models.UserInfo{},
		&models.TeamServer{},
		&models.UserServerInfo{},
		&models.WorkItem{},
	)
	if err != nil {
		return errors.Wrap(err, "failed to run migrations")
	}

	if db.Dialector.Name() == DriverPostgres {
		if err := AddIndexes(db, logger); err != nil {
			return errors.Wrap(err, "failed to add indexes")
		}
	}

	logger.Info("Database migrations completed")
	return nil
}
