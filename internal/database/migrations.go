package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddIndexes adds lookup indexes on postgres.
// The indexes are not unique: duplicate logins and server links are rejected by the
// service layer, and a unique index here would change that behaviour for existing data.
func AddIndexes(db *gorm.DB, logger *zap.Logger) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		{"user_server_infos", "idx_user_server_infos_tfs_id", "tfs_id"},
		{"work_items", "idx_work_items_assigned_to", "assigned_to"},
		{"work_items", "idx_work_items_start_date", "start_date"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Scan(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			logger.Debug("Index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logger.Info("Created index",
			zap.String("index", idx.name),
			zap.String("table", idx.table),
			zap.String("columns", idx.columns),
		)
	}

	return nil
}
