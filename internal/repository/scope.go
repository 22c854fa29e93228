package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/team-work-tracker/internal/models"
)

// Store opens repository scopes over a gorm connection pool.
//
// Every scope holds one dedicated connection for the duration of its callback
// and returns it to the pool on every exit path. Scopes are not transactions:
// writes made in one scope stay committed even if a later scope fails.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new Store
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying pool.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// WithScope runs fn with a repository bound to a dedicated connection.
func WithScope[T Entity](ctx context.Context, db *gorm.DB, fn func(repo Repository[T]) error) error {
	return db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return fn(NewGormRepository[T](conn.Session(&gorm.Session{})))
	})
}

// UserLogins opens a UserLogin scope.
func (s *Store) UserLogins(ctx context.Context, fn func(repo Repository[models.UserLogin]) error) error {
	return WithScope[models.UserLogin](ctx, s.db, fn)
}

// UserInfos opens a UserInfo scope.
func (s *Store) UserInfos(ctx context.Context, fn func(repo Repository[models.UserInfo]) error) error {
	return WithScope[models.UserInfo](ctx, s.db, fn)
}

// TeamServers opens a TeamServer scope.
func (s *Store) TeamServers(ctx context.Context, fn func(repo Repository[models.TeamServer]) error) error {
	return WithScope[models.TeamServer](ctx, s.db, fn)
}

// UserServerInfos opens a UserServerInfo scope.
func (s *Store) UserServerInfos(ctx context.Context, fn func(repo Repository[models.UserServerInfo]) error) error {
	return WithScope[models.UserServerInfo](ctx, s.db, fn)
}

// WorkItems opens a WorkItem scope.
func (s *Store) WorkItems(ctx context.Context, fn func(repo Repository[models.WorkItem]) error) error {
	return WithScope[models.WorkItem](ctx, s.db, fn)
}
