package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateKey is returned by Insert when a storage-level unique constraint rejects the row.
var ErrDuplicateKey = errors.New("repository: duplicate key")

// Entity is implemented by every persisted model through models.Base.
type Entity interface {
	GetID() uint64
}

// Repository defines the data access operations available for an entity inside a scope.
type Repository[T Entity] interface {
	// Find returns the first row matching the predicate, or nil when none does
	Find(query interface{}, args ...interface{}) (*T, error)

	// Filter returns all rows matching the predicate in insertion order
	Filter(query interface{}, args ...interface{}) ([]T, error)

	// Count counts rows matching the predicate
	Count(query interface{}, args ...interface{}) (int64, error)

	// GetByID returns the row with the given primary key, or nil when it does not exist
	GetByID(id uint64) (*T, error)

	// Insert creates the row and returns its generated identifier
	Insert(entity *T) (uint64, error)

	// Update saves all fields of an existing row
	Update(entity *T) error

	// Scoped returns a repository whose queries have the given gorm scopes applied
	Scoped(scopes ...func(*gorm.DB) *gorm.DB) Repository[T]
}

// GormRepository is a GORM implementation of Repository
type GormRepository[T Entity] struct {
	db *gorm.DB
}

// NewGormRepository creates a new Repository bound to db
func NewGormRepository[T Entity](db *gorm.DB) Repository[T] {
	return &GormRepository[T]{db: db}
}

func (r *GormRepository[T]) Find(query interface{}, args ...interface{}) (*T, error) {
	var entity T
	err := r.db.Where(query, args...).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *GormRepository[T]) Filter(query interface{}, args ...interface{}) ([]T, error) {
	entities := []T{}
	if err := r.db.Where(query, args...).Order("id").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *GormRepository[T]) Count(query interface{}, args ...interface{}) (int64, error) {
	var count int64
	err := r.db.Model(new(T)).Where(query, args...).Count(&count).Error
	return count, err
}

func (r *GormRepository[T]) GetByID(id uint64) (*T, error) {
	var entity T
	if err := r.db.First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (r *GormRepository[T]) Insert(entity *T) (uint64, error) {
	if err := r.db.Create(entity).Error; err != nil {
		if isDuplicateKey(err) {
			return 0, fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		}
		return 0, err
	}
	return (*entity).GetID(), nil
}

func (r *GormRepository[T]) Update(entity *T) error {
	return r.db.Save(entity).Error
}

func (r *GormRepository[T]) Scoped(scopes ...func(*gorm.DB) *gorm.DB) Repository[T] {
	db := r.db
	for _, scope := range scopes {
		db = scope(db)
	}
	return &GormRepository[T]{db: db.Session(&gorm.Session{})}
}

// https://github.com/go-gorm/gorm/issues/4037
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
