package repository

import (
	"context"
	"errors"
	"fmt"

	"restaurant-picker-api/internal/config"
	"restaurant-picker-api/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned by lookups of an unknown restaurant id.
var ErrNotFound = errors.New("repository: restaurant not found")

// Store is the record collection behind the services. Both the SQLite and
// the PostgreSQL repositories implement it.
type Store interface {
	Search(ctx context.Context, filter models.SearchFilter) ([]models.Restaurant, error)
	SearchNearby(ctx context.Context, filter models.NearbyFilter) ([]models.Restaurant, error)
	GetByID(ctx context.Context, id string) (*models.Restaurant, error)
	List(ctx context.Context, page models.Page) ([]models.Restaurant, error)
	BulkCreate(ctx context.Context, restaurants []models.Restaurant) (int, error)
	Count(ctx context.Context) (int, error)
	Cuisines(ctx context.Context) ([]string, error)
	Cities(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Store = (*SQLiteRepository)(nil)
	_ Store = (*PostgresRepository)(nil)
)

// Open connects to the configured backend and makes sure the schema exists.
func Open(ctx context.Context, driver, source string) (Store, error) {
	switch driver {
	case config.DriverSQLite:
		return OpenSQLite(source)
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("repository: connect postgres: %w", err)
		}
		repo := NewPostgresRepository(pool)
		if err := repo.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("repository: unsupported driver %q", driver)
	}
}
