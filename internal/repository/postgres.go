package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant-picker-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Store on top of a pgx connection pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Migrate creates the restaurants table and its indexes when missing.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS restaurants (
		seq BIGSERIAL UNIQUE,
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		rating DOUBLE PRECISION CHECK (rating IS NULL OR (rating >= 0 AND rating <= 5)),
		price_level INTEGER CHECK (price_level IS NULL OR price_level BETWEEN 1 AND 4),
		cuisine TEXT,
		source TEXT NOT NULL DEFAULT 'manual',
		url TEXT,
		num_reviews INTEGER CHECK (num_reviews IS NULL OR num_reviews >= 0),
		city TEXT,
		country TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_restaurants_name ON restaurants(name);
	CREATE INDEX IF NOT EXISTS idx_restaurants_lat ON restaurants(lat);
	CREATE INDEX IF NOT EXISTS idx_restaurants_lng ON restaurants(lng);
	CREATE INDEX IF NOT EXISTS idx_restaurants_cuisine ON restaurants(cuisine);
	CREATE INDEX IF NOT EXISTS idx_restaurants_city ON restaurants(city);
	`
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("repository: failed to migrate schema: %w", err)
	}
	return nil
}

// Close releases the pool.
func (r *PostgresRepository) Close() error {
	r.db.Close()
	return nil
}

// Ping checks that a connection can be acquired.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// Search performs a case-insensitive text search over city, address and name
func (r *PostgresRepository) Search(ctx context.Context, filter models.SearchFilter) ([]models.Restaurant, error) {
	sql, args := postgresDialect.searchQuery(filter)
	return r.query(ctx, "search", sql, args...)
}

// SearchNearby filters by the bounding box around the given coordinates
func (r *PostgresRepository) SearchNearby(ctx context.Context, filter models.NearbyFilter) ([]models.Restaurant, error) {
	sql, args := postgresDialect.nearbyQuery(filter)
	return r.query(ctx, "nearby search", sql, args...)
}

// List returns one page of restaurants in insertion order.
func (r *PostgresRepository) List(ctx context.Context, page models.Page) ([]models.Restaurant, error) {
	sql, args := postgresDialect.listQuery(page)
	return r.query(ctx, "list", sql, args...)
}

// GetByID returns ErrNotFound for an unknown id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	sql := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`

	restaurant, err := scanRestaurant(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to get restaurant %q: %w", id, err)
	}
	return &restaurant, nil
}

var importColumns = []string{
	"ord", "id", "name", "address", "lat", "lng", "rating", "price_level", "cuisine",
	"source", "url", "num_reviews", "city", "country", "created_at", "updated_at",
}

// BulkCreate copies the batch into a temporary table and moves it over in one
// statement, skipping ids that already exist. Returns the number of new rows.
func (r *PostgresRepository) BulkCreate(ctx context.Context, restaurants []models.Restaurant) (int, error) {
	if len(restaurants) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("repository: begin bulk insert: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		CREATE TEMP TABLE restaurants_import (
			ord INTEGER NOT NULL,
			id TEXT, name TEXT, address TEXT, lat DOUBLE PRECISION, lng DOUBLE PRECISION,
			rating DOUBLE PRECISION, price_level INTEGER, cuisine TEXT, source TEXT, url TEXT,
			num_reviews INTEGER, city TEXT, country TEXT,
			created_at TIMESTAMPTZ, updated_at TIMESTAMPTZ
		) ON COMMIT DROP
	`)
	if err != nil {
		return 0, fmt.Errorf("repository: create import table: %w", err)
	}

	now := time.Now().UTC()
	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"restaurants_import"},
		importColumns,
		pgx.CopyFromSlice(len(restaurants), func(i int) ([]any, error) {
			rest := prepareForInsert(restaurants[i], now)
			return []any{
				i, rest.ID, rest.Name, rest.Address, rest.Lat, rest.Lng,
				rest.Rating, rest.PriceLevel, rest.Cuisine, rest.Source, rest.URL,
				rest.NumReviews, rest.City, rest.Country, rest.CreatedAt, rest.UpdatedAt,
			}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("repository: copy restaurants: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		INSERT INTO restaurants (`+restaurantColumns+`)
		SELECT `+restaurantColumns+` FROM restaurants_import
		ORDER BY ord
		ON CONFLICT (id) DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("repository: insert restaurants: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("repository: commit bulk insert: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// Count returns the number of stored restaurants.
func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&count); err != nil {
		return 0, fmt.Errorf("repository: failed to count restaurants: %w", err)
	}
	return count, nil
}

// Cuisines returns the distinct non-null cuisines, sorted.
func (r *PostgresRepository) Cuisines(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "cuisine")
}

// Cities returns the distinct non-null cities, sorted.
func (r *PostgresRepository) Cities(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "city")
}

func (r *PostgresRepository) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := r.db.Query(ctx, postgresDialect.distinctQuery(column))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list %s values: %w", column, err)
	}
	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("repository: failed to scan %s: %w", column, err)
	}
	if values == nil {
		values = []string{}
	}
	return values, nil
}

func (r *PostgresRepository) query(ctx context.Context, op, sql string, args ...any) ([]models.Restaurant, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute %s query: %w", op, err)
	}
	defer rows.Close()

	restaurants := []models.Restaurant{}
	for rows.Next() {
		restaurant, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan restaurant: %w", err)
		}
		restaurants = append(restaurants, restaurant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return restaurants, nil
}
