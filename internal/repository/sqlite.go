package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant-picker-api/internal/models"

	"github.com/google/uuid"
	"modernc.org/sqlite"
)

// unicodeLowerFunc replaces SQLite's LOWER, which only folds ASCII.
const unicodeLowerFunc = "unicode_lower"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(unicodeLowerFunc, 1, unicodeLower)
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// SQLiteRepository stores restaurants in a single SQLite database file.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at dbPath and creates the schema.
// ":memory:" gives a private in-memory database.
func OpenSQLite(dbPath string) (*SQLiteRepository, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		connStr = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("repository: open sqlite: %w", err)
	}

	// the named database lives as long as one connection stays open
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("repository: ping sqlite: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("repository: enable WAL mode: %w", err)
		}
	}

	r := &SQLiteRepository{db: db}
	if err := r.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS restaurants (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		rating REAL CHECK (rating IS NULL OR (rating >= 0 AND rating <= 5)),
		price_level INTEGER CHECK (price_level IS NULL OR price_level BETWEEN 1 AND 4),
		cuisine TEXT,
		source TEXT NOT NULL DEFAULT 'manual',
		url TEXT,
		num_reviews INTEGER CHECK (num_reviews IS NULL OR num_reviews >= 0),
		city TEXT,
		country TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_restaurants_name ON restaurants(name);
	CREATE INDEX IF NOT EXISTS idx_restaurants_lat ON restaurants(lat);
	CREATE INDEX IF NOT EXISTS idx_restaurants_lng ON restaurants(lng);
	CREATE INDEX IF NOT EXISTS idx_restaurants_cuisine ON restaurants(cuisine);
	CREATE INDEX IF NOT EXISTS idx_restaurants_city ON restaurants(city);
	`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("repository: create tables: %w", err)
	}
	return nil
}

// Close closes the database.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Ping checks that the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Search returns restaurants matching the text filter in rank order.
func (r *SQLiteRepository) Search(ctx context.Context, filter models.SearchFilter) ([]models.Restaurant, error) {
	query, args := sqliteDialect.searchQuery(filter)
	return r.query(ctx, "search", query, args...)
}

// SearchNearby returns restaurants inside the bounding box of the filter in rank order.
func (r *SQLiteRepository) SearchNearby(ctx context.Context, filter models.NearbyFilter) ([]models.Restaurant, error) {
	query, args := sqliteDialect.nearbyQuery(filter)
	return r.query(ctx, "nearby search", query, args...)
}

// List returns one page of restaurants in insertion order.
func (r *SQLiteRepository) List(ctx context.Context, page models.Page) ([]models.Restaurant, error) {
	query, args := sqliteDialect.listQuery(page)
	return r.query(ctx, "list", query, args...)
}

// GetByID returns ErrNotFound for an unknown id.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = ?`, id)
	restaurant, err := scanRestaurant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to get restaurant %q: %w", id, err)
	}
	return &restaurant, nil
}

// BulkCreate inserts restaurants in one transaction and returns how many were
// new. Records whose id already exists are skipped.
func (r *SQLiteRepository) BulkCreate(ctx context.Context, restaurants []models.Restaurant) (int, error) {
	if len(restaurants) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("repository: begin bulk insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO restaurants (`+restaurantColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("repository: prepare bulk insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	inserted := 0
	for _, in := range restaurants {
		rest := prepareForInsert(in, now)
		result, err := stmt.ExecContext(ctx,
			rest.ID, rest.Name, rest.Address, rest.Lat, rest.Lng,
			rest.Rating, rest.PriceLevel, rest.Cuisine, rest.Source, rest.URL,
			rest.NumReviews, rest.City, rest.Country, rest.CreatedAt, rest.UpdatedAt,
		)
		if err != nil {
			return 0, fmt.Errorf("repository: insert restaurant %q: %w", rest.ID, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("repository: insert restaurant %q: %w", rest.ID, err)
		}
		inserted += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("repository: commit bulk insert: %w", err)
	}
	return inserted, nil
}

// Count returns the number of stored restaurants.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&count); err != nil {
		return 0, fmt.Errorf("repository: failed to count restaurants: %w", err)
	}
	return count, nil
}

// Cuisines returns the distinct non-null cuisines, sorted.
func (r *SQLiteRepository) Cuisines(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "cuisine")
}

// Cities returns the distinct non-null cities, sorted.
func (r *SQLiteRepository) Cities(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "city")
}

func (r *SQLiteRepository) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, sqliteDialect.distinctQuery(column))
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list %s values: %w", column, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("repository: failed to scan %s: %w", column, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating %s rows: %w", column, err)
	}
	return values, nil
}

func (r *SQLiteRepository) query(ctx context.Context, op, query string, args ...any) ([]models.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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
