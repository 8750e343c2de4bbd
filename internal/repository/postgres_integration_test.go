//go:build integration

package repository

import (
	"context"
	"testing"

	"restaurant-picker-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jackc/pgx/v5/pgxpool"
)

func setupTestDatabase(t *testing.T) *PostgresRepository {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	postgresC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		postgresC.Terminate(ctx)
	})

	host, err := postgresC.Host(ctx)
	require.NoError(t, err)

	port, err := postgresC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connString := "postgres://testuser:testpass@" + host + ":" + port.Port() + "/testdb?sslmode=disable"

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
	})

	repo := NewPostgresRepository(pool)
	require.NoError(t, repo.Migrate(ctx))

	inserted, err := repo.BulkCreate(ctx, fixtures())
	require.NoError(t, err)
	require.Equal(t, len(fixtures()), inserted)

	return repo
}

func TestPostgresRepository_Search(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	repo := setupTestDatabase(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		filter   models.SearchFilter
		expected []string
	}{
		{
			name:     "italian in new york rated 4 or better",
			filter:   models.SearchFilter{Location: "New York", Cuisine: "italian", MinRating: models.Ptr(4.0), MaxResults: 20},
			expected: []string{"ny-2", "ny-1"},
		},
		{
			name:     "case insensitive location",
			filter:   models.SearchFilter{Location: "chicago", MaxResults: 20},
			expected: []string{"chi-1", "chi-2"},
		},
		{
			name:     "price cap excludes unknown price",
			filter:   models.SearchFilter{Location: "New York", MaxPriceLevel: models.Ptr(2), MaxResults: 20},
			expected: []string{"ny-1", "ny-3"},
		},
		{
			name:     "no results",
			filter:   models.SearchFilter{Location: "nonexistent", MaxResults: 20},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restaurants, err := repo.Search(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, restaurantIDs(restaurants))
		})
	}
}

func TestPostgresRepository_Lookups(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	repo := setupTestDatabase(t)
	ctx := context.Background()

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "ny-1")
		require.NoError(t, err)
		assert.Equal(t, "Luigi's Trattoria", got.Name)
		assert.Equal(t, models.DefaultSource, got.Source)

		_, err = repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("nearby", func(t *testing.T) {
		got, err := repo.SearchNearby(ctx, models.NearbyFilter{Lat: 40.7128, Lng: -74.0060, RadiusKM: 5, MaxResults: 20})
		require.NoError(t, err)
		assert.Equal(t, []string{"ny-2", "ny-1", "ny-4", "ny-3"}, restaurantIDs(got))
	})

	t.Run("bulk create skips existing ids", func(t *testing.T) {
		inserted, err := repo.BulkCreate(ctx, fixtures()[:2])
		require.NoError(t, err)
		assert.Zero(t, inserted)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(fixtures()), count)
	})

	t.Run("stats", func(t *testing.T) {
		cuisines, err := repo.Cuisines(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Italian", "italian", "mexican", "sushi"}, cuisines)

		cities, err := repo.Cities(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Chicago", "New York"}, cities)
	})

	t.Run("list pages in insertion order", func(t *testing.T) {
		got, err := repo.List(ctx, models.Page{Offset: 1, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"ny-2", "ny-3"}, restaurantIDs(got))
	})
}
