package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"restaurant-picker-api/internal/models"
	"restaurant-picker-api/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := repository.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	_, err = store.BulkCreate(context.Background(), []models.Restaurant{
		{ID: "ny-1", Name: "Luigi's", Address: "12 Mulberry St", Lat: 40.719, Lng: -73.997, Rating: models.Ptr(4.5), Cuisine: models.Ptr("italian"), NumReviews: models.Ptr(120), City: models.Ptr("New York")},
		{ID: "ny-2", Name: "Nonna's", Address: "88 Bleecker St", Lat: 40.728, Lng: -74.001, Rating: models.Ptr(4.8), Cuisine: models.Ptr("italian"), NumReviews: models.Ptr(300), City: models.Ptr("New York")},
		{ID: "ny-3", Name: "Pasta Express", Address: "5 Canal St", Lat: 40.715, Lng: -74.002, Rating: models.Ptr(3.2), Cuisine: models.Ptr("italian"), City: models.Ptr("New York")},
		{ID: "sf-1", Name: "Golden Roll", Address: "1 Market St", Lat: 37.775, Lng: -122.419, Rating: models.Ptr(4.6), Cuisine: models.Ptr("sushi"), City: models.Ptr("San Francisco")},
	})
	require.NoError(t, err)

	return newRouter(store, zerolog.Nop(), nil, []string{"*"})
}

func do(t *testing.T, r http.Handler, method, target, body string) (int, any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w.Code, decoded
}

func ids(t *testing.T, body any) []string {
	t.Helper()
	list, ok := body.([]any)
	require.True(t, ok, "expected a JSON array, got %T", body)
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, item.(map[string]any)["id"].(string))
	}
	return out
}

func TestRouter_Search(t *testing.T) {
	r := setupRouter(t)

	code, body := do(t, r, http.MethodGet, "/restaurants/search?location=New+York&cuisine=italian&min_rating=4.0", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"ny-2", "ny-1"}, ids(t, body))

	code, body = do(t, r, http.MethodGet, "/restaurants/search?location=+++", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, map[string]any{"error": "invalid filter: location is required"}, body)

	code, _ = do(t, r, http.MethodGet, "/restaurants/search?location=x&max_results=51", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRouter_Nearby(t *testing.T) {
	r := setupRouter(t)

	code, body := do(t, r, http.MethodGet, "/restaurants/nearby?lat=37.7749&lng=-122.4194", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"sf-1"}, ids(t, body))

	code, _ = do(t, r, http.MethodGet, "/restaurants/nearby?lat=37.7&lng=-122.4&radius_km=0", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRouter_Restaurants(t *testing.T) {
	r := setupRouter(t)

	code, body := do(t, r, http.MethodGet, "/restaurants/ny-3", "")
	assert.Equal(t, http.StatusOK, code)
	record := body.(map[string]any)
	assert.Equal(t, "Pasta Express", record["name"])
	assert.Equal(t, "manual", record["source"])
	assert.Nil(t, record["num_reviews"])
	assert.NotContains(t, record, "city")

	code, _ = do(t, r, http.MethodGet, "/restaurants/nope", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, body = do(t, r, http.MethodGet, "/restaurants?offset=1&limit=2", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"ny-2", "ny-3"}, ids(t, body))
}

func TestRouter_Stats(t *testing.T) {
	r := setupRouter(t)

	code, body := do(t, r, http.MethodGet, "/restaurants/stats/cuisines", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"italian", "sushi"}, body)

	code, body = do(t, r, http.MethodGet, "/restaurants/stats/cities", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"New York", "San Francisco"}, body)

	code, body = do(t, r, http.MethodGet, "/restaurants/stats/count", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"count": 4.0}, body)
}

func TestRouter_Pick(t *testing.T) {
	r := setupRouter(t)

	_, searched := do(t, r, http.MethodGet, "/restaurants/search?location=new+york", "")
	candidates, err := json.Marshal(searched)
	require.NoError(t, err)

	code, body := do(t, r, http.MethodPost, "/restaurants/pick", `{"candidates":`+string(candidates)+`,"limit":2,"strategy":"top"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"ny-2", "ny-1"}, ids(t, body))

	seeded := `{"candidates":` + string(candidates) + `,"limit":2,"seed":5}`
	_, first := do(t, r, http.MethodPost, "/restaurants/pick", seeded)
	_, second := do(t, r, http.MethodPost, "/restaurants/pick", seeded)
	assert.Equal(t, ids(t, first), ids(t, second))

	code, _ = do(t, r, http.MethodPost, "/restaurants/pick", `{"candidates":[],"strategy":"random"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRouter_Ambient(t *testing.T) {
	r := setupRouter(t)

	code, body := do(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]any{"status": "ok"}, body)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "restaurant_api_requests_total")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
