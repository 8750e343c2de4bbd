package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"restaurant-picker-api/internal/models"
	"restaurant-picker-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRestaurantService is a mock implementation of the RestaurantService interface
type MockRestaurantService struct {
	mock.Mock
}

func (m *MockRestaurantService) Get(ctx context.Context, id string) (*models.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) List(ctx context.Context, page models.Page) ([]models.Restaurant, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]models.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRestaurantService) Cuisines(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRestaurantService) Cities(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) any {
	t.Helper()
	var body any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRestaurantHandler_Get(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		id             string
		mockResult     *models.Restaurant
		mockError      error
		expectedStatus int
		expectedBody   any
	}{
		{
			name:           "found",
			id:             "ny-2",
			mockResult:     &italian[0],
			expectedStatus: http.StatusOK,
			expectedBody:   italian[0],
		},
		{
			name:           "not found",
			id:             "missing",
			mockError:      fmtErr(service.ErrNotFound, `"missing"`),
			expectedStatus: http.StatusNotFound,
			expectedBody:   gin.H{"error": `restaurant not found: "missing"`},
		},
		{
			name:           "service error",
			id:             "ny-2",
			mockError:      assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   gin.H{"error": "internal server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockRestaurantService)
			handler := NewRestaurantHandler(mockSvc)
			mockSvc.On("Get", mock.Anything, tt.id).Return(tt.mockResult, tt.mockError)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/restaurants/"+tt.id, nil)
			c.Params = gin.Params{{Key: "id", Value: tt.id}}

			handler.Get(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, jsonValue(t, tt.expectedBody), decode(t, w))
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestRestaurantHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		query          url.Values
		expectedPage   *models.Page
		mockError      error
		expectedStatus int
	}{
		{name: "defaults", query: url.Values{}, expectedPage: &models.Page{Offset: 0, Limit: models.DefaultPageSize}, expectedStatus: http.StatusOK},
		{name: "explicit page", query: url.Values{"offset": {"20"}, "limit": {"10"}}, expectedPage: &models.Page{Offset: 20, Limit: 10}, expectedStatus: http.StatusOK},
		{name: "malformed offset", query: url.Values{"offset": {"x"}}, expectedStatus: http.StatusBadRequest},
		{
			name:           "limit rejected by service",
			query:          url.Values{"limit": {"1000"}},
			expectedPage:   &models.Page{Offset: 0, Limit: 1000},
			mockError:      fmtErr(service.ErrInvalidFilter, "limit must be less than or equal to 500"),
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockRestaurantService)
			handler := NewRestaurantHandler(mockSvc)
			if tt.expectedPage != nil {
				mockSvc.On("List", mock.Anything, *tt.expectedPage).Return(italian, tt.mockError)
			}

			w := performGet(t, handler.List, "/restaurants", tt.query)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, jsonValue(t, italian), decode(t, w))
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestRestaurantHandler_Stats(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockSvc := new(MockRestaurantService)
	handler := NewRestaurantHandler(mockSvc)
	mockSvc.On("Cuisines", mock.Anything).Return([]string{"italian", "sushi"}, nil)
	mockSvc.On("Cities", mock.Anything).Return([]string{}, nil)
	mockSvc.On("Count", mock.Anything).Return(100, nil)

	w := performGet(t, handler.Cuisines, "/restaurants/stats/cuisines", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"italian", "sushi"}, decode(t, w))

	w = performGet(t, handler.Cities, "/restaurants/stats/cities", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{}, decode(t, w))

	w = performGet(t, handler.Count, "/restaurants/stats/count", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"count": 100.0}, decode(t, w))

	mockSvc.AssertExpectations(t)
}

func TestRestaurantHandler_StatsError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockSvc := new(MockRestaurantService)
	handler := NewRestaurantHandler(mockSvc)
	mockSvc.On("Count", mock.Anything).Return(0, assert.AnError)

	w := performGet(t, handler.Count, "/restaurants/stats/count", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]any{"error": "internal server error"}, decode(t, w))
}
