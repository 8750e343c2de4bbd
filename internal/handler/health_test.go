package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

func TestHealthHandler_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		pingErr        error
		expectedStatus int
		expectedBody   any
	}{
		{name: "database up", expectedStatus: http.StatusOK, expectedBody: map[string]any{"status": "ok"}},
		{
			name:           "database down",
			pingErr:        assert.AnError,
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   map[string]any{"status": "unavailable", "database": "down"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(stubPinger{err: tt.pingErr})
			w := performGet(t, handler.Health, "/health", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedBody, decode(t, w))
		})
	}
}
