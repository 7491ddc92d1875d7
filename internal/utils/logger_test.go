package utils

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSlogLogger_LogRequestLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	logger.LogRequest("GET", "/ok", http.StatusOK, 0)
	assert.Contains(t, buf.String(), "level=INFO")

	buf.Reset()
	logger.LogRequest("GET", "/missing", http.StatusNotFound, 0)
	assert.Contains(t, buf.String(), "level=WARN")

	buf.Reset()
	logger.LogRequest("GET", "/broken", http.StatusBadGateway, 0)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "status_code=502")
}

func TestMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	router := gin.New()
	router.Use(RequestID(), LoggerMiddleware(logger), ContextLogger(logger))
	router.GET("/ping", func(c *gin.Context) {
		GetLoggerFromContext(c, logger).Info("handled")
		c.Status(http.StatusNoContent)
	})

	t.Run("generates request id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("keeps client request id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
		assert.Contains(t, buf.String(), "request_id=abc-123")
		assert.Contains(t, buf.String(), "msg=handled")
	})
}
