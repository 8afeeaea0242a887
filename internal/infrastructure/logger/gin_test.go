package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGinMiddleware(t *testing.T) {
	t.Run("logs successful requests at info", func(t *testing.T) {
		log, logs := observedLogger()

		router := gin.New()
		router.Use(GinMiddleware(log))
		router.GET("/products", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products?category=casual", nil)
		router.ServeHTTP(w, req)

		entries := logs.FilterMessage("HTTP Request").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zap.InfoLevel, entries[0].Level)

		fields := entries[0].ContextMap()
		assert.Equal(t, int64(http.StatusOK), fields["status"])
		assert.Equal(t, "/products", fields["path"])
		assert.Equal(t, "category=casual", fields["query"])
	})

	t.Run("carries session ID when header present", func(t *testing.T) {
		log, logs := observedLogger()

		router := gin.New()
		router.Use(GinMiddleware(log))
		router.POST("/cart/items", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/cart/items", nil)
		req.Header.Set("X-Session-ID", "sess-42")
		router.ServeHTTP(w, req)

		entries := logs.FilterMessage("HTTP Request").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "sess-42", entries[0].ContextMap()["session_id"])
	})

	t.Run("logs client errors at warn and server errors at error", func(t *testing.T) {
		log, logs := observedLogger()

		router := gin.New()
		router.Use(GinMiddleware(log))
		router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
		router.GET("/broken", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))

		entries := logs.FilterMessage("HTTP Request").All()
		require.Len(t, entries, 2)
		assert.Equal(t, zap.WarnLevel, entries[0].Level)
		assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	})
}

func TestRecovery(t *testing.T) {
	log, logs := observedLogger()

	router := gin.New()
	router.Use(Recovery(log))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Len(t, logs.FilterMessage("Panic recovered").All(), 1)
}

func TestGetGinLogger(t *testing.T) {
	t.Run("returns stored logger", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		log := zap.NewNop()
		c.Set("logger", log)
		assert.Same(t, log, GetGinLogger(c))
	})

	t.Run("returns no-op when absent", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		assert.NotNil(t, GetGinLogger(c))
	})
}
