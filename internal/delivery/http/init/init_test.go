package http_init

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/oscarparty/internal/delivery/http/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingController struct{}

func (pingController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ping", func(ctx *gin.Context) { ctx.String(http.StatusOK, "pong") })
}

func TestControllerPool(t *testing.T) {
	gin.SetMode(gin.TestMode)
	pool := NewControllerPool(WithCORSOrigins([]string{"http://localhost:4321"}))
	pool.Add(pingController{})
	pool.Register()

	t.Run("health is open", func(t *testing.T) {
		w := httptest.NewRecorder()
		pool.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("controllers mount under api prefix", func(t *testing.T) {
		w := httptest.NewRecorder()
		pool.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "pong", w.Body.String())
	})

	t.Run("cors exposes session header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
		req.Header.Set("Origin", "http://localhost:4321")
		w := httptest.NewRecorder()
		pool.Handler().ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:4321", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), http_common.SessionHeader)
	})
}

func TestRunAllStopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	pool := NewControllerPool()
	pool.Register()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- pool.RunAll(ctx, "127.0.0.1", "0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
