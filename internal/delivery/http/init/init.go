package http_init

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/oscarparty/internal/delivery/http/common"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const apiPrefix = "/api"

type Controller interface {
	RegisterRoutes(router *gin.RouterGroup)
}

type ControllerPool struct {
	pool   []Controller
	rg     *gin.RouterGroup
	engine *gin.Engine
	logger *slog.Logger
}

type PoolOption func(*poolConfig)

type poolConfig struct {
	service string
	origins []string
	logger  *slog.Logger
}

func WithServiceName(name string) PoolOption {
	return func(c *poolConfig) { c.service = name }
}

func WithCORSOrigins(origins []string) PoolOption {
	return func(c *poolConfig) { c.origins = origins }
}

func WithLogger(l *slog.Logger) PoolOption {
	return func(c *poolConfig) { c.logger = l }
}

func NewControllerPool(opts ...PoolOption) *ControllerPool {
	cfg := poolConfig{service: "oscarparty", logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())
	engine.Use(otelgin.Middleware(cfg.service))
	if len(cfg.origins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.origins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", http_common.SessionHeader},
			ExposeHeaders: []string{http_common.SessionHeader},
			MaxAge:        12 * time.Hour,
		}))
	}
	engine.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return &ControllerPool{
		pool:   make([]Controller, 0, 8),
		rg:     engine.Group(apiPrefix),
		engine: engine,
		logger: cfg.logger,
	}
}

func (pool *ControllerPool) Add(c Controller) {
	pool.pool = append(pool.pool, c)
}

func (pool *ControllerPool) Register() {
	for _, c := range pool.pool {
		c.RegisterRoutes(pool.rg)
	}
}

func (pool *ControllerPool) Handler() http.Handler {
	return pool.engine
}

// RunAll serves until ctx is cancelled, then drains in-flight requests.
func (pool *ControllerPool) RunAll(ctx context.Context, host, port string) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           pool.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		pool.logger.Info("http server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
