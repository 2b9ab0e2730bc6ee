package http_auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/oscarparty/internal/delivery/http/common"
	http_session_middleware "github.com/humanbelnik/oscarparty/internal/delivery/http/middleware/session"
	"github.com/humanbelnik/oscarparty/internal/model"
	service_password_auth "github.com/humanbelnik/oscarparty/internal/service/auth/password"
	usecase_auth "github.com/humanbelnik/oscarparty/internal/usecase/auth"
)

type Controller struct {
	usecase    *usecase_auth.Usecase
	middleware *http_session_middleware.Middleware
	logger     *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(
	usecase *usecase_auth.Usecase,
	middleware *http_session_middleware.Middleware,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		usecase:    usecase,
		middleware: middleware,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", c.login)
		auth.POST("/logout", c.middleware.RequireSession(), c.logout)
		auth.GET("/session", c.middleware.Resolve(), c.session)
	}
}

type LoginRequestDTO struct {
	Password string `json:"password"`
}

type LoginResponseDTO struct {
	Success     bool   `json:"success"`
	AccessLevel string `json:"accessLevel,omitempty"`
	Token       string `json:"token,omitempty"`
	Error       string `json:"error,omitempty"`
}

type SessionResponseDTO struct {
	AccessLevel string `json:"accessLevel"`
}

func (c *Controller) login(ctx *gin.Context) {
	var req LoginRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("invalid login payload", slog.String("error", err.Error()))
	}

	s, err := c.usecase.Login(ctx.Request.Context(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service_password_auth.ErrPasswordRequired):
			ctx.JSON(http.StatusBadRequest, LoginResponseDTO{Error: "Password is required"})
		case errors.Is(err, service_password_auth.ErrInvalidPassword):
			c.logger.Info("rejected login attempt")
			ctx.JSON(http.StatusUnauthorized, LoginResponseDTO{Error: "Invalid password. Please try again."})
		case errors.Is(err, service_password_auth.ErrNotConfigured):
			c.logger.Error("password digests are not configured")
			ctx.JSON(http.StatusInternalServerError, LoginResponseDTO{Error: "Server configuration error"})
		default:
			c.logger.Error("login failed", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, LoginResponseDTO{Error: "Server configuration error"})
		}
		return
	}

	ctx.Header(http_common.SessionHeader, s.Token)
	ctx.JSON(http.StatusOK, LoginResponseDTO{
		Success:     true,
		AccessLevel: string(s.AccessLevel),
		Token:       s.Token,
	})
}

func (c *Controller) logout(ctx *gin.Context) {
	s, _ := http_session_middleware.From(ctx)
	if err := c.usecase.Logout(ctx.Request.Context(), s.Token); err != nil {
		c.logger.Error("logout failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: http_common.MsgInternal,
		})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *Controller) session(ctx *gin.Context) {
	level := model.AccessNone
	if s, ok := http_session_middleware.From(ctx); ok {
		level = s.AccessLevel
	}
	ctx.JSON(http.StatusOK, SessionResponseDTO{AccessLevel: string(level)})
}
