package http_session_middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/oscarparty/internal/delivery/http/common"
	"github.com/humanbelnik/oscarparty/internal/model"
	usecase_auth "github.com/humanbelnik/oscarparty/internal/usecase/auth"
)

const sessionKey = "oscarparty.session"

type Resolver interface {
	Session(ctx context.Context, token model.SessionToken) (model.Session, error)
}

type Middleware struct {
	resolver Resolver
	logger   *slog.Logger
}

func New(resolver Resolver) *Middleware {
	return &Middleware{
		resolver: resolver,
		logger:   slog.Default(),
	}
}

// Resolve attaches the caller's session when the token is live and lets the
// request through either way.
func (m *Middleware) Resolve() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if m.attach(ctx) {
			ctx.Next()
		}
	}
}

// attach reports false when the request was aborted.
func (m *Middleware) attach(ctx *gin.Context) bool {
	if _, ok := From(ctx); ok {
		return true
	}
	token := ctx.GetHeader(http_common.SessionHeader)
	if token == "" {
		return true
	}
	s, err := m.resolver.Session(ctx.Request.Context(), token)
	switch {
	case err == nil:
		ctx.Set(sessionKey, s)
	case errors.Is(err, usecase_auth.ErrNoSession):
	default:
		m.logger.ErrorContext(ctx.Request.Context(), "session lookup failed", slog.String("error", err.Error()))
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: http_common.MsgInternal,
		})
		return false
	}
	return true
}

func (m *Middleware) RequireSession() gin.HandlerFunc {
	return m.require(func(model.AccessLevel) bool { return true })
}

// RequireGuest admits only the invited-guest tier.
func (m *Middleware) RequireGuest() gin.HandlerFunc {
	return m.require(func(l model.AccessLevel) bool { return l == model.AccessGuest })
}

func (m *Middleware) require(allowed func(model.AccessLevel) bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !m.attach(ctx) {
			return
		}
		s, ok := From(ctx)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Error:   "unauthorized",
				Message: "Please enter the party password",
			})
			return
		}
		if !allowed(s.AccessLevel) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, http_common.ErrorResponse{
				Error:   "forbidden",
				Message: "This page is for invited guests only",
			})
			return
		}
		ctx.Next()
	}
}

func From(ctx *gin.Context) (model.Session, bool) {
	v, ok := ctx.Get(sessionKey)
	if !ok {
		return model.Session{}, false
	}
	s, ok := v.(model.Session)
	return s, ok
}
