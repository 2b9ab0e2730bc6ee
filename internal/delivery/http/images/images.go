package http_images

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/oscarparty/internal/delivery/http/common"
	http_session_middleware "github.com/humanbelnik/oscarparty/internal/delivery/http/middleware/session"
	infra_tmdb "github.com/humanbelnik/oscarparty/internal/infra/tmdb"
	"github.com/humanbelnik/oscarparty/internal/model"
	service_images "github.com/humanbelnik/oscarparty/internal/service/images"
)

const proxyCacheControl = "public, max-age=86400"

type Controller struct {
	tmdb       *infra_tmdb.Client
	images     *service_images.Service
	catalog    *model.Catalog
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
	tmdb *infra_tmdb.Client,
	images *service_images.Service,
	catalog *model.Catalog,
	middleware *http_session_middleware.Middleware,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		tmdb:       tmdb,
		images:     images,
		catalog:    catalog,
		middleware: middleware,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/tmdb", c.middleware.RequireSession(), c.proxy)

	images := router.Group("/images", c.middleware.RequireSession())
	{
		images.GET("/nominees/:category_id/:nominee_id", c.nominee)
		images.GET("/films/:film_id/backdrop", c.backdrop)
	}
}

type ImageResponseDTO struct {
	URL         *string                    `json:"url"`
	Placeholder service_images.Placeholder `json:"placeholder"`
}

func imageResponse(url, title string) ImageResponseDTO {
	out := ImageResponseDTO{Placeholder: service_images.PlaceholderFor(title)}
	if url != "" {
		out.URL = &url
	}
	return out
}

func (c *Controller) proxy(ctx *gin.Context) {
	endpoint := ctx.Query("endpoint")
	if endpoint == "" {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error:   "bad_request",
			Message: "Missing endpoint parameter",
			Field:   "endpoint",
		})
		return
	}

	body, err := c.tmdb.Get(ctx.Request.Context(), endpoint)
	if err != nil {
		var upstream *infra_tmdb.UpstreamError
		switch {
		case errors.As(err, &upstream):
			c.logger.Warn("tmdb upstream error", slog.Int("status", upstream.Status))
			ctx.JSON(upstream.Status, http_common.ErrorResponse{
				Error:   "upstream_error",
				Message: "TMDB API error",
			})
		case errors.Is(err, infra_tmdb.ErrInvalidEndpoint):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Error:   "bad_request",
				Message: "Invalid endpoint parameter",
				Field:   "endpoint",
			})
		case errors.Is(err, infra_tmdb.ErrNotConfigured):
			c.logger.Error("tmdb proxy is not configured")
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Error:   "configuration_error",
				Message: "TMDB API not configured",
			})
		default:
			c.logger.Error("tmdb proxy failed", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Error:   "internal_error",
				Message: "Internal server error",
			})
		}
		return
	}

	ctx.Header("Cache-Control", proxyCacheControl)
	ctx.Data(http.StatusOK, "application/json", body)
}

func (c *Controller) nominee(ctx *gin.Context) {
	categoryID := ctx.Param("category_id")
	n, ok := c.catalog.Nominee(categoryID, ctx.Param("nominee_id"))
	if !ok {
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Error:   "not_found",
			Message: "unknown nominee",
		})
		return
	}

	resolved := c.catalog.Resolve(categoryID, n)
	url := c.images.NomineeImage(ctx.Request.Context(), resolved, categoryID, service_images.ParseSize(ctx.Query("size")))

	title := resolved.Film
	if service_images.IsPersonCategory(categoryID) {
		title = resolved.Name
	}
	ctx.JSON(http.StatusOK, imageResponse(url, title))
}

func (c *Controller) backdrop(ctx *gin.Context) {
	f, ok := c.catalog.Film(ctx.Param("film_id"))
	if !ok {
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Error:   "not_found",
			Message: "unknown film",
		})
		return
	}

	url := c.images.Backdrop(ctx.Request.Context(), f.Title, f.Year, service_images.ParseSize(ctx.Query("size")))
	ctx.JSON(http.StatusOK, imageResponse(url, f.Title))
}
