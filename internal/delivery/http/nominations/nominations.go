package http_nominations

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/oscarparty/internal/delivery/http/common"
	http_session_middleware "github.com/humanbelnik/oscarparty/internal/delivery/http/middleware/session"
	"github.com/humanbelnik/oscarparty/internal/model"
)

type Controller struct {
	catalog    *model.Catalog
	middleware *http_session_middleware.Middleware
	logger     *slog.Logger
}

func New(catalog *model.Catalog, middleware *http_session_middleware.Middleware) *Controller {
	return &Controller{
		catalog:    catalog,
		middleware: middleware,
		logger:     slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	nominations := router.Group("/nominations", c.middleware.RequireSession())
	{
		nominations.GET("", c.list)
		nominations.GET("/:category_id", c.category)
	}

	films := router.Group("/films", c.middleware.RequireSession())
	{
		films.GET("", c.films)
		films.GET("/trailers", c.trailers)
		films.GET("/featured", c.featured)
	}
}

type FeaturedResponseDTO struct {
	Titles []string `json:"titles"`
}

func (c *Controller) list(ctx *gin.Context) {
	var cats []model.Category
	switch tier := ctx.Query("tier"); tier {
	case "":
		cats = c.catalog.Categories()
	case "above":
		cats = c.catalog.AboveTheLine()
	case "below":
		cats = c.catalog.BelowTheLine()
	default:
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error:   "bad_request",
			Message: "tier must be above or below",
			Field:   "tier",
		})
		return
	}

	out := make([]http_common.CategoryDTO, 0, len(cats))
	for _, cat := range cats {
		out = append(out, http_common.ToCategoryDTO(c.catalog, cat))
	}
	ctx.JSON(http.StatusOK, out)
}

func (c *Controller) category(ctx *gin.Context) {
	cat, ok := c.catalog.Category(ctx.Param("category_id"))
	if !ok {
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Error:   "not_found",
			Message: "unknown category",
		})
		return
	}
	ctx.JSON(http.StatusOK, http_common.ToCategoryDTO(c.catalog, cat))
}

func (c *Controller) films(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, toFilmDTOs(c.catalog.Films()))
}

func (c *Controller) trailers(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, toFilmDTOs(c.catalog.FilmsWithTrailers()))
}

func (c *Controller) featured(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, FeaturedResponseDTO{Titles: c.catalog.FeaturedFilms()})
}

func toFilmDTOs(films []model.Film) []http_common.FilmDTO {
	out := make([]http_common.FilmDTO, 0, len(films))
	for _, f := range films {
		out = append(out, http_common.ToFilmDTO(f))
	}
	return out
}
