package http_voting

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/oscarparty/internal/delivery/http/common"
	http_session_middleware "github.com/humanbelnik/oscarparty/internal/delivery/http/middleware/session"
	"github.com/humanbelnik/oscarparty/internal/model"
	service_wizard "github.com/humanbelnik/oscarparty/internal/service/wizard"
	usecase_voting "github.com/humanbelnik/oscarparty/internal/usecase/voting"
)

type Controller struct {
	uc         *usecase_voting.Usecase
	catalog    *model.Catalog
	middleware *http_session_middleware.Middleware

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(
	uc *usecase_voting.Usecase,
	catalog *model.Catalog,
	middleware *http_session_middleware.Middleware,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		uc:         uc,
		catalog:    catalog,
		middleware: middleware,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var transitions = []usecase_voting.Op{
	usecase_voting.OpStart,
	usecase_voting.OpNext,
	usecase_voting.OpPrevious,
	usecase_voting.OpComplete,
	usecase_voting.OpSkip,
	usecase_voting.OpRestart,
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	voting := router.Group("/voting", c.middleware.RequireSession())
	voting.GET("", c.view)
	for _, op := range transitions {
		voting.POST("/"+string(op), c.transition(op))
	}
	voting.PUT("/votes", c.vote)
	voting.DELETE("/votes", c.clear)
	voting.POST("/submit", c.submit)
}

type ProgressDTO struct {
	Voted int `json:"voted"`
	Total int `json:"total"`
}

type ViewDTO struct {
	Phase                string                   `json:"phase"`
	Step                 int                      `json:"step"`
	TotalSteps           int                      `json:"total_steps"`
	Category             *http_common.CategoryDTO `json:"category"`
	Votes                map[string]string        `json:"votes"`
	AboveTheLine         ProgressDTO              `json:"above_the_line"`
	BelowTheLine         ProgressDTO              `json:"below_the_line"`
	AboveTheLineComplete bool                     `json:"above_the_line_complete"`
	Predictions          []model.Prediction       `json:"predictions"`
}

type ErrorResponseDTO struct {
	http_common.ErrorResponse
	View *ViewDTO `json:"view,omitempty"`
}

type VoteRequestDTO struct {
	CategoryID string `json:"category_id" binding:"required"`
	NomineeID  string `json:"nominee_id"`
}

type SubmitRequestDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SubmitResponseDTO struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	View    ViewDTO `json:"view"`
}

func (c *Controller) toDTO(v usecase_voting.View) ViewDTO {
	out := ViewDTO{
		Phase:                string(v.Phase),
		Step:                 v.Step,
		TotalSteps:           v.TotalSteps,
		Votes:                v.Votes,
		AboveTheLine:         ProgressDTO(v.AboveTheLine),
		BelowTheLine:         ProgressDTO(v.BelowTheLine),
		AboveTheLineComplete: v.AboveTheLineComplete,
		Predictions:          v.Predictions,
	}
	if v.Category != nil {
		cat := http_common.ToCategoryDTO(c.catalog, *v.Category)
		out.Category = &cat
	}
	return out
}

func token(ctx *gin.Context) model.SessionToken {
	s, _ := http_session_middleware.From(ctx)
	return s.Token
}

func (c *Controller) view(ctx *gin.Context) {
	v, err := c.uc.View(ctx.Request.Context(), token(ctx))
	if err != nil {
		c.fail(ctx, v, err)
		return
	}
	ctx.JSON(http.StatusOK, c.toDTO(v))
}

func (c *Controller) transition(op usecase_voting.Op) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		v, err := c.uc.Apply(ctx.Request.Context(), token(ctx), op)
		if err != nil {
			c.fail(ctx, v, err)
			return
		}
		ctx.JSON(http.StatusOK, c.toDTO(v))
	}
}

func (c *Controller) vote(ctx *gin.Context) {
	var req VoteRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error:   "bad_request",
			Message: http_common.MsgBadRequest,
		})
		return
	}

	v, err := c.uc.Select(ctx.Request.Context(), token(ctx), req.CategoryID, req.NomineeID)
	if err != nil {
		c.fail(ctx, v, err)
		return
	}
	ctx.JSON(http.StatusOK, c.toDTO(v))
}

func (c *Controller) clear(ctx *gin.Context) {
	v, err := c.uc.Clear(ctx.Request.Context(), token(ctx))
	if err != nil {
		c.fail(ctx, v, err)
		return
	}
	ctx.JSON(http.StatusOK, c.toDTO(v))
}

func (c *Controller) submit(ctx *gin.Context) {
	var req SubmitRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error:   "bad_request",
			Message: http_common.MsgBadRequest,
		})
		return
	}

	v, res, err := c.uc.Submit(ctx.Request.Context(), token(ctx), req.Name, req.Email)
	if err != nil {
		if errors.Is(err, usecase_voting.ErrRelayRejected) {
			dto := c.toDTO(v)
			ctx.JSON(http.StatusBadGateway, ErrorResponseDTO{
				ErrorResponse: http_common.ErrorResponse{Error: "relay_failed", Message: res.Message},
				View:          &dto,
			})
			return
		}
		c.fail(ctx, v, err)
		return
	}
	ctx.JSON(http.StatusOK, SubmitResponseDTO{
		Success: true,
		Message: res.Message,
		View:    c.toDTO(v),
	})
}

// fail maps usecase errors to statuses. Guard failures carry the unchanged
// view so the client can resync.
func (c *Controller) fail(ctx *gin.Context, v usecase_voting.View, err error) {
	var field *model.FieldError
	switch {
	case errors.Is(err, usecase_voting.ErrNoSession):
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Error:   "unauthorized",
			Message: "Session expired",
		})
	case errors.As(err, &field):
		ctx.JSON(http.StatusUnprocessableEntity, http_common.ErrorResponse{
			Error:   "validation_error",
			Message: field.Message,
			Field:   field.Field,
		})
	case errors.Is(err, model.ErrUnknownCategory):
		ctx.JSON(http.StatusUnprocessableEntity, http_common.ErrorResponse{
			Error:   "validation_error",
			Message: "unknown category",
			Field:   "category_id",
		})
	case errors.Is(err, model.ErrNomineeNotInCategory):
		ctx.JSON(http.StatusUnprocessableEntity, http_common.ErrorResponse{
			Error:   "validation_error",
			Message: "nominee is not in this category",
			Field:   "nominee_id",
		})
	case errors.Is(err, service_wizard.ErrWrongPhase),
		errors.Is(err, service_wizard.ErrNoSelection),
		errors.Is(err, service_wizard.ErrAtFirstStep),
		errors.Is(err, service_wizard.ErrNoBelowTheLineVotes),
		errors.Is(err, service_wizard.ErrCategoryNotAllowed),
		errors.Is(err, usecase_voting.ErrSubmissionInFlight):
		dto := c.toDTO(v)
		ctx.JSON(http.StatusConflict, ErrorResponseDTO{
			ErrorResponse: http_common.ErrorResponse{Error: "conflict", Message: err.Error()},
			View:          &dto,
		})
	case errors.Is(err, usecase_voting.ErrRelayNotConfigured):
		c.logger.Error("prediction relay is not configured")
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error:   "configuration_error",
			Message: "Server configuration error",
		})
	default:
		c.logger.Error("voting request failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Error:   "internal_error",
			Message: http_common.MsgInternal,
		})
	}
}
