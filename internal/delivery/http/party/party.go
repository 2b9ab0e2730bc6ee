package http_party

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/oscarparty/internal/delivery/http/common"
	http_session_middleware "github.com/humanbelnik/oscarparty/internal/delivery/http/middleware/session"
	"github.com/humanbelnik/oscarparty/internal/model"
	usecase_rsvp "github.com/humanbelnik/oscarparty/internal/usecase/rsvp"
)

type Controller struct {
	rsvp       *usecase_rsvp.Usecase
	middleware *http_session_middleware.Middleware
	now        func() time.Time
	logger     *slog.Logger
}

func New(rsvp *usecase_rsvp.Usecase, middleware *http_session_middleware.Middleware) *Controller {
	return &Controller{
		rsvp:       rsvp,
		middleware: middleware,
		now:        time.Now,
		logger:     slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/party", c.middleware.RequireGuest(), c.party)
	router.POST("/rsvp", c.middleware.RequireGuest(), c.submit)
}

type PartyResponseDTO struct {
	Party     model.Party     `json:"party"`
	Countdown model.Countdown `json:"countdown"`
}

type RSVPRequestDTO struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	Attending           string `json:"attending"`
	DietaryRestrictions string `json:"dietaryRestrictions"`
	GuestCount          int    `json:"guestCount"`
}

type RSVPResponseDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *Controller) party(ctx *gin.Context) {
	p := model.WatchParty()
	ctx.JSON(http.StatusOK, PartyResponseDTO{
		Party:     p,
		Countdown: model.CountdownTo(p.StartsAt, c.now()),
	})
}

func (c *Controller) submit(ctx *gin.Context) {
	var req RSVPRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Error:   "bad_request",
			Message: http_common.MsgBadRequest,
		})
		return
	}

	s, _ := http_session_middleware.From(ctx)
	res, err := c.rsvp.Submit(ctx.Request.Context(), s.AccessLevel, model.RSVP{
		Name:                req.Name,
		Email:               req.Email,
		Attending:           model.Attendance(req.Attending),
		DietaryRestrictions: req.DietaryRestrictions,
		GuestCount:          req.GuestCount,
	})
	if err != nil {
		var field *model.FieldError
		switch {
		case errors.As(err, &field):
			ctx.JSON(http.StatusUnprocessableEntity, http_common.ErrorResponse{
				Error:   "validation_error",
				Message: field.Message,
				Field:   field.Field,
			})
		case errors.Is(err, usecase_rsvp.ErrForbidden):
			ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{
				Error:   "forbidden",
				Message: "This page is for invited guests only",
			})
		case errors.Is(err, usecase_rsvp.ErrRelayRejected):
			ctx.JSON(http.StatusBadGateway, RSVPResponseDTO{Success: false, Message: res.Message})
		case errors.Is(err, usecase_rsvp.ErrRelayNotConfigured):
			c.logger.Error("rsvp relay is not configured")
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Error:   "configuration_error",
				Message: "Server configuration error",
			})
		default:
			c.logger.Error("rsvp failed", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Error:   "internal_error",
				Message: http_common.MsgInternal,
			})
		}
		return
	}

	ctx.JSON(http.StatusOK, RSVPResponseDTO{Success: true, Message: res.Message})
}
