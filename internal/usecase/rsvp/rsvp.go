package usecase_rsvp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/humanbelnik/oscarparty/internal/model"
)

var (
	ErrForbidden          = errors.New("rsvp is open to invited guests only")
	ErrRelayNotConfigured = errors.New("rsvp relay is not configured")
	ErrRelayRejected      = errors.New("rsvp relay rejected the submission")
)

//go:generate mockery --name=Relay --output=./mocks/rsvp/relay --filename=Relay.go
type Relay interface {
	SubmitRSVP(ctx context.Context, r model.RSVP) (model.RelayResult, error)
}

type Usecase struct {
	relay  Relay
	logger *slog.Logger
}

func New(relay Relay) *Usecase {
	return &Usecase{
		relay:  relay,
		logger: slog.Default(),
	}
}

func validate(r *model.RSVP) error {
	if err := model.ValidateContact(r.Name, r.Email); err != nil {
		return err
	}
	switch r.Attending {
	case "":
		r.Attending = model.Attending
	case model.Attending, model.NotAttending:
	default:
		return &model.FieldError{Field: "attending", Message: "Please let us know if you're attending"}
	}
	if r.Attending == model.NotAttending {
		r.GuestCount = 0
		r.DietaryRestrictions = ""
		return nil
	}
	if r.GuestCount < 0 || r.GuestCount > model.MaxExtraGuests {
		return &model.FieldError{
			Field:   "guestCount",
			Message: fmt.Sprintf("Guest count must be between 0 and %d", model.MaxExtraGuests),
		}
	}
	r.DietaryRestrictions = strings.TrimSpace(r.DietaryRestrictions)
	return nil
}

// Submit relays an RSVP for a guest-tier session. A missing attendance
// answer counts as attending.
func (u *Usecase) Submit(ctx context.Context, level model.AccessLevel, r model.RSVP) (model.RelayResult, error) {
	if level != model.AccessGuest {
		return model.RelayResult{}, ErrForbidden
	}
	if err := validate(&r); err != nil {
		return model.RelayResult{}, err
	}

	result, err := u.relay.SubmitRSVP(ctx, r)
	if err != nil {
		u.logger.ErrorContext(ctx, "rsvp relay unavailable", slog.String("error", err.Error()))
		return model.RelayResult{}, fmt.Errorf("%w: %w", ErrRelayNotConfigured, err)
	}
	if !result.Success {
		u.logger.WarnContext(ctx, "rsvp relay rejected submission", slog.String("message", result.Message))
		return result, ErrRelayRejected
	}

	u.logger.InfoContext(ctx, "rsvp submitted", slog.String("attending", string(r.Attending)))
	return result, nil
}
