package usecase_rsvp

import (
	"context"
	"errors"
	"testing"

	"github.com/humanbelnik/oscarparty/internal/model"
	mocks "github.com/humanbelnik/oscarparty/internal/usecase/rsvp/mocks/rsvp/relay"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type UsecaseRSVPSuite struct {
	suite.Suite
}

func TestUsecaseRSVPSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseRSVPSuite))
}

type resources struct {
	relay   *mocks.Relay
	usecase *Usecase
}

func initResources(t provider.T) *resources {
	r := &resources{relay: mocks.NewRelay(t)}
	r.usecase = New(r.relay)
	return r
}

func validRSVP() model.RSVP {
	return model.RSVP{
		Name:                "Grace",
		Email:               "grace@example.com",
		Attending:           model.Attending,
		DietaryRestrictions: " vegetarian ",
		GuestCount:          2,
	}
}

func (s *UsecaseRSVPSuite) TestSubmit(t provider.T) {
	t.Parallel()
	ctx := context.Background()
	ok := model.RelayResult{Success: true, Message: "ok"}

	testCases := []struct {
		name       string
		level      model.AccessLevel
		rsvp       func() model.RSVP
		setupMocks func(r *resources)
		err        error
		field      string
	}{
		{
			name:  "Should relay attending guest",
			level: model.AccessGuest,
			rsvp:  validRSVP,
			setupMocks: func(r *resources) {
				want := validRSVP()
				want.DietaryRestrictions = "vegetarian"
				r.relay.On("SubmitRSVP", mock.Anything, want).Return(ok, nil).Once()
			},
		},
		{
			name:  "Should drop guest count when not attending",
			level: model.AccessGuest,
			rsvp: func() model.RSVP {
				v := validRSVP()
				v.Attending = model.NotAttending
				v.GuestCount = 9
				return v
			},
			setupMocks: func(r *resources) {
				r.relay.On("SubmitRSVP", mock.Anything, mock.MatchedBy(func(v model.RSVP) bool {
					return v.GuestCount == 0 && v.DietaryRestrictions == "" && v.Attending == model.NotAttending
				})).Return(ok, nil).Once()
			},
		},
		{
			name:  "Should default attendance to yes",
			level: model.AccessGuest,
			rsvp: func() model.RSVP {
				v := validRSVP()
				v.Attending = ""
				return v
			},
			setupMocks: func(r *resources) {
				r.relay.On("SubmitRSVP", mock.Anything, mock.MatchedBy(func(v model.RSVP) bool {
					return v.Attending == model.Attending
				})).Return(ok, nil).Once()
			},
		},
		{
			name:       "Should refuse public tier",
			level:      model.AccessPublic,
			rsvp:       validRSVP,
			setupMocks: func(r *resources) {},
			err:        ErrForbidden,
		},
		{
			name:  "Should refuse too many guests",
			level: model.AccessGuest,
			rsvp: func() model.RSVP {
				v := validRSVP()
				v.GuestCount = 6
				return v
			},
			setupMocks: func(r *resources) {},
			field:      "guestCount",
		},
		{
			name:  "Should refuse unknown attendance",
			level: model.AccessGuest,
			rsvp: func() model.RSVP {
				v := validRSVP()
				v.Attending = "maybe"
				return v
			},
			setupMocks: func(r *resources) {},
			field:      "attending",
		},
		{
			name:  "Should require email",
			level: model.AccessGuest,
			rsvp: func() model.RSVP {
				v := validRSVP()
				v.Email = ""
				return v
			},
			setupMocks: func(r *resources) {},
			field:      "email",
		},
		{
			name:  "Should surface relay rejection",
			level: model.AccessGuest,
			rsvp:  validRSVP,
			setupMocks: func(r *resources) {
				r.relay.On("SubmitRSVP", mock.Anything, mock.Anything).
					Return(model.RelayResult{Success: false, Message: "Failed to submit RSVP. Please try again."}, nil).Once()
			},
			err: ErrRelayRejected,
		},
		{
			name:  "Should report unconfigured relay",
			level: model.AccessGuest,
			rsvp:  validRSVP,
			setupMocks: func(r *resources) {
				r.relay.On("SubmitRSVP", mock.Anything, mock.Anything).
					Return(model.RelayResult{}, errors.New("no key")).Once()
			},
			err: ErrRelayNotConfigured,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			r := initResources(t)
			tc.setupMocks(r)

			res, err := r.usecase.Submit(ctx, tc.level, tc.rsvp())

			switch {
			case tc.field != "":
				var fe *model.FieldError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, tc.field, fe.Field)
			case tc.err != nil:
				assert.ErrorIs(t, err, tc.err)
			default:
				require.NoError(t, err)
				assert.True(t, res.Success)
			}
		})
	}
}
