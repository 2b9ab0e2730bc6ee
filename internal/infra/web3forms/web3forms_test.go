package infra_web3forms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/humanbelnik/oscarparty/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Web3FormsSuite struct {
	suite.Suite
}

func TestWeb3FormsSuite(t *testing.T) {
	suite.RunSuite(t, new(Web3FormsSuite))
}

func fixedClock() time.Time {
	return time.Date(2026, 3, 10, 20, 15, 0, 0, time.UTC)
}

func capture(t provider.T, status int, reply string) (*httptest.Server, *map[string]any) {
	got := map[string]any{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	return srv, &got
}

func validSubmission() model.PredictionSubmission {
	return model.PredictionSubmission{
		Name:  "Ada",
		Email: "ada@example.com",
		Predictions: []model.Prediction{
			{Category: "Best Picture", Choice: "Sinners - Sinners"},
			{Category: "Directing", Choice: "Ryan Coogler - Sinners"},
		},
	}
}

func (s *Web3FormsSuite) TestSubmitPredictions(t provider.T) {
	ctx := context.Background()

	t.Run("Should post formatted predictions", func(t provider.T) {
		srv, got := capture(t, http.StatusOK, `{"success":true,"message":"Email sent successfully!"}`)
		defer srv.Close()
		c := New(srv.URL, "key-1")
		c.now = fixedClock

		res, err := c.SubmitPredictions(ctx, validSubmission())

		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, "Email sent successfully!", res.Message)

		body := *got
		assert.Equal(t, "key-1", body["access_key"])
		assert.Equal(t, "🏆 Oscar Predictions: Ada", body["subject"])
		assert.Equal(t, "Oscar Party 2026", body["from_name"])
		assert.Equal(t, "ada@example.com", body["email"])
		assert.Equal(t, "Best Picture: Sinners - Sinners\nDirecting: Ryan Coogler - Sinners", body["predictions"])
		assert.Equal(t, `{"Best Picture":"Sinners - Sinners","Directing":"Ryan Coogler - Sinners"}`, body["predictions_json"])
		assert.Equal(t, "2026-03-10T20:15:00.000Z", body["submitted_at"])
	})

	t.Run("Should pass through relay rejection", func(t provider.T) {
		srv, _ := capture(t, http.StatusBadRequest, `{"success":false,"message":"Invalid access key"}`)
		defer srv.Close()

		res, err := New(srv.URL, "bad").SubmitPredictions(ctx, validSubmission())

		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "Invalid access key", res.Message)
	})

	t.Run("Should report generic failure on transport error", func(t provider.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		res, err := New(url, "key").SubmitPredictions(ctx, validSubmission())

		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "Failed to submit predictions. Please try again.", res.Message)
	})

	t.Run("Should report generic failure on non json reply", func(t provider.T) {
		srv, _ := capture(t, http.StatusBadGateway, `<html>`)
		defer srv.Close()

		res, _ := New(srv.URL, "key").SubmitPredictions(ctx, validSubmission())

		assert.Equal(t, model.RelayResult{Success: false, Message: "Failed to submit predictions. Please try again."}, res)
	})

	t.Run("Should refuse without access key", func(t provider.T) {
		_, err := New("http://127.0.0.1:1", "").SubmitPredictions(ctx, validSubmission())
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func (s *Web3FormsSuite) TestSubmitRSVP(t provider.T) {
	ctx := context.Background()

	t.Run("Should post rsvp", func(t provider.T) {
		srv, got := capture(t, http.StatusOK, `{"success":true,"message":"ok"}`)
		defer srv.Close()
		c := New(srv.URL, "key-2")
		c.now = fixedClock

		res, err := c.SubmitRSVP(ctx, model.RSVP{
			Name:                "Grace",
			Email:               "grace@example.com",
			Attending:           model.Attending,
			DietaryRestrictions: "vegetarian",
			GuestCount:          2,
		})

		require.NoError(t, err)
		assert.True(t, res.Success)
		body := *got
		assert.Equal(t, "🎬 Oscar Party RSVP: Grace", body["subject"])
		assert.Equal(t, "yes", body["attending"])
		assert.Equal(t, "vegetarian", body["dietaryRestrictions"])
		assert.Equal(t, float64(2), body["guestCount"])
	})

	t.Run("Should omit empty optional fields", func(t provider.T) {
		srv, got := capture(t, http.StatusOK, `{"success":true,"message":"ok"}`)
		defer srv.Close()

		_, err := New(srv.URL, "key-2").SubmitRSVP(ctx, model.RSVP{
			Name: "Grace", Email: "grace@example.com", Attending: model.NotAttending,
		})

		require.NoError(t, err)
		assert.NotContains(t, *got, "dietaryRestrictions")
		assert.NotContains(t, *got, "guestCount")
	})

	t.Run("Should report rsvp failure message", func(t provider.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		res, _ := New(url, "key").SubmitRSVP(ctx, model.RSVP{Name: "Grace"})

		assert.Equal(t, "Failed to submit RSVP. Please try again.", res.Message)
	})
}

func (s *Web3FormsSuite) TestTimeoutOption(t provider.T) {
	t.Parallel()

	t.Run("Should not modify injected client", func(t provider.T) {
		shared := &http.Client{}

		c := New("", "key", WithHTTPClient(shared), WithTimeout(time.Second))

		assert.Zero(t, shared.Timeout)
		assert.NotSame(t, shared, c.http)
		assert.Equal(t, time.Second, c.http.Timeout)
	})

	t.Run("Should leave default client untouched", func(t provider.T) {
		before := http.DefaultClient.Timeout

		c := New("", "key", WithHTTPClient(http.DefaultClient), WithTimeout(time.Second))

		assert.Equal(t, before, http.DefaultClient.Timeout)
		assert.Equal(t, time.Second, c.http.Timeout)
	})

	t.Run("Should keep injected client without timeout", func(t provider.T) {
		shared := &http.Client{}

		c := New("", "key", WithHTTPClient(shared))

		assert.Same(t, shared, c.http)
	})
}
