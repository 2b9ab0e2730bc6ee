package infra_web3forms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/humanbelnik/oscarparty/internal/model"
)

const (
	DefaultEndpoint = "https://api.web3forms.com/submit"
	fromName        = "Oscar Party 2026"

	predictionsFailure = "Failed to submit predictions. Please try again."
	rsvpFailure        = "Failed to submit RSVP. Please try again."
)

var ErrNotConfigured = errors.New("web3forms access key is not configured")

type Client struct {
	endpoint  string
	accessKey string
	http      *http.Client
	timeout   time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

func New(endpoint, accessKey string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:  endpoint,
		accessKey: accessKey,
		http:      &http.Client{},
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

type predictionsPayload struct {
	AccessKey       string `json:"access_key"`
	Subject         string `json:"subject"`
	FromName        string `json:"from_name"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Predictions     string `json:"predictions"`
	PredictionsJSON string `json:"predictions_json"`
	SubmittedAt     string `json:"submitted_at"`
}

type rsvpPayload struct {
	AccessKey           string `json:"access_key"`
	Subject             string `json:"subject"`
	FromName            string `json:"from_name"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	Attending           string `json:"attending"`
	DietaryRestrictions string `json:"dietaryRestrictions,omitempty"`
	GuestCount          int    `json:"guestCount,omitempty"`
	SubmittedAt         string `json:"submitted_at"`
}

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FormatPredictions renders one "Category: choice" line per pick.
func FormatPredictions(predictions []model.Prediction) string {
	lines := make([]string, 0, len(predictions))
	for _, p := range predictions {
		lines = append(lines, p.Category+": "+p.Choice)
	}
	return strings.Join(lines, "\n")
}

// predictionsJSON keeps catalog order, which a map would lose.
func predictionsJSON(predictions []model.Prediction) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range predictions {
		if i > 0 {
			b.WriteByte(',')
		}
		k, _ := json.Marshal(p.Category)
		v, _ := json.Marshal(p.Choice)
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return b.String()
}

func (c *Client) SubmitPredictions(ctx context.Context, s model.PredictionSubmission) (model.RelayResult, error) {
	if c.accessKey == "" {
		return model.RelayResult{}, ErrNotConfigured
	}
	return c.post(ctx, predictionsPayload{
		AccessKey:       c.accessKey,
		Subject:         "🏆 Oscar Predictions: " + s.Name,
		FromName:        fromName,
		Name:            s.Name,
		Email:           s.Email,
		Predictions:     FormatPredictions(s.Predictions),
		PredictionsJSON: predictionsJSON(s.Predictions),
		SubmittedAt:     c.timestamp(),
	}, predictionsFailure), nil
}

func (c *Client) SubmitRSVP(ctx context.Context, r model.RSVP) (model.RelayResult, error) {
	if c.accessKey == "" {
		return model.RelayResult{}, ErrNotConfigured
	}
	return c.post(ctx, rsvpPayload{
		AccessKey:           c.accessKey,
		Subject:             "🎬 Oscar Party RSVP: " + r.Name,
		FromName:            fromName,
		Name:                r.Name,
		Email:               r.Email,
		Attending:           string(r.Attending),
		DietaryRestrictions: r.DietaryRestrictions,
		GuestCount:          r.GuestCount,
		SubmittedAt:         c.timestamp(),
	}, rsvpFailure), nil
}

func (c *Client) timestamp() string {
	return c.now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// post never returns a transport error; failures become an unsuccessful
// result with the generic message.
func (c *Client) post(ctx context.Context, payload any, failure string) model.RelayResult {
	failed := model.RelayResult{Success: false, Message: failure}

	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.ErrorContext(ctx, "relay payload encode failed", slog.String("error", err.Error()))
		return failed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		c.logger.ErrorContext(ctx, "relay request build failed", slog.String("error", err.Error()))
		return failed
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "relay request failed", slog.String("error", err.Error()))
		return failed
	}
	defer resp.Body.Close()

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logger.ErrorContext(ctx, "relay response decode failed",
			slog.String("status", strconv.Itoa(resp.StatusCode)),
			slog.String("error", err.Error()))
		return failed
	}
	if !out.Success && out.Message == "" {
		out.Message = failure
	}
	return model.RelayResult{Success: out.Success, Message: out.Message}
}
