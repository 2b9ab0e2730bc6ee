package infra_tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api.themoviedb.org/3"

var (
	ErrNotConfigured   = errors.New("tmdb read token is not configured")
	ErrInvalidEndpoint = errors.New("endpoint must be a path starting with /")
	ErrTransport       = errors.New("tmdb request failed")
	ErrDecode          = errors.New("tmdb response is not valid json")
)

// UpstreamError carries a non-2xx status from TMDB.
type UpstreamError struct {
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("tmdb responded with status %d", e.Status)
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	timeout time.Duration
	limiter *rate.Limiter
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithRateLimit caps outgoing requests per second with a small burst.
func WithRateLimit(rps float64) Option {
	return func(cl *Client) {
		if rps > 0 {
			cl.limiter = rate.NewLimiter(rate.Every(time.Duration(float64(time.Second)/rps)), int(rps/2)+1)
		}
	}
}

// WithTimeout bounds a single upstream call. Zero means no bound. An
// injected client is copied, never modified.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.timeout = d }
}

func New(baseURL, token string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{},
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

func (c *Client) Configured() bool {
	return c.token != ""
}

// Get forwards endpoint (path plus query) to TMDB and returns the JSON body
// untouched.
func (c *Client) Get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if !strings.HasPrefix(endpoint, "/") || strings.HasPrefix(endpoint, "//") {
		return nil, ErrInvalidEndpoint
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTransport, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &UpstreamError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if !json.Valid(body) {
		return nil, ErrDecode
	}
	return body, nil
}

type Movie struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
	ReleaseDate  string `json:"release_date"`
	Overview     string `json:"overview"`
}

type Person struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	ProfilePath        string `json:"profile_path"`
	KnownForDepartment string `json:"known_for_department"`
}

type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

type CrewMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}

type Credits struct {
	ID   int          `json:"id"`
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

type searchResponse[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	raw, err := c.Get(ctx, endpoint)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

// SearchMovie returns TMDB's ranked matches. year <= 0 searches all years.
func (c *Client) SearchMovie(ctx context.Context, title string, year int) ([]Movie, error) {
	endpoint := "/search/movie?query=" + url.QueryEscape(title)
	if year > 0 {
		endpoint += "&year=" + strconv.Itoa(year)
	}
	var resp searchResponse[Movie]
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *Client) SearchPerson(ctx context.Context, name string) ([]Person, error) {
	var resp searchResponse[Person]
	if err := c.getJSON(ctx, "/search/person?query="+url.QueryEscape(name), &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *Client) MovieCredits(ctx context.Context, movieID int) (*Credits, error) {
	var credits Credits
	if err := c.getJSON(ctx, "/movie/"+strconv.Itoa(movieID)+"/credits", &credits); err != nil {
		return nil, err
	}
	return &credits, nil
}
