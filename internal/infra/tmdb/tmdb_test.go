package infra_tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TMDBClientSuite struct {
	suite.Suite
}

func TestTMDBClientSuite(t *testing.T) {
	suite.RunSuite(t, new(TMDBClientSuite))
}

func (s *TMDBClientSuite) TestGet(t provider.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Should forward path and bearer token", func(t provider.T) {
		var gotAuth, gotURI string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotURI = r.URL.RequestURI()
			_, _ = w.Write([]byte(`{"results":[]}`))
		}))
		defer srv.Close()

		raw, err := New(srv.URL+"/3", "tok").Get(ctx, "/search/movie?query=F1&year=2025")

		require.NoError(t, err)
		assert.JSONEq(t, `{"results":[]}`, string(raw))
		assert.Equal(t, "Bearer tok", gotAuth)
		assert.Equal(t, "/3/search/movie?query=F1&year=2025", gotURI)
	})

	t.Run("Should surface upstream status", func(t provider.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status_message":"bad key"}`))
		}))
		defer srv.Close()

		_, err := New(srv.URL, "tok").Get(ctx, "/movie/1")

		var ue *UpstreamError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, http.StatusUnauthorized, ue.Status)
	})

	t.Run("Should not call upstream without token", func(t provider.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer srv.Close()

		_, err := New(srv.URL, "").Get(ctx, "/movie/1")

		assert.ErrorIs(t, err, ErrNotConfigured)
		assert.Zero(t, atomic.LoadInt32(&calls))
	})

	t.Run("Should reject absolute endpoints", func(t provider.T) {
		c := New("http://127.0.0.1:1", "tok")
		for _, ep := range []string{"https://evil.example/x", "//evil.example/x", "movie/1", ""} {
			_, err := c.Get(ctx, ep)
			assert.ErrorIs(t, err, ErrInvalidEndpoint, ep)
		}
	})

	t.Run("Should reject non json body", func(t provider.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}))
		defer srv.Close()

		_, err := New(srv.URL, "tok").Get(ctx, "/movie/1")
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("Should wrap transport failure", func(t provider.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := New(url, "tok").Get(ctx, "/movie/1")
		assert.ErrorIs(t, err, ErrTransport)
	})
}

func (s *TMDBClientSuite) TestTypedHelpers(t provider.T) {
	t.Parallel()
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/movie":
			assert.Equal(t, "Marty Supreme", r.URL.Query().Get("query"))
			if r.URL.Query().Get("year") == "2025" {
				_, _ = w.Write([]byte(`{"results":[{"id":7,"title":"Marty Supreme","poster_path":"/p.jpg"}]}`))
				return
			}
			_, _ = w.Write([]byte(`{"results":[]}`))
		case "/search/person":
			_, _ = w.Write([]byte(`{"results":[{"id":9,"name":"Ethan Hawke","profile_path":"/e.jpg"}]}`))
		case "/movie/7/credits":
			_, _ = w.Write([]byte(`{"id":7,"cast":[{"name":"Timothée Chalamet","profile_path":"/t.jpg"}],"crew":[{"name":"Josh Safdie","job":"Director","profile_path":"/j.jpg"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	c := New(srv.URL, "tok", WithRateLimit(100))

	t.Run("Should search movies with and without year", func(t provider.T) {
		movies, err := c.SearchMovie(ctx, "Marty Supreme", 2025)
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, 7, movies[0].ID)
		assert.Equal(t, "/p.jpg", movies[0].PosterPath)

		movies, err = c.SearchMovie(ctx, "Marty Supreme", 0)
		require.NoError(t, err)
		assert.Empty(t, movies)
	})

	t.Run("Should search people", func(t provider.T) {
		people, err := c.SearchPerson(ctx, "Ethan Hawke")
		require.NoError(t, err)
		require.Len(t, people, 1)
		assert.Equal(t, "/e.jpg", people[0].ProfilePath)
	})

	t.Run("Should fetch credits", func(t provider.T) {
		credits, err := c.MovieCredits(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "Josh Safdie", credits.Crew[0].Name)
		assert.Equal(t, "/t.jpg", credits.Cast[0].ProfilePath)
	})

	t.Run("Should surface missing movie", func(t provider.T) {
		_, err := c.MovieCredits(ctx, 8)
		var ue *UpstreamError
		assert.ErrorAs(t, err, &ue)
	})
}

func (s *TMDBClientSuite) TestTimeoutOption(t provider.T) {
	t.Parallel()

	t.Run("Should not modify injected client", func(t provider.T) {
		shared := &http.Client{}

		c := New("", "tok", WithHTTPClient(shared), WithTimeout(time.Second))

		assert.Zero(t, shared.Timeout)
		assert.NotSame(t, shared, c.http)
		assert.Equal(t, time.Second, c.http.Timeout)
	})

	t.Run("Should leave default client untouched", func(t provider.T) {
		before := http.DefaultClient.Timeout

		c := New("", "tok", WithHTTPClient(http.DefaultClient), WithTimeout(time.Second))

		assert.Equal(t, before, http.DefaultClient.Timeout)
		assert.Equal(t, time.Second, c.http.Timeout)
	})

	t.Run("Should keep injected client without timeout", func(t provider.T) {
		shared := &http.Client{}

		c := New("", "tok", WithHTTPClient(shared))

		assert.Same(t, shared, c.http)
	})
}
