package service_images

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	infra_tmdb "github.com/humanbelnik/oscarparty/internal/infra/tmdb"
	"github.com/humanbelnik/oscarparty/internal/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

const instrumentation = "github.com/humanbelnik/oscarparty/internal/service/images"

//go:generate mockery --name=MovieDB --output=./mocks/images/moviedb --filename=MovieDB.go
type MovieDB interface {
	SearchMovie(ctx context.Context, title string, year int) ([]infra_tmdb.Movie, error)
	SearchPerson(ctx context.Context, name string) ([]infra_tmdb.Person, error)
	MovieCredits(ctx context.Context, movieID int) (*infra_tmdb.Credits, error)
}

// personCategories pick a headshot instead of a poster.
var personCategories = map[model.CategoryID]struct{}{
	"directing":          {},
	"actorLeading":       {},
	"actressLeading":     {},
	"actorSupporting":    {},
	"actressSupporting":  {},
	"originalScreenplay": {},
	"adaptedScreenplay":  {},
	"cinematography":     {},
	"costumeDesign":      {},
	"filmEditing":        {},
	"originalScore":      {},
	"casting":            {},
}

func IsPersonCategory(id model.CategoryID) bool {
	_, ok := personCategories[id]
	return ok
}

// Service resolves nominee images through TMDB. Lookups never fail: any
// error or miss yields "". Misses are cached, errors are not.
type Service struct {
	db      MovieDB
	movies  *Cache[string, *infra_tmdb.Movie]
	people  *Cache[string, *infra_tmdb.Person]
	credits *Cache[int, *infra_tmdb.Credits]
	group   singleflight.Group

	tracer  trace.Tracer
	lookups metric.Int64Counter
	logger  *slog.Logger
}

type ServiceOption func(*Service)

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

func New(db MovieDB, ttl time.Duration, opts ...ServiceOption) *Service {
	s := &Service{
		db:      db,
		movies:  NewCache[string, *infra_tmdb.Movie](ttl),
		people:  NewCache[string, *infra_tmdb.Person](ttl),
		credits: NewCache[int, *infra_tmdb.Credits](ttl),
		tracer:  otel.Tracer(instrumentation),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	lookups, err := otel.Meter(instrumentation).Int64Counter(
		"image_lookups",
		metric.WithDescription("TMDB lookups by kind and cache outcome"),
	)
	if err != nil {
		s.logger.Warn("image lookup counter disabled", slog.String("error", err.Error()))
	}
	s.lookups = lookups
	return s
}

func (s *Service) count(ctx context.Context, kind string, hit bool) {
	if s.lookups == nil {
		return
	}
	s.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.Bool("cache_hit", hit),
	))
}

func movieKey(title string, year int) string {
	key := strings.ToLower(strings.TrimSpace(title)) + "-"
	if year > 0 {
		key += strconv.Itoa(year)
	}
	return key
}

// SearchMovie finds the best match, first restricted to year, then across
// all years.
func (s *Service) SearchMovie(ctx context.Context, title string, year int) *infra_tmdb.Movie {
	key := movieKey(title, year)
	if m, ok := s.movies.Get(key); ok {
		s.count(ctx, "movie", true)
		return m
	}
	s.count(ctx, "movie", false)

	v, _, _ := s.group.Do("movie:"+key, func() (any, error) {
		ctx, span := s.tracer.Start(ctx, "images.SearchMovie", trace.WithAttributes(
			attribute.String("title", title),
			attribute.Int("year", year),
		))
		defer span.End()

		results, err := s.db.SearchMovie(ctx, title, year)
		if err != nil {
			s.fail(ctx, span, "movie search failed", err)
			return (*infra_tmdb.Movie)(nil), nil
		}
		if len(results) == 0 && year > 0 {
			results, err = s.db.SearchMovie(ctx, title, 0)
			if err != nil {
				s.fail(ctx, span, "movie search without year failed", err)
				return (*infra_tmdb.Movie)(nil), nil
			}
		}

		var found *infra_tmdb.Movie
		if len(results) > 0 {
			found = &results[0]
		}
		span.SetAttributes(attribute.Bool("found", found != nil))
		s.movies.Set(key, found)
		return found, nil
	})
	return v.(*infra_tmdb.Movie)
}

func (s *Service) SearchPerson(ctx context.Context, name string) *infra_tmdb.Person {
	key := strings.ToLower(strings.TrimSpace(name))
	if p, ok := s.people.Get(key); ok {
		s.count(ctx, "person", true)
		return p
	}
	s.count(ctx, "person", false)

	v, _, _ := s.group.Do("person:"+key, func() (any, error) {
		ctx, span := s.tracer.Start(ctx, "images.SearchPerson", trace.WithAttributes(
			attribute.String("name", name),
		))
		defer span.End()

		results, err := s.db.SearchPerson(ctx, name)
		if err != nil {
			s.fail(ctx, span, "person search failed", err)
			return (*infra_tmdb.Person)(nil), nil
		}

		var found *infra_tmdb.Person
		if len(results) > 0 {
			found = &results[0]
		}
		span.SetAttributes(attribute.Bool("found", found != nil))
		s.people.Set(key, found)
		return found, nil
	})
	return v.(*infra_tmdb.Person)
}

func (s *Service) MovieCredits(ctx context.Context, movieID int) *infra_tmdb.Credits {
	if c, ok := s.credits.Get(movieID); ok {
		s.count(ctx, "credits", true)
		return c
	}
	s.count(ctx, "credits", false)

	v, _, _ := s.group.Do("credits:"+strconv.Itoa(movieID), func() (any, error) {
		ctx, span := s.tracer.Start(ctx, "images.MovieCredits", trace.WithAttributes(
			attribute.Int("movie_id", movieID),
		))
		defer span.End()

		credits, err := s.db.MovieCredits(ctx, movieID)
		if err != nil {
			s.fail(ctx, span, "credits lookup failed", err)
			return (*infra_tmdb.Credits)(nil), nil
		}
		s.credits.Set(movieID, credits)
		return credits, nil
	})
	return v.(*infra_tmdb.Credits)
}

func (s *Service) fail(ctx context.Context, span trace.Span, msg string, err error) {
	span.RecordError(err)
	s.logger.WarnContext(ctx, msg, slog.String("error", err.Error()))
}

func (s *Service) MoviePoster(ctx context.Context, title string, year int, size Size) string {
	m := s.SearchMovie(ctx, title, year)
	if m == nil {
		return ""
	}
	return ImageURL(m.PosterPath, Poster, size)
}

func (s *Service) Backdrop(ctx context.Context, title string, year int, size Size) string {
	m := s.SearchMovie(ctx, title, year)
	if m == nil {
		return ""
	}
	return ImageURL(m.BackdropPath, Backdrop, size)
}

func (s *Service) PersonImage(ctx context.Context, name string, size Size) string {
	p := s.SearchPerson(ctx, name)
	if p == nil {
		return ""
	}
	return ImageURL(p.ProfilePath, Profile, size)
}

// PersonImageFromMovie prefers the person's photo as credited on the film,
// cast before crew, and falls back to a plain person search.
func (s *Service) PersonImageFromMovie(ctx context.Context, person, title string, year int, size Size) string {
	m := s.SearchMovie(ctx, title, year)
	if m == nil {
		return s.PersonImage(ctx, person, size)
	}
	credits := s.MovieCredits(ctx, m.ID)
	if credits == nil {
		return s.PersonImage(ctx, person, size)
	}

	needle := strings.ToLower(person)
	for _, c := range credits.Cast {
		if strings.ToLower(c.Name) == needle {
			if c.ProfilePath != "" {
				return ImageURL(c.ProfilePath, Profile, size)
			}
			break
		}
	}
	for _, c := range credits.Crew {
		if strings.ToLower(c.Name) == needle {
			if c.ProfilePath != "" {
				return ImageURL(c.ProfilePath, Profile, size)
			}
			break
		}
	}
	return s.PersonImage(ctx, person, size)
}

// NomineeImage chooses headshot or poster by category.
func (s *Service) NomineeImage(ctx context.Context, nominee model.ResolvedNominee, categoryID model.CategoryID, size Size) string {
	if IsPersonCategory(categoryID) {
		return s.PersonImageFromMovie(ctx, nominee.Name, nominee.Film, nominee.Year, size)
	}
	return s.MoviePoster(ctx, nominee.Film, nominee.Year, size)
}
