package usecase_auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/oscarparty/internal/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrInternal  = errors.New("internal error")
	ErrNoSession = errors.New("no active session")
)

//go:generate mockery --name=SessionStore --output=./mocks/auth/store --filename=SessionStore.go
type SessionStore interface {
	Save(ctx context.Context, s model.Session) error
	Load(ctx context.Context, token model.SessionToken) (*model.Session, error)
	Delete(ctx context.Context, token model.SessionToken) error
}

//go:generate mockery --name=Gate --output=./mocks/auth/gate --filename=Gate.go
type Gate interface {
	Check(password string) (model.AccessLevel, error)
}

type Usecase struct {
	gate   Gate
	store  SessionStore
	now    func() time.Time
	logins metric.Int64Counter
	logger *slog.Logger
}

func New(gate Gate, store SessionStore) *Usecase {
	u := &Usecase{
		gate:   gate,
		store:  store,
		now:    time.Now,
		logger: slog.Default(),
	}
	logins, err := otel.Meter("github.com/humanbelnik/oscarparty/internal/usecase/auth").
		Int64Counter("logins", metric.WithDescription("Login attempts by outcome"))
	if err != nil {
		u.logger.Warn("login counter disabled", slog.String("error", err.Error()))
	}
	u.logins = logins
	return u
}

func (u *Usecase) record(ctx context.Context, outcome string) {
	if u.logins != nil {
		u.logins.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

// Login exchanges the shared password for a fresh session. Gate errors are
// returned unwrapped so callers can match them.
func (u *Usecase) Login(ctx context.Context, password string) (model.Session, error) {
	level, err := u.gate.Check(password)
	if err != nil {
		u.record(ctx, "rejected")
		return model.Session{}, err
	}

	s := model.NewSession(uuid.New().String(), level, u.now().UTC())
	if err := u.store.Save(ctx, s); err != nil {
		u.record(ctx, "error")
		return model.Session{}, errors.Join(ErrInternal, err)
	}

	u.record(ctx, string(level))
	return s, nil
}

func (u *Usecase) Logout(ctx context.Context, token model.SessionToken) error {
	if token == model.EmptySessionToken {
		return ErrNoSession
	}
	if err := u.store.Delete(ctx, token); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// Session resolves a token. Unknown or expired tokens yield ErrNoSession.
func (u *Usecase) Session(ctx context.Context, token model.SessionToken) (model.Session, error) {
	if token == model.EmptySessionToken {
		return model.Session{}, ErrNoSession
	}
	s, err := u.store.Load(ctx, token)
	if err != nil {
		return model.Session{}, errors.Join(ErrInternal, err)
	}
	if s == nil {
		return model.Session{}, ErrNoSession
	}
	return *s, nil
}
