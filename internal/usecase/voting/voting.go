package usecase_voting

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/humanbelnik/oscarparty/internal/model"
	service_wizard "github.com/humanbelnik/oscarparty/internal/service/wizard"
)

var (
	ErrNoSession          = errors.New("no active session")
	ErrUnknownOp          = errors.New("unknown voting operation")
	ErrSubmissionInFlight = errors.New("submission already in progress")
	ErrRelayNotConfigured = errors.New("submission relay is not configured")
	ErrRelayRejected      = errors.New("submission relay rejected the ballot")
	ErrInternal           = errors.New("internal error")
)

//go:generate mockery --name=SessionStore --output=./mocks/voting/store --filename=SessionStore.go
type SessionStore interface {
	Load(ctx context.Context, token model.SessionToken) (*model.Session, error)
	// Update writes only over a live session and reports false otherwise.
	Update(ctx context.Context, s model.Session) (bool, error)
}

//go:generate mockery --name=Relay --output=./mocks/voting/relay --filename=Relay.go
type Relay interface {
	SubmitPredictions(ctx context.Context, s model.PredictionSubmission) (model.RelayResult, error)
}

type Op string

const (
	OpStart    Op = "start"
	OpNext     Op = "next"
	OpPrevious Op = "previous"
	OpComplete Op = "complete"
	OpSkip     Op = "skip"
	OpRestart  Op = "restart"
)

type Progress struct {
	Voted int `json:"voted"`
	Total int `json:"total"`
}

// View is the wizard as the client renders it.
type View struct {
	Phase                model.Phase                          `json:"phase"`
	Step                 int                                  `json:"step"`
	TotalSteps           int                                  `json:"total_steps"`
	Category             *model.Category                      `json:"category"`
	Votes                map[model.CategoryID]model.NomineeID `json:"votes"`
	AboveTheLine         Progress                             `json:"above_the_line"`
	BelowTheLine         Progress                             `json:"below_the_line"`
	AboveTheLineComplete bool                                 `json:"above_the_line_complete"`
	Predictions          []model.Prediction                   `json:"predictions"`
}

const lockStripes = 64

type Usecase struct {
	machine *service_wizard.Machine
	store   SessionStore
	relay   Relay

	locks [lockStripes]sync.Mutex

	inflightMu sync.Mutex
	inflight   map[model.SessionToken]struct{}

	logger *slog.Logger
}

func New(machine *service_wizard.Machine, store SessionStore, relay Relay) *Usecase {
	return &Usecase{
		machine:  machine,
		store:    store,
		relay:    relay,
		inflight: make(map[model.SessionToken]struct{}),
		logger:   slog.Default(),
	}
}

func (u *Usecase) lock(token model.SessionToken) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(token))
	m := &u.locks[h.Sum32()%lockStripes]
	m.Lock()
	return m.Unlock
}

func (u *Usecase) load(ctx context.Context, token model.SessionToken) (*model.Session, error) {
	if token == model.EmptySessionToken {
		return nil, ErrNoSession
	}
	s, err := u.store.Load(ctx, token)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	if s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}

func (u *Usecase) project(s *model.Session) View {
	c := u.machine.Catalog()
	v := View{
		Phase:                s.Phase,
		Step:                 s.Ballot.Step,
		TotalSteps:           u.machine.LastStep() + 1,
		Votes:                make(map[model.CategoryID]model.NomineeID, len(s.Ballot.Votes)),
		AboveTheLine:         Progress{Voted: s.Ballot.Count(c, true), Total: len(c.AboveTheLine())},
		BelowTheLine:         Progress{Voted: s.Ballot.Count(c, false), Total: len(c.BelowTheLine())},
		AboveTheLineComplete: s.Ballot.AboveTheLineComplete(c),
		Predictions:          s.Ballot.Predictions(c),
	}
	for k, nom := range s.Ballot.Votes {
		v.Votes[k] = nom
	}
	if cat, ok := u.machine.CurrentCategory(s); ok {
		v.Category = &cat
	}
	return v
}

func (u *Usecase) View(ctx context.Context, token model.SessionToken) (View, error) {
	s, err := u.load(ctx, token)
	if err != nil {
		return View{}, err
	}
	return u.project(s), nil
}

// mutate runs fn against the stored session and persists it only when fn
// succeeds. On a rejected transition the returned view is the untouched
// session alongside the error.
func (u *Usecase) mutate(ctx context.Context, token model.SessionToken, fn func(*model.Session) error) (View, error) {
	unlock := u.lock(token)
	defer unlock()

	s, err := u.load(ctx, token)
	if err != nil {
		return View{}, err
	}

	next := *s
	next.Ballot = cloneBallot(s.Ballot)
	if err := fn(&next); err != nil {
		return u.project(s), err
	}
	updated, err := u.store.Update(ctx, next)
	if err != nil {
		return u.project(s), errors.Join(ErrInternal, err)
	}
	if !updated {
		return View{}, ErrNoSession
	}
	return u.project(&next), nil
}

func cloneBallot(b model.Ballot) model.Ballot {
	out := model.Ballot{Step: b.Step, Votes: make(map[model.CategoryID]model.NomineeID, len(b.Votes))}
	for k, v := range b.Votes {
		out.Votes[k] = v
	}
	return out
}

func (u *Usecase) Apply(ctx context.Context, token model.SessionToken, op Op) (View, error) {
	var fn func(*model.Session) error
	switch op {
	case OpStart:
		fn = u.machine.Start
	case OpNext:
		fn = u.machine.Next
	case OpPrevious:
		fn = u.machine.Previous
	case OpComplete:
		fn = u.machine.Complete
	case OpSkip:
		fn = u.machine.Skip
	case OpRestart:
		fn = u.machine.VoteAgain
	default:
		return View{}, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}
	return u.mutate(ctx, token, fn)
}

func (u *Usecase) Select(ctx context.Context, token model.SessionToken, categoryID model.CategoryID, nomineeID model.NomineeID) (View, error) {
	return u.mutate(ctx, token, func(s *model.Session) error {
		return u.machine.Select(s, categoryID, nomineeID)
	})
}

func (u *Usecase) Clear(ctx context.Context, token model.SessionToken) (View, error) {
	return u.mutate(ctx, token, func(s *model.Session) error {
		u.machine.Clear(s)
		return nil
	})
}

// Submit relays the ballot and moves the session to confirmation on
// success. The session lock is not held during the relay call; a second
// submit for the same session meanwhile gets ErrSubmissionInFlight.
func (u *Usecase) Submit(ctx context.Context, token model.SessionToken, name, email string) (View, model.RelayResult, error) {
	submission, view, err := u.prepare(ctx, token, name, email)
	if err != nil {
		return view, model.RelayResult{}, err
	}
	defer u.release(token)

	result, err := u.relay.SubmitPredictions(ctx, submission)
	if err != nil {
		u.logger.ErrorContext(ctx, "prediction relay unavailable", slog.String("error", err.Error()))
		return view, model.RelayResult{}, fmt.Errorf("%w: %w", ErrRelayNotConfigured, err)
	}
	if !result.Success {
		u.logger.WarnContext(ctx, "prediction relay rejected submission", slog.String("message", result.Message))
		return view, result, ErrRelayRejected
	}

	view, err = u.mutate(ctx, token, u.machine.Confirm)
	if err != nil {
		return view, result, err
	}
	u.logger.InfoContext(ctx, "predictions submitted", slog.Int("picks", len(submission.Predictions)))
	return view, result, nil
}

func (u *Usecase) prepare(ctx context.Context, token model.SessionToken, name, email string) (model.PredictionSubmission, View, error) {
	unlock := u.lock(token)
	defer unlock()

	s, err := u.load(ctx, token)
	if err != nil {
		return model.PredictionSubmission{}, View{}, err
	}
	view := u.project(s)
	if err := u.machine.CanSubmit(s); err != nil {
		return model.PredictionSubmission{}, view, err
	}
	if err := model.ValidateContact(name, email); err != nil {
		return model.PredictionSubmission{}, view, err
	}

	u.inflightMu.Lock()
	defer u.inflightMu.Unlock()
	if _, busy := u.inflight[token]; busy {
		return model.PredictionSubmission{}, view, ErrSubmissionInFlight
	}
	u.inflight[token] = struct{}{}

	return model.PredictionSubmission{
		Name:        name,
		Email:       email,
		Predictions: view.Predictions,
	}, view, nil
}

func (u *Usecase) release(token model.SessionToken) {
	u.inflightMu.Lock()
	delete(u.inflight, token)
	u.inflightMu.Unlock()
}
