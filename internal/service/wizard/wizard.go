package service_wizard

import (
	"errors"
	"fmt"

	"github.com/humanbelnik/oscarparty/internal/model"
)

var (
	ErrWrongPhase          = errors.New("operation not allowed in current phase")
	ErrNoSelection         = errors.New("current category has no selection")
	ErrAtFirstStep         = errors.New("already at the first category")
	ErrNoBelowTheLineVotes = errors.New("no below-the-line selection")
	ErrCategoryNotAllowed  = errors.New("category not editable in current phase")
)

// Machine sequences a session through the voting phases. Every operation
// checks its guards before touching the session, so a rejected call leaves
// it unchanged.
type Machine struct {
	catalog *model.Catalog
	above   []model.Category
}

func New(catalog *model.Catalog) *Machine {
	return &Machine{
		catalog: catalog,
		above:   catalog.AboveTheLine(),
	}
}

func (m *Machine) Catalog() *model.Catalog {
	return m.catalog
}

func (m *Machine) LastStep() int {
	return len(m.above) - 1
}

func phaseError(s *model.Session, op string) error {
	return fmt.Errorf("%w: %s in %s", ErrWrongPhase, op, s.Phase)
}

// CurrentCategory is the above-the-line category under the step cursor.
func (m *Machine) CurrentCategory(s *model.Session) (model.Category, bool) {
	if s.Phase != model.PhaseAboveTheLine {
		return model.Category{}, false
	}
	if s.Ballot.Step < 0 || s.Ballot.Step >= len(m.above) {
		return model.Category{}, false
	}
	return m.above[s.Ballot.Step], true
}

func (m *Machine) Start(s *model.Session) error {
	if s.Phase != model.PhaseIntro {
		return phaseError(s, "start")
	}
	s.Ballot.Step = 0
	s.Phase = model.PhaseAboveTheLine
	return nil
}

// Select records a pick. Above the line only the current category may be
// set; below the line any below-the-line category may be set or cleared.
func (m *Machine) Select(s *model.Session, categoryID model.CategoryID, nomineeID model.NomineeID) error {
	switch s.Phase {
	case model.PhaseAboveTheLine:
		cur, _ := m.CurrentCategory(s)
		if cur.ID != categoryID {
			return fmt.Errorf("%w: %s", ErrCategoryNotAllowed, categoryID)
		}
	case model.PhaseBelowTheLine:
		cat, ok := m.catalog.Category(categoryID)
		if ok && cat.AboveTheLine {
			return fmt.Errorf("%w: %s", ErrCategoryNotAllowed, categoryID)
		}
	default:
		return phaseError(s, "select")
	}
	return s.Ballot.SetVote(m.catalog, categoryID, nomineeID)
}

func (m *Machine) Next(s *model.Session) error {
	cur, ok := m.CurrentCategory(s)
	if !ok {
		return phaseError(s, "next")
	}
	if _, voted := s.Ballot.Vote(cur.ID); !voted {
		return fmt.Errorf("%w: %s", ErrNoSelection, cur.ID)
	}
	if s.Ballot.Step < m.LastStep() {
		s.Ballot.Step++
		return nil
	}
	s.Phase = model.PhaseBelowTheLine
	return nil
}

func (m *Machine) Previous(s *model.Session) error {
	if s.Phase != model.PhaseAboveTheLine {
		return phaseError(s, "previous")
	}
	if s.Ballot.Step <= 0 {
		return ErrAtFirstStep
	}
	s.Ballot.Step--
	return nil
}

func (m *Machine) Complete(s *model.Session) error {
	if s.Phase != model.PhaseBelowTheLine {
		return phaseError(s, "complete")
	}
	if s.Ballot.Count(m.catalog, false) == 0 {
		return ErrNoBelowTheLineVotes
	}
	s.Phase = model.PhaseSubmission
	return nil
}

func (m *Machine) Skip(s *model.Session) error {
	if s.Phase != model.PhaseBelowTheLine {
		return phaseError(s, "skip")
	}
	s.Phase = model.PhaseSubmission
	return nil
}

// CanSubmit reports whether a relay call may be made for this session.
func (m *Machine) CanSubmit(s *model.Session) error {
	if s.Phase != model.PhaseSubmission {
		return phaseError(s, "submit")
	}
	return nil
}

func (m *Machine) Confirm(s *model.Session) error {
	if err := m.CanSubmit(s); err != nil {
		return err
	}
	s.Phase = model.PhaseConfirmation
	return nil
}

func (m *Machine) VoteAgain(s *model.Session) error {
	if s.Phase != model.PhaseConfirmation {
		return phaseError(s, "restart")
	}
	s.Ballot.Clear()
	s.Phase = model.PhaseIntro
	return nil
}

// Clear wipes the ballot without moving the phase.
func (m *Machine) Clear(s *model.Session) {
	s.Ballot.Clear()
}
