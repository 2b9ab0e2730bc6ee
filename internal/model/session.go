package model

import "time"

type AccessLevel string

const (
	AccessNone   AccessLevel = "none"
	AccessGuest  AccessLevel = "guest"
	AccessPublic AccessLevel = "public"
)

func (l AccessLevel) Authenticated() bool {
	return l == AccessGuest || l == AccessPublic
}

type Phase string

const (
	PhaseIntro        Phase = "intro"
	PhaseAboveTheLine Phase = "aboveTheLine"
	PhaseBelowTheLine Phase = "belowTheLine"
	PhaseSubmission   Phase = "submission"
	PhaseConfirmation Phase = "confirmation"
)

type SessionToken = string

const EmptySessionToken SessionToken = ""

// Session is created on login and torn down on logout or expiry.
type Session struct {
	Token       SessionToken `json:"token"`
	AccessLevel AccessLevel  `json:"access_level"`
	Phase       Phase        `json:"phase"`
	Ballot      Ballot       `json:"ballot"`
	CreatedAt   time.Time    `json:"created_at"`
}

func NewSession(token SessionToken, level AccessLevel, now time.Time) Session {
	return Session{
		Token:       token,
		AccessLevel: level,
		Phase:       PhaseIntro,
		Ballot:      NewBallot(),
		CreatedAt:   now,
	}
}
