package model

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCategory      = errors.New("unknown category")
	ErrNomineeNotInCategory = errors.New("nominee does not belong to category")
)

// Ballot is the in-progress voting state of one session: at most one
// nominee per category plus the above-the-line wizard step.
type Ballot struct {
	Votes map[CategoryID]NomineeID `json:"votes"`
	Step  int                      `json:"step"`
}

func NewBallot() Ballot {
	return Ballot{Votes: make(map[CategoryID]NomineeID)}
}

// SetVote upserts the choice for a category. An empty nominee removes it.
func (b *Ballot) SetVote(c *Catalog, categoryID CategoryID, nomineeID NomineeID) error {
	cat, ok := c.Category(categoryID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, categoryID)
	}
	if b.Votes == nil {
		b.Votes = make(map[CategoryID]NomineeID)
	}
	if nomineeID == "" {
		delete(b.Votes, categoryID)
		return nil
	}
	if _, ok := cat.Nominee(nomineeID); !ok {
		return fmt.Errorf("%w: %s/%s", ErrNomineeNotInCategory, categoryID, nomineeID)
	}
	b.Votes[categoryID] = nomineeID
	return nil
}

func (b *Ballot) Vote(categoryID CategoryID) (NomineeID, bool) {
	v, ok := b.Votes[categoryID]
	return v, ok && v != ""
}

func (b *Ballot) Clear() {
	b.Votes = make(map[CategoryID]NomineeID)
	b.Step = 0
}

func (b *Ballot) AboveTheLineComplete(c *Catalog) bool {
	return b.Count(c, true) == len(c.AboveTheLine())
}

// Count returns how many categories of the given tier carry a vote.
func (b *Ballot) Count(c *Catalog, aboveTheLine bool) int {
	n := 0
	for _, cat := range c.Categories() {
		if cat.AboveTheLine != aboveTheLine {
			continue
		}
		if _, ok := b.Vote(cat.ID); ok {
			n++
		}
	}
	return n
}

type Prediction struct {
	Category string `json:"category"`
	Choice   string `json:"choice"`
}

// Predictions formats the ballot as "category name -> nominee - film" in
// catalog order. Categories without a vote are omitted.
func (b *Ballot) Predictions(c *Catalog) []Prediction {
	out := make([]Prediction, 0, len(b.Votes))
	for _, cat := range c.Categories() {
		id, ok := b.Vote(cat.ID)
		if !ok {
			continue
		}
		n, ok := cat.Nominee(id)
		if !ok {
			continue
		}
		r := c.Resolve(cat.ID, n)
		out = append(out, Prediction{
			Category: cat.Name,
			Choice:   r.Name + " - " + r.Film,
		})
	}
	return out
}
