// Package sim holds the in-memory state of a simulation session: the
// ordered proposals the operator has placed, and the per-workflow latches
// that keep slow backend operations from being triggered twice.
package sim

import (
	"errors"
	"math"
)

// ErrEmptyStore is returned when an operation needs at least one proposal
var ErrEmptyStore = errors.New("no proposed cameras in the store")

// Proposal is one hypothetical camera placement. Coverage is nil until the
// backend has evaluated it; it is reset to nil while a re-evaluation is in
// flight so the UI can show a pending state.
type Proposal struct {
	Lat      float64
	Lng      float64
	Coverage *float64
}

// Evaluated reports whether the proposal holds a finite coverage value
func (p Proposal) Evaluated() bool {
	return p.Coverage != nil && !math.IsNaN(*p.Coverage) && !math.IsInf(*p.Coverage, 0)
}

// GoodProposal is the persistence payload shape for a qualifying proposal
type GoodProposal struct {
	Lat      float64
	Lng      float64
	Coverage float64
}

// Store owns the ordered collection of proposed cameras. Identity is the
// positional index, valid only until a prior element is removed; session
// access is single-owner so held indices never cross a mutation (see the
// engine's concurrency contract). Mutations invoke the redraw hook so the
// overlay always reflects current contents.
type Store struct {
	proposals []Proposal
	onChange  func()
}

// NewStore creates an empty store. onChange fires after every mutation;
// nil is allowed.
func NewStore(onChange func()) *Store {
	return &Store{onChange: onChange}
}

func (s *Store) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Add appends a proposal with no coverage yet
func (s *Store) Add(lat, lng float64) {
	s.proposals = append(s.proposals, Proposal{Lat: lat, Lng: lng})
	s.changed()
}

// RemoveAt deletes the proposal at index. Indices after it shift down.
func (s *Store) RemoveAt(index int) error {
	if index < 0 || index >= len(s.proposals) {
		return errors.New("proposal index out of range")
	}
	s.proposals = append(s.proposals[:index], s.proposals[index+1:]...)
	s.changed()
	return nil
}

// Clear removes every proposal
func (s *Store) Clear() {
	s.proposals = nil
	s.changed()
}

// Len returns the number of proposals
func (s *Store) Len() int {
	return len(s.proposals)
}

// Proposals returns a copy of the current proposals in insertion order
func (s *Store) Proposals() []Proposal {
	out := make([]Proposal, len(s.proposals))
	copy(out, s.proposals)
	return out
}

// EvaluateLast returns the coordinates of the most recently added proposal
// and resets its coverage to pending. The evaluate workflow always targets
// the last-added proposal, not an operator-chosen one.
func (s *Store) EvaluateLast() (lat, lng float64, err error) {
	if len(s.proposals) == 0 {
		return 0, 0, ErrEmptyStore
	}
	last := &s.proposals[len(s.proposals)-1]
	last.Coverage = nil
	s.changed()
	return last.Lat, last.Lng, nil
}

// ApplyCoverageToLast stores value on the last proposal if it is finite;
// anything else leaves the proposal unevaluated. A non-finite percentage
// from the backend must never be stored as a number.
func (s *Store) ApplyCoverageToLast(value float64) {
	if len(s.proposals) == 0 {
		return
	}
	last := &s.proposals[len(s.proposals)-1]
	if math.IsNaN(value) || math.IsInf(value, 0) {
		last.Coverage = nil
	} else {
		v := value
		last.Coverage = &v
	}
	s.changed()
}

// GoodProposals filters to proposals with finite coverage at or above
// threshold, in insertion order
func (s *Store) GoodProposals(threshold float64) []GoodProposal {
	var good []GoodProposal
	for _, p := range s.proposals {
		if p.Evaluated() && *p.Coverage >= threshold {
			good = append(good, GoodProposal{
				Lat:      p.Lat,
				Lng:      p.Lng,
				Coverage: *p.Coverage,
			})
		}
	}
	return good
}
