package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"ballotbox/contexts/election-operations/vote-engine/domain/entities"
	domainerrors "ballotbox/contexts/election-operations/vote-engine/domain/errors"
)

// Store is an in-memory ballot store. The single mutex makes CastBallot an
// atomic unit, which is what the port contract asks for.
type Store struct {
	mu sync.RWMutex

	elections  map[string]entities.Election
	positions  map[string]entities.Position
	candidates map[string]entities.Candidate
	voters     map[string]entities.Voter
	byToken    map[string]string

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		elections:  make(map[string]entities.Election),
		positions:  make(map[string]entities.Position),
		candidates: make(map[string]entities.Candidate),
		voters:     make(map[string]entities.Voter),
		byToken:    make(map[string]string),
	}
}

func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) SetElection(election entities.Election) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[election.ElectionID] = election
}

func (s *Store) SetPosition(position entities.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[position.PositionID] = position
}

func (s *Store) SetCandidate(candidate entities.Candidate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[candidate.CandidateID] = candidate
}

func (s *Store) SetVoter(voter entities.Voter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[voterKey(voter.ElectionID, voter.StudentID)] = voter
	s.byToken[voter.Token] = voterKey(voter.ElectionID, voter.StudentID)
}

func (s *Store) GetVoterByToken(_ context.Context, token string) (entities.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.byToken[strings.TrimSpace(token)]
	if !ok {
		return entities.Voter{}, domainerrors.ErrVoterNotFound
	}
	voter, ok := s.voters[key]
	if !ok {
		return entities.Voter{}, domainerrors.ErrVoterNotFound
	}
	return voter, nil
}

func (s *Store) GetElection(_ context.Context, electionID string) (entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	election, ok := s.elections[strings.TrimSpace(electionID)]
	if !ok {
		return entities.Election{}, domainerrors.ErrElectionNotFound
	}
	return election, nil
}

func (s *Store) ListPositions(_ context.Context, electionID string) ([]entities.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Position, 0)
	for _, position := range s.positions {
		if position.ElectionID == electionID {
			items = append(items, position)
		}
	}
	return items, nil
}

func (s *Store) ListCandidates(_ context.Context, electionID string) ([]entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Candidate, 0)
	for _, candidate := range s.candidates {
		if candidate.ElectionID == electionID {
			items = append(items, candidate)
		}
	}
	return items, nil
}

func (s *Store) CastBallot(_ context.Context, electionID string, studentID string, candidateIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := voterKey(electionID, studentID)
	voter, ok := s.voters[key]
	if !ok {
		return domainerrors.ErrVoterNotFound
	}
	if voter.Voted {
		return domainerrors.ErrAlreadyVoted
	}
	for _, candidateID := range candidateIDs {
		candidate, ok := s.candidates[candidateID]
		if !ok || candidate.ElectionID != electionID {
			return domainerrors.ErrUnknownCandidate
		}
	}

	for _, candidateID := range candidateIDs {
		candidate := s.candidates[candidateID]
		candidate.NumVotes++
		s.candidates[candidateID] = candidate
	}
	voter.Voted = true
	voter.Votes = append([]string(nil), candidateIDs...)
	s.voters[key] = voter
	return nil
}

func (s *Store) Now() time.Time {
	if s.now != nil {
		return s.now().UTC()
	}
	return time.Now().UTC()
}

func voterKey(electionID string, studentID string) string {
	return strings.TrimSpace(electionID) + "/" + strings.TrimSpace(studentID)
}
