package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"ballotbox/contexts/election-operations/election-admin/domain/entities"
	domainerrors "ballotbox/contexts/election-operations/election-admin/domain/errors"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	elections  map[string]entities.Election
	positions  map[string]entities.Position
	candidates map[string]entities.Candidate

	now func() time.Time
}

func NewStore(seed []entities.Election) *Store {
	elections := make(map[string]entities.Election, len(seed))
	for _, election := range seed {
		elections[election.ElectionID] = election
	}
	return &Store{
		elections:  elections,
		positions:  make(map[string]entities.Position),
		candidates: make(map[string]entities.Candidate),
	}
}

// SetNow overrides the store clock for deterministic tests.
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) SaveElection(_ context.Context, election entities.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[strings.TrimSpace(election.ElectionID)] = election
	return nil
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

func (s *Store) ListElections(_ context.Context) ([]entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Election, 0, len(s.elections))
	for _, election := range s.elections {
		items = append(items, election)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) ListUnfinishedElections(_ context.Context) ([]entities.Election, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Election, 0)
	for _, election := range s.elections {
		if !election.Finished {
			items = append(items, election)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) SavePosition(_ context.Context, position entities.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[strings.TrimSpace(position.PositionID)] = position
	return nil
}

func (s *Store) GetPosition(_ context.Context, positionID string) (entities.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	position, ok := s.positions[strings.TrimSpace(positionID)]
	if !ok {
		return entities.Position{}, domainerrors.ErrPositionNotFound
	}
	return position, nil
}

func (s *Store) ListPositionsByElection(_ context.Context, electionID string) ([]entities.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Position, 0)
	for _, position := range s.positions {
		if position.ElectionID == strings.TrimSpace(electionID) {
			items = append(items, position)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) SaveCandidate(_ context.Context, candidate entities.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates[strings.TrimSpace(candidate.CandidateID)] = candidate
	return nil
}

func (s *Store) ListCandidatesByPosition(_ context.Context, positionID string) ([]entities.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Candidate, 0)
	for _, candidate := range s.candidates {
		if candidate.PositionID == strings.TrimSpace(positionID) {
			items = append(items, candidate)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	now := s.now
	s.mu.RUnlock()
	if now != nil {
		return now().UTC()
	}
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
