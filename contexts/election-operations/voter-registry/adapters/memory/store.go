package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"ballotbox/contexts/election-operations/voter-registry/domain/entities"
	domainerrors "ballotbox/contexts/election-operations/voter-registry/domain/errors"
	"ballotbox/contexts/election-operations/voter-registry/ports"
	"ballotbox/internal/shared/outbox"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	voters    map[string]entities.Voter
	byToken   map[string]string
	elections map[string]ports.ElectionProjection
	mail      map[string]outbox.Message

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		voters:    make(map[string]entities.Voter),
		byToken:   make(map[string]string),
		elections: make(map[string]ports.ElectionProjection),
		mail:      make(map[string]outbox.Message),
	}
}

// SetNow overrides the store clock for deterministic tests.
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) SetElection(election ports.ElectionProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[strings.TrimSpace(election.ElectionID)] = election
}

// SetVoter seeds or replaces a voter record, keeping the token index in sync.
func (s *Store) SetVoter(voter entities.Voter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[voterKey(voter.ElectionID, voter.StudentID)] = voter
	s.byToken[voter.Token] = voterKey(voter.ElectionID, voter.StudentID)
}

func (s *Store) CreateVoterIfAbsent(_ context.Context, voter entities.Voter) (entities.Voter, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := voterKey(voter.ElectionID, voter.StudentID)
	if existing, ok := s.voters[key]; ok {
		return existing, false, nil
	}
	s.voters[key] = voter
	s.byToken[voter.Token] = key
	return voter, true, nil
}

func (s *Store) GetVoter(_ context.Context, electionID string, studentID string) (entities.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voter, ok := s.voters[voterKey(electionID, studentID)]
	if !ok {
		return entities.Voter{}, domainerrors.ErrVoterNotFound
	}
	return voter, nil
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

func (s *Store) RecordEmailSent(_ context.Context, electionID string, studentID string, sentAt time.Time) (entities.Voter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := voterKey(electionID, studentID)
	voter, ok := s.voters[key]
	if !ok {
		return entities.Voter{}, domainerrors.ErrVoterNotFound
	}
	voter.EmailCount++
	notifiedAt := sentAt.UTC()
	voter.LastNotifiedAt = &notifiedAt
	s.voters[key] = voter
	return voter, nil
}

func (s *Store) GetElection(_ context.Context, electionID string) (ports.ElectionProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	election, ok := s.elections[strings.TrimSpace(electionID)]
	if !ok {
		return ports.ElectionProjection{}, domainerrors.ErrElectionNotFound
	}
	return election, nil
}

func (s *Store) AppendMail(_ context.Context, email ports.OutboundEmail) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(email.MailID) == "" || strings.TrimSpace(email.To) == "" {
		return domainerrors.ErrInvalidMail
	}
	payload, err := json.Marshal(email)
	if err != nil {
		return err
	}
	s.mail[email.MailID] = outbox.Message{
		ID:        email.MailID,
		EventType: "voter.email.queued",
		Payload:   payload,
		Status:    "pending",
		CreatedAt: s.Now(),
	}
	return nil
}

func (s *Store) ListPendingMail(_ context.Context, limit int) ([]outbox.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]outbox.Message, 0, len(s.mail))
	for _, row := range s.mail {
		if row.Status != "pending" {
			continue
		}
		items = append(items, row)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkMailSent(_ context.Context, mailID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.mail[strings.TrimSpace(mailID)]
	if !ok {
		return domainerrors.ErrMailNotFound
	}
	row.Status = "sent"
	s.mail[strings.TrimSpace(mailID)] = row
	return nil
}

func (s *Store) Now() time.Time {
	if s.now != nil {
		return s.now().UTC()
	}
	return time.Now().UTC()
}

func (s *Store) NewToken(_ context.Context) (string, error) {
	return strings.ReplaceAll(uuid.NewString(), "-", ""), nil
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func voterKey(electionID string, studentID string) string {
	return strings.TrimSpace(electionID) + "/" + strings.TrimSpace(studentID)
}
