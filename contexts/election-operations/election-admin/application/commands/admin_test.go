package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"ballotbox/contexts/election-operations/election-admin/adapters/memory"
	domainerrors "ballotbox/contexts/election-operations/election-admin/domain/errors"
)

func newAdminFixture(t *testing.T) (AdminUseCase, *memory.Store, time.Time) {
	t.Helper()
	store := memory.NewStore(nil)
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	store.SetNow(func() time.Time { return now })

	uc := AdminUseCase{
		Elections:   store,
		Clock:       store,
		IDGen:       store,
		AdminEmails: []string{"chair@example.edu"},
	}
	return uc, store, now
}

func TestAdminActionsRequireAllowlistedEmail(t *testing.T) {
	uc, _, now := newAdminFixture(t)

	cases := []struct {
		name  string
		email string
		allow bool
	}{
		{name: "allowlisted", email: "chair@example.edu", allow: true},
		{name: "case insensitive", email: "Chair@Example.EDU", allow: true},
		{name: "unknown", email: "intruder@example.edu", allow: false},
		{name: "blank", email: "", allow: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateElection(context.Background(), CreateElectionCommand{
				ActorEmail: tc.email,
				Title:      "Student Council 2026",
				StartDate:  now,
				EndDate:    now.Add(48 * time.Hour),
				CanVote:    true,
			})
			if tc.allow && err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			if !tc.allow && !errors.Is(err, domainerrors.ErrAdminOnly) {
				t.Fatalf("expected ErrAdminOnly, got %v", err)
			}
		})
	}
}

func TestCreateElectionValidatesWindow(t *testing.T) {
	uc, _, now := newAdminFixture(t)

	_, err := uc.CreateElection(context.Background(), CreateElectionCommand{
		ActorEmail: "chair@example.edu",
		Title:      "Backwards window",
		StartDate:  now.Add(48 * time.Hour),
		EndDate:    now,
	})
	if !errors.Is(err, domainerrors.ErrInvalidElectionInput) {
		t.Fatalf("expected ErrInvalidElectionInput, got %v", err)
	}

	_, err = uc.CreateElection(context.Background(), CreateElectionCommand{
		ActorEmail: "chair@example.edu",
		Title:      "   ",
		StartDate:  now,
		EndDate:    now.Add(48 * time.Hour),
	})
	if !errors.Is(err, domainerrors.ErrInvalidElectionInput) {
		t.Fatalf("expected ErrInvalidElectionInput for blank title, got %v", err)
	}
}

func TestCreatePositionAndCandidateChain(t *testing.T) {
	uc, _, now := newAdminFixture(t)

	election, err := uc.CreateElection(context.Background(), CreateElectionCommand{
		ActorEmail: "chair@example.edu",
		Title:      "Student Council 2026",
		StartDate:  now,
		EndDate:    now.Add(48 * time.Hour),
		CanVote:    true,
	})
	if err != nil {
		t.Fatalf("create election: %v", err)
	}

	position, err := uc.CreatePosition(context.Background(), CreatePositionCommand{
		ActorEmail:     "chair@example.edu",
		ElectionID:     election.ElectionID,
		Name:           "President",
		VotesPerPerson: 1,
	})
	if err != nil {
		t.Fatalf("create position: %v", err)
	}
	if position.ElectionID != election.ElectionID {
		t.Fatalf("position not bound to election: %+v", position)
	}

	candidate, err := uc.CreateCandidate(context.Background(), CreateCandidateCommand{
		ActorEmail: "chair@example.edu",
		PositionID: position.PositionID,
		Name:       "Alice",
	})
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	if candidate.PositionID != position.PositionID || candidate.ElectionID != election.ElectionID {
		t.Fatalf("candidate not bound: %+v", candidate)
	}
	if candidate.NumVotes != 0 {
		t.Fatalf("new candidate must start at zero votes, got %d", candidate.NumVotes)
	}

	_, err = uc.CreatePosition(context.Background(), CreatePositionCommand{
		ActorEmail:     "chair@example.edu",
		ElectionID:     "el-missing",
		Name:           "Treasurer",
		VotesPerPerson: 1,
	})
	if !errors.Is(err, domainerrors.ErrElectionNotFound) {
		t.Fatalf("expected ErrElectionNotFound, got %v", err)
	}

	_, err = uc.CreatePosition(context.Background(), CreatePositionCommand{
		ActorEmail:     "chair@example.edu",
		ElectionID:     election.ElectionID,
		Name:           "Treasurer",
		VotesPerPerson: 0,
	})
	if !errors.Is(err, domainerrors.ErrInvalidPositionInput) {
		t.Fatalf("expected ErrInvalidPositionInput, got %v", err)
	}
}

func TestFinishDueElectionsIsOneWayAndIdempotent(t *testing.T) {
	uc, store, now := newAdminFixture(t)

	due, err := uc.CreateElection(context.Background(), CreateElectionCommand{
		ActorEmail: "chair@example.edu",
		Title:      "Past election",
		StartDate:  now.Add(-72 * time.Hour),
		EndDate:    now.Add(-24 * time.Hour),
		CanVote:    true,
	})
	if err != nil {
		t.Fatalf("create due election: %v", err)
	}
	if _, err := uc.CreateElection(context.Background(), CreateElectionCommand{
		ActorEmail: "chair@example.edu",
		Title:      "Running election",
		StartDate:  now.Add(-24 * time.Hour),
		EndDate:    now.Add(24 * time.Hour),
		CanVote:    true,
	}); err != nil {
		t.Fatalf("create running election: %v", err)
	}

	finished, err := uc.FinishDueElections(context.Background(), now)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if finished != 1 {
		t.Fatalf("expected 1 finished election, got %d", finished)
	}

	stored, err := store.GetElection(context.Background(), due.ElectionID)
	if err != nil {
		t.Fatalf("get election: %v", err)
	}
	if !stored.Finished {
		t.Fatalf("expected finished flag set")
	}

	finished, err = uc.FinishDueElections(context.Background(), now)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if finished != 0 {
		t.Fatalf("second sweep must be a no-op, finished %d", finished)
	}
}
