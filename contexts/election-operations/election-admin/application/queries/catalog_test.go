package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	"ballotbox/contexts/election-operations/election-admin/adapters/memory"
	"ballotbox/contexts/election-operations/election-admin/domain/entities"
	domainerrors "ballotbox/contexts/election-operations/election-admin/domain/errors"
)

func seedCatalog(t *testing.T) (CatalogUseCase, *memory.Store, time.Time) {
	t.Helper()
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore([]entities.Election{
		{
			ElectionID: "el-open-late",
			Title:      "Later open election",
			CanVote:    true,
			StartDate:  now.Add(-1 * time.Hour),
			EndDate:    now.Add(48 * time.Hour),
		},
		{
			ElectionID: "el-open-early",
			Title:      "Earlier open election",
			CanVote:    true,
			StartDate:  now.Add(-24 * time.Hour),
			EndDate:    now.Add(24 * time.Hour),
		},
		{
			ElectionID: "el-closed",
			Title:      "Registration disabled",
			CanVote:    false,
			StartDate:  now.Add(-24 * time.Hour),
			EndDate:    now.Add(24 * time.Hour),
		},
		{
			ElectionID: "el-finished",
			Title:      "Already finished",
			CanVote:    true,
			Finished:   true,
			StartDate:  now.Add(-72 * time.Hour),
			EndDate:    now.Add(-24 * time.Hour),
		},
		{
			ElectionID: "el-future",
			Title:      "Not started yet",
			CanVote:    true,
			StartDate:  now.Add(24 * time.Hour),
			EndDate:    now.Add(72 * time.Hour),
		},
	})
	store.SetNow(func() time.Time { return now })
	return CatalogUseCase{Elections: store, Clock: store}, store, now
}

func TestAvailableElectionsFiltersAndSorts(t *testing.T) {
	uc, _, _ := seedCatalog(t)

	elections, err := uc.AvailableElections(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(elections) != 2 {
		t.Fatalf("expected 2 open elections, got %d", len(elections))
	}
	if elections[0].ElectionID != "el-open-early" || elections[1].ElectionID != "el-open-late" {
		t.Fatalf("unexpected order: %s, %s", elections[0].ElectionID, elections[1].ElectionID)
	}
}

func TestRegisterPageGatesOnVotingWindow(t *testing.T) {
	uc, store, _ := seedCatalog(t)

	store.SavePosition(context.Background(), entities.Position{
		PositionID:     "pos-president",
		ElectionID:     "el-open-early",
		Name:           "President",
		VotesPerPerson: 1,
	})
	store.SaveCandidate(context.Background(), entities.Candidate{
		CandidateID: "cand-a",
		PositionID:  "pos-president",
		ElectionID:  "el-open-early",
		Name:        "Alice",
	})

	detail, err := uc.RegisterPage(context.Background(), "el-open-early")
	if err != nil {
		t.Fatalf("register page: %v", err)
	}
	if len(detail.Positions) != 1 || len(detail.Positions[0].Candidates) != 1 {
		t.Fatalf("unexpected detail: %+v", detail)
	}

	for _, electionID := range []string{"el-closed", "el-finished", "el-future"} {
		if _, err := uc.RegisterPage(context.Background(), electionID); !errors.Is(err, domainerrors.ErrVotingClosed) {
			t.Fatalf("%s: expected ErrVotingClosed, got %v", electionID, err)
		}
	}

	if _, err := uc.RegisterPage(context.Background(), "el-missing"); !errors.Is(err, domainerrors.ErrElectionNotFound) {
		t.Fatalf("expected ErrElectionNotFound, got %v", err)
	}
}
