package queries

import (
	"context"
	"errors"
	"testing"

	"ballotbox/contexts/election-operations/vote-engine/adapters/memory"
	"ballotbox/contexts/election-operations/vote-engine/domain/entities"
	domainerrors "ballotbox/contexts/election-operations/vote-engine/domain/errors"
)

func seedStore() *memory.Store {
	store := memory.NewStore()
	store.SetElection(entities.Election{ElectionID: "el-1", Title: "Student Council 2026", CanVote: true})
	store.SetPosition(entities.Position{PositionID: "pos-board", ElectionID: "el-1", Name: "Board", VotesPerPerson: 2})
	store.SetPosition(entities.Position{PositionID: "pos-president", ElectionID: "el-1", Name: "President", VotesPerPerson: 1})
	store.SetCandidate(entities.Candidate{CandidateID: "cand-a", PositionID: "pos-president", ElectionID: "el-1", Name: "Alice", NumVotes: 3})
	store.SetCandidate(entities.Candidate{CandidateID: "cand-b", PositionID: "pos-president", ElectionID: "el-1", Name: "Bob", NumVotes: 7})
	store.SetCandidate(entities.Candidate{CandidateID: "cand-c", PositionID: "pos-board", ElectionID: "el-1", Name: "Carol", NumVotes: 5})
	store.SetVoter(entities.Voter{ElectionID: "el-1", StudentID: "s001", Token: "token-s001"})
	return store
}

func TestVotePageGroupsCandidatesByPosition(t *testing.T) {
	store := seedStore()
	uc := BallotQueryUseCase{Reader: store}

	page, err := uc.VotePage(context.Background(), "token-s001")
	if err != nil {
		t.Fatalf("vote page: %v", err)
	}
	if page.Election.Title != "Student Council 2026" {
		t.Fatalf("unexpected election: %+v", page.Election)
	}
	if page.Voter.StudentID != "s001" || page.Voter.Voted {
		t.Fatalf("unexpected voter: %+v", page.Voter)
	}
	if len(page.Positions) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(page.Positions))
	}
	// Positions come back name-sorted.
	if page.Positions[0].Position.Name != "Board" || page.Positions[1].Position.Name != "President" {
		t.Fatalf("unexpected position order: %+v", page.Positions)
	}
	if len(page.Positions[1].Candidates) != 2 {
		t.Fatalf("expected 2 president candidates, got %d", len(page.Positions[1].Candidates))
	}
}

func TestVotePageUnknownToken(t *testing.T) {
	store := seedStore()
	uc := BallotQueryUseCase{Reader: store}

	for _, token := range []string{"", "  ", "missing"} {
		if _, err := uc.VotePage(context.Background(), token); !errors.Is(err, domainerrors.ErrVoterNotFound) {
			t.Fatalf("token %q: expected ErrVoterNotFound, got %v", token, err)
		}
	}
}

func TestElectionResultsRankedByTally(t *testing.T) {
	store := seedStore()
	uc := BallotQueryUseCase{Reader: store}

	results, err := uc.ElectionResults(context.Background(), "el-1")
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	var president entities.PositionResult
	for _, position := range results.Positions {
		if position.Position.Name == "President" {
			president = position
		}
	}
	if len(president.Candidates) != 2 {
		t.Fatalf("expected 2 president candidates, got %d", len(president.Candidates))
	}
	if president.Candidates[0].Name != "Bob" || president.Candidates[0].NumVotes != 7 {
		t.Fatalf("expected Bob first with 7 votes, got %+v", president.Candidates[0])
	}
	if president.Candidates[1].Name != "Alice" {
		t.Fatalf("expected Alice second, got %+v", president.Candidates[1])
	}
}

func TestElectionResultsUnknownElection(t *testing.T) {
	store := seedStore()
	uc := BallotQueryUseCase{Reader: store}

	if _, err := uc.ElectionResults(context.Background(), "el-missing"); !errors.Is(err, domainerrors.ErrElectionNotFound) {
		t.Fatalf("expected ErrElectionNotFound, got %v", err)
	}
}
